package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/core/ports"
)

// EncodingHandler handles facial-encoding management endpoints.
type EncodingHandler struct {
	service ports.EncodingService
}

func NewEncodingHandler(service ports.EncodingService) *EncodingHandler {
	return &EncodingHandler{service: service}
}

type createEncodingRequest struct {
	PersonID  string    `json:"person_id" validate:"required"`
	Embedding []float64 `json:"embedding" validate:"required"`
}

// Create enrolls a new facial encoding for an existing person.
//
// @Summary      Enroll a facial encoding
// @Tags         encodings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEncodingRequest  true  "Owner and embedding"
// @Success      201   {object}  domain.FacialEncoding
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/encodings [post]
func (h *EncodingHandler) Create(c echo.Context) error {
	var req createEncodingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	encoding, err := h.service.Create(c.Request().Context(), req.PersonID, req.Embedding)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, encoding)
}

// List returns every enrolled encoding.
//
// @Summary      List facial encodings
// @Tags         encodings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.FacialEncoding
// @Failure      401  {object}  map[string]string
// @Router       /v1/encodings [get]
func (h *EncodingHandler) List(c echo.Context) error {
	encodings, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, encodings)
}

// Get returns one encoding by ID.
//
// @Summary      Get a facial encoding
// @Tags         encodings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Encoding ID"
// @Success      200  {object}  domain.FacialEncoding
// @Failure      404  {object}  map[string]string
// @Router       /v1/encodings/{id} [get]
func (h *EncodingHandler) Get(c echo.Context) error {
	encoding, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, encoding)
}

// ListByPerson returns all encodings enrolled for one person.
//
// @Summary      List a person's encodings
// @Tags         encodings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Person ID"
// @Success      200  {array}   domain.FacialEncoding
// @Failure      401  {object}  map[string]string
// @Router       /v1/personnel/{id}/encodings [get]
func (h *EncodingHandler) ListByPerson(c echo.Context) error {
	encodings, err := h.service.ListByPerson(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, encodings)
}

// Delete removes an encoding.
//
// @Summary      Delete a facial encoding
// @Tags         encodings
// @Security     BearerAuth
// @Param        id  path  string  true  "Encoding ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/encodings/{id} [delete]
func (h *EncodingHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
