package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/core/ports"
)

// PersonHandler handles personnel management and account endpoints.
type PersonHandler struct {
	service      ports.PersonService
	resetBaseURL string
}

func NewPersonHandler(service ports.PersonService, resetBaseURL string) *PersonHandler {
	return &PersonHandler{service: service, resetBaseURL: resetBaseURL}
}

type createPersonRequest struct {
	DocumentID string `json:"document_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password,omitempty"`
	Admin      bool   `json:"admin"`
}

type updatePersonRequest struct {
	DocumentID *string `json:"document_id,omitempty"`
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Password   *string `json:"password,omitempty"`
	Admin      *bool   `json:"admin,omitempty"`
}

type createPersonWithEncodingRequest struct {
	createPersonRequest
	Embedding []float64 `json:"embedding" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Create enrolls a new staff member.
//
// @Summary      Create a person
// @Tags         personnel
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPersonRequest  true  "Person details"
// @Success      201   {object}  domain.Person
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/personnel [post]
func (h *PersonHandler) Create(c echo.Context) error {
	var req createPersonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	person, err := h.service.Create(c.Request().Context(), ports.CreatePersonInput{
		DocumentID: req.DocumentID,
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Admin:      req.Admin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, person)
}

// CreateWithEncoding enrolls a person together with their first facial
// encoding in one atomic operation.
//
// @Summary      Create a person with a facial encoding
// @Tags         personnel
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPersonWithEncodingRequest  true  "Person and embedding"
// @Success      201   {object}  ports.CreatePersonWithEncodingResult
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/personnel/with-encoding [post]
func (h *PersonHandler) CreateWithEncoding(c echo.Context) error {
	var req createPersonWithEncodingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateWithEncoding(c.Request().Context(), ports.CreatePersonWithEncodingInput{
		Person: ports.CreatePersonInput{
			DocumentID: req.DocumentID,
			FullName:   req.FullName,
			Email:      req.Email,
			Password:   req.Password,
			Admin:      req.Admin,
		},
		Embedding: req.Embedding,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

// List returns every staff member.
//
// @Summary      List personnel
// @Tags         personnel
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Person
// @Failure      401  {object}  map[string]string
// @Router       /v1/personnel [get]
func (h *PersonHandler) List(c echo.Context) error {
	people, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, people)
}

// Get returns one staff member by ID.
//
// @Summary      Get a person
// @Tags         personnel
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Person ID"
// @Success      200  {object}  domain.Person
// @Failure      404  {object}  map[string]string
// @Router       /v1/personnel/{id} [get]
func (h *PersonHandler) Get(c echo.Context) error {
	person, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Update applies a partial update to a staff member.
//
// @Summary      Update a person
// @Tags         personnel
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Person ID"
// @Param        body  body      updatePersonRequest  true  "Fields to change"
// @Success      200   {object}  domain.Person
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/personnel/{id} [put]
func (h *PersonHandler) Update(c echo.Context) error {
	var req updatePersonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	person, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdatePersonInput{
		DocumentID: req.DocumentID,
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Admin:      req.Admin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Delete removes a staff member.
//
// @Summary      Delete a person
// @Tags         personnel
// @Security     BearerAuth
// @Param        id  path  string  true  "Person ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/personnel/{id} [delete]
func (h *PersonHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Login authenticates by email and password and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  ports.AuthResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *PersonHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	auth, err := h.service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auth)
}

// RequestPasswordReset issues a recovery token by email. Always answers
// 202 so callers cannot probe which addresses exist.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Param        body  body  passwordResetRequest  true  "Account email"
// @Success      202
// @Failure      400  {object}  map[string]string
// @Router       /auth/password-reset [post]
func (h *PersonHandler) RequestPasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RequestPasswordReset(c.Request().Context(), req.Email, h.resetBaseURL); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// ConfirmPasswordReset redeems a recovery token.
//
// @Summary      Confirm a password reset
// @Tags         auth
// @Accept       json
// @Param        body  body  passwordResetConfirmRequest  true  "Token and new password"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/password-reset/confirm [post]
func (h *PersonHandler) ConfirmPasswordReset(c echo.Context) error {
	var req passwordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
