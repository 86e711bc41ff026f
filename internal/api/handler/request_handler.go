package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

// RequestHandler handles absence and overtime petition endpoints.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// resolvePetitioner fills an empty person_id with the caller's own id and
// blocks non-admins from filing a petition on someone else's behalf.
func (h *RequestHandler) resolvePetitioner(c echo.Context, personID *string) error {
	callerID, admin, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if *personID == "" {
		*personID = callerID
	}
	if !admin && *personID != callerID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot file a request for another person")
	}
	return nil
}

type createAbsenceRequest struct {
	PersonID  string `json:"person_id"`
	Kind      string `json:"kind" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Reason    string `json:"reason" validate:"required"`
}

type createOvertimeRequest struct {
	PersonID string  `json:"person_id"`
	WorkDate string  `json:"work_date" validate:"required,datetime=2006-01-02"`
	Hours    float64 `json:"hours" validate:"required,gt=0"`
	Reason   string  `json:"reason" validate:"required"`
}

type resolveRequest struct {
	State string `json:"state" validate:"required,oneof=approved denied cancelled"`
}

// CreateAbsence files a justified-absence petition.
//
// @Summary      Create an absence request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAbsenceRequest  true  "Petition details"
// @Success      201   {object}  domain.AbsenceRequest
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/absences [post]
func (h *RequestHandler) CreateAbsence(c echo.Context) error {
	var req createAbsenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.resolvePetitioner(c, &req.PersonID); err != nil {
		return err
	}

	created, err := h.service.CreateAbsence(c.Request().Context(), ports.CreateAbsenceRequestInput{
		PersonID:  req.PersonID,
		Kind:      req.Kind,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListAbsences lists petitions, optionally for one person.
//
// @Summary      List absence requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        person_id  query     string  false  "Restrict to one person"
// @Success      200        {array}   domain.AbsenceRequest
// @Failure      401        {object}  map[string]string
// @Router       /v1/absences [get]
func (h *RequestHandler) ListAbsences(c echo.Context) error {
	requests, err := h.service.ListAbsences(c.Request().Context(), c.QueryParam("person_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ResolveAbsence approves, denies, or cancels a pending petition.
//
// @Summary      Resolve an absence request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Request ID"
// @Param        body  body      resolveRequest  true  "Target state"
// @Success      200   {object}  domain.AbsenceRequest
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/absences/{id}/state [patch]
func (h *RequestHandler) ResolveAbsence(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resolved, err := h.service.ResolveAbsence(c.Request().Context(), c.Param("id"), domain.RequestState(req.State))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resolved)
}

// CreateOvertime files an overtime petition.
//
// @Summary      Create an overtime request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOvertimeRequest  true  "Petition details"
// @Success      201   {object}  domain.OvertimeRequest
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/overtime [post]
func (h *RequestHandler) CreateOvertime(c echo.Context) error {
	var req createOvertimeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.resolvePetitioner(c, &req.PersonID); err != nil {
		return err
	}

	created, err := h.service.CreateOvertime(c.Request().Context(), ports.CreateOvertimeRequestInput{
		PersonID: req.PersonID,
		WorkDate: req.WorkDate,
		Hours:    req.Hours,
		Reason:   req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListOvertime lists overtime petitions, optionally for one person.
//
// @Summary      List overtime requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        person_id  query     string  false  "Restrict to one person"
// @Success      200        {array}   domain.OvertimeRequest
// @Failure      401        {object}  map[string]string
// @Router       /v1/overtime [get]
func (h *RequestHandler) ListOvertime(c echo.Context) error {
	requests, err := h.service.ListOvertime(c.Request().Context(), c.QueryParam("person_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ResolveOvertime approves, denies, or cancels a pending petition.
//
// @Summary      Resolve an overtime request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Request ID"
// @Param        body  body      resolveRequest  true  "Target state"
// @Success      200   {object}  domain.OvertimeRequest
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/overtime/{id}/state [patch]
func (h *RequestHandler) ResolveOvertime(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resolved, err := h.service.ResolveOvertime(c.Request().Context(), c.Param("id"), domain.RequestState(req.State))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resolved)
}
