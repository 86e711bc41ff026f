package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/api/metrics"
	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

// AttendanceHandler handles registration and the attendance query endpoints.
type AttendanceHandler struct {
	service  ports.AttendanceService
	notifier Notifier
}

func NewAttendanceHandler(service ports.AttendanceService, notifier Notifier) *AttendanceHandler {
	return &AttendanceHandler{service: service, notifier: notifier}
}

type registerAttendanceRequest struct {
	PersonID          string `json:"person_id" validate:"required"`
	IdentityConfirmed bool   `json:"is_identity_confirmed"`
	// Window optionally forces the marking window; classified by time
	// when empty.
	Window    string     `json:"window,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// Register records an attendance mark for an already identified person.
//
// @Summary      Register an attendance mark
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body      registerAttendanceRequest  true  "Registration details"
// @Success      201   {object}  ports.RegistrationResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/attendance [post]
func (h *AttendanceHandler) Register(c echo.Context) error {
	var req registerAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterAttendanceInput{
		PersonID:          req.PersonID,
		IdentityConfirmed: req.IdentityConfirmed,
		Window:            domain.Window(req.Window),
		Timestamp:         req.Timestamp,
		Reason:            req.Reason,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	switch result.Outcome {
	case ports.OutcomeRegistered:
		metrics.RegistrationsTotal.WithLabelValues(string(result.Window), string(result.Status)).Inc()
		h.notifier.Publish(result)
	case ports.OutcomeDuplicate:
		metrics.DuplicatesTotal.Inc()
		status = http.StatusOK
	}

	return c.JSON(status, result)
}

// Board returns the per-person status board for one date.
//
// @Summary      Daily attendance board
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Date (2006-01-02), defaults to today"
// @Success      200   {array}   ports.PersonDayStatus
// @Failure      401   {object}  map[string]string
// @Router       /v1/attendance/board [get]
func (h *AttendanceHandler) Board(c echo.Context) error {
	board, err := h.service.DayBoard(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// History returns attendance records within a date range.
//
// @Summary      Attendance history
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        from       query     string  true   "Range start (2006-01-02)"
// @Param        to         query     string  true   "Range end (2006-01-02)"
// @Param        person_id  query     string  false  "Restrict to one person"
// @Success      200        {array}   ports.HistoryEntry
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Router       /v1/attendance/history [get]
func (h *AttendanceHandler) History(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if _, err := time.Parse(domain.DateLayout, from); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'from' date")
	}
	if _, err := time.Parse(domain.DateLayout, to); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'to' date")
	}

	entries, err := h.service.History(c.Request().Context(), ports.HistoryFilter{
		From:     from,
		To:       to,
		PersonID: c.QueryParam("person_id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Stats returns aggregate presence counters for one date.
//
// @Summary      Daily attendance statistics
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Date (2006-01-02), defaults to today"
// @Success      200   {object}  ports.DayStats
// @Failure      401   {object}  map[string]string
// @Router       /v1/attendance/stats [get]
func (h *AttendanceHandler) Stats(c echo.Context) error {
	stats, err := h.service.DayStats(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Recent returns the newest registrations plus today's counters.
//
// @Summary      Recent registrations feed
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 5)"
// @Success      200    {object}  ports.RecentActivity
// @Failure      401    {object}  map[string]string
// @Router       /v1/attendance/recent [get]
func (h *AttendanceHandler) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	activity, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}
