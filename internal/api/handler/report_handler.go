package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/core/ports"
)

// ReportHandler handles the monthly report endpoint.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Monthly returns the per-person aggregation for a calendar month.
//
// @Summary      Monthly attendance report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        year       query     int     true   "Year (e.g. 2026)"
// @Param        month      query     int     true   "Month (1-12)"
// @Param        person_id  query     string  false  "Restrict to one person"
// @Success      200        {array}   ports.MonthlyReportRow
// @Failure      400        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Router       /v1/reports/monthly [get]
func (h *ReportHandler) Monthly(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 2000 || year > 2100 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}

	rows, err := h.service.Monthly(c.Request().Context(), year, month, c.QueryParam("person_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}
