package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/schedule"
)

// ScheduleHandler exposes the mutable marking schedule.
type ScheduleHandler struct {
	config *schedule.Config
}

func NewScheduleHandler(config *schedule.Config) *ScheduleHandler {
	return &ScheduleHandler{config: config}
}

// Get returns the boundaries of every configured window.
//
// @Summary      Get the marking schedule
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]schedule.Boundaries
// @Failure      401  {object}  map[string]string
// @Router       /v1/schedule [get]
func (h *ScheduleHandler) Get(c echo.Context) error {
	snapshot := h.config.Snapshot()
	out := make(map[string]schedule.Boundaries, len(snapshot))
	for w, b := range snapshot {
		out[string(w)] = b
	}
	return c.JSON(http.StatusOK, out)
}

// Update replaces the boundaries of the given windows. Windows absent
// from the payload are left untouched; the change takes effect on the
// next classification without a restart.
//
// @Summary      Update the marking schedule
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]schedule.Boundaries  true  "Windows to replace"
// @Success      200   {object}  map[string]schedule.Boundaries
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/schedule [put]
func (h *ScheduleHandler) Update(c echo.Context) error {
	var req map[string]schedule.Boundaries
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(req) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no windows in payload")
	}

	for name := range req {
		if !domain.Window(name).Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown window %q", name))
		}
	}
	for name, b := range req {
		h.config.Set(domain.Window(name), b)
	}

	return h.Get(c)
}
