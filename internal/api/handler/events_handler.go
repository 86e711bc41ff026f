package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/api/metrics"
	"github.com/sismt/attendance-system/internal/core/ports"
)

const heartbeatInterval = 30 * time.Second

// EventSource hands out subscriptions to the registration event stream.
type EventSource interface {
	Subscribe() (<-chan *ports.RegistrationResult, func())
}

// EventsHandler streams registrations to dashboards over server-sent events.
type EventsHandler struct {
	source EventSource
}

func NewEventsHandler(source EventSource) *EventsHandler {
	return &EventsHandler{source: source}
}

// Stream opens an SSE connection carrying one event per registration.
//
// @Summary      Live registration event stream (SSE)
// @Tags         attendance
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string  "event stream"
// @Router       /v1/attendance/events [get]
func (h *EventsHandler) Stream(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	events, cancel := h.source.Subscribe()
	defer cancel()

	metrics.NotificationSubscribers.Inc()
	defer metrics.NotificationSubscribers.Dec()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			// Comment line keeps intermediaries from closing an idle stream.
			if _, err := fmt.Fprint(res, ": heartbeat\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: registration\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
