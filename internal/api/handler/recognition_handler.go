package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/api/metrics"
	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

// Notifier receives registration events for live distribution.
type Notifier interface {
	Publish(event *ports.RegistrationResult)
}

// RecognitionHandler handles HTTP requests for the live recognition
// pipeline used by capture kiosks.
type RecognitionHandler struct {
	service  ports.RecognitionService
	notifier Notifier
}

func NewRecognitionHandler(service ports.RecognitionService, notifier Notifier) *RecognitionHandler {
	return &RecognitionHandler{service: service, notifier: notifier}
}

type recognizeRequest struct {
	Embedding []float64 `json:"embedding" validate:"required"`
	// Timestamp is RFC3339; defaults to the server clock when absent.
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Window      string     `json:"window,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	PreviewOnly bool       `json:"preview_only,omitempty"`
	Threshold   *float64   `json:"threshold,omitempty"`
	MinMargin   *float64   `json:"min_margin,omitempty"`
}

// Recognize identifies a person from a live embedding and registers their
// attendance unless preview_only is set.
//
// @Summary      Recognize a face embedding and register attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body      recognizeRequest  true  "Live embedding and options"
// @Success      200   {object}  ports.RecognitionResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/attendance/recognize [post]
func (h *RecognitionHandler) Recognize(c echo.Context) error {
	var req recognizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	result, err := h.service.Process(c.Request().Context(), ports.RecognizeInput{
		Embedding:   req.Embedding,
		Timestamp:   req.Timestamp,
		Window:      domain.Window(req.Window),
		Reason:      req.Reason,
		PreviewOnly: req.PreviewOnly,
		Threshold:   req.Threshold,
		MinMargin:   req.MinMargin,
	})
	metrics.RecognitionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RecognitionTotal.WithLabelValues(recognitionResultLabel(err)).Inc()
		return err
	}
	metrics.RecognitionTotal.WithLabelValues("accepted").Inc()

	if reg := result.Registration; reg != nil {
		switch reg.Outcome {
		case ports.OutcomeRegistered:
			metrics.RegistrationsTotal.WithLabelValues(string(reg.Window), string(reg.Status)).Inc()
			h.notifier.Publish(reg)
		case ports.OutcomeDuplicate:
			metrics.DuplicatesTotal.Inc()
		}
	}

	return c.JSON(http.StatusOK, result)
}

func recognitionResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoConfidentMatch):
		return "no_confident_match"
	case errors.Is(err, domain.ErrAmbiguousMatch):
		return "ambiguous"
	default:
		return "error"
	}
}
