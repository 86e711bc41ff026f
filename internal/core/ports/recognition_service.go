package ports

import (
	"context"
	"time"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// RecognizeInput carries a live embedding from a capture device.
type RecognizeInput struct {
	Embedding []float64
	// Timestamp defaults to now in the business timezone.
	Timestamp *time.Time
	// Window optionally forces the window instead of classifying by time.
	Window domain.Window
	Reason string
	// PreviewOnly computes the would-be window/status without persisting,
	// so the device can show a confirmation dialog first.
	PreviewOnly bool
	// Threshold and MinMargin override the server defaults when non-nil.
	Threshold *float64
	MinMargin *float64
}

// RecognitionResult reports an accepted identification. Rejections travel
// as errors (domain.ErrNoConfidentMatch, domain.ErrAmbiguousMatch, ...).
type RecognitionResult struct {
	PersonID   string  `json:"person_id"`
	PersonName string  `json:"person_name"`
	Score      float64 `json:"score"`
	Margin     float64 `json:"margin"`

	// Preview fields, populated when PreviewOnly was requested.
	Preview           bool          `json:"preview"`
	Window            domain.Window `json:"window,omitempty"`
	Status            domain.Status `json:"status,omitempty"`
	Time              string        `json:"time,omitempty"`
	AlreadyRegistered bool          `json:"already_registered,omitempty"`
	PriorTime         string        `json:"prior_time,omitempty"`

	// Registration is the persisted outcome when PreviewOnly was false.
	Registration *RegistrationResult `json:"registration,omitempty"`
}

// RecognitionService runs the embedding-to-registration pipeline.
type RecognitionService interface {
	Process(ctx context.Context, in RecognizeInput) (*RecognitionResult, error)
}
