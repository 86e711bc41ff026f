package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/facematch"
	"github.com/sismt/attendance-system/internal/core/ports"
	"github.com/sismt/attendance-system/internal/core/schedule"
)

// RecognitionOptions bound the accepted embeddings and hold the default
// acceptance policy; both come from configuration.
type RecognitionOptions struct {
	MinEmbeddingLen  int
	MaxEmbeddingLen  int
	DefaultThreshold float64
	DefaultMinMargin float64
}

// RecognitionService identifies a person from a live embedding and routes
// the accepted match into the registration path.
type RecognitionService struct {
	people    ports.PersonRepository
	encodings ports.EncodingRepository
	records   ports.AttendanceRepository
	registrar ports.AttendanceService
	schedule  *schedule.Config
	opts      RecognitionOptions
	loc       *time.Location
	logger    zerolog.Logger
}

func NewRecognitionService(
	people ports.PersonRepository,
	encodings ports.EncodingRepository,
	records ports.AttendanceRepository,
	registrar ports.AttendanceService,
	sched *schedule.Config,
	opts RecognitionOptions,
	loc *time.Location,
	logger zerolog.Logger,
) *RecognitionService {
	return &RecognitionService{
		people:    people,
		encodings: encodings,
		records:   records,
		registrar: registrar,
		schedule:  sched,
		opts:      opts,
		loc:       loc,
		logger:    logger,
	}
}

// Process validates the embedding, matches it against every enrolled
// encoding, applies the acceptance policy, and either previews the
// would-be registration or persists it via the registrar.
func (s *RecognitionService) Process(ctx context.Context, in ports.RecognizeInput) (*ports.RecognitionResult, error) {
	if len(in.Embedding) < s.opts.MinEmbeddingLen || len(in.Embedding) > s.opts.MaxEmbeddingLen {
		return nil, fmt.Errorf("%w: got %d values, want %d..%d",
			domain.ErrEmbeddingInvalid, len(in.Embedding), s.opts.MinEmbeddingLen, s.opts.MaxEmbeddingLen)
	}

	encodings, err := s.encodings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("recognition: load encodings: %w", err)
	}
	if len(encodings) == 0 {
		return nil, domain.ErrNoEnrolledUsers
	}

	candidates := make([]facematch.Candidate, 0, len(encodings))
	for _, e := range encodings {
		candidates = append(candidates, facematch.Candidate{OwnerID: e.PersonID, Embedding: e.Embedding})
	}

	match := facematch.BestMatch(in.Embedding, candidates)
	if match.Scored == 0 {
		return nil, domain.ErrNoEnrolledUsers
	}

	policy := facematch.Policy{Threshold: s.opts.DefaultThreshold, MinMargin: s.opts.DefaultMinMargin}
	if in.Threshold != nil {
		policy.Threshold = *in.Threshold
	}
	if in.MinMargin != nil {
		policy.MinMargin = *in.MinMargin
	}

	if err := policy.Decide(match); err != nil {
		s.logger.Info().
			Float64("score", match.Best).
			Float64("second", match.SecondBest).
			Float64("threshold", policy.Threshold).
			Err(err).
			Msg("recognition rejected")
		return nil, err
	}

	s.logger.Info().
		Float64("score", match.Best).
		Float64("margin", match.Margin()).
		Str("person_id", match.OwnerID).
		Msg("recognition accepted")

	person, err := s.people.FindByID(ctx, match.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("recognition: %w", err)
	}

	result := &ports.RecognitionResult{
		PersonID:   person.ID,
		PersonName: person.FullName,
		Score:      match.Best,
		Margin:     match.Margin(),
	}

	if in.PreviewOnly {
		if err := s.fillPreview(ctx, result, in); err != nil {
			return nil, err
		}
		return result, nil
	}

	registration, err := s.registrar.Register(ctx, ports.RegisterAttendanceInput{
		PersonID:          person.ID,
		IdentityConfirmed: true,
		Window:            in.Window,
		Timestamp:         in.Timestamp,
		Reason:            in.Reason,
	})
	if err != nil {
		return nil, err
	}
	result.Registration = registration
	return result, nil
}

// fillPreview computes the window, status, and duplicate state the
// registration would have, without writing anything.
func (s *RecognitionService) fillPreview(ctx context.Context, result *ports.RecognitionResult, in ports.RecognizeInput) error {
	now := time.Now().In(s.loc)
	if in.Timestamp != nil {
		now = in.Timestamp.In(s.loc)
	}
	tod := schedule.FromTime(now)

	window := in.Window
	if !window.Valid() {
		window = s.schedule.Classify(tod)
	}

	result.Preview = true
	result.Window = window
	result.Status = s.schedule.EvaluateStatus(window, tod)
	result.Time = now.Format("15:04:05")

	if window == domain.WindowNone {
		return nil
	}

	records, err := s.records.FindByPersonAndDate(ctx, result.PersonID, now.Format(domain.DateLayout))
	if err != nil {
		return fmt.Errorf("recognition preview: %w", err)
	}
	for _, r := range records {
		if r.Window == window {
			result.AlreadyRegistered = true
			result.PriorTime = r.Timestamp.In(s.loc).Format("15:04")
			break
		}
	}
	return nil
}
