package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

// EncodingService implements facial-encoding management. Dimension bounds
// are enforced at write time; duplicate or near-identical encodings are
// allowed — ambiguity between them is the matcher's problem, not the store's.
type EncodingService struct {
	encodings ports.EncodingRepository
	people    ports.PersonRepository
	minLen    int
	maxLen    int
	logger    zerolog.Logger
}

func NewEncodingService(
	encodings ports.EncodingRepository,
	people ports.PersonRepository,
	minLen, maxLen int,
	logger zerolog.Logger,
) *EncodingService {
	return &EncodingService{
		encodings: encodings,
		people:    people,
		minLen:    minLen,
		maxLen:    maxLen,
		logger:    logger,
	}
}

func (s *EncodingService) Create(ctx context.Context, personID string, embedding []float64) (*domain.FacialEncoding, error) {
	if len(embedding) < s.minLen || len(embedding) > s.maxLen {
		return nil, fmt.Errorf("%w: got %d values, want %d..%d",
			domain.ErrEmbeddingInvalid, len(embedding), s.minLen, s.maxLen)
	}

	if _, err := s.people.FindByID(ctx, personID); err != nil {
		return nil, err
	}

	created, err := s.encodings.Create(ctx, &domain.FacialEncoding{
		PersonID:  personID,
		Embedding: embedding,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create encoding: %w", err)
	}

	s.logger.Info().Str("encoding_id", created.ID).Str("person_id", personID).Int("dims", len(embedding)).Msg("facial encoding enrolled")
	return created, nil
}

func (s *EncodingService) List(ctx context.Context) ([]*domain.FacialEncoding, error) {
	return s.encodings.FindAll(ctx)
}

func (s *EncodingService) Get(ctx context.Context, id string) (*domain.FacialEncoding, error) {
	return s.encodings.FindByID(ctx, id)
}

func (s *EncodingService) ListByPerson(ctx context.Context, personID string) ([]*domain.FacialEncoding, error) {
	return s.encodings.FindByPersonID(ctx, personID)
}

func (s *EncodingService) Delete(ctx context.Context, id string) error {
	return s.encodings.Delete(ctx, id)
}
