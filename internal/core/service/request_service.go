package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

// RequestService manages absence and overtime petitions.
type RequestService struct {
	absences ports.AbsenceRequestRepository
	overtime ports.OvertimeRequestRepository
	people   ports.PersonRepository
	logger   zerolog.Logger
}

func NewRequestService(
	absences ports.AbsenceRequestRepository,
	overtime ports.OvertimeRequestRepository,
	people ports.PersonRepository,
	logger zerolog.Logger,
) *RequestService {
	return &RequestService{absences: absences, overtime: overtime, people: people, logger: logger}
}

func (s *RequestService) CreateAbsence(ctx context.Context, in ports.CreateAbsenceRequestInput) (*domain.AbsenceRequest, error) {
	if _, err := s.people.FindByID(ctx, in.PersonID); err != nil {
		return nil, err
	}

	created, err := s.absences.Create(ctx, &domain.AbsenceRequest{
		PersonID:    in.PersonID,
		Kind:        in.Kind,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Reason:      in.Reason,
		State:       domain.RequestPending,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create absence request: %w", err)
	}
	s.logger.Info().Str("request_id", created.ID).Str("person_id", in.PersonID).Msg("absence request created")
	return created, nil
}

func (s *RequestService) ListAbsences(ctx context.Context, personID string) ([]*domain.AbsenceRequest, error) {
	if personID != "" {
		return s.absences.FindByPersonID(ctx, personID)
	}
	return s.absences.FindAll(ctx)
}

func (s *RequestService) ResolveAbsence(ctx context.Context, id string, state domain.RequestState) (*domain.AbsenceRequest, error) {
	if !state.Valid() {
		return nil, domain.ErrInvalidRequestState
	}

	current, err := s.absences.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.State.CanTransitionTo(state) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidRequestState, current.State, state)
	}

	updated, err := s.absences.UpdateState(ctx, id, state)
	if err != nil {
		return nil, fmt.Errorf("resolve absence request: %w", err)
	}
	s.logger.Info().Str("request_id", id).Str("state", string(state)).Msg("absence request resolved")
	return updated, nil
}

func (s *RequestService) CreateOvertime(ctx context.Context, in ports.CreateOvertimeRequestInput) (*domain.OvertimeRequest, error) {
	if _, err := s.people.FindByID(ctx, in.PersonID); err != nil {
		return nil, err
	}

	created, err := s.overtime.Create(ctx, &domain.OvertimeRequest{
		PersonID:    in.PersonID,
		WorkDate:    in.WorkDate,
		Hours:       in.Hours,
		Reason:      in.Reason,
		State:       domain.RequestPending,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create overtime request: %w", err)
	}
	s.logger.Info().Str("request_id", created.ID).Str("person_id", in.PersonID).Msg("overtime request created")
	return created, nil
}

func (s *RequestService) ListOvertime(ctx context.Context, personID string) ([]*domain.OvertimeRequest, error) {
	if personID != "" {
		return s.overtime.FindByPersonID(ctx, personID)
	}
	return s.overtime.FindAll(ctx)
}

func (s *RequestService) ResolveOvertime(ctx context.Context, id string, state domain.RequestState) (*domain.OvertimeRequest, error) {
	if !state.Valid() {
		return nil, domain.ErrInvalidRequestState
	}

	current, err := s.overtime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.State.CanTransitionTo(state) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidRequestState, current.State, state)
	}

	updated, err := s.overtime.UpdateState(ctx, id, state)
	if err != nil {
		return nil, fmt.Errorf("resolve overtime request: %w", err)
	}
	s.logger.Info().Str("request_id", id).Str("state", string(state)).Msg("overtime request resolved")
	return updated, nil
}
