package ports

import (
	"context"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// AttendanceRepository defines persistence operations for attendance
// records. Records are insert-only: corrections are out of scope.
type AttendanceRepository interface {
	Insert(ctx context.Context, r *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	// FindByPersonAndDate returns all of a person's records for one
	// calendar date (domain.DateLayout).
	FindByPersonAndDate(ctx context.Context, personID, date string) ([]*domain.AttendanceRecord, error)
	FindByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error)
	// FindByDateRange returns records with from <= date <= to, optionally
	// scoped to one person when personID is non-empty.
	FindByDateRange(ctx context.Context, from, to, personID string) ([]*domain.AttendanceRecord, error)
	// FindRecent returns the newest records first.
	FindRecent(ctx context.Context, limit int) ([]*domain.AttendanceRecord, error)
}

// AbsenceRequestRepository defines persistence for justified-absence requests.
type AbsenceRequestRepository interface {
	Create(ctx context.Context, r *domain.AbsenceRequest) (*domain.AbsenceRequest, error)
	FindAll(ctx context.Context) ([]*domain.AbsenceRequest, error)
	FindByPersonID(ctx context.Context, personID string) ([]*domain.AbsenceRequest, error)
	FindByID(ctx context.Context, id string) (*domain.AbsenceRequest, error)
	UpdateState(ctx context.Context, id string, state domain.RequestState) (*domain.AbsenceRequest, error)
}

// OvertimeRequestRepository defines persistence for overtime requests.
type OvertimeRequestRepository interface {
	Create(ctx context.Context, r *domain.OvertimeRequest) (*domain.OvertimeRequest, error)
	FindAll(ctx context.Context) ([]*domain.OvertimeRequest, error)
	FindByPersonID(ctx context.Context, personID string) ([]*domain.OvertimeRequest, error)
	FindByID(ctx context.Context, id string) (*domain.OvertimeRequest, error)
	UpdateState(ctx context.Context, id string, state domain.RequestState) (*domain.OvertimeRequest, error)
}
