package ports

import (
	"context"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// CreateAbsenceRequestInput carries a new justified-absence petition.
type CreateAbsenceRequestInput struct {
	PersonID  string
	Kind      string
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Reason    string
}

// CreateOvertimeRequestInput carries a new overtime petition.
type CreateOvertimeRequestInput struct {
	PersonID string
	WorkDate string
	Hours    float64
	Reason   string
}

// RequestService manages absence and overtime petitions and their state
// transitions (pending -> approved | denied | cancelled).
type RequestService interface {
	CreateAbsence(ctx context.Context, in CreateAbsenceRequestInput) (*domain.AbsenceRequest, error)
	ListAbsences(ctx context.Context, personID string) ([]*domain.AbsenceRequest, error)
	ResolveAbsence(ctx context.Context, id string, state domain.RequestState) (*domain.AbsenceRequest, error)

	CreateOvertime(ctx context.Context, in CreateOvertimeRequestInput) (*domain.OvertimeRequest, error)
	ListOvertime(ctx context.Context, personID string) ([]*domain.OvertimeRequest, error)
	ResolveOvertime(ctx context.Context, id string, state domain.RequestState) (*domain.OvertimeRequest, error)
}

// MonthlyReportRow is one person's aggregated month.
type MonthlyReportRow struct {
	Index               int     `json:"index"`
	PersonID            string  `json:"person_id"`
	DocumentID          string  `json:"document_id"`
	FullName            string  `json:"full_name"`
	Workdays            int     `json:"workdays"`
	AttendedDays        int     `json:"attended_days"`
	Lates               int     `json:"lates"`
	EarlyDepartures     int     `json:"early_departures"`
	JustifiedAbsences   int     `json:"justified_absences"`
	UnjustifiedAbsences int     `json:"unjustified_absences"`
	OvertimeHours       float64 `json:"overtime_hours"`
}

// ReportService produces the monthly attendance report.
type ReportService interface {
	// Monthly aggregates one calendar month; personID narrows the report
	// to a single person when non-empty.
	Monthly(ctx context.Context, year, month int, personID string) ([]MonthlyReportRow, error)
}
