package ports

import (
	"context"
	"time"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// Registration outcomes. A duplicate is not an error: the caller receives
// the previously persisted registration instead of a new one.
const (
	OutcomeRegistered = "registered"
	OutcomeDuplicate  = "duplicate"
)

// RegisterAttendanceInput carries one registration attempt. Both the
// manual path and the recognition pipeline build this same struct.
type RegisterAttendanceInput struct {
	PersonID string
	// IdentityConfirmed must be set by the caller after either an accepted
	// facial match or an authenticated manual entry. Registration refuses
	// to proceed without it.
	IdentityConfirmed bool
	// Window optionally overrides the classifier (manual corrections).
	Window domain.Window
	// Timestamp defaults to now; it is normalized to the business timezone.
	Timestamp *time.Time
	Reason    string
}

// RegistrationResult is returned for both fresh and duplicate registrations.
type RegistrationResult struct {
	Outcome     string        `json:"outcome"`
	PersonID    string        `json:"person_id"`
	PersonName  string        `json:"person_name"`
	Window      domain.Window `json:"window"`
	WindowLabel string        `json:"window_label"`
	Status      domain.Status `json:"status"`
	Timestamp   time.Time     `json:"timestamp"`
	Message     string        `json:"message"`
	Detail      string        `json:"detail,omitempty"`
}

// PersonDayStatus summarizes one person's day for the attendance board.
type PersonDayStatus struct {
	PersonID    string                     `json:"person_id"`
	DocumentID  string                     `json:"document_id"`
	FullName    string                     `json:"full_name"`
	Present     bool                       `json:"present"`
	LastMark    *time.Time                 `json:"last_mark,omitempty"`
	WorkedHours float64                    `json:"worked_hours"`
	Records     []*domain.AttendanceRecord `json:"records"`
}

// HistoryFilter scopes the attendance history query.
type HistoryFilter struct {
	From     string // domain.DateLayout, inclusive
	To       string // domain.DateLayout, inclusive
	PersonID string // empty = all personnel
}

// HistoryEntry is a flattened attendance record joined with person fields.
type HistoryEntry struct {
	ID         string        `json:"id"`
	PersonID   string        `json:"person_id"`
	PersonName string        `json:"person_name"`
	DocumentID string        `json:"document_id"`
	Date       string        `json:"date"`
	Timestamp  time.Time     `json:"timestamp"`
	Window     domain.Window `json:"window"`
	Status     domain.Status `json:"status"`
	Reason     string        `json:"reason,omitempty"`
}

// DayStats aggregates one day's attendance counters.
type DayStats struct {
	TotalPersonnel int `json:"total_personnel"`
	Present        int `json:"present"`
	Absent         int `json:"absent"`
	Late           int `json:"late"`
}

// RecentRegistration is one row in the recent-activity feed.
type RecentRegistration struct {
	ID         string        `json:"id"`
	PersonName string        `json:"person_name"`
	Window     domain.Window `json:"window"`
	Status     domain.Status `json:"status"`
	Time       string        `json:"time"`
	Date       string        `json:"date"`
}

// RecentActivity bundles the latest registrations with today's counters.
type RecentActivity struct {
	Registrations []RecentRegistration `json:"registrations"`
	Stats         DayStats             `json:"stats"`
}

// AttendanceService covers registration and the attendance query surface.
type AttendanceService interface {
	Register(ctx context.Context, in RegisterAttendanceInput) (*RegistrationResult, error)
	DayBoard(ctx context.Context, date string) ([]PersonDayStatus, error)
	History(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error)
	DayStats(ctx context.Context, date string) (*DayStats, error)
	Recent(ctx context.Context, limit int) (*RecentActivity, error)
}
