package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// March 2026 has 22 workdays (the 1st is a Sunday).
const march2026Workdays = 22

func seedRecord(records *stubAttendanceRepo, personID, date string, hour, minute int, window domain.Window, status domain.Status) {
	day, _ := time.Parse(domain.DateLayout, date)
	records.records = append(records.records, &domain.AttendanceRecord{
		ID:        date + "-" + string(window) + "-" + personID,
		PersonID:  personID,
		Date:      date,
		Timestamp: time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, businessTZ),
		Window:    window,
		Status:    status,
	})
}

func TestMonthly_AggregatesOnePerson(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")
	records := &stubAttendanceRepo{}
	absences := &stubAbsenceRepo{}
	overtime := &stubOvertimeRepo{}
	svc := NewReportService(people, records, absences, overtime, zerolog.Nop())

	// Three attended days: one clean, one late, one with an early departure.
	seedRecord(records, "p1", "2026-03-02", 8, 10, domain.WindowMorningEntry, domain.StatusOnTime)
	seedRecord(records, "p1", "2026-03-03", 8, 20, domain.WindowMorningEntry, domain.StatusLate)
	seedRecord(records, "p1", "2026-03-04", 8, 5, domain.WindowMorningEntry, domain.StatusOnTime)
	seedRecord(records, "p1", "2026-03-04", 17, 45, domain.WindowAfternoonExit, domain.StatusEarlyDeparture)

	// Approved absence covering Thu 05 and Fri 06 (plus the weekend, which
	// must not count).
	absences.requests = append(absences.requests, &domain.AbsenceRequest{
		ID: "abs-1", PersonID: "p1", StartDate: "2026-03-05", EndDate: "2026-03-08",
		State: domain.RequestApproved,
	})
	// A denied request must contribute nothing.
	absences.requests = append(absences.requests, &domain.AbsenceRequest{
		ID: "abs-2", PersonID: "p1", StartDate: "2026-03-09", EndDate: "2026-03-09",
		State: domain.RequestDenied,
	})

	overtime.requests = append(overtime.requests,
		&domain.OvertimeRequest{ID: "ot-1", PersonID: "p1", WorkDate: "2026-03-14", Hours: 3, State: domain.RequestApproved},
		&domain.OvertimeRequest{ID: "ot-2", PersonID: "p1", WorkDate: "2026-03-20", Hours: 2, State: domain.RequestPending},
		&domain.OvertimeRequest{ID: "ot-3", PersonID: "p1", WorkDate: "2026-04-01", Hours: 4, State: domain.RequestApproved},
	)

	rows, err := svc.Monthly(context.Background(), 2026, 3, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]

	if row.Workdays != march2026Workdays {
		t.Errorf("workdays = %d, want %d", row.Workdays, march2026Workdays)
	}
	if row.AttendedDays != 3 {
		t.Errorf("attended days = %d, want 3", row.AttendedDays)
	}
	if row.Lates != 1 {
		t.Errorf("lates = %d, want 1", row.Lates)
	}
	if row.EarlyDepartures != 1 {
		t.Errorf("early departures = %d, want 1", row.EarlyDepartures)
	}
	if row.JustifiedAbsences != 2 {
		t.Errorf("justified absences = %d, want 2 (weekend excluded)", row.JustifiedAbsences)
	}
	wantUnjustified := march2026Workdays - 3 - 2
	if row.UnjustifiedAbsences != wantUnjustified {
		t.Errorf("unjustified absences = %d, want %d", row.UnjustifiedAbsences, wantUnjustified)
	}
	// Only the approved in-month request counts.
	if row.OvertimeHours != 3 {
		t.Errorf("overtime hours = %d, want 3", int(row.OvertimeHours))
	}
}

func TestMonthly_AbsenceRangeClippedToMonth(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")
	records := &stubAttendanceRepo{}
	absences := &stubAbsenceRepo{}
	svc := NewReportService(people, records, absences, &stubOvertimeRepo{}, zerolog.Nop())

	// Request spans February into March; only March days may count.
	absences.requests = append(absences.requests, &domain.AbsenceRequest{
		ID: "abs-1", PersonID: "p1", StartDate: "2026-02-23", EndDate: "2026-03-03",
		State: domain.RequestApproved,
	})

	rows, err := svc.Monthly(context.Background(), 2026, 3, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Mar 02 and Mar 03 are the only March workdays in the range (the 1st
	// is a Sunday).
	if rows[0].JustifiedAbsences != 2 {
		t.Errorf("justified absences = %d, want 2", rows[0].JustifiedAbsences)
	}
}

func TestMonthly_AllPersonnelOrdered(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")
	people.seed("p2", "Jorge Palacios")
	svc := NewReportService(people, &stubAttendanceRepo{}, &stubAbsenceRepo{}, &stubOvertimeRepo{}, zerolog.Nop())

	rows, err := svc.Monthly(context.Background(), 2026, 3, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Index != i+1 {
			t.Errorf("row %d index = %d, want %d", i, row.Index, i+1)
		}
	}
}

func TestMonthly_InvalidMonth(t *testing.T) {
	svc := NewReportService(newStubPersonRepo(), &stubAttendanceRepo{}, &stubAbsenceRepo{}, &stubOvertimeRepo{}, zerolog.Nop())

	for _, m := range []int{0, 13} {
		if _, err := svc.Monthly(context.Background(), 2026, m, ""); err == nil {
			t.Errorf("month %d must be rejected", m)
		}
	}
}
