package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

// ReportService aggregates attendance, absence, and overtime data into the
// monthly report.
type ReportService struct {
	people   ports.PersonRepository
	records  ports.AttendanceRepository
	absences ports.AbsenceRequestRepository
	overtime ports.OvertimeRequestRepository
	logger   zerolog.Logger
}

func NewReportService(
	people ports.PersonRepository,
	records ports.AttendanceRepository,
	absences ports.AbsenceRequestRepository,
	overtime ports.OvertimeRequestRepository,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{people: people, records: records, absences: absences, overtime: overtime, logger: logger}
}

// Monthly builds one report row per person for the given calendar month.
// Workdays are Monday through Friday; holidays are not modeled. A day
// counts as attended when at least one record exists for it; days covered
// by an approved absence request count as justified; every other workday
// without a record is an unjustified absence.
func (s *ReportService) Monthly(ctx context.Context, year, month int, personID string) ([]ports.MonthlyReportRow, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("monthly report: invalid month %d", month)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var people []*domain.Person
	if personID != "" {
		p, err := s.people.FindByID(ctx, personID)
		if err != nil {
			return nil, err
		}
		people = []*domain.Person{p}
	} else {
		all, err := s.people.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("monthly report: %w", err)
		}
		people = all
	}

	records, err := s.records.FindByDateRange(ctx, first.Format(domain.DateLayout), last.Format(domain.DateLayout), personID)
	if err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}
	recordsByPerson := make(map[string][]*domain.AttendanceRecord)
	for _, r := range records {
		recordsByPerson[r.PersonID] = append(recordsByPerson[r.PersonID], r)
	}

	rows := make([]ports.MonthlyReportRow, 0, len(people))
	for i, p := range people {
		row, err := s.personRow(ctx, p, recordsByPerson[p.ID], first, last)
		if err != nil {
			return nil, err
		}
		row.Index = i + 1
		rows = append(rows, *row)
	}
	return rows, nil
}

func (s *ReportService) personRow(
	ctx context.Context,
	p *domain.Person,
	records []*domain.AttendanceRecord,
	first, last time.Time,
) (*ports.MonthlyReportRow, error) {
	row := &ports.MonthlyReportRow{
		PersonID:   p.ID,
		DocumentID: p.DocumentID,
		FullName:   p.FullName,
	}

	attended := make(map[string]bool)
	for _, r := range records {
		attended[r.Date] = true
		switch r.Status {
		case domain.StatusLate:
			row.Lates++
		case domain.StatusEarlyDeparture:
			row.EarlyDepartures++
		}
	}
	row.AttendedDays = len(attended)

	justified, err := s.justifiedDays(ctx, p.ID, first, last)
	if err != nil {
		return nil, err
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !isWorkday(day) {
			continue
		}
		row.Workdays++
		key := day.Format(domain.DateLayout)
		switch {
		case attended[key]:
			// attended, nothing to count
		case justified[key]:
			row.JustifiedAbsences++
		default:
			row.UnjustifiedAbsences++
		}
	}

	overtime, err := s.overtime.FindByPersonID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("monthly report: overtime: %w", err)
	}
	for _, ot := range overtime {
		if ot.State != domain.RequestApproved {
			continue
		}
		d, err := time.Parse(domain.DateLayout, ot.WorkDate)
		if err != nil {
			continue
		}
		if !d.Before(first) && !d.After(last) {
			row.OvertimeHours += ot.Hours
		}
	}

	return row, nil
}

// justifiedDays returns the set of month workdays covered by an approved
// absence request, keyed by date string.
func (s *ReportService) justifiedDays(ctx context.Context, personID string, first, last time.Time) (map[string]bool, error) {
	requests, err := s.absences.FindByPersonID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("monthly report: absences: %w", err)
	}

	days := make(map[string]bool)
	for _, req := range requests {
		if req.State != domain.RequestApproved {
			continue
		}
		start, err := time.Parse(domain.DateLayout, req.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(domain.DateLayout, req.EndDate)
		if err != nil {
			continue
		}
		if start.Before(first) {
			start = first
		}
		if end.After(last) {
			end = last
		}
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if isWorkday(day) {
				days[day.Format(domain.DateLayout)] = true
			}
		}
	}
	return days, nil
}

func isWorkday(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
