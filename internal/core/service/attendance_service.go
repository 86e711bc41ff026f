package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
	"github.com/sismt/attendance-system/internal/core/schedule"
)

// RegistrationGuard is a best-effort distributed lock on a
// (person, date, window) slot, backed by Redis. It narrows the race
// between the duplicate read and the insert when two devices register the
// same person simultaneously; the storage-level unique index is the final
// guarantee. May be nil, in which case the guard step is skipped.
type RegistrationGuard interface {
	Acquire(ctx context.Context, personID, date string, window domain.Window) (bool, error)
	// Release frees a claimed slot so a retry can succeed after a failed
	// insert.
	Release(ctx context.Context, personID, date string, window domain.Window) error
}

// AttendanceService implements registration and the attendance queries.
type AttendanceService struct {
	people   ports.PersonRepository
	records  ports.AttendanceRepository
	schedule *schedule.Config
	guard    RegistrationGuard
	loc      *time.Location
	logger   zerolog.Logger
}

func NewAttendanceService(
	people ports.PersonRepository,
	records ports.AttendanceRepository,
	sched *schedule.Config,
	guard RegistrationGuard,
	loc *time.Location,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		people:   people,
		records:  records,
		schedule: sched,
		guard:    guard,
		loc:      loc,
		logger:   logger,
	}
}

// Register performs one attendance registration: resolve the person,
// classify the moment into a window, evaluate the status, and persist —
// unless a record for the same (person, date, window) already exists, in
// which case the prior registration is returned and nothing is written.
func (s *AttendanceService) Register(ctx context.Context, in ports.RegisterAttendanceInput) (*ports.RegistrationResult, error) {
	if !in.IdentityConfirmed {
		return nil, domain.ErrIdentityNotConfirmed
	}

	person, err := s.people.FindByID(ctx, in.PersonID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().In(s.loc)
	if in.Timestamp != nil {
		now = in.Timestamp.In(s.loc)
	}
	date := now.Format(domain.DateLayout)
	tod := schedule.FromTime(now)

	window := in.Window
	if !window.Valid() {
		window = s.schedule.Classify(tod)
	}
	if window == domain.WindowNone {
		return nil, domain.ErrNoActiveWindow
	}
	status := s.schedule.EvaluateStatus(window, tod)

	existing, err := s.records.FindByPersonAndDate(ctx, person.ID, date)
	if err != nil {
		return nil, fmt.Errorf("register: read day records: %w", err)
	}
	for _, r := range existing {
		if r.Window == window {
			return s.duplicateResult(person, r), nil
		}
	}

	if s.guard != nil {
		acquired, guardErr := s.guard.Acquire(ctx, person.ID, date, window)
		if guardErr != nil {
			// The guard is an optimization; registration proceeds on the
			// repository check alone when Redis is unreachable.
			s.logger.Warn().Err(guardErr).Str("person_id", person.ID).Msg("registration guard unavailable")
		} else if !acquired {
			s.logger.Info().Str("person_id", person.ID).Str("window", string(window)).Msg("registration guard rejected concurrent attempt")
			if prior := s.reloadSameWindow(ctx, person.ID, date, window); prior != nil {
				return s.duplicateResult(person, prior), nil
			}
			return s.duplicateResult(person, &domain.AttendanceRecord{
				Window: window, Status: status, Timestamp: now,
			}), nil
		}
	}

	record := &domain.AttendanceRecord{
		ID:        uuid.NewString(),
		PersonID:  person.ID,
		Date:      date,
		Timestamp: now,
		Window:    window,
		Status:    status,
		Reason:    in.Reason,
	}

	if _, err := s.records.Insert(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateRegistration) {
			// Lost the insert race to a concurrent registration: the
			// unique index kept exactly one record, so answer as a
			// duplicate rather than a failure.
			s.logger.Info().Str("person_id", person.ID).Str("window", string(window)).Msg("concurrent registration won the insert race")
			if prior := s.reloadSameWindow(ctx, person.ID, date, window); prior != nil {
				return s.duplicateResult(person, prior), nil
			}
			return s.duplicateResult(person, record), nil
		}
		if s.guard != nil {
			if relErr := s.guard.Release(ctx, person.ID, date, window); relErr != nil {
				s.logger.Warn().Err(relErr).Str("person_id", person.ID).Msg("registration guard release failed")
			}
		}
		return nil, fmt.Errorf("register: insert: %w", err)
	}

	s.logger.Info().
		Str("person_id", person.ID).
		Str("window", string(window)).
		Str("status", string(status)).
		Str("date", date).
		Msg("attendance registered")

	message, detail := registrationMessage(window, status, now)
	return &ports.RegistrationResult{
		Outcome:     ports.OutcomeRegistered,
		PersonID:    person.ID,
		PersonName:  person.FullName,
		Window:      window,
		WindowLabel: window.Label(),
		Status:      status,
		Timestamp:   now,
		Message:     message,
		Detail:      detail,
	}, nil
}

func (s *AttendanceService) duplicateResult(person *domain.Person, prior *domain.AttendanceRecord) *ports.RegistrationResult {
	at := prior.Timestamp.In(s.loc)
	return &ports.RegistrationResult{
		Outcome:     ports.OutcomeDuplicate,
		PersonID:    person.ID,
		PersonName:  person.FullName,
		Window:      prior.Window,
		WindowLabel: prior.Window.Label(),
		Status:      prior.Status,
		Timestamp:   at,
		Message:     fmt.Sprintf("Already registered — %s", prior.Window.Label()),
		Detail:      fmt.Sprintf("Marked at %s", at.Format("15:04")),
	}
}

func (s *AttendanceService) reloadSameWindow(ctx context.Context, personID, date string, window domain.Window) *domain.AttendanceRecord {
	records, err := s.records.FindByPersonAndDate(ctx, personID, date)
	if err != nil {
		return nil
	}
	for _, r := range records {
		if r.Window == window {
			return r
		}
	}
	return nil
}

func registrationMessage(window domain.Window, status domain.Status, at time.Time) (message, detail string) {
	clock := at.Format("15:04")
	switch status {
	case domain.StatusOnTime:
		return fmt.Sprintf("Registered — %s", window.Label()), fmt.Sprintf("On time (%s)", clock)
	case domain.StatusLate:
		return fmt.Sprintf("Registered late — %s", window.Label()), fmt.Sprintf("Late (%s)", clock)
	case domain.StatusEarlyDeparture:
		return fmt.Sprintf("Registered — %s", window.Label()), fmt.Sprintf("Early departure (%s)", clock)
	case domain.StatusOmission:
		return fmt.Sprintf("Registered after cutoff — %s", window.Label()), fmt.Sprintf("Past the late limit (%s)", clock)
	default:
		return fmt.Sprintf("Registered — %s", window.Label()), fmt.Sprintf("At %s", clock)
	}
}

// DayBoard lists every staff member with their presence, last mark, and
// approximate worked hours for one date (today when date is empty).
func (s *AttendanceService) DayBoard(ctx context.Context, date string) ([]ports.PersonDayStatus, error) {
	if date == "" {
		date = time.Now().In(s.loc).Format(domain.DateLayout)
	}

	people, err := s.people.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("day board: %w", err)
	}
	records, err := s.records.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("day board: %w", err)
	}

	byPerson := make(map[string][]*domain.AttendanceRecord)
	for _, r := range records {
		byPerson[r.PersonID] = append(byPerson[r.PersonID], r)
	}

	board := make([]ports.PersonDayStatus, 0, len(people))
	for _, p := range people {
		regs := byPerson[p.ID]
		sort.Slice(regs, func(i, j int) bool { return regs[i].Timestamp.Before(regs[j].Timestamp) })

		entry := ports.PersonDayStatus{
			PersonID:    p.ID,
			DocumentID:  p.DocumentID,
			FullName:    p.FullName,
			Present:     len(regs) > 0,
			WorkedHours: workedHours(regs),
			Records:     regs,
		}
		if len(regs) > 0 {
			last := regs[len(regs)-1].Timestamp.In(s.loc)
			entry.LastMark = &last
		}
		board = append(board, entry)
	}
	return board, nil
}

// workedHours sums the morning and afternoon entry/exit spans. Unpaired
// marks contribute nothing.
func workedHours(regs []*domain.AttendanceRecord) float64 {
	find := func(w domain.Window) *domain.AttendanceRecord {
		for _, r := range regs {
			if r.Window == w {
				return r
			}
		}
		return nil
	}
	span := func(in, out *domain.AttendanceRecord) float64 {
		if in == nil || out == nil {
			return 0
		}
		h := out.Timestamp.Sub(in.Timestamp).Hours()
		if h < 0 {
			return 0
		}
		return h
	}

	total := span(find(domain.WindowMorningEntry), find(domain.WindowMorningExit)) +
		span(find(domain.WindowAfternoonEntry), find(domain.WindowAfternoonExit))
	return float64(int(total*100+0.5)) / 100
}

// History returns attendance records in a date range joined with person fields.
func (s *AttendanceService) History(ctx context.Context, filter ports.HistoryFilter) ([]ports.HistoryEntry, error) {
	records, err := s.records.FindByDateRange(ctx, filter.From, filter.To, filter.PersonID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	people, err := s.people.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	byID := make(map[string]*domain.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	entries := make([]ports.HistoryEntry, 0, len(records))
	for _, r := range records {
		e := ports.HistoryEntry{
			ID:        r.ID,
			PersonID:  r.PersonID,
			Date:      r.Date,
			Timestamp: r.Timestamp.In(s.loc),
			Window:    r.Window,
			Status:    r.Status,
			Reason:    r.Reason,
		}
		if p, ok := byID[r.PersonID]; ok {
			e.PersonName = p.FullName
			e.DocumentID = p.DocumentID
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// DayStats aggregates presence counters for one date.
func (s *AttendanceService) DayStats(ctx context.Context, date string) (*ports.DayStats, error) {
	board, err := s.DayBoard(ctx, date)
	if err != nil {
		return nil, err
	}

	stats := &ports.DayStats{TotalPersonnel: len(board)}
	for _, row := range board {
		if row.Present {
			stats.Present++
		}
		for _, r := range row.Records {
			if r.Status == domain.StatusLate {
				stats.Late++
				break
			}
		}
	}
	stats.Absent = stats.TotalPersonnel - stats.Present
	return stats, nil
}

// Recent returns the latest registrations and today's counters for the
// live dashboard panel.
func (s *AttendanceService) Recent(ctx context.Context, limit int) (*ports.RecentActivity, error) {
	if limit <= 0 {
		limit = 5
	}

	records, err := s.records.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	people, err := s.people.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.FullName
	}

	today := time.Now().In(s.loc).Format(domain.DateLayout)
	stats, err := s.DayStats(ctx, today)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.RecentRegistration, 0, len(records))
	for _, r := range records {
		local := r.Timestamp.In(s.loc)
		rows = append(rows, ports.RecentRegistration{
			ID:         r.ID,
			PersonName: names[r.PersonID],
			Window:     r.Window,
			Status:     r.Status,
			Time:       local.Format("15:04:05"),
			Date:       local.Format("02/01"),
		})
	}

	return &ports.RecentActivity{Registrations: rows, Stats: *stats}, nil
}
