package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

type stubAttendanceService struct {
	registerFn func(ctx context.Context, in ports.RegisterAttendanceInput) (*ports.RegistrationResult, error)
	boardFn    func(ctx context.Context, date string) ([]ports.PersonDayStatus, error)
	statsFn    func(ctx context.Context, date string) (*ports.DayStats, error)
}

func (s *stubAttendanceService) Register(ctx context.Context, in ports.RegisterAttendanceInput) (*ports.RegistrationResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAttendanceService) DayBoard(ctx context.Context, date string) ([]ports.PersonDayStatus, error) {
	return s.boardFn(ctx, date)
}

func (s *stubAttendanceService) History(context.Context, ports.HistoryFilter) ([]ports.HistoryEntry, error) {
	return nil, nil
}

func (s *stubAttendanceService) DayStats(ctx context.Context, date string) (*ports.DayStats, error) {
	return s.statsFn(ctx, date)
}

func (s *stubAttendanceService) Recent(context.Context, int) (*ports.RecentActivity, error) {
	return nil, nil
}

type stubNotifier struct {
	published []*ports.RegistrationResult
}

func (n *stubNotifier) Publish(event *ports.RegistrationResult) {
	n.published = append(n.published, event)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAttendanceHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAttendanceService{
		registerFn: func(_ context.Context, in ports.RegisterAttendanceInput) (*ports.RegistrationResult, error) {
			if in.PersonID != "p1" || !in.IdentityConfirmed {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.RegistrationResult{
				Outcome:   ports.OutcomeRegistered,
				PersonID:  "p1",
				Window:    domain.WindowMorningEntry,
				Status:    domain.StatusOnTime,
				Timestamp: time.Now(),
			}, nil
		},
	}
	notifier := &stubNotifier{}
	h := NewAttendanceHandler(stub, notifier)

	body := strings.NewReader(`{"person_id":"p1","is_identity_confirmed":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/attendance", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(notifier.published) != 1 {
		t.Fatalf("a new registration must be published, got %d", len(notifier.published))
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["outcome"] != "registered" || resp["status"] != "on_time" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAttendanceHandler_Register_DuplicateIs200(t *testing.T) {
	e := newTestEcho()
	stub := &stubAttendanceService{
		registerFn: func(context.Context, ports.RegisterAttendanceInput) (*ports.RegistrationResult, error) {
			return &ports.RegistrationResult{
				Outcome: ports.OutcomeDuplicate,
				Window:  domain.WindowMorningEntry,
				Status:  domain.StatusOnTime,
			}, nil
		},
	}
	notifier := &stubNotifier{}
	h := NewAttendanceHandler(stub, notifier)

	body := strings.NewReader(`{"person_id":"p1","is_identity_confirmed":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/attendance", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a duplicate, got %d", rec.Code)
	}
	if len(notifier.published) != 0 {
		t.Fatalf("duplicates must not be published, got %d", len(notifier.published))
	}
}

func TestAttendanceHandler_Register_MissingPersonID(t *testing.T) {
	e := newTestEcho()
	h := NewAttendanceHandler(&stubAttendanceService{}, &stubNotifier{})

	body := strings.NewReader(`{"is_identity_confirmed":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/attendance", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAttendanceHandler_History_RejectsBadDates(t *testing.T) {
	e := newTestEcho()
	h := NewAttendanceHandler(&stubAttendanceService{}, &stubNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/v1/attendance/history?from=garbage&to=2026-03-31", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.History(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAttendanceHandler_Stats(t *testing.T) {
	e := newTestEcho()
	stub := &stubAttendanceService{
		statsFn: func(_ context.Context, date string) (*ports.DayStats, error) {
			if date != "2026-03-02" {
				t.Fatalf("date = %q", date)
			}
			return &ports.DayStats{TotalPersonnel: 3, Present: 2, Absent: 1, Late: 1}, nil
		},
	}
	h := NewAttendanceHandler(stub, &stubNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/v1/attendance/stats?date=2026-03-02", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
