package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

func newTestRequestService(people *stubPersonRepo, absences *stubAbsenceRepo, overtime *stubOvertimeRepo) *RequestService {
	return NewRequestService(absences, overtime, people, zerolog.Nop())
}

func TestCreateAbsence_StartsPending(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")
	svc := newTestRequestService(people, &stubAbsenceRepo{}, &stubOvertimeRepo{})

	created, err := svc.CreateAbsence(context.Background(), ports.CreateAbsenceRequestInput{
		PersonID:  "p1",
		Kind:      "medical",
		StartDate: "2026-03-10",
		EndDate:   "2026-03-11",
		Reason:    "appointment",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.State != domain.RequestPending {
		t.Errorf("state = %q, want pending", created.State)
	}
	if created.ID == "" {
		t.Error("created request must have an ID")
	}
	if created.RequestedAt.IsZero() {
		t.Error("requested_at must be set")
	}
}

func TestCreateAbsence_UnknownPerson(t *testing.T) {
	svc := newTestRequestService(newStubPersonRepo(), &stubAbsenceRepo{}, &stubOvertimeRepo{})

	_, err := svc.CreateAbsence(context.Background(), ports.CreateAbsenceRequestInput{
		PersonID: "ghost", StartDate: "2026-03-10", EndDate: "2026-03-10",
	})
	if !errors.Is(err, domain.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestResolveAbsence_Transitions(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")

	cases := []struct {
		name    string
		resolve domain.RequestState
		wantErr bool
	}{
		{"approve pending", domain.RequestApproved, false},
		{"deny pending", domain.RequestDenied, false},
		{"cancel pending", domain.RequestCancelled, false},
		{"unknown state", domain.RequestState("maybe"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			absences := &stubAbsenceRepo{}
			svc := newTestRequestService(people, absences, &stubOvertimeRepo{})
			created, err := svc.CreateAbsence(context.Background(), ports.CreateAbsenceRequestInput{
				PersonID: "p1", StartDate: "2026-03-10", EndDate: "2026-03-10",
			})
			if err != nil {
				t.Fatal(err)
			}

			resolved, err := svc.ResolveAbsence(context.Background(), created.ID, tc.resolve)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidRequestState) {
					t.Fatalf("expected ErrInvalidRequestState, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resolved.State != tc.resolve {
				t.Errorf("state = %q, want %q", resolved.State, tc.resolve)
			}
		})
	}
}

func TestResolveAbsence_ResolvedIsFinal(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")
	svc := newTestRequestService(people, &stubAbsenceRepo{}, &stubOvertimeRepo{})

	created, err := svc.CreateAbsence(context.Background(), ports.CreateAbsenceRequestInput{
		PersonID: "p1", StartDate: "2026-03-10", EndDate: "2026-03-10",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ResolveAbsence(context.Background(), created.ID, domain.RequestApproved); err != nil {
		t.Fatal(err)
	}

	_, err = svc.ResolveAbsence(context.Background(), created.ID, domain.RequestDenied)
	if !errors.Is(err, domain.ErrInvalidRequestState) {
		t.Fatalf("approved -> denied must be rejected, got %v", err)
	}
}

func TestResolveAbsence_NotFound(t *testing.T) {
	svc := newTestRequestService(newStubPersonRepo(), &stubAbsenceRepo{}, &stubOvertimeRepo{})

	_, err := svc.ResolveAbsence(context.Background(), "missing", domain.RequestApproved)
	if !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestListAbsences_FilterByPerson(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")
	people.seed("p2", "Jorge Palacios")
	svc := newTestRequestService(people, &stubAbsenceRepo{}, &stubOvertimeRepo{})

	for _, id := range []string{"p1", "p1", "p2"} {
		if _, err := svc.CreateAbsence(context.Background(), ports.CreateAbsenceRequestInput{
			PersonID: id, StartDate: "2026-03-10", EndDate: "2026-03-10",
		}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := svc.ListAbsences(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}

	mine, err := svc.ListAbsences(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Errorf("p1 requests = %d, want 2", len(mine))
	}
}

func TestOvertime_CreateAndResolve(t *testing.T) {
	people := newStubPersonRepo()
	people.seed("p1", "Maria Quispe")
	svc := newTestRequestService(people, &stubAbsenceRepo{}, &stubOvertimeRepo{})

	created, err := svc.CreateOvertime(context.Background(), ports.CreateOvertimeRequestInput{
		PersonID: "p1",
		WorkDate: "2026-03-14",
		Hours:    3.5,
		Reason:   "inventory close",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.State != domain.RequestPending || created.Hours != 3.5 {
		t.Errorf("created = %+v", created)
	}

	resolved, err := svc.ResolveOvertime(context.Background(), created.ID, domain.RequestApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.State != domain.RequestApproved {
		t.Errorf("state = %q, want approved", resolved.State)
	}

	if _, err := svc.ResolveOvertime(context.Background(), created.ID, domain.RequestCancelled); !errors.Is(err, domain.ErrInvalidRequestState) {
		t.Errorf("approved -> cancelled must be rejected, got %v", err)
	}
}
