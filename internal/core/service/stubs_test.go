package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubPersonRepo struct {
	byID    map[string]*domain.Person
	failAll error // if set, every call returns this error
}

func newStubPersonRepo() *stubPersonRepo {
	return &stubPersonRepo{byID: make(map[string]*domain.Person)}
}

func (r *stubPersonRepo) seed(id, name string) *domain.Person {
	p := &domain.Person{ID: id, FullName: name, DocumentID: "D-" + id}
	r.byID[id] = p
	return p
}

func (r *stubPersonRepo) Create(_ context.Context, p *domain.Person) (*domain.Person, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	clone := *p
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("person-%d", len(r.byID)+1)
	}
	r.byID[clone.ID] = &clone
	return &clone, nil
}

func (r *stubPersonRepo) FindByID(_ context.Context, id string) (*domain.Person, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPersonNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPersonRepo) FindByEmail(_ context.Context, email string) (*domain.Person, error) {
	for _, p := range r.byID {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

func (r *stubPersonRepo) FindAll(_ context.Context) ([]*domain.Person, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := make([]*domain.Person, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPersonRepo) Update(_ context.Context, p *domain.Person) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrPersonNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPersonRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPersonNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPersonRepo) SetPasswordReset(_ context.Context, id, token string, expiresAt time.Time) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPersonNotFound
	}
	p.PasswordResetToken = token
	p.PasswordResetExpiresAt = expiresAt
	return nil
}

func (r *stubPersonRepo) FindByResetToken(_ context.Context, token string) (*domain.Person, error) {
	for _, p := range r.byID {
		if p.PasswordResetToken != "" && p.PasswordResetToken == token {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

func (r *stubPersonRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPersonNotFound
	}
	p.PasswordHash = passwordHash
	p.PasswordResetToken = ""
	p.PasswordResetExpiresAt = time.Time{}
	return nil
}

type stubEncodingRepo struct {
	encodings []*domain.FacialEncoding
	findErr   error
}

func (r *stubEncodingRepo) seed(personID string, embedding []float64) {
	r.encodings = append(r.encodings, &domain.FacialEncoding{
		ID:        fmt.Sprintf("enc-%d", len(r.encodings)+1),
		PersonID:  personID,
		Embedding: embedding,
	})
}

func (r *stubEncodingRepo) Create(_ context.Context, e *domain.FacialEncoding) (*domain.FacialEncoding, error) {
	clone := *e
	clone.ID = fmt.Sprintf("enc-%d", len(r.encodings)+1)
	r.encodings = append(r.encodings, &clone)
	return &clone, nil
}

func (r *stubEncodingRepo) FindByID(_ context.Context, id string) (*domain.FacialEncoding, error) {
	for _, e := range r.encodings {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrEncodingNotFound
}

func (r *stubEncodingRepo) FindAll(_ context.Context) ([]*domain.FacialEncoding, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.encodings, nil
}

func (r *stubEncodingRepo) FindByPersonID(_ context.Context, personID string) ([]*domain.FacialEncoding, error) {
	var out []*domain.FacialEncoding
	for _, e := range r.encodings {
		if e.PersonID == personID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEncodingRepo) Delete(_ context.Context, id string) error {
	for i, e := range r.encodings {
		if e.ID == id {
			r.encodings = append(r.encodings[:i], r.encodings[i+1:]...)
			return nil
		}
	}
	return domain.ErrEncodingNotFound
}

type stubAttendanceRepo struct {
	records   []*domain.AttendanceRecord
	insertErr error
	// insertHook runs before each insert; lets a test interleave a
	// competing write between the duplicate read and the insert.
	insertHook func(*domain.AttendanceRecord) error
	findErr    error
}

func (r *stubAttendanceRepo) Insert(_ context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	if r.insertHook != nil {
		if err := r.insertHook(rec); err != nil {
			return nil, err
		}
	}
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	clone := *rec
	r.records = append(r.records, &clone)
	return &clone, nil
}

func (r *stubAttendanceRepo) FindByPersonAndDate(_ context.Context, personID, date string) ([]*domain.AttendanceRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.PersonID == personID && rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) FindByDate(_ context.Context, date string) ([]*domain.AttendanceRecord, error) {
	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) FindByDateRange(_ context.Context, from, to, personID string) ([]*domain.AttendanceRecord, error) {
	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.Date < from || rec.Date > to {
			continue
		}
		if personID != "" && rec.PersonID != personID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *stubAttendanceRepo) FindRecent(_ context.Context, limit int) ([]*domain.AttendanceRecord, error) {
	out := make([]*domain.AttendanceRecord, len(r.records))
	copy(out, r.records)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubAbsenceRepo struct {
	requests []*domain.AbsenceRequest
}

func (r *stubAbsenceRepo) Create(_ context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error) {
	clone := *req
	clone.ID = fmt.Sprintf("abs-%d", len(r.requests)+1)
	r.requests = append(r.requests, &clone)
	return &clone, nil
}

func (r *stubAbsenceRepo) FindAll(_ context.Context) ([]*domain.AbsenceRequest, error) {
	return r.requests, nil
}

func (r *stubAbsenceRepo) FindByPersonID(_ context.Context, personID string) ([]*domain.AbsenceRequest, error) {
	var out []*domain.AbsenceRequest
	for _, req := range r.requests {
		if req.PersonID == personID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *stubAbsenceRepo) FindByID(_ context.Context, id string) (*domain.AbsenceRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubAbsenceRepo) UpdateState(_ context.Context, id string, state domain.RequestState) (*domain.AbsenceRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			req.State = state
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

type stubOvertimeRepo struct {
	requests []*domain.OvertimeRequest
}

func (r *stubOvertimeRepo) Create(_ context.Context, req *domain.OvertimeRequest) (*domain.OvertimeRequest, error) {
	clone := *req
	clone.ID = fmt.Sprintf("ot-%d", len(r.requests)+1)
	r.requests = append(r.requests, &clone)
	return &clone, nil
}

func (r *stubOvertimeRepo) FindAll(_ context.Context) ([]*domain.OvertimeRequest, error) {
	return r.requests, nil
}

func (r *stubOvertimeRepo) FindByPersonID(_ context.Context, personID string) ([]*domain.OvertimeRequest, error) {
	var out []*domain.OvertimeRequest
	for _, req := range r.requests {
		if req.PersonID == personID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *stubOvertimeRepo) FindByID(_ context.Context, id string) (*domain.OvertimeRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubOvertimeRepo) UpdateState(_ context.Context, id string, state domain.RequestState) (*domain.OvertimeRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			req.State = state
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

// stubGuard counts Acquire calls and can simulate a lost race.
type stubGuard struct {
	calls    int
	released int
	reject   bool
	err      error
}

func (g *stubGuard) Acquire(_ context.Context, _, _ string, _ domain.Window) (bool, error) {
	g.calls++
	if g.err != nil {
		return false, g.err
	}
	return !g.reject, nil
}

func (g *stubGuard) Release(_ context.Context, _, _ string, _ domain.Window) error {
	g.released++
	return nil
}
