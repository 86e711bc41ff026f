package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

type stubMailer struct {
	sent    []string // recipient addresses
	lastTok string
	err     error
}

func (m *stubMailer) SendPasswordReset(_ context.Context, to, token, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.lastTok = token
	return nil
}

const testJWTSecret = "test-secret"

func newTestPersonService(people *stubPersonRepo, encodings *stubEncodingRepo, mailer *stubMailer) *PersonService {
	encSvc := NewEncodingService(encodings, people, 4, 8, zerolog.Nop())
	return NewPersonService(people, encSvc, mailer, testJWTSecret, time.Hour, zerolog.Nop())
}

func TestCreate_HashesPassword(t *testing.T) {
	people := newStubPersonRepo()
	svc := newTestPersonService(people, &stubEncodingRepo{}, &stubMailer{})

	created, err := svc.Create(context.Background(), ports.CreatePersonInput{
		DocumentID: "44556677",
		FullName:   "Maria Quispe",
		Email:      "maria@example.com",
		Password:   "hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("created person must have an ID")
	}
	if created.PasswordHash == "hunter2" || created.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2")) != nil {
		t.Error("stored hash must verify against the original password")
	}
}

func TestCreateWithEncoding_RollsBackOnEncodingFailure(t *testing.T) {
	people := newStubPersonRepo()
	svc := newTestPersonService(people, &stubEncodingRepo{}, &stubMailer{})

	_, err := svc.CreateWithEncoding(context.Background(), ports.CreatePersonWithEncodingInput{
		Person:    ports.CreatePersonInput{DocumentID: "1", FullName: "Maria Quispe"},
		Embedding: []float64{1, 2}, // below the minimum dimension
	})
	if !errors.Is(err, domain.ErrEmbeddingInvalid) {
		t.Fatalf("expected ErrEmbeddingInvalid, got %v", err)
	}
	if len(people.byID) != 0 {
		t.Errorf("half-enrolled person must be rolled back, %d remain", len(people.byID))
	}
}

func TestCreateWithEncoding_Succeeds(t *testing.T) {
	people := newStubPersonRepo()
	encodings := &stubEncodingRepo{}
	svc := newTestPersonService(people, encodings, &stubMailer{})

	result, err := svc.CreateWithEncoding(context.Background(), ports.CreatePersonWithEncodingInput{
		Person:    ports.CreatePersonInput{DocumentID: "1", FullName: "Maria Quispe"},
		Embedding: []float64{1, 0, 0, 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PersonID == "" || result.EncodingID == "" {
		t.Errorf("result must carry both identifiers: %+v", result)
	}
	if len(encodings.encodings) != 1 {
		t.Errorf("expected 1 encoding, got %d", len(encodings.encodings))
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	people := newStubPersonRepo()
	seeded := people.seed("p1", "Maria Quispe")
	seeded.Email = "maria@example.com"
	svc := newTestPersonService(people, &stubEncodingRepo{}, &stubMailer{})

	name := "Maria Quispe Flores"
	updated, err := svc.Update(context.Background(), "p1", ports.UpdatePersonInput{FullName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FullName != name {
		t.Errorf("full name = %q, want %q", updated.FullName, name)
	}
	if updated.Email != "maria@example.com" {
		t.Errorf("nil fields must be left untouched, email = %q", updated.Email)
	}
}

func TestAuthenticate_IssuesVerifiableToken(t *testing.T) {
	people := newStubPersonRepo()
	svc := newTestPersonService(people, &stubEncodingRepo{}, &stubMailer{})

	created, err := svc.Create(context.Background(), ports.CreatePersonInput{
		DocumentID: "1", FullName: "Maria Quispe", Email: "maria@example.com",
		Password: "hunter2", Admin: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	auth, err := svc.Authenticate(context.Background(), "maria@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Person.ID != created.ID {
		t.Errorf("auth person = %q, want %q", auth.Person.ID, created.ID)
	}

	parsed, err := jwt.Parse(auth.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["person_id"] != created.ID {
		t.Errorf("person_id claim = %v, want %q", claims["person_id"], created.ID)
	}
	if claims["admin"] != true {
		t.Errorf("admin claim = %v, want true", claims["admin"])
	}
}

func TestAuthenticate_RejectsBadCredentials(t *testing.T) {
	people := newStubPersonRepo()
	svc := newTestPersonService(people, &stubEncodingRepo{}, &stubMailer{})

	if _, err := svc.Create(context.Background(), ports.CreatePersonInput{
		DocumentID: "1", FullName: "Maria Quispe", Email: "maria@example.com", Password: "hunter2",
	}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name            string
		email, password string
	}{
		{"wrong password", "maria@example.com", "nope"},
		{"unknown email", "ghost@example.com", "hunter2"},
		{"empty password", "maria@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestPasswordReset_FullFlow(t *testing.T) {
	people := newStubPersonRepo()
	mailer := &stubMailer{}
	svc := newTestPersonService(people, &stubEncodingRepo{}, mailer)

	if _, err := svc.Create(context.Background(), ports.CreatePersonInput{
		DocumentID: "1", FullName: "Maria Quispe", Email: "maria@example.com", Password: "hunter2",
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.RequestPasswordReset(context.Background(), "maria@example.com", "https://app.example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "maria@example.com" {
		t.Fatalf("reset mail recipients = %v", mailer.sent)
	}
	if mailer.lastTok == "" {
		t.Fatal("reset mail must carry a token")
	}

	if err := svc.ResetPassword(context.Background(), mailer.lastTok, "correct horse"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "maria@example.com", "hunter2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("old password must no longer authenticate")
	}
	if _, err := svc.Authenticate(context.Background(), "maria@example.com", "correct horse"); err != nil {
		t.Errorf("new password must authenticate: %v", err)
	}

	// A redeemed token cannot be reused.
	if err := svc.ResetPassword(context.Background(), mailer.lastTok, "again"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("reused token must be rejected, got %v", err)
	}
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	mailer := &stubMailer{}
	svc := newTestPersonService(newStubPersonRepo(), &stubEncodingRepo{}, mailer)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com", ""); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("no mail may be sent for unknown emails, sent %v", mailer.sent)
	}
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	people := newStubPersonRepo()
	p := people.seed("p1", "Maria Quispe")
	p.Email = "maria@example.com"
	p.PasswordResetToken = "stale"
	p.PasswordResetExpiresAt = time.Now().UTC().Add(-time.Minute)
	svc := newTestPersonService(people, &stubEncodingRepo{}, &stubMailer{})

	err := svc.ResetPassword(context.Background(), "stale", "new password")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for an expired token, got %v", err)
	}
}
