package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sismt/attendance-system/internal/core/domain"
	"github.com/sismt/attendance-system/internal/core/ports"
)

const resetTokenTTL = time.Hour

// Mailer delivers account emails. Implementations must not block the
// request path longer than their own dial timeouts.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token, baseURL string) error
}

// PersonService implements personnel management and account operations.
type PersonService struct {
	people    ports.PersonRepository
	encodings ports.EncodingService
	mailer    Mailer
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewPersonService(
	people ports.PersonRepository,
	encodings ports.EncodingService,
	mailer Mailer,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *PersonService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &PersonService{
		people:    people,
		encodings: encodings,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *PersonService) Create(ctx context.Context, in ports.CreatePersonInput) (*domain.Person, error) {
	now := time.Now().UTC()
	person := &domain.Person{
		DocumentID: in.DocumentID,
		FullName:   in.FullName,
		Email:      in.Email,
		Admin:      in.Admin,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("create person: %w", err)
		}
		person.PasswordHash = string(hash)
	}

	created, err := s.people.Create(ctx, person)
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	s.logger.Info().Str("person_id", created.ID).Str("document_id", created.DocumentID).Msg("person created")
	return created, nil
}

// CreateWithEncoding enrolls a person together with their first facial
// encoding. When the encoding write fails the person is removed again so
// the operation does not leave a half-enrolled account behind.
func (s *PersonService) CreateWithEncoding(ctx context.Context, in ports.CreatePersonWithEncodingInput) (*ports.CreatePersonWithEncodingResult, error) {
	person, err := s.Create(ctx, in.Person)
	if err != nil {
		return nil, err
	}

	encoding, err := s.encodings.Create(ctx, person.ID, in.Embedding)
	if err != nil {
		if delErr := s.people.Delete(ctx, person.ID); delErr != nil {
			s.logger.Warn().Err(delErr).Str("person_id", person.ID).Msg("rollback of half-enrolled person failed")
		}
		return nil, err
	}

	return &ports.CreatePersonWithEncodingResult{PersonID: person.ID, EncodingID: encoding.ID}, nil
}

func (s *PersonService) List(ctx context.Context) ([]*domain.Person, error) {
	return s.people.FindAll(ctx)
}

func (s *PersonService) Get(ctx context.Context, id string) (*domain.Person, error) {
	return s.people.FindByID(ctx, id)
}

func (s *PersonService) Update(ctx context.Context, id string, in ports.UpdatePersonInput) (*domain.Person, error) {
	person, err := s.people.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.DocumentID != nil {
		person.DocumentID = *in.DocumentID
	}
	if in.FullName != nil {
		person.FullName = *in.FullName
	}
	if in.Email != nil {
		person.Email = *in.Email
	}
	if in.Admin != nil {
		person.Admin = *in.Admin
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update person: %w", err)
		}
		person.PasswordHash = string(hash)
	}
	person.UpdatedAt = time.Now().UTC()

	if err := s.people.Update(ctx, person); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	return person, nil
}

func (s *PersonService) Delete(ctx context.Context, id string) error {
	return s.people.Delete(ctx, id)
}

// Authenticate verifies credentials and issues a signed token.
func (s *PersonService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	person, err := s.people.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if person.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(person)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, Person: person}, nil
}

func (s *PersonService) generateToken(person *domain.Person) (string, error) {
	claims := jwt.MapClaims{
		"person_id": person.ID,
		"admin":     person.Admin,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// RequestPasswordReset issues a recovery token and mails it. Unknown
// emails return nil so callers cannot probe which addresses exist.
func (s *PersonService) RequestPasswordReset(ctx context.Context, email, baseURL string) error {
	person, err := s.people.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return nil
		}
		return err
	}

	token, err := randomToken()
	if err != nil {
		return fmt.Errorf("password reset: %w", err)
	}
	expires := time.Now().UTC().Add(resetTokenTTL)

	if err := s.people.SetPasswordReset(ctx, person.ID, token, expires); err != nil {
		return fmt.Errorf("password reset: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, person.Email, token, baseURL); err != nil {
		s.logger.Error().Err(err).Str("person_id", person.ID).Msg("password reset email failed")
		return fmt.Errorf("password reset: send mail: %w", err)
	}
	return nil
}

// ResetPassword redeems a recovery token and stores the new password hash.
func (s *PersonService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	person, err := s.people.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	if person.PasswordResetExpiresAt.IsZero() || person.PasswordResetExpiresAt.Before(time.Now().UTC()) {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if err := s.people.UpdatePassword(ctx, person.ID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.logger.Info().Str("person_id", person.ID).Msg("password reset completed")
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
