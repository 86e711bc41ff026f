package ports

import (
	"context"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// CreatePersonInput carries the fields for enrolling a staff member.
type CreatePersonInput struct {
	DocumentID string
	FullName   string
	Email      string
	Password   string
	Admin      bool
}

// UpdatePersonInput carries a partial update; nil fields are left untouched.
type UpdatePersonInput struct {
	DocumentID *string
	FullName   *string
	Email      *string
	Password   *string
	Admin      *bool
}

// CreatePersonWithEncodingInput enrolls a person and their first facial
// encoding in one operation.
type CreatePersonWithEncodingInput struct {
	Person    CreatePersonInput
	Embedding []float64
}

// CreatePersonWithEncodingResult reports both created identifiers.
type CreatePersonWithEncodingResult struct {
	PersonID   string `json:"person_id"`
	EncodingID string `json:"encoding_id"`
}

// AuthResult is returned on successful login.
type AuthResult struct {
	Token  string         `json:"token"`
	Person *domain.Person `json:"person"`
}

// PersonService covers personnel management and account operations.
type PersonService interface {
	Create(ctx context.Context, in CreatePersonInput) (*domain.Person, error)
	CreateWithEncoding(ctx context.Context, in CreatePersonWithEncodingInput) (*CreatePersonWithEncodingResult, error)
	List(ctx context.Context) ([]*domain.Person, error)
	Get(ctx context.Context, id string) (*domain.Person, error)
	Update(ctx context.Context, id string, in UpdatePersonInput) (*domain.Person, error)
	Delete(ctx context.Context, id string) error

	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	// RequestPasswordReset issues a recovery token and mails it. Returns
	// without error for unknown emails to avoid account enumeration.
	RequestPasswordReset(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// EncodingService covers facial-encoding management.
type EncodingService interface {
	Create(ctx context.Context, personID string, embedding []float64) (*domain.FacialEncoding, error)
	List(ctx context.Context) ([]*domain.FacialEncoding, error)
	Get(ctx context.Context, id string) (*domain.FacialEncoding, error)
	ListByPerson(ctx context.Context, personID string) ([]*domain.FacialEncoding, error)
	Delete(ctx context.Context, id string) error
}
