package ports

import (
	"context"
	"time"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// PersonRepository defines persistence operations for staff members.
type PersonRepository interface {
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
	FindByID(ctx context.Context, id string) (*domain.Person, error)
	FindByEmail(ctx context.Context, email string) (*domain.Person, error)
	FindAll(ctx context.Context) ([]*domain.Person, error)
	Update(ctx context.Context, p *domain.Person) error
	Delete(ctx context.Context, id string) error

	// SetPasswordReset stores a one-time recovery token with its expiry.
	SetPasswordReset(ctx context.Context, id, token string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, token string) (*domain.Person, error)
	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// EncodingRepository defines persistence operations for facial encodings.
type EncodingRepository interface {
	Create(ctx context.Context, e *domain.FacialEncoding) (*domain.FacialEncoding, error)
	FindByID(ctx context.Context, id string) (*domain.FacialEncoding, error)
	// FindAll returns every enrolled encoding; the recognition pipeline
	// scans them linearly on each request.
	FindAll(ctx context.Context) ([]*domain.FacialEncoding, error)
	FindByPersonID(ctx context.Context, personID string) ([]*domain.FacialEncoding, error)
	Delete(ctx context.Context, id string) error
}
