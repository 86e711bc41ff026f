package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sismt/attendance-system/internal/core/domain"
)

const guardTTL = 24 * time.Hour

// RegistrationGuard claims a (person, date, window) slot in Redis before a
// record is inserted. The SETNX semantics make the claim atomic across
// instances; the unique index on the attendance collection remains the
// final guarantee when Redis is unavailable.
// Key format: attendance:<person_id>:<date>:<window>
type RegistrationGuard struct {
	client *redis.Client
}

// NewRegistrationGuard creates a RegistrationGuard wrapping the given client.
func NewRegistrationGuard(client *redis.Client) *RegistrationGuard {
	return &RegistrationGuard{client: client}
}

// Acquire claims the slot. It returns false when another registration
// already holds it.
func (g *RegistrationGuard) Acquire(ctx context.Context, personID, date string, window domain.Window) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(personID, date, window), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("registration guard: %w", err)
	}
	return ok, nil
}

// Release frees the slot, allowing a retry after a failed insert.
func (g *RegistrationGuard) Release(ctx context.Context, personID, date string, window domain.Window) error {
	return g.client.Del(ctx, g.key(personID, date, window)).Err()
}

func (g *RegistrationGuard) key(personID, date string, window domain.Window) string {
	return fmt.Sprintf("attendance:%s:%s:%s", personID, date, window)
}
