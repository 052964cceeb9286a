package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	// Save persists a user (create or update)
	Save(ctx context.Context, user *User) error

	// FindByID retrieves a user by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindActiveByIDs retrieves the active users in the tenant whose IDs
	// appear in the given set. IDs that match no active user are dropped
	// from the result rather than reported as errors.
	FindActiveByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*User, error)
}
