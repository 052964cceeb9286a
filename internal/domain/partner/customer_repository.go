package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	// Save persists a customer (create or update)
	Save(ctx context.Context, customer *Customer) error

	// FindByID retrieves a customer by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindActiveByPhone retrieves the first active customer in the tenant
	// whose primary or secondary phone equals the given canonical phone.
	// Returns shared.ErrNotFound when no such customer exists.
	FindActiveByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*Customer, error)

	// FindActiveByEmail retrieves the first active customer in the tenant
	// with the given email. Returns shared.ErrNotFound when none exists.
	FindActiveByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Customer, error)

	// CountByTenant returns the number of customers in a tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
