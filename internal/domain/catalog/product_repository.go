package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// Save persists a product (create or update)
	Save(ctx context.Context, product *Product) error

	// FindByID retrieves a product by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindActiveByCode retrieves an active product in the tenant by its code.
	// Returns shared.ErrNotFound when no active product carries the code.
	FindActiveByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Product, error)
}
