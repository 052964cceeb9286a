package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	// Save persists an order together with its items
	Save(ctx context.Context, order *Order) error

	// FindByID retrieves an order with its items by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// CountByTenant returns the number of orders in a tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
