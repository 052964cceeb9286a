package branding

import (
	"context"

	"github.com/google/uuid"
)

// BrandingRepository defines the persistence interface for branding records
type BrandingRepository interface {
	// Save persists a branding record (create or update)
	Save(ctx context.Context, b *Branding) error

	// FindActiveByTenant retrieves the tenant's active branding record.
	// Returns shared.ErrNotFound when the tenant has none.
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*Branding, error)
}
