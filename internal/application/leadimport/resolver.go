package leadimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/branding"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// ReferenceResolver looks up the read-only reference data each row needs:
// the product behind the row's code, the city behind its name, and the
// tenant's delivery fee. It never writes.
type ReferenceResolver struct {
	products  catalog.ProductRepository
	cities    geo.CityRepository
	brandings branding.BrandingRepository
	logger    *zap.Logger
}

// NewReferenceResolver creates a resolver over the given repositories
func NewReferenceResolver(
	products catalog.ProductRepository,
	cities geo.CityRepository,
	brandings branding.BrandingRepository,
	logger *zap.Logger,
) *ReferenceResolver {
	return &ReferenceResolver{
		products:  products,
		cities:    cities,
		brandings: brandings,
		logger:    logger,
	}
}

// ResolveProduct finds the tenant's active product by code. An unknown or
// inactive code is a row-level error.
func (r *ReferenceResolver) ResolveProduct(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Product, error) {
	product, err := r.products.FindActiveByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("no active product with code %q", code)
		}
		return nil, err
	}
	return product, nil
}

// ResolveCity finds an active city by exact, case-sensitive name. Zone and
// district links on the returned city may be nil and stay nil downstream.
func (r *ReferenceResolver) ResolveCity(ctx context.Context, name string) (*geo.City, error) {
	city, err := r.cities.FindActiveByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("unknown or inactive city %q", name)
		}
		return nil, err
	}
	return city, nil
}

// DeliveryFee reads the tenant's delivery fee from its active branding
// record, once per batch. A tenant without one gets a zero fee and a logged
// warning; the batch proceeds.
func (r *ReferenceResolver) DeliveryFee(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	b, err := r.brandings.FindActiveByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("no active branding record for tenant, using zero delivery fee",
				zap.String("tenant_id", tenantID.String()))
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return b.DeliveryFee, nil
}
