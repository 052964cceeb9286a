package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/branding"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
)

// GormBrandingRepository implements branding.BrandingRepository using GORM
type GormBrandingRepository struct {
	db *gorm.DB
}

var _ branding.BrandingRepository = (*GormBrandingRepository)(nil)

// NewGormBrandingRepository creates a new GormBrandingRepository
func NewGormBrandingRepository(db *gorm.DB) *GormBrandingRepository {
	return &GormBrandingRepository{db: db}
}

// Save persists a branding record (create or update)
func (r *GormBrandingRepository) Save(ctx context.Context, b *branding.Branding) error {
	model := models.BrandingModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindActiveByTenant finds the tenant's active branding record
func (r *GormBrandingRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*branding.Branding, error) {
	var model models.BrandingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
