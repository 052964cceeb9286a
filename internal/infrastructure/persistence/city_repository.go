package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
)

// GormCityRepository implements geo.CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

var _ geo.CityRepository = (*GormCityRepository)(nil)

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// Save persists a city (create or update)
func (r *GormCityRepository) Save(ctx context.Context, city *geo.City) error {
	model := models.CityModelFromDomain(city)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindActiveByName finds an active city by exact name. The match is
// case-sensitive, callers are expected to pass already trimmed input.
func (r *GormCityRepository) FindActiveByName(ctx context.Context, name string) (*geo.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
