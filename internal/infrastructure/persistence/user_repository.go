package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/identity"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save persists a user (create or update)
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a user by ID within a tenant
func (r *GormUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByIDs finds the active users in the tenant whose IDs appear in
// the given set. IDs without an active match are silently dropped.
func (r *GormUserRepository) FindActiveByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*identity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND id IN ?",
			tenantID, identity.UserStatusActive, ids).
		Find(&found).Error; err != nil {
		return nil, err
	}
	users := make([]*identity.User, 0, len(found))
	for i := range found {
		users = append(users, found[i].ToDomain())
	}
	return users, nil
}
