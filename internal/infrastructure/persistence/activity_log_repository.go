package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/audit"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
)

// GormActivityLogRepository implements audit.ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

var _ audit.ActivityLogRepository = (*GormActivityLogRepository)(nil)

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Append stores a new log entry. The log is append-only, entries are never
// updated or deleted.
func (r *GormActivityLogRepository) Append(ctx context.Context, entry *audit.ActivityLog) error {
	model := models.ActivityLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}
