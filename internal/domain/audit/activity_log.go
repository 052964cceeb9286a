package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// Action identifies the kind of activity being recorded
type Action string

const (
	ActionLeadImport Action = "lead_import"
)

// ActivityLog is an append-only record of a significant tenant-level
// operation. Entries are never updated or deleted.
type ActivityLog struct {
	shared.BaseEntity
	TenantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActorID  *uuid.UUID `gorm:"type:uuid;index"`
	Action   Action     `gorm:"type:varchar(50);not null;index"`
	Detail   string     `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates a new activity log entry
func NewActivityLog(tenantID uuid.UUID, actorID *uuid.UUID, action Action, detail string) (*ActivityLog, error) {
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Action cannot be empty")
	}
	return &ActivityLog{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ActorID:    actorID,
		Action:     action,
		Detail:     detail,
	}, nil
}

// ActivityLogRepository defines the persistence interface for activity logs
type ActivityLogRepository interface {
	// Append stores a new log entry
	Append(ctx context.Context, entry *ActivityLog) error
}
