package models

import (
	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/audit"
)

// ActivityLogModel is the persistence model for the append-only activity log.
type ActivityLogModel struct {
	BaseModel
	TenantID uuid.UUID    `gorm:"type:uuid;not null;index"`
	ActorID  *uuid.UUID   `gorm:"type:uuid;index"`
	Action   audit.Action `gorm:"type:varchar(50);not null;index"`
	Detail   string       `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog entity.
func (m *ActivityLogModel) ToDomain() *audit.ActivityLog {
	return &audit.ActivityLog{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		ActorID:    m.ActorID,
		Action:     m.Action,
		Detail:     m.Detail,
	}
}

// ActivityLogModelFromDomain creates a new persistence model from a domain ActivityLog entity.
func ActivityLogModelFromDomain(entry *audit.ActivityLog) *ActivityLogModel {
	m := &ActivityLogModel{}
	m.FromDomainBaseEntity(entry.BaseEntity)
	m.TenantID = entry.TenantID
	m.ActorID = entry.ActorID
	m.Action = entry.Action
	m.Detail = entry.Detail
	return m
}
