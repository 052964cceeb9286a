package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// UserRole represents the role assigned to a user within a tenant
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
)

// User is a tenant-scoped portal account. Operators are the users that
// imported orders get assigned to; the full identity lifecycle (signup,
// password handling, sessions) lives in a separate service and is out of
// scope here beyond what order assignment needs.
type User struct {
	shared.TenantAggregateRoot
	Name   string     `gorm:"type:varchar(200);not null"`
	Email  string     `gorm:"type:varchar(200);not null;index"`
	Role   UserRole   `gorm:"type:varchar(20);not null"`
	Status UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with the given role
func NewUser(tenantID uuid.UUID, name, email string, role UserRole) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "User email cannot be empty")
	}
	if role != RoleAdmin && role != RoleOperator {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}
	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               email,
		Role:                role,
		Status:              UserStatusActive,
	}, nil
}

// IsActive returns true if the user account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Deactivate disables the user account
func (u *User) Deactivate() error {
	if u.Status == UserStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}
