package models

import (
	"github.com/orderdesk/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	TenantAggregateModel
	Name   string              `gorm:"type:varchar(200);not null"`
	Email  string              `gorm:"type:varchar(200);not null;index"`
	Role   identity.UserRole   `gorm:"type:varchar(20);not null"`
	Status identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Name:   m.Name,
		Email:  m.Email,
		Role:   m.Role,
		Status: m.Status,
	}
	m.PopulateTenantAggregateRoot(&u.TenantAggregateRoot)
	return u
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.Role = u.Role
	m.Status = u.Status
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
