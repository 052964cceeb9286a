package models

import (
	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantAggregateModel
	Name         string                 `gorm:"type:varchar(200);not null"`
	Phone        string                 `gorm:"type:varchar(20);not null;index:idx_customer_tenant_phone,priority:2"`
	Phone2       *string                `gorm:"type:varchar(20);index"`
	Email        *string                `gorm:"type:varchar(200);index"`
	AddressLine1 string                 `gorm:"type:varchar(200)"`
	AddressLine2 *string                `gorm:"type:varchar(200)"`
	CityID       *uuid.UUID             `gorm:"type:uuid"`
	Status       partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes        string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		Name:         m.Name,
		Phone:        m.Phone,
		Phone2:       m.Phone2,
		Email:        m.Email,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		CityID:       m.CityID,
		Status:       m.Status,
		Notes:        m.Notes,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Phone2 = c.Phone2
	m.Email = c.Email
	m.AddressLine1 = c.AddressLine1
	m.AddressLine2 = c.AddressLine2
	m.CityID = c.CityID
	m.Status = c.Status
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
