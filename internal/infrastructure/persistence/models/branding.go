package models

import (
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/branding"
)

// BrandingModel is the persistence model for the Branding domain entity.
type BrandingModel struct {
	TenantAggregateModel
	StoreName   string          `gorm:"type:varchar(200);not null"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BrandingModel) TableName() string {
	return "brandings"
}

// ToDomain converts the persistence model to a domain Branding entity.
func (m *BrandingModel) ToDomain() *branding.Branding {
	b := &branding.Branding{
		StoreName:   m.StoreName,
		DeliveryFee: m.DeliveryFee,
		IsActive:    m.IsActive,
	}
	m.PopulateTenantAggregateRoot(&b.TenantAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Branding entity.
func (m *BrandingModel) FromDomain(b *branding.Branding) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.StoreName = b.StoreName
	m.DeliveryFee = b.DeliveryFee
	m.IsActive = b.IsActive
}

// BrandingModelFromDomain creates a new persistence model from a domain Branding entity.
func BrandingModelFromDomain(b *branding.Branding) *BrandingModel {
	m := &BrandingModel{}
	m.FromDomain(b)
	return m
}
