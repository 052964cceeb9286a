package branding

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// Branding holds a tenant's storefront settings. The import pipeline only
// reads the delivery fee from the tenant's active branding record; the rest
// of the record is managed elsewhere.
type Branding struct {
	shared.TenantAggregateRoot
	StoreName   string          `gorm:"type:varchar(200);not null"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Branding) TableName() string {
	return "brandings"
}

// NewBranding creates a new active branding record for a tenant
func NewBranding(tenantID uuid.UUID, storeName string, deliveryFee decimal.Decimal) (*Branding, error) {
	if storeName == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	if deliveryFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DELIVERY_FEE", "Delivery fee cannot be negative")
	}
	return &Branding{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StoreName:           storeName,
		DeliveryFee:         deliveryFee,
		IsActive:            true,
	}, nil
}

// SetDeliveryFee updates the delivery fee applied to new orders
func (b *Branding) SetDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_DELIVERY_FEE", "Delivery fee cannot be negative")
	}
	b.DeliveryFee = fee
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}
