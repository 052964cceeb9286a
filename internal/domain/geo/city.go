package geo

import (
	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// City is shared reference data used to resolve delivery destinations.
// Cities are global, not tenant-scoped; every tenant resolves against the
// same table. Zone and district links are optional and absent links stay
// absent on everything derived from the city.
type City struct {
	shared.BaseAggregateRoot
	Name       string     `gorm:"type:varchar(100);not null;index"`
	ZoneID     *uuid.UUID `gorm:"type:uuid"`
	DistrictID *uuid.UUID `gorm:"type:uuid"`
	IsActive   bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (City) TableName() string {
	return "cities"
}

// NewCity creates a new active city
func NewCity(name string) (*City, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "City name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "City name cannot exceed 100 characters")
	}
	return &City{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		IsActive:          true,
	}, nil
}

// SetZone links the city to a delivery zone (nil unlinks)
func (c *City) SetZone(zoneID *uuid.UUID) {
	c.ZoneID = zoneID
	c.IncrementVersion()
}

// SetDistrict links the city to a district (nil unlinks)
func (c *City) SetDistrict(districtID *uuid.UUID) {
	c.DistrictID = districtID
	c.IncrementVersion()
}
