package models

import (
	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/geo"
)

// CityModel is the persistence model for the City reference entity.
// Cities are shared across tenants.
type CityModel struct {
	AggregateModel
	Name       string     `gorm:"type:varchar(100);not null;index"`
	ZoneID     *uuid.UUID `gorm:"type:uuid"`
	DistrictID *uuid.UUID `gorm:"type:uuid"`
	IsActive   bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CityModel) TableName() string {
	return "cities"
}

// ToDomain converts the persistence model to a domain City entity.
func (m *CityModel) ToDomain() *geo.City {
	c := &geo.City{
		Name:       m.Name,
		ZoneID:     m.ZoneID,
		DistrictID: m.DistrictID,
		IsActive:   m.IsActive,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain City entity.
func (m *CityModel) FromDomain(c *geo.City) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.ZoneID = c.ZoneID
	m.DistrictID = c.DistrictID
	m.IsActive = c.IsActive
}

// CityModelFromDomain creates a new persistence model from a domain City entity.
func CityModelFromDomain(c *geo.City) *CityModel {
	m := &CityModel{}
	m.FromDomain(c)
	return m
}
