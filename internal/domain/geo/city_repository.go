package geo

import (
	"context"
)

// CityRepository defines the persistence interface for cities
type CityRepository interface {
	// Save persists a city (create or update)
	Save(ctx context.Context, city *City) error

	// FindActiveByName retrieves an active city by exact, case-sensitive
	// name. Returns shared.ErrNotFound when no active city matches.
	FindActiveByName(ctx context.Context, name string) (*City, error)
}
