package repository

import (
	"context"

	"ticketscan-service/internal/domain/entity"
)

// FlightLookupRepository defines the interface for the flight-data service
type FlightLookupRepository interface {
	Lookup(ctx context.Context, req *entity.FlightLookupRequest) (*entity.FlightLookupResult, error)
}
