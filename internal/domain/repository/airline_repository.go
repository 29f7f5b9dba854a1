package repository

import (
	"context"

	"ticketscan-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline directory lookups
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
