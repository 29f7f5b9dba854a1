package repository

import (
	"context"

	"ticketscan-service/internal/domain/entity"
)

// ExtractionRepository defines the interface for extraction record storage
type ExtractionRepository interface {
	Save(ctx context.Context, record *entity.ExtractionRecord) error
	FindByID(ctx context.Context, id string) (*entity.ExtractionRecord, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.ExtractionRecord, error)
}
