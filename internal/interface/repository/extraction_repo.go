package repository

import (
	"context"

	"ticketscan-service/internal/domain/entity"
	"ticketscan-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExtractionRepository implements the ExtractionRepository interface
type MongoExtractionRepository struct {
	collection *mongo.Collection
}

// NewMongoExtractionRepository creates a new MongoDB extraction repository
func NewMongoExtractionRepository(db *mongo.Database) repository.ExtractionRepository {
	collection := db.Collection("extractions")

	// Create indexes for better performance
	ctx := context.Background()

	// Index on createdAt for recent-first listing
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	// Index on status for finding records by outcome
	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}

	// Compound index for per-category listing
	categoryIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "ticketCategory", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		createdAtIndex,
		statusIndex,
		categoryIndex,
	})

	return &MongoExtractionRepository{
		collection: collection,
	}
}

// Save stores an extraction record
func (r *MongoExtractionRepository) Save(ctx context.Context, record *entity.ExtractionRecord) error {
	if record.Status == "" {
		record.Status = entity.StatusPending
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByID finds an extraction record by ID, nil when absent
func (r *MongoExtractionRepository) FindByID(ctx context.Context, id string) (*entity.ExtractionRecord, error) {
	var record entity.ExtractionRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindRecent returns the most recent extraction records
func (r *MongoExtractionRepository) FindRecent(ctx context.Context, limit int) ([]*entity.ExtractionRecord, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}}, // Most recent first
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.ExtractionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}
