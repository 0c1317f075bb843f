package mongodb

import (
	"context"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ValidationRunRepository implements the repositories.ValidationRunRepository interface
type ValidationRunRepository struct {
	collection *mongo.Collection
}

// NewValidationRunRepository creates a new ValidationRunRepository
func NewValidationRunRepository(db *mongo.Database) repositories.ValidationRunRepository {
	return &ValidationRunRepository{
		collection: db.Collection("validation_runs"),
	}
}

// Create creates a new validation run record
func (r *ValidationRunRepository) Create(ctx context.Context, run *models.ValidationRun) error {
	run.CreatedAt = time.Now()
	run.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		run.ID = oid
	}
	return nil
}

// FindByID finds a validation run by ID
func (r *ValidationRunRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ValidationRun, error) {
	var run models.ValidationRun
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FindLatestCompleted returns the most recent successfully completed run
func (r *ValidationRunRepository) FindLatestCompleted(ctx context.Context) (*models.ValidationRun, error) {
	opts := options.FindOne().SetSort(bson.M{"startedAt": -1})
	var run models.ValidationRun
	err := r.collection.FindOne(ctx, bson.M{"status": models.ValidationRunCompleted}, opts).Decode(&run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FindAll finds validation runs with pagination, newest first
func (r *ValidationRunRepository) FindAll(ctx context.Context, page, limit int) ([]*models.ValidationRun, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"startedAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*models.ValidationRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// Update updates a validation run
func (r *ValidationRunRepository) Update(ctx context.Context, run *models.ValidationRun) error {
	run.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": run.ID}, run)
	return err
}
