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

// RechargeRepository implements the repositories.RechargeRepository interface
type RechargeRepository struct {
	collection *mongo.Collection
}

// NewRechargeRepository creates a new RechargeRepository
func NewRechargeRepository(db *mongo.Database) repositories.RechargeRepository {
	return &RechargeRepository{
		collection: db.Collection("recharges"),
	}
}

// Create creates a new recharge
func (r *RechargeRepository) Create(ctx context.Context, recharge *models.Recharge) error {
	recharge.CreatedAt = time.Now()
	recharge.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, recharge)
	return err
}

// CreateMany creates recharges in bulk
func (r *RechargeRepository) CreateMany(ctx context.Context, recharges []*models.Recharge) error {
	if len(recharges) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(recharges))
	for _, recharge := range recharges {
		recharge.CreatedAt = time.Now()
		recharge.UpdatedAt = time.Now()
		docs = append(docs, recharge)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByID finds a recharge by ID
func (r *RechargeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recharge, error) {
	var recharge models.Recharge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recharge)
	if err != nil {
		return nil, err
	}
	return &recharge, nil
}

// FindByRechargeID finds a recharge by its consumption key
func (r *RechargeRepository) FindByRechargeID(ctx context.Context, rechargeID string) (*models.Recharge, error) {
	var recharge models.Recharge
	err := r.collection.FindOne(ctx, bson.M{"rechargeId": rechargeID}).Decode(&recharge)
	if err != nil {
		return nil, err
	}
	return &recharge, nil
}

// FindByGameID finds recharges by game ID with pagination
func (r *RechargeRepository) FindByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Recharge, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"rechargeTime": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"gameId": gameID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recharges []*models.Recharge
	if err := cursor.All(ctx, &recharges); err != nil {
		return nil, err
	}
	return recharges, nil
}

// FindAll returns the full recharges snapshot for a validation run
func (r *RechargeRepository) FindAll(ctx context.Context) ([]*models.Recharge, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recharges []*models.Recharge
	if err := cursor.All(ctx, &recharges); err != nil {
		return nil, err
	}
	return recharges, nil
}

// Delete deletes a recharge
func (r *RechargeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count counts all recharges
func (r *RechargeRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
