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

// EntryRepository implements the repositories.EntryRepository interface
type EntryRepository struct {
	collection *mongo.Collection
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *mongo.Database) repositories.EntryRepository {
	return &EntryRepository{
		collection: db.Collection("entries"),
	}
}

// Create creates a new entry
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany creates entries in bulk
func (r *EntryRepository) CreateMany(ctx context.Context, entries []*models.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		entry.CreatedAt = time.Now()
		entry.UpdatedAt = time.Now()
		docs = append(docs, entry)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByID finds an entry by ID
func (r *EntryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Entry, error) {
	var entry models.Entry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByGameID finds entries by game ID with pagination
func (r *EntryRepository) FindByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Entry, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"ticketTime": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"gameId": gameID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByVerdict finds entries by verdict with pagination
func (r *EntryRepository) FindByVerdict(ctx context.Context, verdict models.Verdict, page, limit int) ([]*models.Entry, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"ticketTime": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"verdict": verdict}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDateRange finds entries by ticket time range with pagination
func (r *EntryRepository) FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Entry, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"ticketTime": 1})

	cursor, err := r.collection.Find(ctx, bson.M{
		"ticketTime": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll returns the full entries snapshot for a validation run
func (r *EntryRepository) FindAll(ctx context.Context) ([]*models.Entry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateVerdict writes the engine's derived fields onto an entry
func (r *EntryRepository) UpdateVerdict(ctx context.Context, id primitive.ObjectID, verdict models.Verdict, reason models.ReasonCode, boundRechargeID string, boundRechargeTime *time.Time, boundRechargeAmount float64, cutoffFlag bool) error {
	update := bson.M{
		"$set": bson.M{
			"verdict":             verdict,
			"reasonCode":          reason,
			"boundRechargeId":     boundRechargeID,
			"boundRechargeTime":   boundRechargeTime,
			"boundRechargeAmount": boundRechargeAmount,
			"cutoffFlag":          cutoffFlag,
			"updatedAt":           time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Delete deletes an entry
func (r *EntryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count counts all entries
func (r *EntryRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
