package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.SettingRepository = (*SettingRepository)(nil)

// SettingRepository implements repositories.SettingRepository
type SettingRepository struct {
	collection *mongo.Collection
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{
		collection: db.Collection("settings"),
	}
}

// EnsureIndexes creates the unique key index.
func (r *SettingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("key_1"),
	})
	if err != nil {
		return fmt.Errorf("create settings key index: %w", err)
	}
	return nil
}

// FindByKey finds a setting by key.
// The Value field is interface{}, so the caller needs to perform type assertion.
func (r *SettingRepository) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&setting)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.WrapError(models.ErrNotFound, "Setting not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("find setting %q: %w", key, err)
	}
	return &setting, nil
}

// UpsertByKey updates a setting by key, or creates it if it doesn't exist.
func (r *SettingRepository) UpsertByKey(ctx context.Context, key string, value interface{}) error {
	now := time.Now().UTC()
	filter := bson.M{"key": key}
	update := bson.M{
		"$set": bson.M{
			"value":     value,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"key":       key,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert setting %q: %w", key, err)
	}
	return nil
}
