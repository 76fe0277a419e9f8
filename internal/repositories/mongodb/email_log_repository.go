package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.EmailLogRepository = (*EmailLogRepository)(nil)

// EmailLogRepository handles MongoDB operations for EmailLog
type EmailLogRepository struct {
	collection *mongo.Collection
}

// NewEmailLogRepository creates a new EmailLogRepository
func NewEmailLogRepository(db *mongo.Database) *EmailLogRepository {
	return &EmailLogRepository{
		collection: db.Collection("emaillogs"),
	}
}

// Create appends an entry. SentAt defaults to now when unset.
func (r *EmailLogRepository) Create(ctx context.Context, entry *models.EmailLog) error {
	now := time.Now().UTC()
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = now
	if entry.SentAt.IsZero() {
		entry.SentAt = now
	}
	entry.Normalize()

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

// FindByID finds an entry by ID
func (r *EmailLogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.EmailLog, error) {
	var entry models.EmailLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.WrapError(models.ErrNotFound, "Email log not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("find email log: %w", err)
	}
	entry.Normalize()
	return &entry, nil
}

// FindAll returns entries of the given type, newest first. An empty type means all types.
func (r *EmailLogRepository) FindAll(ctx context.Context, logType models.EmailLogType) ([]*models.EmailLog, error) {
	filter := bson.M{}
	if logType != "" {
		filter["type"] = logType
	}
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find email logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.EmailLog
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode email logs: %w", err)
	}
	if entries == nil {
		entries = []*models.EmailLog{}
	}
	for _, e := range entries {
		e.Normalize()
	}
	return entries, nil
}
