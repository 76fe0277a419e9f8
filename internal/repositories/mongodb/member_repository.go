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

// Compile-time check to ensure MemberRepository implements the interface
var _ repositories.MemberRepository = (*MemberRepository)(nil)

// MemberRepository handles MongoDB operations for Member.
// The collection keeps the name "users" so existing registrations stay readable.
type MemberRepository struct {
	collection *mongo.Collection
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique email index that serializes concurrent registrations.
func (r *MemberRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_1"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// Create inserts a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	now := time.Now().UTC()
	member.ID = primitive.NewObjectID()
	member.CreatedAt = now
	member.UpdatedAt = now
	member.Normalize()

	if _, err := r.collection.InsertOne(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.WrapError(models.ErrConflict, "User already exists", err)
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// FindByEmail finds a member by email
func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID finds a member by ID
func (r *MemberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIDs returns the members whose ids are listed. Unknown ids are skipped.
func (r *MemberRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Member, error) {
	if len(ids) == 0 {
		return []*models.Member{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}

// FindAll returns members filtered by active status, newest registration first
func (r *MemberRepository) FindAll(ctx context.Context, status models.MemberStatus) ([]*models.Member, error) {
	filter := bson.M{}
	switch status {
	case models.MemberStatusActive:
		filter["active"] = true
	case models.MemberStatusInactive:
		filter["active"] = false
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
}

// ListAll returns every member ordered by id descending, i.e. most recently created first
func (r *MemberRepository) ListAll(ctx context.Context) ([]*models.Member, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}

// UpdateActive sets the active flag and returns the updated member
func (r *MemberRepository) UpdateActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Member, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now().UTC()}})
}

// AppendTask pushes one task onto the member's task list
func (r *MemberRepository) AppendTask(ctx context.Context, id primitive.ObjectID, task string) (*models.Member, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"tasks": task},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

// ReplaceTasks overwrites the member's task list
func (r *MemberRepository) ReplaceTasks(ctx context.Context, id primitive.ObjectID, tasks []string) (*models.Member, error) {
	if tasks == nil {
		tasks = []string{}
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"tasks": tasks, "updatedAt": time.Now().UTC()}})
}

func (r *MemberRepository) findOne(ctx context.Context, filter bson.M) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, filter).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.WrapError(models.ErrNotFound, "User not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	member.Normalize()
	return &member, nil
}

func (r *MemberRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Member, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*models.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	if members == nil {
		members = []*models.Member{}
	}
	for _, m := range members {
		m.Normalize()
	}
	return members, nil
}

func (r *MemberRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Member, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member models.Member
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.WrapError(models.ErrNotFound, "User not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("update member %s: %w", id.Hex(), err)
	}
	member.Normalize()
	return &member, nil
}
