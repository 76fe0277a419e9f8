package repositories

import (
	"context"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberRepository defines the interface for member data operations.
// Lookups and mutations return models.ErrNotFound when the id does not resolve;
// Create returns models.ErrConflict when the email is already registered.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Member, error)
	FindAll(ctx context.Context, status models.MemberStatus) ([]*models.Member, error)
	ListAll(ctx context.Context) ([]*models.Member, error)
	UpdateActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Member, error)
	AppendTask(ctx context.Context, id primitive.ObjectID, task string) (*models.Member, error)
	ReplaceTasks(ctx context.Context, id primitive.ObjectID, tasks []string) (*models.Member, error)
}

// SettingRepository defines the interface for key/value settings
type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*models.Setting, error)
	UpsertByKey(ctx context.Context, key string, value interface{}) error
}

// EmailLogRepository defines the interface for the email audit trail.
// Entries are never updated or deleted.
type EmailLogRepository interface {
	Create(ctx context.Context, entry *models.EmailLog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.EmailLog, error)
	FindAll(ctx context.Context, logType models.EmailLogType) ([]*models.EmailLog, error)
}
