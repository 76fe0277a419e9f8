package services

import (
	"errors"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

// parseID converts a path id into an ObjectID. Malformed ids cannot name a record,
// so they are reported as not found with the given message.
func parseID(id, notFoundMessage string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.WrapError(models.ErrNotFound, notFoundMessage, err)
	}
	return oid, nil
}

// parseIDs converts ids, skipping malformed ones.
func parseIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
