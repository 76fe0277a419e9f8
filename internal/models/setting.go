package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingRegistrationOpen holds whether the public registration form accepts submissions.
const SettingRegistrationOpen = "registrationIsOpen"

// Setting represents a configuration value stored in the database
type Setting struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Key       string             `bson:"key" json:"key"`
	Value     interface{}        `bson:"value" json:"value"` // any JSON value; callers type-assert
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
