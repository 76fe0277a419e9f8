package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailLogType identifies which broadcast route produced an entry.
type EmailLogType string

const (
	EmailLogIndividual EmailLogType = "individual"
	EmailLogBulk       EmailLogType = "bulk"
	EmailLogCustom     EmailLogType = "custom"
)

// Valid reports whether t is one of the known types.
func (t EmailLogType) Valid() bool {
	switch t {
	case EmailLogIndividual, EmailLogBulk, EmailLogCustom:
		return true
	}
	return false
}

// EmailLogStatus is the outcome of one send attempt.
type EmailLogStatus string

const (
	EmailLogSuccess EmailLogStatus = "success"
	EmailLogFailed  EmailLogStatus = "failed"
)

// DefaultSentBy is recorded when the request does not identify the admin.
const DefaultSentBy = "unknown"

// EmailLog is an append-only audit record of one outbound email attempt
type EmailLog struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Type      EmailLogType         `bson:"type" json:"type"`
	UserIDs   []primitive.ObjectID `bson:"userIds" json:"userIds"`
	Subject   string               `bson:"subject" json:"subject"`
	SentAt    time.Time            `bson:"sentAt" json:"sentAt"`
	SentBy    string               `bson:"sentBy" json:"sentBy"`
	Status    EmailLogStatus       `bson:"status" json:"status"`
	Message   string               `bson:"message" json:"message"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// Normalize fills defaults so entries always serialize with an array and a sender.
func (l *EmailLog) Normalize() {
	if l.UserIDs == nil {
		l.UserIDs = []primitive.ObjectID{}
	}
	if l.SentBy == "" {
		l.SentBy = DefaultSentBy
	}
}
