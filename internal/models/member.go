package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member represents a registered club applicant.
// Field names on the wire match the registration form, which predates this service.
type Member struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"password"` // department, shown as such in the UI
	Phone              string             `bson:"phone" json:"phone"`
	PreferredLanguage  string             `bson:"PreferedLanguage" json:"PreferedLanguage"`
	Skills             string             `bson:"Skills" json:"Skills"`
	RegistrationNumber string             `bson:"reg_no" json:"reg_no"`
	Batch              string             `bson:"Batch" json:"Batch"`
	Active             bool               `bson:"active" json:"active"`
	Tasks              []string           `bson:"tasks" json:"tasks"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize fills defaults for documents written before tasks existed.
func (m *Member) Normalize() {
	if m.Tasks == nil {
		m.Tasks = []string{}
	}
}

// MemberStatus filters members by their active flag.
type MemberStatus string

const (
	MemberStatusAll      MemberStatus = "all"
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// ParseMemberStatus maps a query value onto a status filter. Unknown values mean all.
func ParseMemberStatus(s string) MemberStatus {
	switch MemberStatus(s) {
	case MemberStatusActive, MemberStatusInactive:
		return MemberStatus(s)
	default:
		return MemberStatusAll
	}
}

// RegistrationRequest is the body of the public registration form.
type RegistrationRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required"`
	Password           string `json:"password" binding:"required"`
	Phone              string `json:"phone" binding:"required"`
	PreferredLanguage  string `json:"PreferedLanguage" binding:"required"`
	Skills             string `json:"Skills" binding:"required"`
	RegistrationNumber string `json:"reg_no" binding:"required"`
	Batch              string `json:"Batch" binding:"required"`
}

// ToMember builds a new active member with no tasks.
func (r *RegistrationRequest) ToMember() *Member {
	return &Member{
		Name:               r.Name,
		Email:              r.Email,
		Password:           r.Password,
		Phone:              r.Phone,
		PreferredLanguage:  r.PreferredLanguage,
		Skills:             r.Skills,
		RegistrationNumber: r.RegistrationNumber,
		Batch:              r.Batch,
		Active:             true,
		Tasks:              []string{},
	}
}
