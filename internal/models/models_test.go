package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	for _, v := range []interface{}{true, 1.0, "yes", []interface{}{}, map[string]interface{}{}} {
		assert.True(t, Truthy(v), "%v", v)
	}
	for _, v := range []interface{}{nil, false, 0.0, ""} {
		assert.False(t, Truthy(v), "%v", v)
	}
}

func TestParseMemberStatus(t *testing.T) {
	assert.Equal(t, MemberStatusActive, ParseMemberStatus("active"))
	assert.Equal(t, MemberStatusInactive, ParseMemberStatus("inactive"))
	assert.Equal(t, MemberStatusAll, ParseMemberStatus("all"))
	assert.Equal(t, MemberStatusAll, ParseMemberStatus("whatever"))
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("lookup: %w", WrapError(ErrNotFound, "User not found", errors.New("no documents")))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "User not found", ErrorMessage(err, "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(errors.New("raw"), "fallback"))
}

func TestRegistrationRequest_ToMember(t *testing.T) {
	m := (&RegistrationRequest{Name: "n", Email: "e", Batch: "2024"}).ToMember()
	assert.True(t, m.Active)
	assert.NotNil(t, m.Tasks)
	assert.Empty(t, m.Tasks)
	assert.Equal(t, "2024", m.Batch)
}
