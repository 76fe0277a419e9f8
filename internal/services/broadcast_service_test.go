package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ccpc-cuj/membership-backend/internal/logger"
	"github.com/ccpc-cuj/membership-backend/internal/mocks"
	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type broadcastFixture struct {
	svc        *BroadcastService
	members    *testutil.MemberStore
	logs       *testutil.EmailLogStore
	dispatcher *mocks.EmailDispatcher
}

func newBroadcastFixture(t *testing.T) *broadcastFixture {
	t.Helper()
	members := testutil.NewMemberStore()
	logs := testutil.NewEmailLogStore()
	dispatcher := new(mocks.EmailDispatcher)
	svc := NewBroadcastService(members, dispatcher, NewEmailLogService(logs, logger.Nop()), logger.Nop())
	return &broadcastFixture{svc: svc, members: members, logs: logs, dispatcher: dispatcher}
}

func (f *broadcastFixture) addMember(t *testing.T, email string, active bool) *models.Member {
	t.Helper()
	m := validRegistration(email).ToMember()
	require.NoError(t, f.members.Create(context.Background(), m))
	if !active {
		_, err := f.members.UpdateActive(context.Background(), m.ID, false)
		require.NoError(t, err)
	}
	return m
}

func TestBroadcastService_AuditedSendBulk(t *testing.T) {
	f := newBroadcastFixture(t)
	f.addMember(t, "a@example.com", true)
	f.addMember(t, "b@example.com", true)
	f.addMember(t, "c@example.com", false)

	f.dispatcher.On("SendCustomText", mock.Anything, []string{"b@example.com", "a@example.com"},
		BulkWelcomeSubject, BulkWelcomeText).Return(true).Once()

	result, err := f.svc.AuditedSendBulk(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bulk email sent to 2 active users", result.Message)
	require.NotNil(t, result.LogID)

	entries := f.logs.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, models.EmailLogBulk, entries[0].Type)
	assert.Equal(t, models.EmailLogSuccess, entries[0].Status)
	assert.Equal(t, "Bulk welcome email", entries[0].Subject)
	assert.Equal(t, "admin@example.com", entries[0].SentBy)
	assert.Len(t, entries[0].UserIDs, 2)
	f.dispatcher.AssertExpectations(t)
}

func TestBroadcastService_AuditedSendBulk_NoActiveMembers(t *testing.T) {
	f := newBroadcastFixture(t)
	f.addMember(t, "c@example.com", false)

	_, err := f.svc.AuditedSendBulk(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, "No active users to email", models.ErrorMessage(err, ""))

	entries := f.logs.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, models.EmailLogFailed, entries[0].Status)
	assert.Equal(t, models.DefaultSentBy, entries[0].SentBy)
	f.dispatcher.AssertNotCalled(t, "SendCustomText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBroadcastService_AuditedSendIndividual(t *testing.T) {
	t.Run("sends the onboarding email", func(t *testing.T) {
		f := newBroadcastFixture(t)
		m := f.addMember(t, "a@example.com", true)
		f.dispatcher.On("SendOnboarding", mock.Anything, "a@example.com", m.Name).Return(true).Once()

		result, err := f.svc.AuditedSendIndividual(context.Background(), m.ID.Hex(), "admin")
		require.NoError(t, err)
		assert.Equal(t, "Email sent successfully", result.Message)

		entries := f.logs.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, models.EmailLogSuccess, entries[0].Status)
		assert.Equal(t, "Registration email", entries[0].Subject)
	})

	t.Run("provider failure is logged as failed", func(t *testing.T) {
		f := newBroadcastFixture(t)
		m := f.addMember(t, "a@example.com", true)
		f.dispatcher.On("SendOnboarding", mock.Anything, mock.Anything, mock.Anything).Return(false)

		_, err := f.svc.AuditedSendIndividual(context.Background(), m.ID.Hex(), "admin")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrEmailDelivery))
		assert.Equal(t, "Failed to send email", models.ErrorMessage(err, ""))

		entries := f.logs.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, models.EmailLogFailed, entries[0].Status)
		assert.Equal(t, m.ID, entries[0].UserIDs[0])
	})

	t.Run("missing and unknown ids", func(t *testing.T) {
		f := newBroadcastFixture(t)

		_, err := f.svc.AuditedSendIndividual(context.Background(), "", "admin")
		assert.True(t, errors.Is(err, models.ErrValidation))

		_, err = f.svc.AuditedSendIndividual(context.Background(), "507f1f77bcf86cd799439011", "admin")
		assert.True(t, errors.Is(err, models.ErrNotFound))

		assert.Len(t, f.logs.Entries(), 2)
	})
}

func TestBroadcastService_AuditedSendCustom(t *testing.T) {
	f := newBroadcastFixture(t)
	a := f.addMember(t, "a@example.com", true)
	b := f.addMember(t, "b@example.com", false)

	f.dispatcher.On("SendCustomHTML", mock.Anything, mock.Anything, "Hackathon", "<p>hi</p>", "").Return(true).Once()

	result, err := f.svc.AuditedSendCustom(context.Background(), CustomEmail{
		UserIDs: []string{a.ID.Hex(), b.ID.Hex(), "garbage"},
		Subject: "Hackathon",
		HTML:    "<p>hi</p>",
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Custom email sent to 2 users", result.Message)
	require.NotNil(t, result.LogID)

	entry, err := f.logs.FindByID(context.Background(), *result.LogID)
	require.NoError(t, err)
	assert.Equal(t, models.EmailLogCustom, entry.Type)
	assert.Equal(t, "Hackathon", entry.Subject)
	assert.Len(t, entry.UserIDs, 2)
}

func TestBroadcastService_AuditedSendCustom_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		email   CustomEmail
		kind    error
		message string
	}{
		{"no ids", CustomEmail{Subject: "s", Text: "t"}, models.ErrValidation, "userIds must be a non-empty array"},
		{"no subject", CustomEmail{UserIDs: []string{"x"}, Text: "t"}, models.ErrValidation, "subject is required"},
		{"no body", CustomEmail{UserIDs: []string{"x"}, Subject: "s"}, models.ErrValidation, "Provide htmlContent and/or plainText"},
		{"nobody matches", CustomEmail{UserIDs: []string{"507f1f77bcf86cd799439011"}, Subject: "s", Text: "t"}, models.ErrNotFound, "No users found for provided IDs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBroadcastFixture(t)

			_, err := f.svc.AuditedSendCustom(context.Background(), tt.email, "admin")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			assert.Equal(t, tt.message, models.ErrorMessage(err, ""))

			entries := f.logs.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, models.EmailLogFailed, entries[0].Status)
			assert.Equal(t, tt.message, entries[0].Message)
		})
	}
}

func TestBroadcastService_LogWriteFailureDoesNotFailSend(t *testing.T) {
	f := newBroadcastFixture(t)
	f.addMember(t, "a@example.com", true)
	f.logs.Err = errors.New("disk full")
	f.dispatcher.On("SendCustomText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true)

	result, err := f.svc.AuditedSendBulk(context.Background(), "admin")
	require.NoError(t, err)
	assert.Nil(t, result.LogID)
}

func TestBroadcastService_AdminSends(t *testing.T) {
	ctx := context.Background()

	t.Run("requires subject and text", func(t *testing.T) {
		f := newBroadcastFixture(t)
		err := f.svc.SendToAll(ctx, "", "body")
		assert.True(t, errors.Is(err, models.ErrValidation))
		assert.Equal(t, "Subject and text are required", models.ErrorMessage(err, ""))
	})

	t.Run("no members", func(t *testing.T) {
		f := newBroadcastFixture(t)
		err := f.svc.SendToAll(ctx, "s", "t")
		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.Equal(t, "No users found", models.ErrorMessage(err, ""))
	})

	t.Run("unknown ids", func(t *testing.T) {
		f := newBroadcastFixture(t)
		f.addMember(t, "a@example.com", true)
		err := f.svc.SendToMembers(ctx, []string{"507f1f77bcf86cd799439011"}, "s", "t")
		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.Equal(t, "No users found for provided IDs", models.ErrorMessage(err, ""))
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newBroadcastFixture(t)
		m := f.addMember(t, "a@example.com", true)
		f.dispatcher.On("SendCustomText", mock.Anything, []string{"a@example.com"}, "s", "t").Return(false)

		err := f.svc.SendToMember(ctx, m.ID.Hex(), "s", "t")
		assert.True(t, errors.Is(err, models.ErrEmailDelivery))
		assert.Equal(t, "Email failed", models.ErrorMessage(err, ""))
	})

	t.Run("admin sends are not audited", func(t *testing.T) {
		f := newBroadcastFixture(t)
		f.addMember(t, "a@example.com", true)
		f.dispatcher.On("SendCustomText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true)

		require.NoError(t, f.svc.SendToAll(ctx, "s", "t"))
		assert.Empty(t, f.logs.Entries())
	})
}
