package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/repositories"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixed content of the bulk welcome broadcast.
const (
	BulkWelcomeSubject = "Code Crafters Programming Club - Welcome"
	BulkWelcomeText    = "Welcome to Code Crafters Programming Club!"

	individualLogSubject = "Registration email"
	bulkLogSubject       = "Bulk welcome email"
)

// BroadcastResult is what a successful send reports back to the admin.
type BroadcastResult struct {
	Message string
	LogID   *primitive.ObjectID
}

// CustomEmail is an admin-authored message for a set of members.
type CustomEmail struct {
	UserIDs []string
	Subject string
	HTML    string
	Text    string
}

// BroadcastService sends admin email to members. The Audited* methods additionally write
// exactly one email log entry per call, whatever the outcome.
type BroadcastService struct {
	memberRepo repositories.MemberRepository
	dispatcher EmailDispatcher
	emailLogs  *EmailLogService
	log        zerolog.Logger
}

// NewBroadcastService creates a new BroadcastService
func NewBroadcastService(memberRepo repositories.MemberRepository, dispatcher EmailDispatcher, emailLogs *EmailLogService, log zerolog.Logger) *BroadcastService {
	return &BroadcastService{
		memberRepo: memberRepo,
		dispatcher: dispatcher,
		emailLogs:  emailLogs,
		log:        log.With().Str("component", "broadcast").Logger(),
	}
}

var errEmailFailed = models.NewError(models.ErrEmailDelivery, "Email failed")

func requireSubjectAndText(subject, text string) error {
	if subject == "" || text == "" {
		return models.NewError(models.ErrValidation, "Subject and text are required")
	}
	return nil
}

// SendToMember emails one member by id.
func (s *BroadcastService) SendToMember(ctx context.Context, id, subject, text string) error {
	if err := requireSubjectAndText(subject, text); err != nil {
		return err
	}
	oid, err := parseID(id, "User not found")
	if err != nil {
		return err
	}
	member, err := s.memberRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !s.dispatcher.SendCustomText(ctx, []string{member.Email}, subject, text) {
		return errEmailFailed
	}
	return nil
}

// SendToMembers emails every member whose id is listed.
func (s *BroadcastService) SendToMembers(ctx context.Context, ids []string, subject, text string) error {
	if len(ids) == 0 {
		return models.NewError(models.ErrValidation, "userIds must be a non-empty array")
	}
	if err := requireSubjectAndText(subject, text); err != nil {
		return err
	}
	members, err := s.memberRepo.FindByIDs(ctx, parseIDs(ids))
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return models.NewError(models.ErrNotFound, "No users found for provided IDs")
	}
	if !s.dispatcher.SendCustomText(ctx, emailsOf(members), subject, text) {
		return errEmailFailed
	}
	return nil
}

// SendToAll emails every registered member.
func (s *BroadcastService) SendToAll(ctx context.Context, subject, text string) error {
	if err := requireSubjectAndText(subject, text); err != nil {
		return err
	}
	members, err := s.memberRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return models.NewError(models.ErrNotFound, "No users found")
	}
	if !s.dispatcher.SendCustomText(ctx, emailsOf(members), subject, text) {
		return errEmailFailed
	}
	return nil
}

// AuditedSendIndividual re-sends the onboarding email to one member.
func (s *BroadcastService) AuditedSendIndividual(ctx context.Context, userID, sentBy string) (*BroadcastResult, error) {
	entry := &models.EmailLog{Type: models.EmailLogIndividual, Subject: individualLogSubject, SentBy: sentBy}

	if userID == "" {
		return nil, s.fail(ctx, entry, models.NewError(models.ErrValidation, "userId is required"))
	}
	oid, err := parseID(userID, "User not found")
	if err != nil {
		return nil, s.fail(ctx, entry, err)
	}
	member, err := s.memberRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, s.fail(ctx, entry, err)
	}

	entry.UserIDs = []primitive.ObjectID{member.ID}
	if !s.dispatcher.SendOnboarding(ctx, member.Email, member.Name) {
		return nil, s.fail(ctx, entry, models.NewError(models.ErrEmailDelivery, "Failed to send email"))
	}
	return s.succeed(ctx, entry, "Email sent successfully"), nil
}

// AuditedSendBulk sends the welcome message to every active member.
func (s *BroadcastService) AuditedSendBulk(ctx context.Context, sentBy string) (*BroadcastResult, error) {
	entry := &models.EmailLog{Type: models.EmailLogBulk, Subject: bulkLogSubject, SentBy: sentBy}

	members, err := s.memberRepo.FindAll(ctx, models.MemberStatusActive)
	if err != nil {
		return nil, s.fail(ctx, entry, err)
	}
	if len(members) == 0 {
		return nil, s.fail(ctx, entry, models.NewError(models.ErrNotFound, "No active users to email"))
	}

	entry.UserIDs = idsOf(members)
	if !s.dispatcher.SendCustomText(ctx, emailsOf(members), BulkWelcomeSubject, BulkWelcomeText) {
		return nil, s.fail(ctx, entry, models.NewError(models.ErrEmailDelivery, "Failed to send bulk email"))
	}
	return s.succeed(ctx, entry, fmt.Sprintf("Bulk email sent to %d active users", len(members))), nil
}

// AuditedSendCustom sends an admin-authored HTML and/or text message to the listed members.
func (s *BroadcastService) AuditedSendCustom(ctx context.Context, email CustomEmail, sentBy string) (*BroadcastResult, error) {
	entry := &models.EmailLog{Type: models.EmailLogCustom, Subject: email.Subject, SentBy: sentBy}

	switch {
	case len(email.UserIDs) == 0:
		return nil, s.fail(ctx, entry, models.NewError(models.ErrValidation, "userIds must be a non-empty array"))
	case strings.TrimSpace(email.Subject) == "":
		return nil, s.fail(ctx, entry, models.NewError(models.ErrValidation, "subject is required"))
	case email.HTML == "" && email.Text == "":
		return nil, s.fail(ctx, entry, models.NewError(models.ErrValidation, "Provide htmlContent and/or plainText"))
	}

	members, err := s.memberRepo.FindByIDs(ctx, parseIDs(email.UserIDs))
	if err != nil {
		return nil, s.fail(ctx, entry, err)
	}
	if len(members) == 0 {
		return nil, s.fail(ctx, entry, models.NewError(models.ErrNotFound, "No users found for provided IDs"))
	}

	entry.UserIDs = idsOf(members)
	if !s.dispatcher.SendCustomHTML(ctx, emailsOf(members), email.Subject, email.HTML, email.Text) {
		return nil, s.fail(ctx, entry, models.NewError(models.ErrEmailDelivery, "Failed to send custom email"))
	}
	return s.succeed(ctx, entry, fmt.Sprintf("Custom email sent to %d users", len(members))), nil
}

// fail records a failed attempt and returns err, carrying the log id when one was written.
func (s *BroadcastService) fail(ctx context.Context, entry *models.EmailLog, err error) error {
	entry.Status = models.EmailLogFailed
	entry.Message = models.ErrorMessage(err, "Unexpected error")
	if logged := s.emailLogs.Append(ctx, entry); logged != nil {
		return &BroadcastError{Err: err, LogID: &logged.ID}
	}
	return err
}

func (s *BroadcastService) succeed(ctx context.Context, entry *models.EmailLog, message string) *BroadcastResult {
	entry.Status = models.EmailLogSuccess
	entry.Message = message
	result := &BroadcastResult{Message: message}
	if logged := s.emailLogs.Append(ctx, entry); logged != nil {
		result.LogID = &logged.ID
	}
	s.log.Info().Str("type", string(entry.Type)).Int("recipients", len(entry.UserIDs)).Str("sent_by", entry.SentBy).Msg(message)
	return result
}

// BroadcastError is a failed audited send together with the id of its log entry.
type BroadcastError struct {
	Err   error
	LogID *primitive.ObjectID
}

func (e *BroadcastError) Error() string { return e.Err.Error() }
func (e *BroadcastError) Unwrap() error { return e.Err }

func emailsOf(members []*models.Member) []string {
	emails := make([]string, 0, len(members))
	for _, m := range members {
		emails = append(emails, m.Email)
	}
	return emails
}

func idsOf(members []*models.Member) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}
