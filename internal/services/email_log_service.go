package services

import (
	"context"
	"time"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// EmailLogService keeps the audit trail of broadcast attempts.
type EmailLogService struct {
	repo repositories.EmailLogRepository
	log  zerolog.Logger
}

// NewEmailLogService creates a new EmailLogService
func NewEmailLogService(repo repositories.EmailLogRepository, log zerolog.Logger) *EmailLogService {
	return &EmailLogService{
		repo: repo,
		log:  log.With().Str("component", "email_log").Logger(),
	}
}

// Append records entry. It is best-effort: a failed write is logged and nil is returned.
func (s *EmailLogService) Append(ctx context.Context, entry *models.EmailLog) *models.EmailLog {
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now().UTC()
	}
	entry.Normalize()
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("type", string(entry.Type)).
			Str("status", string(entry.Status)).
			Msg("writing email log")
		return nil
	}
	return entry
}

// List returns entries of the given type, newest first. "" and "all" return every entry;
// an unknown type returns none.
func (s *EmailLogService) List(ctx context.Context, logType string) ([]*models.EmailLog, error) {
	if logType == "all" || logType == "" {
		return s.repo.FindAll(ctx, "")
	}
	t := models.EmailLogType(logType)
	if !t.Valid() {
		return []*models.EmailLog{}, nil
	}
	return s.repo.FindAll(ctx, t)
}

// Get returns one entry.
func (s *EmailLogService) Get(ctx context.Context, id string) (*models.EmailLog, error) {
	oid, err := parseID(id, "Email log not found")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}
