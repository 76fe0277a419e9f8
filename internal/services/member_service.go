package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ccpc-cuj/membership-backend/internal/metrics"
	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// MemberService handles member-related business logic
type MemberService struct {
	memberRepo   repositories.MemberRepository
	dispatcher   EmailDispatcher
	log          zerolog.Logger
	metrics      *metrics.Metrics
	emailTimeout time.Duration

	// detach runs work that must outlive the request. Tests replace it to wait.
	detach func(func())
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repositories.MemberRepository, dispatcher EmailDispatcher, log zerolog.Logger, m *metrics.Metrics, emailTimeout time.Duration) *MemberService {
	return &MemberService{
		memberRepo:   memberRepo,
		dispatcher:   dispatcher,
		log:          log.With().Str("component", "members").Logger(),
		metrics:      m,
		emailTimeout: emailTimeout,
		detach:       func(f func()) { go f() },
	}
}

// Register stores a new member and schedules the onboarding email without waiting for it.
func (s *MemberService) Register(ctx context.Context, req *models.RegistrationRequest) (*models.Member, error) {
	if missing := missingRegistrationFields(req); len(missing) > 0 {
		s.metrics.Registration("invalid")
		return nil, models.NewError(models.ErrValidation, "All fields are required")
	}

	existing, err := s.memberRepo.FindByEmail(ctx, req.Email)
	if err != nil && !isNotFound(err) {
		s.metrics.Registration("error")
		return nil, fmt.Errorf("check existing member: %w", err)
	}
	if existing != nil {
		s.metrics.Registration("conflict")
		return nil, models.NewError(models.ErrConflict, "User already exists")
	}

	member := req.ToMember()
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.metrics.Registration("conflict")
			return nil, models.WrapError(models.ErrConflict, "User already exists", err)
		}
		s.metrics.Registration("error")
		return nil, err
	}
	s.metrics.Registration("created")
	s.log.Info().Str("member_id", member.ID.Hex()).Msg("member registered")

	email, name := member.Email, member.Name
	s.detach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.emailTimeout)
		defer cancel()
		if !s.dispatcher.SendOnboarding(ctx, email, name) {
			s.log.Warn().Str("email", email).Msg("onboarding email not sent")
		}
	})

	return member, nil
}

// missingRegistrationFields lists required fields that are empty or whitespace.
func missingRegistrationFields(req *models.RegistrationRequest) []string {
	fields := []struct {
		name, value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"phone", req.Phone},
		{"PreferedLanguage", req.PreferredLanguage},
		{"Skills", req.Skills},
		{"reg_no", req.RegistrationNumber},
		{"Batch", req.Batch},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ListAll returns every member, most recently registered first.
func (s *MemberService) ListAll(ctx context.Context) ([]*models.Member, error) {
	return s.memberRepo.ListAll(ctx)
}

// ListByStatus returns members filtered by the legacy status query.
func (s *MemberService) ListByStatus(ctx context.Context, status models.MemberStatus) ([]*models.Member, error) {
	return s.memberRepo.FindAll(ctx, status)
}

// GetByID retrieves a member by hex id.
func (s *MemberService) GetByID(ctx context.Context, id string) (*models.Member, error) {
	oid, err := parseID(id, "User not found")
	if err != nil {
		return nil, err
	}
	return s.memberRepo.FindByID(ctx, oid)
}

// SetActive flips a member's active flag.
func (s *MemberService) SetActive(ctx context.Context, id string, active bool) (*models.Member, error) {
	oid, err := parseID(id, "User not found")
	if err != nil {
		return nil, err
	}
	return s.memberRepo.UpdateActive(ctx, oid, active)
}

// AddTask appends one task.
func (s *MemberService) AddTask(ctx context.Context, id, task string) (*models.Member, error) {
	if task == "" {
		return nil, models.NewError(models.ErrValidation, "Task is required")
	}
	oid, err := parseID(id, "User not found")
	if err != nil {
		return nil, err
	}
	return s.memberRepo.AppendTask(ctx, oid, task)
}

// ReplaceTasks overwrites a member's tasks.
func (s *MemberService) ReplaceTasks(ctx context.Context, id string, tasks []string) (*models.Member, error) {
	oid, err := parseID(id, "User not found")
	if err != nil {
		return nil, err
	}
	return s.memberRepo.ReplaceTasks(ctx, oid, tasks)
}
