package services

import (
	"context"
	"sync"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// SettingsService owns the registration open/closed flag.
//
// The in-process value answers reads whenever the store cannot: it starts as true, is
// refreshed by successful store reads and is written through on every Set. A generation
// counter stops a store read that began before a Set from overwriting the newer value.
type SettingsService struct {
	repo repositories.SettingRepository
	log  zerolog.Logger

	mu   sync.Mutex
	open bool
	gen  uint64
}

// NewSettingsService creates a new SettingsService with registration open.
func NewSettingsService(repo repositories.SettingRepository, log zerolog.Logger) *SettingsService {
	return &SettingsService{
		repo: repo,
		log:  log.With().Str("component", "settings").Logger(),
		open: true,
	}
}

// Init loads the persisted flag, keeping the default when the store has none or is down.
func (s *SettingsService) Init(ctx context.Context) {
	open := s.RegistrationOpen(ctx)
	s.log.Info().Bool("registration_open", open).Msg("registration status loaded")
}

// RegistrationOpen returns the persisted flag, or the in-process value when the store
// is unreachable or holds no boolean. It never fails.
func (s *SettingsService) RegistrationOpen(ctx context.Context) bool {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	setting, err := s.repo.FindByKey(ctx, models.SettingRegistrationOpen)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if !isNotFound(err) {
			s.log.Warn().Err(err).Msg("reading registration status, serving cached value")
		}
		return s.open
	}
	if v, ok := setting.Value.(bool); ok && gen == s.gen {
		s.open = v
	}
	return s.open
}

// SetRegistrationOpen updates the in-process value, then persists it.
// A persistence error is returned but the new value stays in effect for this process.
func (s *SettingsService) SetRegistrationOpen(ctx context.Context, open bool) error {
	s.mu.Lock()
	s.gen++
	s.open = open
	s.mu.Unlock()

	if err := s.repo.UpsertByKey(ctx, models.SettingRegistrationOpen, open); err != nil {
		s.log.Error().Err(err).Bool("registration_open", open).Msg("persisting registration status")
		return err
	}
	return nil
}
