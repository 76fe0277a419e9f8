// Package testutil provides in-memory stores for tests that do not need MongoDB.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.MemberRepository   = (*MemberStore)(nil)
	_ repositories.SettingRepository  = (*SettingStore)(nil)
	_ repositories.EmailLogRepository = (*EmailLogStore)(nil)
)

// MemberStore keeps members in insertion order and enforces unique emails like the
// MongoDB index does. Err, when set, is returned by every call.
type MemberStore struct {
	mu      sync.Mutex
	members []*models.Member
	Err     error
}

// NewMemberStore creates an empty MemberStore
func NewMemberStore() *MemberStore {
	return &MemberStore{}
}

func (s *MemberStore) Create(ctx context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, m := range s.members {
		if m.Email == member.Email {
			return models.NewError(models.ErrConflict, "User already exists")
		}
	}
	now := time.Now().UTC()
	member.ID = primitive.NewObjectID()
	member.CreatedAt = now
	member.UpdatedAt = now
	member.Normalize()
	s.members = append(s.members, copyMember(member))
	return nil
}

func (s *MemberStore) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	return s.findOne(func(m *models.Member) bool { return m.Email == email })
}

func (s *MemberStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return s.findOne(func(m *models.Member) bool { return m.ID == id })
}

func (s *MemberStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Member, error) {
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return s.newestFirst(func(m *models.Member) bool { return want[m.ID] })
}

func (s *MemberStore) FindAll(ctx context.Context, status models.MemberStatus) ([]*models.Member, error) {
	return s.newestFirst(func(m *models.Member) bool {
		switch status {
		case models.MemberStatusActive:
			return m.Active
		case models.MemberStatusInactive:
			return !m.Active
		default:
			return true
		}
	})
}

func (s *MemberStore) ListAll(ctx context.Context) ([]*models.Member, error) {
	return s.newestFirst(func(*models.Member) bool { return true })
}

func (s *MemberStore) UpdateActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Member, error) {
	return s.update(id, func(m *models.Member) { m.Active = active })
}

func (s *MemberStore) AppendTask(ctx context.Context, id primitive.ObjectID, task string) (*models.Member, error) {
	return s.update(id, func(m *models.Member) { m.Tasks = append(m.Tasks, task) })
}

func (s *MemberStore) ReplaceTasks(ctx context.Context, id primitive.ObjectID, tasks []string) (*models.Member, error) {
	return s.update(id, func(m *models.Member) { m.Tasks = append([]string{}, tasks...) })
}

// Count returns how many members are stored.
func (s *MemberStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

func (s *MemberStore) findOne(match func(*models.Member) bool) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, m := range s.members {
		if match(m) {
			return copyMember(m), nil
		}
	}
	return nil, models.NewError(models.ErrNotFound, "User not found")
}

func (s *MemberStore) newestFirst(match func(*models.Member) bool) ([]*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []*models.Member{}
	for i := len(s.members) - 1; i >= 0; i-- {
		if match(s.members[i]) {
			out = append(out, copyMember(s.members[i]))
		}
	}
	return out, nil
}

func (s *MemberStore) update(id primitive.ObjectID, apply func(*models.Member)) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, m := range s.members {
		if m.ID == id {
			apply(m)
			m.UpdatedAt = time.Now().UTC()
			return copyMember(m), nil
		}
	}
	return nil, models.NewError(models.ErrNotFound, "User not found")
}

func copyMember(m *models.Member) *models.Member {
	c := *m
	c.Tasks = append([]string{}, m.Tasks...)
	return &c
}

// SettingStore is an in-memory SettingRepository. FindErr and UpsertErr fail the
// respective calls; BeforeFind, when set, runs inside FindByKey before the value is read.
type SettingStore struct {
	mu       sync.Mutex
	settings map[string]*models.Setting

	FindErr    error
	UpsertErr  error
	BeforeFind func()
}

// NewSettingStore creates an empty SettingStore
func NewSettingStore() *SettingStore {
	return &SettingStore{settings: map[string]*models.Setting{}}
}

func (s *SettingStore) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	if s.BeforeFind != nil {
		s.BeforeFind()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	setting, ok := s.settings[key]
	if !ok {
		return nil, models.NewError(models.ErrNotFound, "Setting not found")
	}
	c := *setting
	return &c, nil
}

func (s *SettingStore) UpsertByKey(ctx context.Context, key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpsertErr != nil {
		return s.UpsertErr
	}
	now := time.Now().UTC()
	if setting, ok := s.settings[key]; ok {
		setting.Value = value
		setting.UpdatedAt = now
		return nil
	}
	s.settings[key] = &models.Setting{ID: primitive.NewObjectID(), Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	return nil
}

// EmailLogStore is an in-memory EmailLogRepository. Err fails Create, FindErr fails FindAll.
type EmailLogStore struct {
	mu      sync.Mutex
	entries []*models.EmailLog
	Err     error
	FindErr error
}

// NewEmailLogStore creates an empty EmailLogStore
func NewEmailLogStore() *EmailLogStore {
	return &EmailLogStore{}
}

func (s *EmailLogStore) Create(ctx context.Context, entry *models.EmailLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	c := *entry
	s.entries = append(s.entries, &c)
	return nil
}

func (s *EmailLogStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.EmailLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			c := *e
			return &c, nil
		}
	}
	return nil, models.NewError(models.ErrNotFound, "Email log not found")
}

func (s *EmailLogStore) FindAll(ctx context.Context, logType models.EmailLogType) ([]*models.EmailLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	out := []*models.EmailLog{}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if logType == "" || s.entries[i].Type == logType {
			c := *s.entries[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

// Entries returns every stored entry in insertion order.
func (s *EmailLogStore) Entries() []*models.EmailLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.EmailLog, len(s.entries))
	copy(out, s.entries)
	return out
}
