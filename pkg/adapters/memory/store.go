package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

// Store implements ports.ProfileStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.UserProfile
	mu   sync.RWMutex
	now  func() time.Time
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.UserProfile),
		now:  time.Now,
	}
}

// Save persists the profile in memory.
func (s *Store) Save(ctx context.Context, userID string, profile *domain.UserProfile) error {
	// Deep copy to ensure isolation, similar to serialization
	stored := profile.Clone()
	stored.UpdatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = stored
	return nil
}

// Load retrieves the profile from memory.
func (s *Store) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	// Copy on read so callers can't mutate the store through the pointer
	return profile.Clone(), nil
}

// Delete removes the profile.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// List returns the stored user IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.data))
	for id := range s.data {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}
