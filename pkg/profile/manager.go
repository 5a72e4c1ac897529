package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a user's lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates profile access, ensuring safe concurrent updates.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.ProfileStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.ProfileStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(userID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		entry = &lockEntry{}
		m.locks[userID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, userID)
	}
}

// activeLocks reports how many users currently have a lock entry.
func (m *Manager) activeLocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// Load retrieves the profile of userID.
func (m *Manager) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return m.store.Load(ctx, userID)
}

// LoadOrEmpty returns the stored profile, or an empty profile when the user
// has none. Other store failures are returned.
func (m *Manager) LoadOrEmpty(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := m.store.Load(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return &domain.UserProfile{}, nil
	}
	return p, err
}

// Save replaces the profile of userID.
func (m *Manager) Save(ctx context.Context, userID string, p *domain.UserProfile) error {
	if userID == "" {
		return fmt.Errorf("profile: empty user id")
	}
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		return m.store.Save(ctx, userID, m.stamp(p))
	})
}

// Update loads the profile of userID (empty when absent), applies fn and
// saves the result, all under the user's lock. If fn returns an error
// nothing is saved.
func (m *Manager) Update(ctx context.Context, userID string, fn func(*domain.UserProfile) error) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("profile: empty user id")
	}
	var updated *domain.UserProfile
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		current, err := m.LoadOrEmpty(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if err := fn(current); err != nil {
			return err
		}
		updated = m.stamp(current)
		return m.store.Save(ctx, userID, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the profile of userID.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		return m.store.Delete(ctx, userID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying profile store.
func (m *Manager) Store() ports.ProfileStore {
	return m.store
}

// WithLock executes fn while holding the lock for userID.
func (m *Manager) WithLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	entry := m.acquire(userID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(userID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, userID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"user_id", userID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager) stamp(p *domain.UserProfile) *domain.UserProfile {
	c := p.Clone()
	if c == nil {
		c = &domain.UserProfile{}
	}
	c.UpdatedAt = m.now().UTC()
	return c
}
