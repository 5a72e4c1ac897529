package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/memory"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore simulates latency to provoke lost updates if locking is missing.
type slowStore struct {
	ports.ProfileStore
}

func (s *slowStore) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	time.Sleep(2 * time.Millisecond)
	return s.ProfileStore.Load(ctx, userID)
}

func (s *slowStore) Save(ctx context.Context, userID string, p *domain.UserProfile) error {
	time.Sleep(2 * time.Millisecond)
	return s.ProfileStore.Save(ctx, userID, p)
}

func TestManager_UpdateSerializesWrites(t *testing.T) {
	m := NewManager(&slowStore{ProfileStore: memory.NewStore()})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := m.Update(ctx, "u1", func(p *domain.UserProfile) error {
				p.AddInterest(fmt.Sprintf("topic-%d", n))
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, p.Interests, 20, "no update may be lost")
	assert.Equal(t, 0, m.activeLocks(), "lock entries must be released")
}

func TestManager_UpdateErrorSkipsSave(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := m.Update(ctx, "u1", func(p *domain.UserProfile) error { return boom })
	assert.ErrorIs(t, err, boom)

	_, err = m.Load(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestManager_SaveStampsUpdatedAt(t *testing.T) {
	m := NewManager(memory.NewStore())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	ctx := context.Background()

	in := &domain.UserProfile{Name: "Ana"}
	require.NoError(t, m.Save(ctx, "u1", in))
	assert.True(t, in.UpdatedAt.IsZero(), "caller's profile must not be modified")

	p, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestManager_LoadOrEmpty(t *testing.T) {
	m := NewManager(memory.NewStore())
	p, err := m.LoadOrEmpty(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, &domain.UserProfile{}, p)
}

func TestManager_RejectsEmptyUserID(t *testing.T) {
	m := NewManager(memory.NewStore())
	assert.Error(t, m.Save(context.Background(), "", &domain.UserProfile{}))
	_, err := m.Update(context.Background(), "", func(*domain.UserProfile) error { return nil })
	assert.Error(t, err)
}

type countingLocker struct {
	mu       sync.Mutex
	locks    int
	unlocks  int
	ttl      time.Duration
	failWith error
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failWith != nil {
		return nil, l.failWith
	}
	l.locks++
	l.ttl = ttl
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocks++
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	m := NewManager(memory.NewStore(), WithLocker(locker), WithLockTTL(5*time.Second))
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "u1", &domain.UserProfile{Name: "A"}))
	require.NoError(t, m.Delete(ctx, "u1"))

	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, 2, locker.unlocks)
	assert.Equal(t, 5*time.Second, locker.ttl)
}

func TestManager_DistributedLockFailure(t *testing.T) {
	locker := &countingLocker{failWith: errors.New("redis down")}
	m := NewManager(memory.NewStore(), WithLocker(locker))

	err := m.Save(context.Background(), "u1", &domain.UserProfile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distributed lock")
	assert.Equal(t, 0, m.activeLocks())
}
