package ports_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
)

// MockStore is a minimal in-memory ProfileStore used to exercise the contract suite itself.
type MockStore struct {
	mu   sync.Mutex
	data map[string]*domain.UserProfile
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]*domain.UserProfile)}
}

func (m *MockStore) Save(ctx context.Context, userID string, profile *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Deep copy to simulate serialization
	m.data[userID] = profile.Clone()
	return nil
}

func (m *MockStore) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (m *MockStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func TestProfileStore_Contract(t *testing.T) {
	ports.RunProfileStoreContract(t, NewMockStore())
}
