package memory_test

import (
	"context"
	"testing"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/memory"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunProfileStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	p := &domain.UserProfile{Interests: []string{"chess"}}
	require.NoError(t, store.Save(ctx, "u1", p))
	p.Interests[0] = "mutated"

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "chess", loaded.Interests[0])
	assert.False(t, loaded.UpdatedAt.IsZero())

	loaded.Interests[0] = "mutated again"
	again, _ := store.Load(ctx, "u1")
	assert.Equal(t, "chess", again.Interests[0])
}
