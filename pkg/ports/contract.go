package ports

import (
	"context"
	"testing"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProfileStoreContract runs a suite of tests to verify that a ProfileStore implementation
// adheres to the defined interface contract.
func RunProfileStoreContract(t *testing.T, store ProfileStore) {
	ctx := context.Background()
	userID := "contract-test-user-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		profile := &domain.UserProfile{
			Name:             "Priya",
			Role:             "student",
			Interests:        []string{"vegetarian food", "live music"},
			Location:         "Bengaluru",
			BudgetPreference: 120,
			AITone:           "friendly",
			HealthConditions: []string{"lactose intolerance"},
		}

		err := store.Save(ctx, userID, profile)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, profile.Name, loaded.Name)
		assert.Equal(t, profile.Interests, loaded.Interests)
		assert.Equal(t, profile.Location, loaded.Location)
		assert.InDelta(t, profile.BudgetPreference, loaded.BudgetPreference, 0.0001)
		assert.Equal(t, profile.HealthConditions, loaded.HealthConditions)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, userID, &domain.UserProfile{Name: "First"}))
		require.NoError(t, store.Save(ctx, userID, &domain.UserProfile{Name: "Second"}))

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Second", loaded.Name)
		assert.Empty(t, loaded.Interests)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+userID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, userID, &domain.UserProfile{Name: "Gone"})
		require.NoError(t, err)

		err = store.Delete(ctx, userID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound, "Load after Delete should return ErrProfileNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := userID + "-1"
		id2 := userID + "-2"
		_ = store.Save(ctx, id1, &domain.UserProfile{Name: "One"})
		_ = store.Save(ctx, id2, &domain.UserProfile{Name: "Two"})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, users, id1)
		assert.Contains(t, users, id2)
	})
}
