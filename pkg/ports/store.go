package ports

import (
	"context"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

// ProfileStore defines the interface for persisting user profiles.
type ProfileStore interface {
	// Save persists the profile for a given user ID, replacing any previous one.
	Save(ctx context.Context, userID string, profile *domain.UserProfile) error

	// Load retrieves the profile for a given user ID.
	// Returns domain.ErrProfileNotFound if the user has no profile.
	Load(ctx context.Context, userID string) (*domain.UserProfile, error)

	// Delete removes the profile for a given user ID.
	Delete(ctx context.Context, userID string) error

	// List returns all stored user IDs.
	List(ctx context.Context) ([]string, error)
}
