package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

// Store implements ports.ProfileStore using the local filesystem.
// It stores one JSON file per user in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".lifeassist/profiles".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".lifeassist", "profiles")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("userID cannot be empty")
	}
	if strings.ContainsAny(userID, `/\`) || userID == "." || userID == ".." {
		return "", fmt.Errorf("invalid userID %q", userID)
	}
	return filepath.Join(s.BasePath, userID+".json"), nil
}

// Save persists the profile to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, userID string, profile *domain.UserProfile) error {
	destPath, err := s.path(userID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure profile directory: %w", err)
	}

	stored := profile.Clone()
	stored.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	// Same directory, so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+userID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to replace profile file: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to move profile into place: %w", err)
	}
	return nil
}

// Load retrieves the profile from its JSON file.
func (s *Store) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	filePath, err := s.path(userID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// Delete removes the profile file. Deleting a missing profile is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	filePath, err := s.path(userID)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete profile file: %w", err)
	}
	return nil
}

// List returns the user IDs that have a profile file.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list profile directory: %w", err)
	}

	var users []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "tmp-") {
			continue
		}
		users = append(users, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(users)
	return users, nil
}
