// Package postgres stores user profiles in PostgreSQL as JSONB documents.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the profiles table. EnsureSchema runs it.
const Schema = `CREATE TABLE IF NOT EXISTS user_profiles (
	user_id    TEXT PRIMARY KEY,
	profile    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store implements ports.ProfileStore on a pgx connection pool.
type Store struct {
	db *pgxpool.Pool
}

// New creates a Store on an existing pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Connect opens a pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return New(pool), nil
}

// EnsureSchema creates the profiles table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}

// Save upserts the profile.
func (s *Store) Save(ctx context.Context, userID string, profile *domain.UserProfile) error {
	stored := profile.Clone()
	stored.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("postgres: marshal profile: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO user_profiles (user_id, profile, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET profile = EXCLUDED.profile, updated_at = EXCLUDED.updated_at`,
		userID, data, stored.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: save profile %s: %w", userID, err)
	}
	return nil
}

// Load retrieves the profile for userID.
func (s *Store) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT profile FROM user_profiles WHERE user_id = $1`, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("postgres: load profile %s: %w", userID, err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("postgres: unmarshal profile %s: %w", userID, err)
	}
	return &profile, nil
}

// Delete removes the profile. Deleting a missing profile is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("postgres: delete profile %s: %w", userID, err)
	}
	return nil
}

// List returns all user IDs in order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT user_id FROM user_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list profiles: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: list profiles: %w", err)
	}
	return users, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.db.Close()
}
