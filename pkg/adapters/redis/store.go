package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the adapter writes.
const DefaultPrefix = "lifeassist:profile:"

// Store implements ports.ProfileStore using Redis.
// Profiles are JSON strings; a sorted set indexes user IDs by expiry so List
// does not need KEYS or SCAN.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for profiles. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for profiles.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client { return s.client }

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the profile to Redis.
func (s *Store) Save(ctx context.Context, userID string, profile *domain.UserProfile) error {
	stored := profile.Clone()
	stored.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	// Score = expiry time; far future when profiles never expire
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(userID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: userID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the profile from Redis.
func (s *Store) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(val, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// Delete removes the profile and its index entry.
func (s *Store) Delete(ctx context.Context, userID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(userID))
	pipe.ZRem(ctx, s.indexKey(), userID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns stored user IDs, pruning index entries whose profile expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired profiles: %w", err)
	}

	users, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return users, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
