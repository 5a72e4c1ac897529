package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/config"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/file"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/memory"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/postgres"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/redis"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/persistence/middleware"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// redisPrefix namespaces every key lifeassist writes to Redis.
const redisPrefix = "lifeassist:"

// Persistence is the opened profile storage.
type Persistence struct {
	Store ports.ProfileStore
	// Locker is nil unless the driver can coordinate replicas.
	Locker ports.DistributedLocker
	closers []func() error
}

// Close releases the underlying connections.
func (p *Persistence) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		errs = append(errs, p.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenStore opens the profile store selected by cfg.Driver and wraps it
// with field encryption when a key is configured.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Persistence, error) {
	p := &Persistence{}

	switch cfg.Driver {
	case config.StoreMemory, "":
		p.Store = memory.NewStore()
	case config.StoreFile:
		p.Store = file.New(cfg.Path)
	case config.StoreRedis:
		opts, err := backend.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(opts)
		var storeOpts []redis.Option
		storeOpts = append(storeOpts, redis.WithPrefix(redisPrefix))
		if cfg.RedisTTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(cfg.RedisTTL))
		}
		store := redis.NewFromClient(client, storeOpts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		p.Store = store
		p.Locker = redis.NewLocker(client, redisPrefix)
		p.closers = append(p.closers, store.Close)
	case config.StorePostgres:
		store, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		p.Store = store
		p.closers = append(p.closers, func() error {
			store.Close()
			return nil
		})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	keys, err := cfg.Keys()
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	if keys != nil {
		enc, err := middleware.NewEncryptionMiddleware(*keys)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.Store = middleware.Chain(p.Store, enc)
	}

	logger.Debug("Profile store ready", "driver", cfg.Driver, "encrypted", keys != nil)
	return p, nil
}
