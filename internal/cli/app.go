// Package cli wires the configuration into a running App and holds the
// helpers shared by the lifeassist commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	lifeassist "github.com/MahidharReddy003/aislingshot-sub000"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/config"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/assistant"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
)

// NewLogger configures the application logger from cfg.
func NewLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.Format), nil
}

// Runtime is an App together with the resources it holds open.
type Runtime struct {
	*lifeassist.App
	persistence *Persistence
}

// Close releases the profile store.
func (r *Runtime) Close() error {
	if r.persistence == nil {
		return nil
	}
	return r.persistence.Close()
}

// BuildApp validates cfg and builds the App it describes.
func BuildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	reasoner, err := NewReasoner(ctx, cfg.Reasoning)
	if err != nil {
		return nil, err
	}
	return BuildAppWithReasoner(ctx, cfg, logger, reasoner)
}

// BuildAppWithReasoner is BuildApp with an explicit reasoning service.
func BuildAppWithReasoner(ctx context.Context, cfg *config.Config, logger *slog.Logger, reasoner ports.ReasoningService) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	persistence, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	opts := []lifeassist.Option{
		lifeassist.WithReasoner(reasoner),
		lifeassist.WithProfileStore(persistence.Store),
		lifeassist.WithLogger(logger),
		lifeassist.WithTimeout(cfg.Reasoning.Timeout),
		lifeassist.WithAssistantOptions(
			assistant.WithMaxInputSize(cfg.Assistant.MaxInputSize),
			assistant.WithConcurrency(cfg.Assistant.Concurrency),
		),
	}
	if persistence.Locker != nil {
		opts = append(opts, lifeassist.WithLocker(persistence.Locker))
	}
	if cfg.Flows.Dir != "" {
		opts = append(opts, lifeassist.WithFlowDir(cfg.Flows.Dir))
	}

	app, err := lifeassist.New(ctx, opts...)
	if err != nil {
		_ = persistence.Close()
		return nil, err
	}
	return &Runtime{App: app, persistence: persistence}, nil
}
