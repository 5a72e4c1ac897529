package lifeassist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/runtime"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/loam"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/memory"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/assistant"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/observability"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/profile"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
)

// ErrNoReasoner is returned by New when no reasoning service was configured.
var ErrNoReasoner = errors.New("lifeassist: a reasoning service is required")

// App is the high-level entry point of the library. It owns a sealed flow
// registry, the invoker over it and the typed assistant built on top.
type App struct {
	registry  *registry.Registry
	engine    *runtime.Engine
	assistant *assistant.Assistant
	profiles  *profile.Manager
	metrics   *observability.Metrics

	reasoner      ports.ReasoningService
	store         ports.ProfileStore
	locker        ports.DistributedLocker
	sources       []ports.FlowSource
	flowDirs      []string
	skipBuiltins  bool
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	timeout       time.Duration
	assistantOpts []assistant.Option
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithReasoner sets the reasoning service every flow is sent to. Required.
func WithReasoner(r ports.ReasoningService) Option {
	return func(a *App) {
		a.reasoner = r
	}
}

// WithProfileStore sets where user profiles live. Defaults to memory.
func WithProfileStore(store ports.ProfileStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithLocker serializes profile updates across replicas.
func WithLocker(l ports.DistributedLocker) Option {
	return func(a *App) {
		a.locker = l
	}
}

// WithFlowSource registers every flow the source yields, after the builtins.
func WithFlowSource(src ports.FlowSource) Option {
	return func(a *App) {
		a.sources = append(a.sources, src)
	}
}

// WithFlowDir loads Markdown flow documents from dir.
func WithFlowDir(dir string) Option {
	return func(a *App) {
		if dir != "" {
			a.flowDirs = append(a.flowDirs, dir)
		}
	}
}

// WithoutBuiltins leaves the built-in assistant flows out of the registry.
// The typed assistant then only works if equivalent flows are loaded.
func WithoutBuiltins() Option {
	return func(a *App) {
		a.skipBuiltins = true
	}
}

// WithLifecycleHooks registers observability hooks, in addition to the
// metrics and debug logging hooks the App installs itself.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = domain.MergeHooks(a.hooks, hooks)
	}
}

// WithMetrics records invocations in m instead of a fresh registry.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithTimeout bounds each reasoning call.
func WithTimeout(d time.Duration) Option {
	return func(a *App) {
		a.timeout = d
	}
}

// WithAssistantOptions forwards options to the typed assistant.
func WithAssistantOptions(opts ...assistant.Option) Option {
	return func(a *App) {
		a.assistantOpts = append(a.assistantOpts, opts...)
	}
}

// New wires an App. Flows are registered in this order: builtins, flow
// directories, then flow sources; a name defined twice is an error.
func New(ctx context.Context, opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	if a.reasoner == nil {
		return nil, ErrNoReasoner
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.metrics == nil {
		a.metrics = observability.NewMetrics()
	}

	reg, err := a.buildRegistry(ctx)
	if err != nil {
		return nil, err
	}
	a.registry = reg

	hooks := domain.MergeHooks(a.metrics.Hooks(), observability.LogHooks(a.logger), a.hooks)
	a.engine = runtime.NewEngine(reg, a.reasoner,
		runtime.WithLogger(a.logger),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithTimeout(a.timeout),
	)

	managerOpts := []profile.Option{profile.WithLogger(a.logger)}
	if a.locker != nil {
		managerOpts = append(managerOpts, profile.WithLocker(a.locker))
	}
	a.profiles = profile.NewManager(a.store, managerOpts...)

	assistantOpts := append([]assistant.Option{
		assistant.WithProfiles(a.store),
		assistant.WithLogger(a.logger),
	}, a.assistantOpts...)
	a.assistant = assistant.New(a.engine, assistantOpts...)

	a.logger.Info("flow registry sealed", "flows", reg.Len())
	return a, nil
}

func (a *App) buildRegistry(ctx context.Context) (*registry.Registry, error) {
	reg := registry.New()
	if !a.skipBuiltins {
		if err := flows.RegisterBuiltins(reg); err != nil {
			return nil, err
		}
	}

	sources := make([]ports.FlowSource, 0, len(a.flowDirs)+len(a.sources))
	for _, dir := range a.flowDirs {
		loader, err := loam.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("flow dir %s: %w", dir, err)
		}
		sources = append(sources, loader)
	}
	sources = append(sources, a.sources...)

	for _, src := range sources {
		loaded, err := src.LoadFlows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load flows: %w", err)
		}
		for _, f := range loaded {
			if err := reg.Register(f); err != nil {
				return nil, err
			}
			a.logger.Debug("flow registered", "flow", f.Name)
		}
	}
	reg.Seal()
	return reg, nil
}

// Invoke runs the named flow. See runtime.Engine.Invoke for the error contract.
func (a *App) Invoke(ctx context.Context, name string, input map[string]any) (*domain.Result, error) {
	return a.engine.Invoke(ctx, name, input)
}

// Flows returns the sealed registry.
func (a *App) Flows() *registry.Registry { return a.registry }

// Invoker returns the flow invoker, for adapters that take ports.FlowInvoker.
func (a *App) Invoker() ports.FlowInvoker { return a.engine }

// Assistant returns the typed client of the built-in flows.
func (a *App) Assistant() *assistant.Assistant { return a.assistant }

// Profiles returns the profile manager.
func (a *App) Profiles() *profile.Manager { return a.profiles }

// Metrics returns the Prometheus collectors fed by every invocation.
func (a *App) Metrics() *observability.Metrics { return a.metrics }

// Logger returns the logger the App was built with.
func (a *App) Logger() *slog.Logger { return a.logger }
