package runtime

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/google/uuid"
)

// Engine invokes registered flows against a reasoning service.
// It holds no per-invocation state and is safe for concurrent use.
type Engine struct {
	catalog  ports.FlowCatalog
	reasoner ports.ReasoningService
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	redactor *logging.Redactor
	timeout  time.Duration
	newID    func() string
	now      func() time.Time
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRedactor controls how inputs are masked in debug logs.
func WithRedactor(r *logging.Redactor) EngineOption {
	return func(e *Engine) {
		e.redactor = r
	}
}

// WithTimeout bounds each reasoning call. Zero leaves the caller's context
// deadline as the only limit.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithIDGenerator overrides how invocation IDs are minted.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		e.newID = fn
	}
}

// NewEngine creates an invoker over the given catalog (usually a sealed
// *registry.Registry) and reasoning service.
func NewEngine(catalog ports.FlowCatalog, reasoner ports.ReasoningService, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:  catalog,
		reasoner: reasoner,
		logger:   logging.NewNop(),
		redactor: logging.MustNewRedactor(logging.DefaultSensitiveKeys),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Invoke runs the named flow with input.
//
// On success the returned Result's Output has passed the flow's output
// schema. On failure the error is a *domain.FlowError whose Kind tells the
// caller which stage failed; no partial output is ever returned.
func (e *Engine) Invoke(ctx context.Context, name string, input map[string]any) (*domain.Result, error) {
	start := e.now()
	evt := &domain.InvocationEvent{
		Timestamp:    start,
		Flow:         name,
		InvocationID: e.newID(),
	}
	if e.hooks.OnInvokeStart != nil {
		e.hooks.OnInvokeStart(ctx, evt)
	}

	res, err := e.invoke(ctx, evt.InvocationID, name, input)

	end := *evt
	end.Duration = e.now().Sub(start)
	end.Err = err
	end.ErrorKind = domain.KindOf(err)
	e.logOutcome(&end)
	if e.hooks.OnInvokeEnd != nil {
		e.hooks.OnInvokeEnd(ctx, &end)
	}

	if err != nil {
		return nil, err
	}
	res.Duration = end.Duration
	return res, nil
}

func (e *Engine) invoke(ctx context.Context, id, name string, input map[string]any) (*domain.Result, error) {
	flow, err := e.catalog.Lookup(name)
	if err != nil {
		return nil, domain.NewFlowError(domain.KindUnknownFlow, name, err)
	}

	normalized, err := schema.Normalize(flow.InputSchema, input)
	if err != nil {
		return nil, domain.NewFlowError(domain.KindInvalidInput, name, err)
	}

	userPrompt, system := flow.Render(normalized)
	e.logger.Debug("invoking flow",
		"flow", name,
		"invocation_id", id,
		"input", e.redactor.Redact(normalized),
		"prompt_bytes", len(userPrompt),
	)

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.reasoner.Generate(callCtx, ports.GenerateRequest{
		Flow:         name,
		Prompt:       userPrompt,
		System:       system,
		OutputSchema: flow.OutputSchema,
		Config:       flow.Config,
	})
	if err != nil {
		return nil, domain.NewFlowError(domain.KindGenerationFailed, name, err)
	}
	if resp == nil {
		return nil, domain.NewFlowError(domain.KindGenerationFailed, name, errors.New("no response"))
	}

	raw, err := DecodeReply(resp.Text)
	if err != nil {
		return nil, domain.NewFlowError(domain.KindGenerationFailed, name, err)
	}

	output, err := schema.Normalize(flow.OutputSchema, raw)
	if err != nil {
		return nil, domain.NewFlowError(domain.KindInvalidOutput, name, err)
	}

	return &domain.Result{
		Flow:         name,
		InvocationID: id,
		Output:       output,
		Prompt:       userPrompt,
		Model:        resp.Model,
	}, nil
}

func (e *Engine) logOutcome(evt *domain.InvocationEvent) {
	attrs := []any{
		"flow", evt.Flow,
		"invocation_id", evt.InvocationID,
		"duration", evt.Duration,
	}
	switch evt.ErrorKind {
	case "":
		e.logger.Info("flow completed", attrs...)
	case domain.KindInvalidOutput:
		// The service answered off-contract; this is the signal prompt authors care about.
		e.logger.Warn("flow output rejected by schema", append(attrs, "error", evt.Err)...)
	case domain.KindUnknownFlow:
		e.logger.Error("flow not registered", append(attrs, "error", evt.Err)...)
	default:
		e.logger.Warn("flow failed", append(attrs, "kind", string(evt.ErrorKind), "error", evt.Err)...)
	}
}
