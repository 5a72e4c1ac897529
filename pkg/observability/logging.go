package observability

import (
	"context"
	"log/slog"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

// LogHooks emits one debug record when an invocation starts and one when it
// ends. The invoker already logs outcomes; these are for tracing a request
// across surfaces.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInvokeStart: func(ctx context.Context, e *domain.InvocationEvent) {
			logger.DebugContext(ctx, "invoke_start",
				"flow", e.Flow,
				"invocation_id", e.InvocationID,
			)
		},
		OnInvokeEnd: func(ctx context.Context, e *domain.InvocationEvent) {
			attrs := []any{
				"flow", e.Flow,
				"invocation_id", e.InvocationID,
				"duration_ms", e.Duration.Milliseconds(),
			}
			if e.ErrorKind != "" {
				attrs = append(attrs, "kind", string(e.ErrorKind))
			}
			logger.DebugContext(ctx, "invoke_end", attrs...)
		},
	}
}
