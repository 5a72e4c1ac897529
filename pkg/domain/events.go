package domain

import (
	"context"
	"time"
)

// InvocationEvent describes one flow invocation as seen by lifecycle hooks.
type InvocationEvent struct {
	Timestamp    time.Time     `json:"timestamp"`
	Flow         string        `json:"flow"`
	InvocationID string        `json:"invocation_id"`
	Duration     time.Duration `json:"duration,omitempty"`
	// ErrorKind is empty on success and on start events.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for invoker observability.
type LifecycleHooks struct {
	OnInvokeStart func(context.Context, *InvocationEvent)
	OnInvokeEnd   func(context.Context, *InvocationEvent)
}

// MergeHooks combines hooks so each callback fans out in order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var starts, ends []func(context.Context, *InvocationEvent)
	for _, h := range hooks {
		if h.OnInvokeStart != nil {
			starts = append(starts, h.OnInvokeStart)
		}
		if h.OnInvokeEnd != nil {
			ends = append(ends, h.OnInvokeEnd)
		}
	}

	var merged LifecycleHooks
	if len(starts) > 0 {
		merged.OnInvokeStart = func(ctx context.Context, evt *InvocationEvent) {
			for _, fn := range starts {
				fn(ctx, evt)
			}
		}
	}
	if len(ends) > 0 {
		merged.OnInvokeEnd = func(ctx context.Context, evt *InvocationEvent) {
			for _, fn := range ends {
				fn(ctx, evt)
			}
		}
	}
	return merged
}
