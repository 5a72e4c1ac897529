// Package observability turns invoker lifecycle events into metrics and logs.
//
// Both Metrics.Hooks and LogHooks return domain.LifecycleHooks, so they can be
// combined with domain.MergeHooks and passed to runtime.WithLifecycleHooks.
package observability
