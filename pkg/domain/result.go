package domain

import (
	"errors"
	"time"
)

// Result is the success half of an invocation: the output has been validated
// against the flow's output schema.
type Result struct {
	Flow         string         `json:"flow"`
	InvocationID string         `json:"invocation_id"`
	Output       map[string]any `json:"output"`
	Prompt       string         `json:"-"`
	Model        string         `json:"model,omitempty"`
	Duration     time.Duration  `json:"duration_ns"`
}

// ErrorBody is the transport form of a FlowError.
type ErrorBody struct {
	Kind       ErrorKind         `json:"kind"`
	Message    string            `json:"message"`
	Violations map[string]string `json:"violations,omitempty"`
}

// Outcome is the tagged result callers receive over a transport:
// exactly one of Output or Error is set.
type Outcome struct {
	OK           bool           `json:"ok"`
	Flow         string         `json:"flow"`
	InvocationID string         `json:"invocation_id,omitempty"`
	Output       map[string]any `json:"output,omitempty"`
	Error        *ErrorBody     `json:"error,omitempty"`
}

// NewOutcome folds an invocation's return values into an Outcome.
// violations, if given, lists per-field schema failures.
func NewOutcome(flow string, res *Result, err error, violations map[string]string) Outcome {
	if err == nil && res != nil {
		return Outcome{OK: true, Flow: res.Flow, InvocationID: res.InvocationID, Output: res.Output}
	}
	if err == nil {
		err = errors.New("empty result")
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindGenerationFailed
	}
	return Outcome{
		Flow: flow,
		Error: &ErrorBody{
			Kind:       kind,
			Message:    err.Error(),
			Violations: violations,
		},
	}
}
