package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an invocation failed.
type ErrorKind string

const (
	// KindUnknownFlow means the requested flow is not registered. It is a
	// programming error and no reasoning call is made.
	KindUnknownFlow ErrorKind = "unknown_flow"
	// KindInvalidInput means the caller's input did not match the flow's input schema.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindGenerationFailed means the reasoning service produced nothing usable:
	// a transport error, a timeout, an empty reply or text that is not a JSON object.
	KindGenerationFailed ErrorKind = "generation_failed"
	// KindInvalidOutput means the service answered, but not in the declared output shape.
	KindInvalidOutput ErrorKind = "invalid_output"
)

// Sentinels for errors.Is checks against a *FlowError.
var (
	ErrUnknownFlow      = errors.New("unknown flow")
	ErrInvalidInput     = errors.New("invalid input")
	ErrGenerationFailed = errors.New("generation failed")
	ErrInvalidOutput    = errors.New("invalid output")
)

// ErrProfileNotFound is returned when a user profile cannot be found in the store.
var ErrProfileNotFound = errors.New("profile not found")

var kindSentinels = map[ErrorKind]error{
	KindUnknownFlow:      ErrUnknownFlow,
	KindInvalidInput:     ErrInvalidInput,
	KindGenerationFailed: ErrGenerationFailed,
	KindInvalidOutput:    ErrInvalidOutput,
}

// FlowError is the failure half of an invocation result.
type FlowError struct {
	Kind ErrorKind
	Flow string
	Err  error
}

// NewFlowError builds a FlowError of the given kind.
func NewFlowError(kind ErrorKind, flow string, err error) *FlowError {
	return &FlowError{Kind: kind, Flow: flow, Err: err}
}

func (e *FlowError) Error() string {
	sentinel := kindSentinels[e.Kind]
	msg := string(e.Kind)
	if sentinel != nil {
		msg = sentinel.Error()
	}
	if e.Flow != "" {
		msg = fmt.Sprintf("flow %q: %s", e.Flow, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FlowError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *FlowError) Is(target error) bool {
	return target != nil && kindSentinels[e.Kind] == target
}

// KindOf returns the kind of the first FlowError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
