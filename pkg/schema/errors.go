package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name, dotted for nested objects
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// Violations flattens err into a map of field key to reason, suitable for
// API error bodies. The AggregateError may be wrapped. Non-validation
// errors yield nil.
func Violations(err error) map[string]string {
	var aggr *AggregateError
	if !errors.As(err, &aggr) {
		return nil
	}
	errs := aggr.Errors
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if ve, ok := e.(*ValidationError); ok {
			out[ve.Key] = ve.Reason
		}
	}
	return out
}
