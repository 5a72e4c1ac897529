package logging

import (
	"fmt"
	"regexp"
)

// DefaultSensitiveKeys matches input fields that must never reach the logs verbatim.
var DefaultSensitiveKeys = []string{
	`(?i)health`,
	`(?i)location`,
	`(?i)api_?key`,
	`(?i)token`,
	`(?i)password`,
}

// Redactor masks values whose keys match any of its patterns.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor compiles the key patterns.
func NewRedactor(patterns []string) (*Redactor, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("redact pattern %q: %w", p, err)
		}
		compiled[i] = re
	}
	return &Redactor{patterns: compiled}, nil
}

// MustNewRedactor is like NewRedactor but panics on an invalid pattern.
func MustNewRedactor(patterns []string) *Redactor {
	r, err := NewRedactor(patterns)
	if err != nil {
		panic(err)
	}
	return r
}

// Redact returns a deep copy of m with sensitive values replaced by "***".
// The input map is never modified.
func (r *Redactor) Redact(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if r.sensitive(k) {
			out[k] = "***"
			continue
		}
		out[k] = r.redactValue(v)
	}
	return out
}

func (r *Redactor) redactValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return r.Redact(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = r.redactValue(e)
		}
		return out
	}
	return v
}

func (r *Redactor) sensitive(key string) bool {
	for _, p := range r.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
