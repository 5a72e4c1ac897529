package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

// GenerationConfig carries per-flow sampling settings forwarded to the
// reasoning service. Zero values defer to the service defaults.
type GenerationConfig struct {
	Model           string   `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature     *float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxOutputTokens int32    `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
}

// Flow is a named, schema-guarded prompt. A Flow is immutable once registered.
type Flow struct {
	Name         string
	Description  string
	InputSchema  schema.Schema
	OutputSchema schema.Schema
	Prompt       *prompt.Template
	// System is an optional instruction rendered with the same input.
	System *prompt.Template
	Config GenerationConfig
}

// Validate checks that the definition is complete enough to be invoked.
func (f *Flow) Validate() error {
	if f == nil {
		return errors.New("flow is nil")
	}
	if f.Name == "" {
		return errors.New("flow name is required")
	}
	if f.Prompt == nil || strings.TrimSpace(f.Prompt.Source()) == "" {
		return fmt.Errorf("flow %q: prompt template is required", f.Name)
	}
	if len(f.OutputSchema) == 0 {
		return fmt.Errorf("flow %q: output schema is required", f.Name)
	}
	for key, field := range f.InputSchema {
		if field.Type == nil {
			return fmt.Errorf("flow %q: input field %s has no type", f.Name, key)
		}
	}
	for key, field := range f.OutputSchema {
		if field.Type == nil {
			return fmt.Errorf("flow %q: output field %s has no type", f.Name, key)
		}
	}
	return nil
}

// Render produces the user prompt and system instruction for an already
// validated input.
func (f *Flow) Render(input map[string]any) (userPrompt, system string) {
	userPrompt = f.Prompt.Render(input)
	if f.System != nil {
		system = f.System.Render(input)
	}
	return userPrompt, system
}

// UndeclaredFields lists the top-level fields the templates reference that
// the input schema does not declare. They would always render empty.
func (f *Flow) UndeclaredFields() []string {
	if f == nil || f.Prompt == nil {
		return nil
	}
	refs := f.Prompt.Fields()
	if f.System != nil {
		refs = append(refs, f.System.Fields()...)
	}
	seen := map[string]bool{}
	var missing []string
	for _, ref := range refs {
		if _, ok := f.InputSchema[ref]; ok || seen[ref] {
			continue
		}
		seen[ref] = true
		missing = append(missing, ref)
	}
	slices.Sort(missing)
	return missing
}
