package domain

import (
	"testing"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestFlow_Validate(t *testing.T) {
	var nilFlow *Flow
	assert.Error(t, nilFlow.Validate())
	assert.Error(t, (&Flow{}).Validate())
	assert.Error(t, (&Flow{Name: "x"}).Validate(), "prompt is required")
	assert.ErrorContains(t, (&Flow{
		Name:         "x",
		Prompt:       prompt.MustParse(" \n\t"),
		OutputSchema: schema.Schema{"a": schema.Required(schema.String())},
	}).Validate(), "prompt template is required")
	assert.Error(t, (&Flow{Name: "x", Prompt: prompt.MustParse("hi")}).Validate(), "output schema is required")

	ok := &Flow{
		Name:         "x",
		Prompt:       prompt.MustParse("hi"),
		OutputSchema: schema.Schema{"a": schema.Required(schema.String())},
	}
	assert.NoError(t, ok.Validate())

	ok.InputSchema = schema.Schema{"broken": {}}
	assert.Error(t, ok.Validate())
}

func TestFlow_Render(t *testing.T) {
	f := &Flow{
		Name:   "greet",
		Prompt: prompt.MustParse("Hello {{name}}"),
		System: prompt.MustParse("Tone: {{tone}}"),
	}
	user, system := f.Render(map[string]any{"name": "Ana", "tone": "warm"})
	assert.Equal(t, "Hello Ana", user)
	assert.Equal(t, "Tone: warm", system)

	f.System = nil
	_, system = f.Render(map[string]any{"name": "Ana"})
	assert.Empty(t, system)
}

func TestFlow_UndeclaredFields(t *testing.T) {
	f := &Flow{
		Name:        "x",
		Prompt:      prompt.MustParse("{{query}} {{typo}} {{#each items}}{{this}}{{/each}}"),
		System:      prompt.MustParse("{{tone}} {{typo}}"),
		InputSchema: schema.Schema{"query": schema.Required(schema.String()), "items": schema.Optional(schema.Slice(schema.String()))},
	}
	assert.Equal(t, []string{"tone", "typo"}, f.UndeclaredFields())
}
