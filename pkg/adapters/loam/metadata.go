package loam

import "github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"

// FlowMetadata is the frontmatter of a flow document. The document body is
// the prompt template.
type FlowMetadata struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`

	// System is an optional system instruction template.
	System string `json:"system" mapstructure:"system"`

	// Generation settings
	Model           string   `json:"model" mapstructure:"model"`
	Temperature     *float64 `json:"temperature,omitempty" mapstructure:"temperature"`
	MaxOutputTokens int      `json:"max_output_tokens,omitempty" mapstructure:"max_output_tokens"`

	Input  []schema.FieldSpec `json:"input" mapstructure:"input"`
	Output []schema.FieldSpec `json:"output" mapstructure:"output"`
}
