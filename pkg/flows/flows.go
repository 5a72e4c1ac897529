// Package flows declares the assistant's built-in capabilities as flows.
//
// Every flow pairs a prompt template with input and output schemas. The
// templates ask the model for JSON matching the output schema; the invoker
// enforces it.
package flows

import (
	"fmt"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

// Names of the built-in flows.
const (
	Recommend  = "generateRecommendationsFlow"
	Explain    = "explainRecommendationFlow"
	Refine     = "refineRecommendationFlow"
	ParseQuery = "parseConversationalInputFlow"
	PlanDay    = "planMyDayFlow"
	Chat       = "chatAssistantFlow"
)

// Builtins returns fresh definitions of every built-in flow.
func Builtins() []*domain.Flow {
	return []*domain.Flow{
		recommendationsFlow(),
		explanationFlow(),
		refinementFlow(),
		parseQueryFlow(),
		planDayFlow(),
		chatFlow(),
	}
}

// RegisterBuiltins registers every built-in flow with reg.
func RegisterBuiltins(reg *registry.Registry) error {
	for _, f := range Builtins() {
		if err := reg.Register(f); err != nil {
			return fmt.Errorf("builtin flows: %w", err)
		}
	}
	return nil
}

// profileType is the projection of domain.UserProfile that flows accept.
func profileType() schema.Type {
	return schema.Object(schema.Schema{
		"name":             schema.Optional(schema.String()),
		"role":             schema.Optional(schema.String()),
		"interests":        schema.Optional(schema.Slice(schema.String())),
		"location":         schema.Optional(schema.String()),
		"budgetPreference": schema.Optional(schema.FloatMin(0)),
		"aiTone":           schema.Optional(schema.String()),
		"availableTime":    schema.Optional(schema.String()),
		"healthConditions": schema.Optional(schema.Slice(schema.String())),
	})
}

func temperature(t float32) *float32 { return &t }

const systemPersona = `You are a personal life assistant. You give practical, specific suggestions ` +
	`that respect the user's budget, time, health and accessibility needs. ` +
	`Always answer with a single JSON object and nothing else.`

// tonedPersona is systemPersona for flows that receive a user profile.
const tonedPersona = systemPersona + `{{#if userProfile.aiTone}} Use a {{userProfile.aiTone}} tone.{{/if}}`

// profileBlock renders the optional user profile; shared by several prompts.
const profileBlock = `{{#if userProfile}}
About the user:
{{#if userProfile.name}}- Name: {{userProfile.name}}
{{/if}}
{{#if userProfile.role}}- Role: {{userProfile.role}}
{{/if}}
{{#if userProfile.interests}}- Interests: {{userProfile.interests}}
{{/if}}
{{#if userProfile.location}}- Location: {{userProfile.location}}
{{/if}}
{{#if userProfile.budgetPreference}}- Usual budget: {{userProfile.budgetPreference}}
{{/if}}
{{#if userProfile.availableTime}}- Usually available: {{userProfile.availableTime}}
{{/if}}
{{#if userProfile.healthConditions}}- Health considerations: {{userProfile.healthConditions}}
{{/if}}
{{/if}}
`
