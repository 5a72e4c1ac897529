package flows

import (
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

// Categories a recommendation request can be narrowed to.
var Categories = []string{"any", "food", "activity", "event", "study", "shopping", "wellness"}

const recommendPrompt = `Suggest {{count}} personalized recommendations in the category "{{category}}".
{{#if context}}
What the user said: {{context}}
{{/if}}
` + profileBlock + `
Prefer options that fit the user's usual budget and health considerations. Do not repeat the same place twice.

Respond with a JSON object with these fields:
- "recommendations": a list of exactly {{count}} objects, each with "title", "description", "category", "estimatedCost" (a number, 0 if free) and "reason" (why it fits this user)
- "summary": one sentence introducing the list
`

func recommendationsFlow() *domain.Flow {
	item := schema.Object(schema.Schema{
		"title":         schema.Required(schema.String()),
		"description":   schema.Required(schema.String()),
		"category":      schema.Optional(schema.String()),
		"estimatedCost": schema.Optional(schema.FloatMin(0)),
		"reason":        schema.Optional(schema.String()),
	})

	return &domain.Flow{
		Name:        Recommend,
		Description: "Generates personalized recommendations from the user's profile.",
		InputSchema: schema.Schema{
			domain.KeyUserProfile: schema.Optional(profileType()),
			"category":            schema.Optional(schema.Enum(Categories...)).WithDefault("any"),
			"context":             schema.Optional(schema.String()).Describe("Free-text request from the user"),
			"count":               schema.Optional(schema.IntRange(1, 10)).WithDefault(3),
		},
		OutputSchema: schema.Schema{
			"recommendations": schema.Required(schema.Slice(item)),
			"summary":         schema.Optional(schema.String()),
		},
		Prompt: prompt.MustParse(recommendPrompt),
		System: prompt.MustParse(tonedPersona),
		Config: domain.GenerationConfig{Temperature: temperature(0.8)},
	}
}
