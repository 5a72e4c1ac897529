package flows

import (
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

const refinePrompt = `The user reacted to a recommendation. Revise it so it addresses their feedback.

Original recommendation: {{originalRecommendation}}
Original explanation: {{originalExplanation}}
User feedback: {{userFeedback}}
{{#if userPreferences}}
Known preferences: {{userPreferences}}
{{/if}}

Keep what the user did not object to. If the feedback rules the original out entirely, suggest an alternative.

Respond with a JSON object with these fields:
- "refinedRecommendation": the revised recommendation
- "refinedExplanation": why the revision answers the feedback
`

func refinementFlow() *domain.Flow {
	return &domain.Flow{
		Name:        Refine,
		Description: "Revises a recommendation and its explanation from user feedback.",
		InputSchema: schema.Schema{
			"originalRecommendation": schema.Required(schema.String()),
			"originalExplanation":    schema.Required(schema.String()),
			"userFeedback":           schema.Required(schema.String()),
			"userPreferences":        schema.Optional(schema.String()),
		},
		OutputSchema: schema.Schema{
			"refinedRecommendation": schema.Required(schema.String()),
			"refinedExplanation":    schema.Required(schema.String()),
		},
		Prompt: prompt.MustParse(refinePrompt),
		System: prompt.MustParse(systemPersona),
		Config: domain.GenerationConfig{Temperature: temperature(0.5)},
	}
}
