package flows

import (
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

const explainPrompt = `Explain why a recommendation suits this user, then score how different it is from what they chose recently.

User persona: {{userPersona}}
Preferences: {{preferences}}
Budget: {{budget}}
Available time: {{time}}
Accessibility needs: {{accessibility}}
Recent choices:
{{#each recentChoices}}
- {{this}}
{{else}}
- none recorded
{{/each}}
{{#if recommendation}}
Recommendation to explain: {{recommendation}}
{{else}}
First pick one recommendation that fits, then explain it.
{{/if}}

Respond with a JSON object with these fields:
- "recommendation": the recommendation being explained
- "explanation": two or three sentences tying it to the persona, budget, time and accessibility needs
- "diversityScore": an integer from 0 to 100, where 100 means nothing like the recent choices
`

func explanationFlow() *domain.Flow {
	return &domain.Flow{
		Name:        Explain,
		Description: "Explains a recommendation against the user's constraints and scores its diversity.",
		InputSchema: schema.Schema{
			"userPersona":    schema.Required(schema.String()).Describe("Short description of who the user is"),
			"preferences":    schema.Required(schema.String()),
			"budget":         schema.Required(schema.FloatMin(0)),
			"time":           schema.Required(schema.String()),
			"accessibility":  schema.Required(schema.String()),
			"recentChoices":  schema.Required(schema.Slice(schema.String())),
			"recommendation": schema.Optional(schema.String()),
		},
		OutputSchema: schema.Schema{
			"recommendation": schema.Optional(schema.String()),
			"explanation":    schema.Required(schema.String()),
			"diversityScore": schema.Required(schema.IntRange(0, 100)).Describe("0 = same as recent choices, 100 = completely different"),
		},
		Prompt: prompt.MustParse(explainPrompt),
		System: prompt.MustParse(systemPersona),
		Config: domain.GenerationConfig{Temperature: temperature(0.4)},
	}
}
