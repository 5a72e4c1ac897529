package flows

import (
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

const planPrompt = `Plan the user's day.

Budget: {{budget}}
Time available: {{timeAvailable}}
` + profileBlock + `
The total cost of the plan must not exceed the budget. Leave time to travel between places.

Respond with a JSON object with these fields:
- "plan": an ordered list of objects, each with "time" (e.g. "10:00"), "activity", "location", "estimatedCost" (a number) and "notes"
- "totalCost": the sum of all estimated costs
- "summary": one sentence describing the day
`

func planDayFlow() *domain.Flow {
	step := schema.Object(schema.Schema{
		"time":          schema.Required(schema.String()),
		"activity":      schema.Required(schema.String()),
		"location":      schema.Optional(schema.String()),
		"estimatedCost": schema.Optional(schema.FloatMin(0)),
		"notes":         schema.Optional(schema.String()),
	})

	return &domain.Flow{
		Name:        PlanDay,
		Description: "Builds a time-ordered plan for the day within a budget.",
		InputSchema: schema.Schema{
			"budget":              schema.Required(schema.FloatMin(0)),
			"timeAvailable":       schema.Required(schema.String()),
			domain.KeyUserProfile: schema.Optional(profileType()),
		},
		OutputSchema: schema.Schema{
			"plan":      schema.Required(schema.Slice(step)),
			"totalCost": schema.Required(schema.FloatMin(0)),
			"summary":   schema.Optional(schema.String()),
		},
		Prompt: prompt.MustParse(planPrompt),
		System: prompt.MustParse(tonedPersona),
		Config: domain.GenerationConfig{Temperature: temperature(0.6)},
	}
}
