package flows

import (
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

// Intents the conversational parser can report.
var Intents = []string{"recommendation", "plan", "chat", "settings", "unknown"}

const parsePrompt = `Extract structured parameters from the user's request. Only report what the user actually said; leave out anything they did not mention.

Request: "{{query}}"

Respond with a JSON object with these fields:
- "intent": one of "recommendation", "plan", "chat", "settings", "unknown"
- "budget": the amount of money mentioned, as a number (omit if none)
- "timeAvailable": how much time the user has, in their words (omit if none)
- "preferences": a list of preferences or constraints mentioned (omit if none)
- "location": a place mentioned (omit if none)
- "category": what kind of thing they want, e.g. "food" or "activity" (omit if none)
`

func parseQueryFlow() *domain.Flow {
	return &domain.Flow{
		Name:        ParseQuery,
		Description: "Extracts intent, budget, time and preferences from a free-text request.",
		InputSchema: schema.Schema{
			"query": schema.Required(schema.String()),
		},
		OutputSchema: schema.Schema{
			"intent":        schema.Required(schema.Enum(Intents...)),
			"budget":        schema.Optional(schema.FloatMin(0)),
			"timeAvailable": schema.Optional(schema.String()),
			"preferences":   schema.Optional(schema.Slice(schema.String())),
			"location":      schema.Optional(schema.String()),
			"category":      schema.Optional(schema.String()),
		},
		Prompt: prompt.MustParse(parsePrompt),
		System: prompt.MustParse(`You convert requests into structured data. Answer with a single JSON object and nothing else.`),
		Config: domain.GenerationConfig{Temperature: temperature(0)},
	}
}
