package flows

import (
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

const chatPrompt = profileBlock + `
The user says: {{message}}

Reply helpfully and briefly. When it makes sense, offer follow-up actions the user could take.

Respond with a JSON object with these fields:
- "response": your reply to the user, Markdown allowed
- "suggestedActions": a short list of follow-up actions (omit if none)
`

func chatFlow() *domain.Flow {
	return &domain.Flow{
		Name:        Chat,
		Description: "Answers a free-form chat message in the context of the user's profile.",
		InputSchema: schema.Schema{
			"message":             schema.Required(schema.String()),
			domain.KeyUserProfile: schema.Optional(profileType()),
		},
		OutputSchema: schema.Schema{
			"response":         schema.Required(schema.String()),
			"suggestedActions": schema.Optional(schema.Slice(schema.String())),
		},
		Prompt: prompt.MustParse(chatPrompt),
		System: prompt.MustParse(tonedPersona),
		Config: domain.GenerationConfig{Temperature: temperature(0.7)},
	}
}
