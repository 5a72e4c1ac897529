package flows_test

import (
	"testing"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterBuiltins(t *testing.T) {
	reg := registry.New()
	require.NoError(t, flows.RegisterBuiltins(reg))

	assert.Equal(t, []string{
		flows.Chat,
		flows.Explain,
		flows.Recommend,
		flows.ParseQuery,
		flows.PlanDay,
		flows.Refine,
	}, reg.Names())
}

func TestRegisterBuiltins_Twice(t *testing.T) {
	reg := registry.New()
	require.NoError(t, flows.RegisterBuiltins(reg))

	err := flows.RegisterBuiltins(reg)
	assert.ErrorIs(t, err, registry.ErrDuplicateFlow)
	assert.Contains(t, err.Error(), flows.Recommend)
}

func TestBuiltins_TemplatesOnlyReferenceDeclaredInputs(t *testing.T) {
	for _, f := range flows.Builtins() {
		t.Run(f.Name, func(t *testing.T) {
			refs := f.Prompt.Fields()
			if f.System != nil {
				refs = append(refs, f.System.Fields()...)
			}
			for _, field := range refs {
				_, ok := f.InputSchema[field]
				assert.Truef(t, ok, "template references undeclared field %q", field)
			}
		})
	}
}

func lookup(t *testing.T, name string) *domain.Flow {
	t.Helper()
	reg := registry.New()
	require.NoError(t, flows.RegisterBuiltins(reg))
	f, err := reg.Lookup(name)
	require.NoError(t, err)
	return f
}

func TestExplain_RendersScenario(t *testing.T) {
	f := lookup(t, flows.Explain)

	in, err := schema.Normalize(f.InputSchema, map[string]any{
		"userPersona":   "student",
		"preferences":   "vegetarian",
		"budget":        120,
		"time":          "evening",
		"accessibility": "none",
		"recentChoices": []any{"pizza", "museum"},
	})
	require.NoError(t, err)

	userPrompt, system := f.Render(in)
	assert.Contains(t, userPrompt, "Budget: 120\n")
	assert.Contains(t, userPrompt, "Preferences: vegetarian")
	assert.Contains(t, userPrompt, "- pizza\n- museum\n")
	assert.Contains(t, userPrompt, "First pick one recommendation")
	assert.NotContains(t, userPrompt, "{{")
	assert.Contains(t, system, "JSON")
}

func TestChat_RendersWithoutOptionalProfile(t *testing.T) {
	f := lookup(t, flows.Chat)

	in, err := schema.Normalize(f.InputSchema, map[string]any{"message": "hi"})
	require.NoError(t, err)

	userPrompt, system := f.Render(in)
	assert.NotEmpty(t, userPrompt)
	assert.NotContains(t, userPrompt, "About the user")
	assert.Contains(t, userPrompt, "The user says: hi")
	assert.NotContains(t, system, "tone")
}

func TestChat_RendersProfile(t *testing.T) {
	f := lookup(t, flows.Chat)

	profile := &domain.UserProfile{Name: "Priya", Interests: []string{"jazz", "chess"}, AITone: "playful"}
	in, err := schema.Normalize(f.InputSchema, map[string]any{
		"message":             "what should I do tonight?",
		domain.KeyUserProfile: profile.ToInput(),
	})
	require.NoError(t, err)

	userPrompt, system := f.Render(in)
	assert.Contains(t, userPrompt, "About the user:\n- Name: Priya\n- Interests: jazz, chess\n")
	assert.NotContains(t, userPrompt, "Location")
	assert.Contains(t, system, "Use a playful tone.")
}

func TestRecommend_AppliesDefaults(t *testing.T) {
	f := lookup(t, flows.Recommend)

	in, err := schema.Normalize(f.InputSchema, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "any", in["category"])
	assert.Equal(t, 3, in["count"])

	userPrompt, _ := f.Render(in)
	assert.Contains(t, userPrompt, "Suggest 3 personalized recommendations")

	_, err = schema.Normalize(f.InputSchema, map[string]any{"category": "casino"})
	assert.Error(t, err)
}

func TestOutputSchemas_AcceptRepresentativeReplies(t *testing.T) {
	tests := []struct {
		flow   string
		output map[string]any
	}{
		{flows.Recommend, map[string]any{
			"recommendations": []any{map[string]any{"title": "Cubbon Park walk", "description": "Morning walk", "estimatedCost": float64(0)}},
		}},
		{flows.Explain, map[string]any{"explanation": "fits", "diversityScore": float64(40)}},
		{flows.Refine, map[string]any{"refinedRecommendation": "a", "refinedExplanation": "b"}},
		{flows.ParseQuery, map[string]any{"intent": "plan", "budget": float64(50), "preferences": []any{"outdoors"}}},
		{flows.PlanDay, map[string]any{
			"plan":      []any{map[string]any{"time": "10:00", "activity": "Brunch", "estimatedCost": 15.5}},
			"totalCost": 15.5,
		}},
		{flows.Chat, map[string]any{"response": "Sure!"}},
	}

	for _, tt := range tests {
		t.Run(tt.flow, func(t *testing.T) {
			f := lookup(t, tt.flow)
			assert.NoError(t, schema.Validate(f.OutputSchema, tt.output))
		})
	}
}

func TestParseQuery_RejectsUnknownIntent(t *testing.T) {
	f := lookup(t, flows.ParseQuery)
	err := schema.Validate(f.OutputSchema, map[string]any{"intent": "order_pizza"})
	assert.Error(t, err)
}
