package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/runtime"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReasoner struct {
	mock.Mock
}

func (m *mockReasoner) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GenerateResponse, error) {
	args := m.Called(ctx, req)
	var resp *ports.GenerateResponse
	if v := args.Get(0); v != nil {
		resp = v.(*ports.GenerateResponse)
	}
	return resp, args.Error(1)
}

func reply(text string) *ports.GenerateResponse {
	return &ports.GenerateResponse{Text: text, Model: "test-model"}
}

func newEngine(t *testing.T, reasoner ports.ReasoningService, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	reg := registry.New()
	require.NoError(t, flows.RegisterBuiltins(reg))
	reg.Seal()
	return runtime.NewEngine(reg, reasoner, opts...)
}

func explanationInput() map[string]any {
	return map[string]any{
		"userPersona":   "student",
		"preferences":   "vegetarian",
		"budget":        120,
		"time":          "evening",
		"accessibility": "none",
		"recentChoices": []any{"pizza", "museum"},
	}
}

func TestEngine_Invoke_Success(t *testing.T) {
	reasoner := new(mockReasoner)
	reasoner.On("Generate", mock.Anything, mock.Anything).
		Return(reply(`{"recommendation":"Thali at Green Leaf","explanation":"Vegetarian and within budget.","diversityScore":73}`), nil).
		Once()

	engine := newEngine(t, reasoner)
	res, err := engine.Invoke(context.Background(), flows.Explain, explanationInput())
	require.NoError(t, err)

	assert.Equal(t, flows.Explain, res.Flow)
	assert.NotEmpty(t, res.InvocationID)
	assert.Equal(t, "test-model", res.Model)
	assert.Equal(t, "Vegetarian and within budget.", res.Output["explanation"])
	assert.Equal(t, 73, res.Output["diversityScore"])

	req := reasoner.Calls[0].Arguments.Get(1).(ports.GenerateRequest)
	assert.Contains(t, req.Prompt, "120")
	assert.Contains(t, req.Prompt, "vegetarian")
	assert.NotContains(t, req.Prompt, "{{")
	assert.Equal(t, flows.Explain, req.Flow)
	assert.NotEmpty(t, req.OutputSchema)
	reasoner.AssertExpectations(t)
}

func TestEngine_Invoke_MissingRequiredOutputField(t *testing.T) {
	reasoner := new(mockReasoner)
	reasoner.On("Generate", mock.Anything, mock.Anything).
		Return(reply(`{"recommendation":"Thali","diversityScore":50}`), nil)

	engine := newEngine(t, reasoner)
	res, err := engine.Invoke(context.Background(), flows.Explain, explanationInput())

	assert.Nil(t, res, "no partial success")
	assert.ErrorIs(t, err, domain.ErrInvalidOutput)
	assert.Contains(t, err.Error(), "explanation")
}

func TestEngine_Invoke_OutputOutOfRange(t *testing.T) {
	reasoner := new(mockReasoner)
	reasoner.On("Generate", mock.Anything, mock.Anything).
		Return(reply(`{"explanation":"x","diversityScore":150}`), nil)

	_, err := newEngine(t, reasoner).Invoke(context.Background(), flows.Explain, explanationInput())
	assert.ErrorIs(t, err, domain.ErrInvalidOutput)
}

func TestEngine_Invoke_UnknownFlow(t *testing.T) {
	reasoner := new(mockReasoner)

	_, err := newEngine(t, reasoner).Invoke(context.Background(), "noSuchFlow", map[string]any{})

	assert.ErrorIs(t, err, domain.ErrUnknownFlow)
	assert.ErrorIs(t, err, registry.ErrNotFound)
	reasoner.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestEngine_Invoke_InvalidInput(t *testing.T) {
	reasoner := new(mockReasoner)
	input := explanationInput()
	delete(input, "preferences")
	input["budget"] = "lots"

	_, err := newEngine(t, reasoner).Invoke(context.Background(), flows.Explain, input)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "preferences")
	assert.Contains(t, err.Error(), "budget")
	reasoner.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestEngine_Invoke_GenerationFailures(t *testing.T) {
	tests := []struct {
		name string
		resp *ports.GenerateResponse
		err  error
	}{
		{"service error", nil, errors.New("connection refused")},
		{"nil response", nil, nil},
		{"empty text", reply("   "), nil},
		{"null", reply("null"), nil},
		{"prose", reply("Sorry, I can't help with that."), nil},
		{"array", reply(`[{"explanation":"x"}]`), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasoner := new(mockReasoner)
			reasoner.On("Generate", mock.Anything, mock.Anything).Return(tt.resp, tt.err)

			res, err := newEngine(t, reasoner).Invoke(context.Background(), flows.Explain, explanationInput())
			assert.Nil(t, res)
			assert.ErrorIs(t, err, domain.ErrGenerationFailed)
			assert.Equal(t, domain.KindGenerationFailed, domain.KindOf(err))
		})
	}
}

func TestEngine_Invoke_FencedReply(t *testing.T) {
	reasoner := new(mockReasoner)
	reasoner.On("Generate", mock.Anything, mock.Anything).
		Return(reply("```json\n{\"explanation\":\"ok\",\"diversityScore\":0}\n```"), nil)

	res, err := newEngine(t, reasoner).Invoke(context.Background(), flows.Explain, explanationInput())
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Output["explanation"])
}

func TestEngine_Invoke_TimeoutIsGenerationFailed(t *testing.T) {
	reasoner := new(mockReasoner)
	reasoner.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	engine := newEngine(t, reasoner, runtime.WithTimeout(20*time.Millisecond))
	_, err := engine.Invoke(context.Background(), flows.Explain, explanationInput())

	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEngine_Invoke_NoCaching(t *testing.T) {
	reasoner := new(mockReasoner)
	reasoner.On("Generate", mock.Anything, mock.Anything).
		Return(reply(`{"explanation":"x","diversityScore":1}`), nil)

	engine := newEngine(t, reasoner)
	for i := 0; i < 2; i++ {
		_, err := engine.Invoke(context.Background(), flows.Explain, explanationInput())
		require.NoError(t, err)
	}
	reasoner.AssertNumberOfCalls(t, "Generate", 2)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	reasoner := new(mockReasoner)
	reasoner.On("Generate", mock.Anything, mock.Anything).
		Return(reply(`{"explanation":"x"}`), nil)

	var started []string
	var ended []domain.ErrorKind
	hooks := domain.LifecycleHooks{
		OnInvokeStart: func(ctx context.Context, e *domain.InvocationEvent) {
			started = append(started, e.InvocationID)
		},
		OnInvokeEnd: func(ctx context.Context, e *domain.InvocationEvent) {
			ended = append(ended, e.ErrorKind)
		},
	}

	engine := newEngine(t, reasoner,
		runtime.WithLifecycleHooks(hooks),
		runtime.WithIDGenerator(func() string { return "inv-1" }),
	)

	_, err := engine.Invoke(context.Background(), flows.Explain, explanationInput())
	require.Error(t, err)
	_, err = engine.Invoke(context.Background(), "missing", nil)
	require.Error(t, err)

	assert.Equal(t, []string{"inv-1", "inv-1"}, started)
	assert.Equal(t, []domain.ErrorKind{domain.KindInvalidOutput, domain.KindUnknownFlow}, ended)
}
