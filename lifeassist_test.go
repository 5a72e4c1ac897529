package lifeassist_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []*domain.Flow

func (s staticSource) LoadFlows(ctx context.Context) ([]*domain.Flow, error) { return s, nil }

type failingSource struct{ err error }

func (f failingSource) LoadFlows(ctx context.Context) ([]*domain.Flow, error) { return nil, f.err }

func echoFlow(name string) *domain.Flow {
	return &domain.Flow{
		Name:         name,
		InputSchema:  schema.Schema{"text": schema.Required(schema.String())},
		OutputSchema: schema.Schema{"echo": schema.Required(schema.String())},
		Prompt:       prompt.MustParse("Echo {{text}}"),
	}
}

func TestNew_RequiresReasoner(t *testing.T) {
	_, err := lifeassist.New(context.Background())
	assert.ErrorIs(t, err, lifeassist.ErrNoReasoner)
}

func TestNew_RegistersBuiltinsAndSources(t *testing.T) {
	app, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(fixedReasoner(`{"echo":"hi"}`)),
		lifeassist.WithFlowSource(staticSource{echoFlow("echoFlow")}),
	)
	require.NoError(t, err)

	assert.Equal(t, len(flows.Builtins())+1, app.Flows().Len())
	assert.Contains(t, app.Flows().Names(), "echoFlow")

	// The registry is sealed once the App exists.
	assert.ErrorIs(t, app.Flows().Register(echoFlow("late")), registry.ErrSealed)

	res, err := app.Invoke(context.Background(), "echoFlow", map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Output["echo"])
}

func TestNew_WithoutBuiltins(t *testing.T) {
	app, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(fixedReasoner(`{}`)),
		lifeassist.WithoutBuiltins(),
	)
	require.NoError(t, err)
	assert.Zero(t, app.Flows().Len())

	_, err = app.Invoke(context.Background(), flows.Chat, map[string]any{"message": "hi"})
	assert.ErrorIs(t, err, domain.ErrUnknownFlow)
}

func TestNew_DuplicateFlowFails(t *testing.T) {
	_, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(fixedReasoner(`{}`)),
		lifeassist.WithFlowSource(staticSource{echoFlow(flows.Chat)}),
	)
	assert.ErrorIs(t, err, registry.ErrDuplicateFlow)
}

func TestNew_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("unreadable")
	_, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(fixedReasoner(`{}`)),
		lifeassist.WithFlowSource(failingSource{err: boom}),
	)
	assert.ErrorIs(t, err, boom)
}

func TestNew_FlowDir(t *testing.T) {
	dir := t.TempDir()
	doc := `---
name: moodFlow
description: Names the mood of a sentence
input:
  - name: sentence
    type: string
    required: true
output:
  - name: mood
    type: string
    enum: [happy, sad, neutral]
    required: true
---
What is the mood of: {{sentence}}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mood.md"), []byte(doc), 0o644))

	app, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(fixedReasoner(`{"mood":"happy"}`)),
		lifeassist.WithFlowDir(dir),
	)
	require.NoError(t, err)

	res, err := app.Invoke(context.Background(), "moodFlow", map[string]any{"sentence": "What a day!"})
	require.NoError(t, err)
	assert.Equal(t, "happy", res.Output["mood"])
	assert.Contains(t, res.Prompt, "What a day!")
}

type blockingReasoner struct{}

func (blockingReasoner) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GenerateResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestNew_TimeoutIsGenerationFailure(t *testing.T) {
	app, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(blockingReasoner{}),
		lifeassist.WithTimeout(20*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = app.Invoke(context.Background(), flows.Chat, map[string]any{"message": "hi"})
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_HooksAndMetrics(t *testing.T) {
	var ended []string
	app, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(fixedReasoner(`{"response":"ok"}`)),
		lifeassist.WithLifecycleHooks(domain.LifecycleHooks{
			OnInvokeEnd: func(ctx context.Context, e *domain.InvocationEvent) {
				ended = append(ended, e.Flow)
			},
		}),
	)
	require.NoError(t, err)

	_, err = app.Invoke(context.Background(), flows.Chat, map[string]any{"message": "hi"})
	require.NoError(t, err)

	assert.Equal(t, []string{flows.Chat}, ended)
	count, err := testutil.GatherAndCount(app.Metrics().Registry(), "lifeassist_flow_invocations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApp_AssistantUsesProfiles(t *testing.T) {
	app, err := lifeassist.New(context.Background(),
		lifeassist.WithReasoner(fixedReasoner(`{"response":"Hello Mia"}`)),
	)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = app.Profiles().Update(ctx, "mia", func(p *domain.UserProfile) error {
		p.Name = "Mia"
		return nil
	})
	require.NoError(t, err)

	reply, err := app.Assistant().Chat(ctx, "mia", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello Mia", reply.Response)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, lifeassist.Version)
	assert.NotContains(t, lifeassist.Version, "\n")
}
