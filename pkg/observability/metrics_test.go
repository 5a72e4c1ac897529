package observability_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	ok := &domain.InvocationEvent{Flow: "chatAssistantFlow", Duration: 20 * time.Millisecond}
	hooks.OnInvokeStart(ctx, ok)
	hooks.OnInvokeEnd(ctx, ok)

	bad := &domain.InvocationEvent{Flow: "chatAssistantFlow", ErrorKind: domain.KindInvalidOutput}
	hooks.OnInvokeStart(ctx, bad)
	hooks.OnInvokeEnd(ctx, bad)

	expected := `
# HELP lifeassist_flow_invocations_total Total number of flow invocations by outcome
# TYPE lifeassist_flow_invocations_total counter
lifeassist_flow_invocations_total{flow="chatAssistantFlow",outcome="invalid_output"} 1
lifeassist_flow_invocations_total{flow="chatAssistantFlow",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), bytes.NewBufferString(expected), "lifeassist_flow_invocations_total"))

	count, err := testutil.GatherAndCount(m.Registry(), "lifeassist_flow_in_flight")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnInvokeEnd(context.Background(), &domain.InvocationEvent{Flow: "planMyDayFlow"})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `lifeassist_flow_invocations_total{flow="planMyDayFlow",outcome="ok"} 1`)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LogHooks(logger)

	evt := &domain.InvocationEvent{Flow: "f", InvocationID: "id-1", ErrorKind: domain.KindGenerationFailed}
	hooks.OnInvokeStart(context.Background(), evt)
	hooks.OnInvokeEnd(context.Background(), evt)

	out := buf.String()
	assert.Contains(t, out, "invoke_start")
	assert.Contains(t, out, "invocation_id=id-1")
	assert.Contains(t, out, "kind=generation_failed")
}
