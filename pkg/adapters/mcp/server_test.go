package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/runtime"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReasoner struct {
	text string
}

func (s stubReasoner) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GenerateResponse, error) {
	return &ports.GenerateResponse{Text: s.text}, nil
}

func newTestServer(t *testing.T, reply string) *Server {
	t.Helper()
	reg := registry.New()
	require.NoError(t, flows.RegisterBuiltins(reg))
	reg.Seal()
	return NewServer(runtime.NewEngine(reg, stubReasoner{text: reply}), reg, WithVersion("test"))
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) (*mcp.CallToolResult, domain.Outcome) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.flowHandler(name)(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var out domain.Outcome
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return res, out
}

func TestServer_ToolPerFlow(t *testing.T) {
	s := newTestServer(t, "")

	tools := s.Tools()
	require.Len(t, tools, len(flows.Builtins()))

	var chat *mcp.Tool
	for i := range tools {
		if tools[i].Name == flows.Chat {
			chat = &tools[i]
		}
	}
	require.NotNil(t, chat)

	var inputSchema map[string]any
	require.NoError(t, json.Unmarshal(chat.RawInputSchema, &inputSchema))
	assert.Equal(t, "object", inputSchema["type"])
	assert.Equal(t, []any{"message"}, inputSchema["required"])
}

func TestServer_CallTool(t *testing.T) {
	s := newTestServer(t, `{"response":"Sure!"}`)

	res, out := callTool(t, s, flows.Chat, map[string]any{"message": "hi"})
	assert.False(t, res.IsError)
	assert.True(t, out.OK)
	assert.Equal(t, "Sure!", out.Output["response"])
}

func TestServer_CallToolInvalidInput(t *testing.T) {
	s := newTestServer(t, `{"response":"unused"}`)

	res, out := callTool(t, s, flows.Chat, nil)
	assert.True(t, res.IsError)
	assert.False(t, out.OK)
	require.NotNil(t, out.Error)
	assert.Equal(t, domain.KindInvalidInput, out.Error.Kind)
	assert.Equal(t, "required", out.Error.Violations["message"])
}

func TestServer_CallToolGenerationFailed(t *testing.T) {
	s := newTestServer(t, "I cannot answer in JSON")

	res, out := callTool(t, s, flows.ParseQuery, map[string]any{"query": "pizza"})
	assert.True(t, res.IsError)
	assert.Equal(t, domain.KindGenerationFailed, out.Error.Kind)
}

func TestServer_FlowsResource(t *testing.T) {
	s := newTestServer(t, "")

	contents, err := s.readFlows(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, FlowsResourceURI, text.URI)

	var listing []flowListing
	require.NoError(t, json.Unmarshal([]byte(text.Text), &listing))
	assert.Len(t, listing, len(flows.Builtins()))
}
