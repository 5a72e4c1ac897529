// Package chatcompletions implements ports.ReasoningService against
// OpenAI-compatible /chat/completions endpoints such as LM Studio or Ollama.
package chatcompletions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

// DefaultBaseURL is the LM Studio default.
const DefaultBaseURL = "http://localhost:1234/v1"

// Config configures the client.
type Config struct {
	// BaseURL accepts several endpoints separated by commas; they are tried
	// in order until one answers.
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string    `json:"model"`
	Messages       []message `json:"messages"`
	Temperature    *float32  `json:"temperature,omitempty"`
	MaxTokens      int32     `json:"max_tokens,omitempty"`
	ResponseFormat any       `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// Client talks to one or more OpenAI-compatible endpoints.
type Client struct {
	baseURLs []string
	model    string
	apiKey   string
	http     *http.Client
}

// New creates a client.
func New(cfg Config) *Client {
	baseURLs := splitBaseURLs(cfg.BaseURL)
	if len(baseURLs) == 0 {
		baseURLs = []string{DefaultBaseURL}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURLs: baseURLs,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Generate implements ports.ReasoningService.
func (c *Client) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GenerateResponse, error) {
	model := req.Config.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return nil, errors.New("chatcompletions: model is not configured")
	}

	body := chatRequest{
		Model:       model,
		Temperature: req.Config.Temperature,
		MaxTokens:   req.Config.MaxOutputTokens,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, message{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, message{Role: "user", Content: req.Prompt})
	if len(req.OutputSchema) > 0 {
		body.ResponseFormat = responseFormat(req.Flow, req.OutputSchema)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	failures := make([]string, 0, len(c.baseURLs))
	for _, baseURL := range c.baseURLs {
		resp, err := c.generateAt(ctx, baseURL+"/chat/completions", payload)
		if err == nil {
			if resp.Model == "" {
				resp.Model = model
			}
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("chatcompletions: %w", ctx.Err())
		}
		failures = append(failures, fmt.Sprintf("%s (%v)", baseURL, err))
	}
	return nil, fmt.Errorf("chatcompletions: request failed across endpoints: %s", strings.Join(failures, " | "))
}

func (c *Client) generateAt(ctx context.Context, endpoint string, payload []byte) (*ports.GenerateResponse, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %s", resp.Status)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, errors.New("response missing choices")
	}
	return &ports.GenerateResponse{
		Text:         decoded.Choices[0].Message.Content,
		Model:        decoded.Model,
		FinishReason: strings.TrimSpace(decoded.Choices[0].FinishReason),
	}, nil
}

func responseFormat(name string, s schema.Schema) map[string]any {
	if name == "" {
		name = "response"
	}
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   name,
			"schema": schema.JSONSchema(s),
		},
	}
}

func normalizeBaseURL(baseURL string) string {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return trimmed
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if strings.HasSuffix(trimmed, "/v1") {
		return trimmed
	}
	return trimmed + "/v1"
}

func splitBaseURLs(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == ' '
	})
	out := make([]string, 0, len(tokens))
	seen := map[string]struct{}{}
	for _, token := range tokens {
		normalized := normalizeBaseURL(token)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
