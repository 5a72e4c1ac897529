// Package gemini implements ports.ReasoningService on top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"google.golang.org/genai"
)

// DefaultModel is used when neither the flow nor the client names a model.
const DefaultModel = "gemini-2.5-flash"

// Config configures the client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, mainly for tests and proxies.
	BaseURL string
}

// Client calls Gemini with controlled JSON generation.
type Client struct {
	models *genai.Models
	model  string
}

// New creates a client. The API key may also come from GEMINI_API_KEY or
// GOOGLE_API_KEY when cfg.APIKey is empty.
func New(ctx context.Context, cfg Config) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: client.Models, model: model}, nil
}

// Generate implements ports.ReasoningService.
func (c *Client) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GenerateResponse, error) {
	model := req.Config.Model
	if model == "" {
		model = c.model
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      req.Config.Temperature,
		MaxOutputTokens:  req.Config.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.OutputSchema) > 0 {
		cfg.ResponseSchema = ToGenaiSchema(req.OutputSchema)
	}

	resp, err := c.models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate %s: %w", req.Flow, err)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return nil, errors.New("gemini: response has no candidates")
	}

	out := &ports.GenerateResponse{
		Text:         resp.Text(),
		Model:        model,
		FinishReason: string(resp.Candidates[0].FinishReason),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	return out, nil
}
