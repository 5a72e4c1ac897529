package ports

import (
	"context"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
)

// GenerateRequest is one call to a reasoning service.
type GenerateRequest struct {
	// Flow names the flow being invoked, for logging and tracing only.
	Flow   string
	Prompt string
	System string
	// OutputSchema lets providers that support controlled generation constrain
	// their reply. The invoker validates the reply regardless.
	OutputSchema schema.Schema
	Config       domain.GenerationConfig
}

// GenerateResponse is the raw reply of a reasoning service.
type GenerateResponse struct {
	Text         string
	Model        string
	FinishReason string
}

// ReasoningService is the external LLM. Implementations must be safe for
// concurrent use and must not retry on their own.
type ReasoningService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}
