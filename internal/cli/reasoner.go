package cli

import (
	"context"
	"fmt"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/config"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/chatcompletions"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/gemini"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
)

// NewReasoner creates the reasoning service named by cfg.Provider.
func NewReasoner(ctx context.Context, cfg config.ReasoningConfig) (ports.ReasoningService, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return gemini.New(ctx, gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	case config.ProviderOpenAI:
		return chatcompletions.New(chatcompletions.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown reasoning provider %q", cfg.Provider)
	}
}
