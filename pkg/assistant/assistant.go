// Package assistant is the typed client of the flow layer. It is what the
// HTTP, MCP and chat surfaces call: it sanitizes free text, projects stored
// profiles into flow inputs and decodes validated outputs into structs.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the explanations RecommendAndExplain runs at once.
const DefaultConcurrency = 4

// Assistant exposes the built-in flows as typed operations.
type Assistant struct {
	invoker     ports.FlowInvoker
	profiles    ports.ProfileStore
	logger      *slog.Logger
	maxInput    int
	concurrency int
}

// Option configures the Assistant.
type Option func(*Assistant)

// WithProfiles lets operations that take a user ID include the stored profile.
func WithProfiles(store ports.ProfileStore) Option {
	return func(a *Assistant) {
		a.profiles = store
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithMaxInputSize overrides DefaultMaxInputSize for free-text fields.
func WithMaxInputSize(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.maxInput = n
		}
	}
}

// WithConcurrency overrides DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// New creates an Assistant over the given invoker.
func New(invoker ports.FlowInvoker, opts ...Option) *Assistant {
	a := &Assistant{
		invoker:     invoker,
		logger:      logging.NewNop(),
		maxInput:    DefaultMaxInputSize,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Chat answers a conversational message, personalized when the user has a profile.
func (a *Assistant) Chat(ctx context.Context, userID, message string) (*ChatReply, error) {
	msg, err := a.sanitize(flows.Chat, "message", message)
	if err != nil {
		return nil, err
	}
	input := map[string]any{"message": msg}
	if err := a.withProfile(ctx, userID, input); err != nil {
		return nil, err
	}

	var out ChatReply
	if err := a.invoke(ctx, flows.Chat, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseQuery extracts intent and constraints from a free-text request.
func (a *Assistant) ParseQuery(ctx context.Context, query string) (*Query, error) {
	q, err := a.sanitize(flows.ParseQuery, "query", query)
	if err != nil {
		return nil, err
	}
	var out Query
	if err := a.invoke(ctx, flows.ParseQuery, map[string]any{"query": q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Explain justifies a recommendation for the described user.
func (a *Assistant) Explain(ctx context.Context, req ExplainRequest) (*Explanation, error) {
	input := map[string]any{
		"userPersona":   req.UserPersona,
		"preferences":   req.Preferences,
		"budget":        req.Budget,
		"time":          req.Time,
		"accessibility": req.Accessibility,
		"recentChoices": toAnySlice(req.RecentChoices),
	}
	if req.Recommendation != "" {
		input["recommendation"] = req.Recommendation
	}

	var out Explanation
	if err := a.invoke(ctx, flows.Explain, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refine reworks a previous recommendation according to user feedback.
func (a *Assistant) Refine(ctx context.Context, req RefineRequest) (*Refinement, error) {
	feedback, err := a.sanitize(flows.Refine, "userFeedback", req.UserFeedback)
	if err != nil {
		return nil, err
	}
	input := map[string]any{
		"originalRecommendation": req.OriginalRecommendation,
		"originalExplanation":    req.OriginalExplanation,
		"userFeedback":           feedback,
	}
	if req.UserPreferences != "" {
		input["userPreferences"] = req.UserPreferences
	}

	var out Refinement
	if err := a.invoke(ctx, flows.Refine, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlanDay builds a schedule that fits the budget and the time available.
func (a *Assistant) PlanDay(ctx context.Context, userID string, budget float64, timeAvailable string) (*Plan, error) {
	input := map[string]any{
		"budget":        budget,
		"timeAvailable": timeAvailable,
	}
	if err := a.withProfile(ctx, userID, input); err != nil {
		return nil, err
	}

	var out Plan
	if err := a.invoke(ctx, flows.PlanDay, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend suggests items for the user.
func (a *Assistant) Recommend(ctx context.Context, userID string, req RecommendRequest) (*Recommendations, error) {
	input := map[string]any{}
	if req.Category != "" {
		input["category"] = req.Category
	}
	if req.Count != 0 {
		input["count"] = req.Count
	}
	if req.Context != "" {
		text, err := a.sanitize(flows.Recommend, "context", req.Context)
		if err != nil {
			return nil, err
		}
		input["context"] = text
	}
	if err := a.withProfile(ctx, userID, input); err != nil {
		return nil, err
	}

	var out Recommendations
	if err := a.invoke(ctx, flows.Recommend, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendAndExplain recommends items and explains each one against the
// user's profile. Explanations run concurrently; the result keeps the order
// of the recommendations. The first failure cancels the rest.
func (a *Assistant) RecommendAndExplain(ctx context.Context, userID string, req RecommendRequest, recentChoices []string) ([]ExplainedRecommendation, error) {
	recs, err := a.Recommend(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	p, err := a.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	base := explainBase(p, recentChoices)

	out := make([]ExplainedRecommendation, len(recs.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, item := range recs.Items {
		out[i].Recommendation = item
		g.Go(func() error {
			r := base
			r.Recommendation = item.Title
			if item.Description != "" {
				r.Recommendation += ": " + item.Description
			}
			exp, err := a.Explain(gctx, r)
			if err != nil {
				return err
			}
			out[i].Explanation = exp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Assistant) invoke(ctx context.Context, flow string, input map[string]any, out any) error {
	res, err := a.invoker.Invoke(ctx, flow, input)
	if err != nil {
		return err
	}
	if err := decode(res.Output, out); err != nil {
		// The output already passed the schema, so this means the struct
		// and the flow declaration disagree.
		a.logger.Error("flow output does not fit its type", "flow", flow, "err", err)
		return domain.NewFlowError(domain.KindInvalidOutput, flow, err)
	}
	return nil
}

func (a *Assistant) sanitize(flow, field, text string) (string, error) {
	clean, err := SanitizeInput(text, a.maxInput)
	if err != nil {
		return "", domain.NewFlowError(domain.KindInvalidInput, flow, fmt.Errorf("%s: %w", field, err))
	}
	return clean, nil
}

// profile returns the stored profile of userID, or nil when there is none.
func (a *Assistant) profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if a.profiles == nil || userID == "" {
		return nil, nil
	}
	p, err := a.profiles.Load(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		a.logger.Debug("no profile stored, continuing without it", "user_id", userID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", userID, err)
	}
	return p, nil
}

func (a *Assistant) withProfile(ctx context.Context, userID string, input map[string]any) error {
	p, err := a.profile(ctx, userID)
	if err != nil {
		return err
	}
	if projected := p.ToInput(); len(projected) > 0 {
		input[domain.KeyUserProfile] = projected
	}
	return nil
}

func decode(output map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(output)
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
