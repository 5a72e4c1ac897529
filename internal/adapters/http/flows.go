package http

import (
	"net/http"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// FlowSummary is the listing form of a registered flow.
type FlowSummary struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Input       []schema.FieldSpec `json:"input"`
	Output      []schema.FieldSpec `json:"output"`
}

// FlowDetail adds the JSON Schemas and template sources to FlowSummary.
type FlowDetail struct {
	FlowSummary
	InputSchema  map[string]any          `json:"input_schema"`
	OutputSchema map[string]any          `json:"output_schema"`
	Prompt       string                  `json:"prompt"`
	System       string                  `json:"system,omitempty"`
	Config       domain.GenerationConfig `json:"config"`
}

func summarize(f *domain.Flow) FlowSummary {
	return FlowSummary{
		Name:        f.Name,
		Description: f.Description,
		Input:       f.InputSchema.Specs(),
		Output:      f.OutputSchema.Specs(),
	}
}

// ListFlows handles the GET /flows request.
func (s *Server) ListFlows(w http.ResponseWriter, r *http.Request) {
	list := s.cfg.Catalog.List()
	out := make([]FlowSummary, 0, len(list))
	for _, f := range list {
		out = append(out, summarize(f))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetFlow handles the GET /flows/{name} request.
func (s *Server) GetFlow(w http.ResponseWriter, r *http.Request) {
	f, err := s.cfg.Catalog.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	detail := FlowDetail{
		FlowSummary:  summarize(f),
		InputSchema:  schema.JSONSchema(f.InputSchema),
		OutputSchema: schema.JSONSchema(f.OutputSchema),
		Prompt:       f.Prompt.Source(),
		Config:       f.Config,
	}
	if f.System != nil {
		detail.System = f.System.Source()
	}
	s.writeJSON(w, http.StatusOK, detail)
}

// InvokeFlow handles the POST /flows/{name} request. The body is the flow
// input; the response is always an Outcome.
func (s *Server) InvokeFlow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	input := map[string]any{}
	if err := decodeBody(r, &input); err != nil {
		err = domain.NewFlowError(domain.KindInvalidInput, name, err)
		s.writeJSON(w, http.StatusBadRequest, domain.NewOutcome(name, nil, err, nil))
		return
	}

	res, err := s.cfg.Invoker.Invoke(r.Context(), name, input)
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			s.logger.Error("flow invocation failed", "flow", name, "error", err)
		}
		s.writeJSON(w, statusFor(err), domain.NewOutcome(name, nil, err, schema.Violations(err)))
		return
	}
	s.writeJSON(w, http.StatusOK, domain.NewOutcome(name, res, nil, nil))
}
