package http

import (
	"net/http"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/assistant"
)

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type parseRequest struct {
	Query string `json:"query"`
}

type planRequest struct {
	UserID        string  `json:"userId"`
	Budget        float64 `json:"budget"`
	TimeAvailable string  `json:"timeAvailable"`
}

type recommendRequest struct {
	assistant.RecommendRequest
	UserID        string   `json:"userId"`
	Explain       bool     `json:"explain"`
	RecentChoices []string `json:"recentChoices"`
}

// Chat handles the POST /assistant/chat request.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	reply, err := s.cfg.Assistant.Chat(r.Context(), req.UserID, req.Message)
	s.respond(w, r, reply, err)
}

// ParseQuery handles the POST /assistant/parse request.
func (s *Server) ParseQuery(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	q, err := s.cfg.Assistant.ParseQuery(r.Context(), req.Query)
	s.respond(w, r, q, err)
}

// Explain handles the POST /assistant/explain request.
func (s *Server) Explain(w http.ResponseWriter, r *http.Request) {
	var req assistant.ExplainRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	exp, err := s.cfg.Assistant.Explain(r.Context(), req)
	s.respond(w, r, exp, err)
}

// Refine handles the POST /assistant/refine request.
func (s *Server) Refine(w http.ResponseWriter, r *http.Request) {
	var req assistant.RefineRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ref, err := s.cfg.Assistant.Refine(r.Context(), req)
	s.respond(w, r, ref, err)
}

// PlanDay handles the POST /assistant/plan request.
func (s *Server) PlanDay(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	plan, err := s.cfg.Assistant.PlanDay(r.Context(), req.UserID, req.Budget, req.TimeAvailable)
	s.respond(w, r, plan, err)
}

// Recommend handles the POST /assistant/recommend request. With "explain"
// set every recommendation comes back with its explanation.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Explain {
		items, err := s.cfg.Assistant.RecommendAndExplain(r.Context(), req.UserID, req.RecommendRequest, req.RecentChoices)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"recommendations": items})
		return
	}
	recs, err := s.cfg.Assistant.Recommend(r.Context(), req.UserID, req.RecommendRequest)
	s.respond(w, r, recs, err)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}
