package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// ListProfiles handles the GET /profiles request.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ids, err := s.cfg.Profiles.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"users": ids})
}

// GetProfile handles the GET /profiles/{userID} request.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.cfg.Profiles.Load(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// PutProfile handles the PUT /profiles/{userID} request, replacing the
// stored profile.
func (s *Server) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var p domain.UserProfile
	if err := decodeBody(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	saved, err := s.cfg.Profiles.Update(r.Context(), userID, func(current *domain.UserProfile) error {
		*current = p
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

// PatchProfile handles the PATCH /profiles/{userID} request. Fields present
// in the body overwrite the stored ones; the rest are kept.
func (s *Server) PatchProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	saved, err := s.cfg.Profiles.Update(r.Context(), userID, func(current *domain.UserProfile) error {
		if err := json.Unmarshal(body, current); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

// DeleteProfile handles the DELETE /profiles/{userID} request.
func (s *Server) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Profiles.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
