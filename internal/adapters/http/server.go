package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/assistant"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/profile"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is the version of the HTTP contract, reported by /info and the
// generated OpenAPI document.
const APIVersion = "0.1.0"

// maxBodyBytes bounds request bodies. Free text is also bounded by the
// assistant's sanitizer.
const maxBodyBytes = 1 << 20

// Config wires the handler to the application. Invoker and Catalog are
// required; the profile, assistant and metrics routes are only mounted when
// their dependency is set.
type Config struct {
	Invoker     ports.FlowInvoker
	Catalog     ports.FlowCatalog
	Assistant   *assistant.Assistant
	Profiles    *profile.Manager
	Metrics     http.Handler
	Logger      *slog.Logger
	Version     string
	CORSOrigins []string
}

// Server serves flows, profiles and the assistant over JSON.
type Server struct {
	cfg    Config
	logger *slog.Logger
	spec   *openapi3.T
}

// NewHandler creates a new HTTP handler for the flow layer.
func NewHandler(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		spec:   BuildOpenAPI(cfg.Catalog, cfg.Version),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.json", s.GetOpenAPI)
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Route("/flows", func(r chi.Router) {
		r.Get("/", s.ListFlows)
		r.Get("/{name}", s.GetFlow)
		r.Post("/{name}", s.InvokeFlow)
	})

	if cfg.Profiles != nil {
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.ListProfiles)
			r.Get("/{userID}", s.GetProfile)
			r.Put("/{userID}", s.PutProfile)
			r.Patch("/{userID}", s.PatchProfile)
			r.Delete("/{userID}", s.DeleteProfile)
		})
	}

	if cfg.Assistant != nil {
		r.Route("/assistant", func(r chi.Router) {
			r.Post("/chat", s.Chat)
			r.Post("/parse", s.ParseQuery)
			r.Post("/explain", s.Explain)
			r.Post("/refine", s.Refine)
			r.Post("/plan", s.PlanDay)
			r.Post("/recommend", s.Recommend)
		})
	}

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	return enableCORS(r, cfg.CORSOrigins)
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Life Assistant API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// enableCORS allows every origin when origins is empty, otherwise only the
// listed ones.
func enableCORS(next http.Handler, origins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(origins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "lifeassist-http",
		"version":     s.cfg.Version,
		"api_version": APIVersion,
	})
}

// GetOpenAPI serves the OpenAPI document generated from the flow catalog.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.spec)
}

// statusFor maps a failure to the HTTP status reported to the caller.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindUnknownFlow:
		return http.StatusNotFound
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindGenerationFailed, domain.KindInvalidOutput:
		return http.StatusBadGateway
	}
	switch {
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error domain.ErrorBody `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := domain.ErrorBody{
		Kind:    domain.KindOf(err),
		Message: err.Error(),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	s.writeJSON(w, status, errorResponse{Error: body})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
