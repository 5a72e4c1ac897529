// Package mcp exposes registered flows as Model Context Protocol tools, so
// agents can call them with the same schema guarantees as HTTP clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/logging"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// FlowsResourceURI lists the registered flows with their schemas.
const FlowsResourceURI = "lifeassist://flows"

// Server wraps the flow invoker and exposes it as an MCP Server.
type Server struct {
	invoker   ports.FlowInvoker
	catalog   ports.FlowCatalog
	logger    *slog.Logger
	version   string
	tools     []mcp.Tool
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version announced to clients.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates a new MCP Server instance with one tool per flow in catalog.
func NewServer(invoker ports.FlowInvoker, catalog ports.FlowCatalog, opts ...Option) *Server {
	s := &Server{
		invoker: invoker,
		catalog: catalog,
		logger:  logging.NewNop(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer("lifeassist-mcp", s.version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// Tools returns the tool declarations, in catalog order.
func (s *Server) Tools() []mcp.Tool {
	return s.tools
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	for _, f := range s.catalog.List() {
		raw, err := json.Marshal(schema.JSONSchema(f.InputSchema))
		if err != nil {
			s.logger.Error("Skipping flow with unserializable input schema", "flow", f.Name, "error", err)
			continue
		}
		tool := mcp.NewToolWithRawSchema(f.Name, f.Description, raw)
		s.tools = append(s.tools, tool)
		s.mcpServer.AddTool(tool, s.flowHandler(f.Name))
	}
}

// flowHandler invokes the named flow with the tool arguments. Failures are
// reported as tool errors carrying the Outcome, not as protocol errors, so the
// calling agent can read the violations and retry.
func (s *Server) flowHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if args == nil {
			args = map[string]any{}
		}

		res, err := s.invoker.Invoke(ctx, name, args)
		outcome := domain.NewOutcome(name, res, err, schema.Violations(err))
		data, merr := json.Marshal(outcome)
		if merr != nil {
			return nil, fmt.Errorf("encode outcome: %w", merr)
		}
		if err != nil {
			s.logger.Warn("MCP tool call failed", "flow", name, "kind", string(domain.KindOf(err)), "error", err)
			return mcp.NewToolResultError(string(data)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

type flowListing struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Input       map[string]any `json:"input_schema"`
	Output      map[string]any `json:"output_schema"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FlowsResourceURI, "Registered flows",
		mcp.WithResourceDescription("Every flow with its input and output JSON Schema"),
		mcp.WithMIMEType("application/json"),
	), s.readFlows)
}

func (s *Server) readFlows(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list := s.catalog.List()
	out := make([]flowListing, 0, len(list))
	for _, f := range list {
		out = append(out, flowListing{
			Name:        f.Name,
			Description: f.Description,
			Input:       schema.JSONSchema(f.InputSchema),
			Output:      schema.JSONSchema(f.OutputSchema),
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode flows: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      FlowsResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
