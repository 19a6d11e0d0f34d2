// Package server exposes the tool dispatch boundary over HTTP alongside the
// health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/planpilot-ai/planpilot/internal/tools"
	"github.com/planpilot-ai/planpilot/pkg/observability"
)

// Server serves the /mcp/invoke endpoint plus health and metrics.
type Server struct {
	registry   *tools.Registry
	httpServer *http.Server
	port       int
}

// New creates a server around the given tool registry.
func New(registry *tools.Registry, port int) *Server {
	return &Server{registry: registry, port: port}
}

// Handler builds the full route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/mcp/invoke", s.handleInvoke)

	mux.HandleFunc("/health", observability.HealthHandler())
	mux.HandleFunc("/health/live", observability.LivenessHandler())
	mux.HandleFunc("/health/ready", observability.ReadinessHandler())
	mux.Handle("/metrics", observability.MetricsHandler())

	return mux
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("http server listening on :%d", s.port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// handleInvoke decodes a tool request, dispatches it, and writes the tool's
// JSON result. An unknown tool is a client error listing the registered
// names; a tool failure is a server error naming the tool.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req tools.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	start := time.Now()
	result, err := s.registry.Invoke(r.Context(), req)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, tools.ErrUnknownTool) {
			observability.RecordToolCall(req.Tool, "unknown", duration)
			observability.RecordHTTPRequest(r.Method, "/mcp/invoke", "400", duration)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		observability.RecordToolCall(req.Tool, "error", duration)
		observability.RecordHTTPRequest(r.Method, "/mcp/invoke", "500", duration)
		log.Printf("tool %s failed: %v", req.Tool, err)
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("tool '%s' execution failed: %v", req.Tool, err))
		return
	}

	observability.RecordToolCall(req.Tool, "ok", duration)
	observability.RecordHTTPRequest(r.Method, "/mcp/invoke", "200", duration)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
