// Package api implements the HTTP API server for revet.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sprite-ai/revet/internal/model"
)

// Server is the revet HTTP API server.
type Server struct {
	addr   string
	base   model.SessionConfig // ScriptDir and ToolTimeout defaults
	mux    *http.ServeMux
	server *http.Server
}

// New creates a new API server. base supplies the script directory and
// timeout applied to every session the server runs.
func New(addr string, base model.SessionConfig) *Server {
	s := &Server{addr: addr, base: base}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.mux,
		ReadTimeout: 30 * time.Second,
		// No write timeout: a review session blocks on external
		// tools for as long as they take.
		IdleTimeout: 120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/review", s.handleReview)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
}

// ListenAndServe starts the server and blocks.
func (s *Server) ListenAndServe() error {
	log.Printf("revet API listening on http://%s", s.addr)
	return s.server.ListenAndServe()
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}
