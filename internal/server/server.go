// Package server exposes extracted function metadata over HTTP for local
// tooling: function listings, per-function records, and the call graph.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/typeql-tools/funcmeta/metadata"
)

// Server serves a read-only view over a metadata registry
type Server struct {
	registry *metadata.Registry
	logger   *zap.Logger
}

// New creates a Server over the given registry. A nil logger disables logging.
func New(registry *metadata.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		registry: registry,
		logger:   logger,
	}
}

// Handler builds the HTTP route tree
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/functions", s.handleListFunctions)
	r.Get("/functions/{name}", s.handleGetFunction)
	r.Get("/graph", s.handleGetGraph)
	return r
}

// ListenAndServe starts the server on addr and blocks until it stops
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving function metadata", zap.String("addr", addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.registry.Functions())
}

func (s *Server) handleGetFunction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	fn, err := s.registry.Function(name)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, fn)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	graph := s.registry.Graph()
	response := struct {
		*metadata.CallGraph
		Cycles [][]string `json:"cycles"`
	}{
		CallGraph: graph,
		Cycles:    metadata.FindCycles(graph),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}
