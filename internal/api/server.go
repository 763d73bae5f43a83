// Package api exposes the YAML to JSON conversion pipeline over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alevsk/k8s-converter/internal/config"
	"github.com/alevsk/k8s-converter/internal/logger"
	"github.com/gorilla/mux"
)

const apiName = "Kubernetes YAML to JSON Converter API"

// apiVersion is the version reported by the root endpoint
const apiVersion = "1.0.0"

// maxUploadSize limits multipart form memory usage. Manifests are expected
// to be kilobytes, not gigabytes.
const maxUploadSize = 10 << 20

// Server represents the API server
type Server struct {
	router *mux.Router
	cfg    *config.Config
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/", s.root).Methods("GET")
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/convert/raw", s.convertRaw).Methods("POST")
	s.router.HandleFunc("/convert/file", s.convertFile).Methods("POST")
	s.router.HandleFunc("/convert/batch", s.convertBatch).Methods("POST")
}

// Start starts the API server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.Timeout,
		WriteTimeout: s.cfg.Server.Timeout,
	}
	logger.Info().Msgf("starting server on %s", addr)
	return srv.ListenAndServe()
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// root returns API information and the list of conversion endpoints
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, infoResponse{
		Name:    apiName,
		Version: apiVersion,
		Endpoints: []endpointInfo{
			{Path: "/convert/raw", Method: "POST", Description: "Convert raw YAML text to JSON"},
			{Path: "/convert/file", Method: "POST", Description: "Convert YAML file to JSON"},
			{Path: "/convert/batch", Method: "POST", Description: "Convert multiple YAML files to JSON"},
		},
	})
}

// writeJSON encodes v as the response body with the given status code
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
