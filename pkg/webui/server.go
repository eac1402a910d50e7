// Package webui provides the localhost web server and HTTP API for the
// skill dashboard. It serves the embedded frontend and exposes REST
// endpoints for listing skills, deleting a skill directory, and revealing
// one in the system file manager.
package webui

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillman/pkg/i18n"
	"github.com/jingkaihe/skillman/pkg/logger"
	"github.com/jingkaihe/skillman/pkg/osutil"
	"github.com/jingkaihe/skillman/pkg/skills"
	"github.com/jingkaihe/skillman/pkg/view"
)

//go:embed static/index.html
var staticFS embed.FS

// langDataMarker is the placeholder in index.html replaced with the
// localized string bundle at serve time.
const langDataMarker = "__LANG_DATA__"

// Server represents the skill dashboard server
type Server struct {
	router  *mux.Router
	scanner *skills.Scanner
	config  *ServerConfig
	server  *http.Server
	reveal  func(path string) error
}

// ServerConfig holds the configuration for the web server
type ServerConfig struct {
	Host string
	Port int
	Lang i18n.Lang
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// NewServer creates a new dashboard server around the given scanner
func NewServer(config *ServerConfig, scanner *skills.Scanner) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server configuration")
	}

	s := &Server{
		router:  mux.NewRouter(),
		scanner: scanner,
		config:  config,
		reveal:  osutil.RevealDir,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all the HTTP routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/skills", s.handleListSkills).Methods("GET")
	api.HandleFunc("/skills", s.handleDeleteSkill).Methods("DELETE")
	api.HandleFunc("/open", s.handleOpenSkill).Methods("POST")

	s.router.HandleFunc("/healthz", s.handleHealthz).Methods("GET")
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.corsMiddleware)
}

// pathRequest is the JSON body for the delete and open endpoints.
type pathRequest struct {
	Path string `json:"path"`
}

// handleListSkills handles GET /api/skills. The scan is recomputed on
// every request; optional search/kind/sortBy/sortOrder query parameters
// apply the same view logic the frontend uses.
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	records := s.scanner.Scan(r.Context())

	query := r.URL.Query()
	records = view.Apply(records, view.Params{
		Query:     query.Get("search"),
		Kind:      query.Get("kind"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	})

	s.writeJSONResponse(w, records)
}

// handleDeleteSkill handles DELETE /api/skills. The target must resolve to
// a real path strictly inside one of the allowed roots; a symlink is
// unlinked (the link only), anything else is removed recursively.
func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Path == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "no path provided", nil)
		return
	}

	resolved, err := resolveReal(req.Path)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "invalid path", err)
		return
	}

	// The containment check is a security boundary: it gets a distinct
	// 403 and is never coerced into another error kind.
	if !s.pathAllowed(resolved) {
		s.writeErrorResponse(w, http.StatusForbidden, "path not in allowed skill directories", nil)
		return
	}

	info, err := os.Lstat(req.Path)
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "path does not exist", err)
		return
	}

	if info.Mode()&os.ModeSymlink != 0 {
		err = os.Remove(req.Path)
	} else {
		err = os.RemoveAll(req.Path)
	}
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error(), err)
		return
	}

	logger.G(ctx).WithField("path", req.Path).Info("skill deleted")
	s.writeJSONResponse(w, map[string]any{"success": true, "deleted": req.Path})
}

// handleOpenSkill handles POST /api/open, revealing a skill directory in
// the platform file manager.
func (s *Server) handleOpenSkill(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	info, err := os.Stat(req.Path)
	if req.Path == "" || err != nil || !info.IsDir() {
		s.writeErrorResponse(w, http.StatusNotFound, "path not found", err)
		return
	}

	if err := s.reveal(req.Path); err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error(), err)
		return
	}

	s.writeJSONResponse(w, map[string]any{"success": true})
}

// handleIndex serves the embedded frontend with the localized string
// bundle injected.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		logger.G(r.Context()).WithError(err).Error("failed to read index.html")
		http.Error(w, "failed to load application", http.StatusInternalServerError)
		return
	}

	langData, err := json.Marshal(s.config.Lang.Bundle())
	if err != nil {
		logger.G(r.Context()).WithError(err).Error("failed to encode language bundle")
		http.Error(w, "failed to load application", http.StatusInternalServerError)
		return
	}
	// Keep the inlined JSON from terminating the surrounding script tag.
	safe := strings.ReplaceAll(string(langData), "</", `<\/`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Write([]byte(strings.Replace(string(page), langDataMarker, safe, 1)))
}

// handleHealthz is a trivial liveness endpoint.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSONResponse(w, map[string]any{"status": "ok"})
}

// resolveReal resolves a path to its symlink-free form, falling back to a
// cleaned absolute path when the target (or part of it) no longer exists.
func resolveReal(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	return filepath.Abs(filepath.Clean(path))
}

// pathAllowed reports whether the resolved path lies strictly inside one of
// the allowed roots (existing scan roots plus the agents root).
func (s *Server) pathAllowed(resolved string) bool {
	for _, root := range s.scanner.AllowedRoots() {
		resolvedRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			continue
		}
		if skills.PathWithin(resolved, resolvedRoot) {
			return true
		}
	}
	return false
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		logger.G(r.Context()).WithFields(map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration":    time.Since(start),
			"remote_addr": r.RemoteAddr,
		}).Info("HTTP request")
	})
}

// corsMiddleware adds permissive CORS headers; the server only ever binds
// to localhost.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSONResponse writes a JSON response
func (s *Server) writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.G(context.TODO()).WithError(err).Error("failed to encode JSON response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes an error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	if err != nil {
		logger.G(context.TODO()).WithError(err).Warn(message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	response := map[string]any{
		"error":   message,
		"success": false,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.G(context.TODO()).WithError(err).Error("failed to encode error response")
	}
}

// Start starts the web server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:    address,
		Handler: s.router,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.G(ctx).WithError(err).Error("web server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Stop stops the web server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
