package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tmerrors "tmuxman/internal/errors"
	"tmuxman/internal/session"
	"tmuxman/internal/terminal"
)

// maxRequestBodySize is the maximum allowed request body size (1MB).
const maxRequestBodySize = 1 << 20

// SessionService is the manager surface the HTTP layer depends on.
type SessionService interface {
	GetSession(ctx context.Context, project, feature string) (*session.Session, bool)
	ListSessions(ctx context.Context, project string) []*session.Session
	CreateSession(ctx context.Context, project, feature, projectPath string) (*session.Session, error)
	RemoveSession(ctx context.Context, project, feature string) error
}

// TerminalOpener opens a host terminal for a session.
type TerminalOpener interface {
	OpenTerminal(ctx context.Context, sess *session.Session) terminal.Outcome
}

// Server is the tmuxman HTTP server.
type Server struct {
	addr       string
	manager    SessionService
	launcher   TerminalOpener
	httpServer *http.Server
	logf       func(format string, args ...any)
}

// NewServer creates a server for the given bind address.
func NewServer(addr string, manager SessionService, launcher TerminalOpener) *Server {
	return &Server{
		addr:     addr,
		manager:  manager,
		launcher: launcher,
		logf:     log.Printf,
	}
}

// Start runs the server until the context is cancelled or a shutdown signal
// arrives.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Handler:      s.recoverPanics(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	s.logf("listening on %s", listener.Addr())

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		s.logf("received signal %v, shutting down", sig)
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

// registerRoutes sets up the HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/sessions/", s.handleSession)
	mux.HandleFunc("/api/windows/", s.handleWindows)
}

// recoverPanics converts handler panics into 500 responses instead of
// killing the connection silently.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal server error",
					Message: fmt.Sprint(rec),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSessions handles /api/sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listSessions(w, r)
	case http.MethodPost:
		s.createSession(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// listSessions handles GET /api/sessions[?project=]
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.manager.ListSessions(r.Context(), r.URL.Query().Get("project"))
	writeJSON(w, http.StatusOK, SessionListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
}

// createSession handles POST /api/sessions
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.Project == "" || req.Feature == "" || req.ProjectPath == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "project, feature and projectPath are required"})
		return
	}

	sess, err := s.manager.CreateSession(r.Context(), req.Project, req.Feature, req.ProjectPath)
	if err != nil {
		switch {
		case errors.Is(err, tmerrors.ErrSessionExists):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
		case strings.Contains(err.Error(), "invalid"):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to create session",
				Message: err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Session: sess})
}

// parseIdentity extracts (project, feature) path segments after the prefix
// and verifies any expected trailing action segment.
func parseIdentity(path, prefix, action string) (project, feature string, ok bool) {
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	if action == "" {
		if len(parts) != 2 {
			return "", "", false
		}
	} else {
		if len(parts) != 3 || parts[2] != action {
			return "", "", false
		}
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// handleSession handles /api/sessions/{project}/{feature}
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	project, feature, ok := parseIdentity(r.URL.Path, "/api/sessions/", "")
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		sess, found := s.manager.GetSession(r.Context(), project, feature)
		if !found {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Session not found"})
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{Session: sess})
	case http.MethodDelete:
		if err := s.manager.RemoveSession(r.Context(), project, feature); err != nil {
			if errors.Is(err, tmerrors.ErrSessionNotFound) {
				writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Session not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to remove session",
				Message: err.Error(),
			})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleWindows handles POST /api/windows/{project}/{feature}/terminal
func (s *Server) handleWindows(w http.ResponseWriter, r *http.Request) {
	project, feature, ok := parseIdentity(r.URL.Path, "/api/windows/", "terminal")
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Registry membership is the single gate for every downstream operation.
	sess, found := s.manager.GetSession(r.Context(), project, feature)
	if !found {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Session not found"})
		return
	}

	outcome := s.launcher.OpenTerminal(r.Context(), sess)
	if outcome.Opened {
		writeJSON(w, http.StatusOK, TerminalOpenedResponse{
			Success:    true,
			Message:    fmt.Sprintf("Opened terminal for %s", outcome.WindowName),
			WindowName: outcome.WindowName,
		})
		return
	}

	resp := TerminalFallbackResponse{
		Success: false,
		Error:   "Failed to open terminal automatically",
		Fallback: FallbackPayload{
			Message:      outcome.Fallback.Message,
			SessionName:  outcome.Fallback.SessionName,
			WindowName:   outcome.Fallback.WindowName,
			Instructions: outcome.Fallback.Instructions,
		},
	}
	if outcome.Fallback.Debug != nil {
		resp.Debug = &DebugPayload{
			ExitCode: outcome.Fallback.Debug.ExitCode,
			Stdout:   outcome.Fallback.Debug.Stdout,
			Stderr:   outcome.Fallback.Debug.Stderr,
		}
	}
	writeJSON(w, http.StatusAccepted, resp)
}
