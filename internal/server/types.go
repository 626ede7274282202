// Package server exposes the session manager over HTTP for the web UI.
package server

import "tmuxman/internal/session"

// CreateSessionRequest is the body of POST /api/sessions.
type CreateSessionRequest struct {
	Project     string `json:"project"`
	Feature     string `json:"feature"`
	ProjectPath string `json:"projectPath"`
}

// SessionResponse wraps a single session.
type SessionResponse struct {
	Session *session.Session `json:"session"`
}

// SessionListResponse wraps a session listing.
type SessionListResponse struct {
	Sessions []*session.Session `json:"sessions"`
	Total    int                `json:"total"`
}

// TerminalOpenedResponse is the 200 body of the terminal-open route.
type TerminalOpenedResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	WindowName string `json:"windowName"`
}

// FallbackPayload carries manual recovery instructions.
type FallbackPayload struct {
	Message      string   `json:"message"`
	SessionName  string   `json:"sessionName"`
	WindowName   string   `json:"windowName"`
	Instructions []string `json:"instructions"`
}

// DebugPayload carries diagnostics captured from the failed launch attempt.
type DebugPayload struct {
	ExitCode int    `json:"exitCode"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// TerminalFallbackResponse is the 202 body of the terminal-open route:
// automatic launch failed but manual recovery is possible.
type TerminalFallbackResponse struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error"`
	Fallback FallbackPayload `json:"fallback"`
	Debug    *DebugPayload   `json:"debug,omitempty"`
}

// ErrorResponse is the body of 4xx/5xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
