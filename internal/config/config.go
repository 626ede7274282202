// Package config provides configuration management for tmuxman.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds the runtime configuration for tmuxman.
type Config struct {
	// TmuxSession is the name of the tmux session that holds all managed windows
	// (default: "claude-tmux-manager").
	TmuxSession string

	// WorktreeDir is the directory under each project root where worktrees are
	// created (default: ".tmuxman/worktrees").
	WorktreeDir string

	// BranchPrefix is prepended to feature names to form branch names (default: "feature/").
	BranchPrefix string

	// StateFile is the path of the JSON file holding the session registry.
	StateFile string

	// GitTimeout is the maximum time a git command can run before being killed (default: 30s).
	GitTimeout time.Duration

	// TerminalTimeout is the maximum time a terminal launch command can run (default: 10s).
	TerminalTimeout time.Duration

	// StatusFreshness is the maximum age a cached git status may have before it
	// is recomputed on lookup (default: 5s).
	StatusFreshness time.Duration

	// ListenAddr is the address the HTTP server binds to (default: "127.0.0.1:8420").
	ListenAddr string

	// Verbose enables detailed output.
	Verbose bool

	// Theme is the colour theme for the TUI: "auto", "dark", or "light".
	Theme string
}

// DefaultTmuxSession is the tmux session that holds all managed windows.
const DefaultTmuxSession = "claude-tmux-manager"

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		TmuxSession:     DefaultTmuxSession,
		WorktreeDir:     filepath.Join(".tmuxman", "worktrees"),
		BranchPrefix:    "feature/",
		StateFile:       defaultStateFile(),
		GitTimeout:      30 * time.Second,
		TerminalTimeout: 10 * time.Second,
		StatusFreshness: 5 * time.Second,
		ListenAddr:      "127.0.0.1:8420",
		Theme:           "auto",
	}
}

// defaultStateFile returns ~/.tmuxman/sessions.json, falling back to a
// relative path when the home directory cannot be determined.
func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tmuxman", "sessions.json")
	}
	return filepath.Join(home, ".tmuxman", "sessions.json")
}

// Validate checks that the configuration is valid.
// Returns an error if validation fails.
func (c *Config) Validate() error {
	if c.TmuxSession == "" {
		return errors.New("tmux session name is required")
	}
	if c.WorktreeDir == "" {
		return errors.New("worktree directory is required")
	}
	if c.StateFile == "" {
		return errors.New("state file path is required")
	}
	if c.GitTimeout <= 0 {
		return errors.New("git timeout must be positive")
	}
	if c.TerminalTimeout <= 0 {
		return errors.New("terminal timeout must be positive")
	}
	if c.StatusFreshness < 0 {
		return errors.New("status freshness must not be negative")
	}
	switch c.Theme {
	case "auto", "dark", "light":
	default:
		return errors.New("theme must be auto, dark, or light")
	}
	return nil
}
