// Package session maintains the authoritative mapping between logical
// development sessions and their git worktrees and tmux windows.
package session

import (
	"fmt"
	"regexp"
	"time"

	"tmuxman/internal/gitstatus"
)

// Key identifies a session by its (project, feature) pair.
type Key struct {
	Project string
	Feature string
}

// String returns the key in "<project>:<feature>" form, which doubles as the
// tmux window name.
func (k Key) String() string {
	return k.Project + ":" + k.Feature
}

// Session is a logical development unit backed by a git worktree and an
// optional tmux window.
type Session struct {
	Project string `json:"project"`
	Feature string `json:"feature"`

	// ProjectPath is the absolute path to the git repository root.
	ProjectPath string `json:"projectPath"`

	// WorktreePath is the absolute path to the feature's worktree, always a
	// subpath of ProjectPath's worktree container.
	WorktreePath string `json:"worktreePath"`

	// Branch is the git branch checked out in the worktree.
	Branch string `json:"branch"`

	// IsActive is true iff a tmux window named <project>:<feature> currently
	// exists in the managed tmux session.
	IsActive bool `json:"isActive"`

	// GitStats is the last-known git status snapshot; nil until first probe.
	GitStats *gitstatus.Status `json:"gitStats,omitempty"`

	// StatsRefreshedAt records when GitStats was last recomputed.
	StatsRefreshedAt time.Time `json:"statsRefreshedAt,omitempty"`
}

// Key returns the session's identity.
func (s *Session) Key() Key {
	return Key{Project: s.Project, Feature: s.Feature}
}

// WindowName returns the tmux window name for this session.
func (s *Session) WindowName() string {
	return s.Key().String()
}

// Clone returns a copy of the session safe to hand to callers.
func (s *Session) Clone() *Session {
	clone := *s
	if s.GitStats != nil {
		stats := *s.GitStats
		clone.GitStats = &stats
	}
	return &clone
}

// namePattern constrains project and feature names to lowercase alphanumerics
// and hyphens, matching what tmux window names and branch names tolerate.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateName checks that a project or feature name is safe to use in
// branch names, paths and tmux window names.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("name %q must be lowercase alphanumerics and hyphens (e.g. payment-retries)", name)
	}
	return nil
}
