package session

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"tmuxman/internal/config"
	tmerrors "tmuxman/internal/errors"
	"tmuxman/internal/executor"
	"tmuxman/internal/gitstatus"
)

// Prober computes a git status snapshot for a worktree path.
type Prober interface {
	Probe(ctx context.Context, path string) (*gitstatus.Status, error)
}

// Manager orchestrates registry reads/writes, lazily refreshes git status,
// and provisions/tears down the worktree and tmux window behind a session.
type Manager struct {
	registry *Registry
	runner   executor.Runner
	prober   Prober
	cfg      *config.Config

	// now is swapped out in tests to control the freshness window.
	now  func() time.Time
	logf func(format string, args ...any)
}

// NewManager creates a Manager over the given registry.
func NewManager(registry *Registry, runner executor.Runner, prober Prober, cfg *config.Config) *Manager {
	return &Manager{
		registry: registry,
		runner:   runner,
		prober:   prober,
		cfg:      cfg,
		now:      time.Now,
		logf:     log.Printf,
	}
}

// gitOpts returns executor options for git invocations.
func (m *Manager) gitOpts() executor.Options {
	return executor.Options{Timeout: m.cfg.GitTimeout}
}

// GetSession looks up a session by identity, refreshing its window liveness
// and (when stale) its git status. Absence is an expected outcome, not an
// error. Probe failures are logged and the session is returned with its
// previous (possibly nil) stats: identity and path availability win over
// status freshness.
func (m *Manager) GetSession(ctx context.Context, project, feature string) (*Session, bool) {
	sess, ok := m.registry.Get(project, feature)
	if !ok {
		return nil, false
	}
	return m.refresh(ctx, sess), true
}

// ListSessions returns all sessions, optionally filtered by project, with the
// same refresh semantics as GetSession.
func (m *Manager) ListSessions(ctx context.Context, project string) []*Session {
	sessions := m.registry.List(project)
	for i, s := range sessions {
		sessions[i] = m.refresh(ctx, s)
	}
	return sessions
}

// refresh recomputes window liveness and, when the cached snapshot is older
// than the freshness window, the git status. The refreshed record is written
// back whole so concurrent lookups never observe partial updates.
func (m *Manager) refresh(ctx context.Context, sess *Session) *Session {
	sess.IsActive = m.windowExists(ctx, sess.WindowName())

	if sess.GitStats == nil || m.now().Sub(sess.StatsRefreshedAt) > m.cfg.StatusFreshness {
		stats, err := m.prober.Probe(ctx, sess.WorktreePath)
		if err != nil {
			m.logf("git status probe failed for %s: %v", sess.WindowName(), err)
		} else {
			sess.GitStats = stats
			sess.StatsRefreshedAt = m.now()
		}
	}

	if err := m.registry.Upsert(sess); err != nil {
		m.logf("failed to persist session %s: %v", sess.WindowName(), err)
	}
	return sess
}

// windowExists reports whether a window with the given name exists in the
// managed tmux session. Any tmux failure (including no server running) is
// treated as "no window".
func (m *Manager) windowExists(ctx context.Context, windowName string) bool {
	command := "tmux list-windows -t " + executor.Quote(m.cfg.TmuxSession) + " -F '#{window_name}'"
	result, err := m.runner.Execute(ctx, command, m.gitOpts())
	if err != nil || result.ExitCode != 0 {
		return false
	}
	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.TrimSpace(line) == windowName {
			return true
		}
	}
	return false
}

// CreateSession provisions a worktree and tmux window for a new feature and
// registers the session. The worktree lands at
// <projectPath>/<worktreeDir>/<feature> on branch <branchPrefix><feature>.
func (m *Manager) CreateSession(ctx context.Context, project, feature, projectPath string) (*Session, error) {
	if err := ValidateName(project); err != nil {
		return nil, fmt.Errorf("invalid project name: %w", err)
	}
	if err := ValidateName(feature); err != nil {
		return nil, fmt.Errorf("invalid feature name: %w", err)
	}
	if _, exists := m.registry.Get(project, feature); exists {
		return nil, fmt.Errorf("%s:%s: %w", project, feature, tmerrors.ErrSessionExists)
	}

	absProject, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}

	worktreePath := filepath.Join(absProject, m.cfg.WorktreeDir, feature)
	branch := m.cfg.BranchPrefix + feature

	command := "git -C " + executor.Quote(absProject) +
		" worktree add -b " + executor.Quote(branch) +
		" " + executor.Quote(worktreePath) + " HEAD"
	result, err := m.runner.Execute(ctx, command, m.gitOpts())
	if err != nil {
		return nil, fmt.Errorf("failed to create worktree: %w", err)
	}
	if result.TimedOut {
		return nil, fmt.Errorf("git worktree add timed out")
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("failed to create worktree %q: %s", worktreePath, strings.TrimSpace(result.Stderr))
	}

	sess := &Session{
		Project:      project,
		Feature:      feature,
		ProjectPath:  absProject,
		WorktreePath: worktreePath,
		Branch:       branch,
	}

	// Window creation is best effort: a session without a live window is
	// still valid, the user can open one later.
	if err := m.createWindow(ctx, sess); err != nil {
		m.logf("failed to create tmux window for %s: %v", sess.WindowName(), err)
	} else {
		sess.IsActive = true
	}

	if err := m.registry.Upsert(sess); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}
	return sess.Clone(), nil
}

// createWindow ensures the managed tmux session exists and adds a window for
// the session rooted in its worktree.
func (m *Manager) createWindow(ctx context.Context, sess *Session) error {
	tmuxSession := executor.Quote(m.cfg.TmuxSession)

	ensure := "tmux has-session -t " + tmuxSession +
		" 2>/dev/null || tmux new-session -d -s " + tmuxSession +
		" -c " + executor.Quote(sess.WorktreePath)
	if result, err := m.runner.Execute(ctx, ensure, m.gitOpts()); err != nil {
		return err
	} else if result.ExitCode != 0 {
		return fmt.Errorf("tmux new-session: %s", strings.TrimSpace(result.Stderr))
	}

	create := "tmux new-window -t " + tmuxSession +
		" -n " + executor.Quote(sess.WindowName()) +
		" -c " + executor.Quote(sess.WorktreePath)
	result, err := m.runner.Execute(ctx, create, m.gitOpts())
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("tmux new-window: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// RemoveSession tears down a session: the tmux window and branch are removed
// best effort, the worktree removal must succeed, and the registry entry is
// deleted.
func (m *Manager) RemoveSession(ctx context.Context, project, feature string) error {
	sess, ok := m.registry.Get(project, feature)
	if !ok {
		return fmt.Errorf("%s:%s: %w", project, feature, tmerrors.ErrSessionNotFound)
	}

	kill := "tmux kill-window -t " +
		executor.Quote(m.cfg.TmuxSession+":"+sess.WindowName())
	if result, err := m.runner.Execute(ctx, kill, m.gitOpts()); err != nil || result.ExitCode != 0 {
		m.logf("could not kill tmux window %s (may already be gone)", sess.WindowName())
	}

	remove := "git -C " + executor.Quote(sess.ProjectPath) +
		" worktree remove --force " + executor.Quote(sess.WorktreePath)
	result, err := m.runner.Execute(ctx, remove, m.gitOpts())
	if err != nil {
		return fmt.Errorf("failed to remove worktree: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("failed to remove worktree %q: %s", sess.WorktreePath, strings.TrimSpace(result.Stderr))
	}

	// Try safe delete first, fall back to force delete.
	branchCmd := "git -C " + executor.Quote(sess.ProjectPath) + " branch -d " + executor.Quote(sess.Branch)
	if result, err := m.runner.Execute(ctx, branchCmd, m.gitOpts()); err != nil || result.ExitCode != 0 {
		forceCmd := "git -C " + executor.Quote(sess.ProjectPath) + " branch -D " + executor.Quote(sess.Branch)
		if result, err := m.runner.Execute(ctx, forceCmd, m.gitOpts()); err != nil || result.ExitCode != 0 {
			m.logf("could not delete branch %s for %s", sess.Branch, sess.WindowName())
		}
	}

	return m.registry.Delete(project, feature)
}
