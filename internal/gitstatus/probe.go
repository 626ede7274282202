// Package gitstatus computes git worktree status snapshots.
package gitstatus

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tmerrors "tmuxman/internal/errors"
	"tmuxman/internal/executor"
)

// Status is a point-in-time snapshot of a worktree's git state.
type Status struct {
	// Branch is the current branch name, or "(detached)" for a detached HEAD.
	Branch string `json:"branch"`

	// Ahead and Behind are commit counts relative to the configured upstream.
	// Both are zero when no upstream is set.
	Ahead  int `json:"ahead"`
	Behind int `json:"behind"`

	// Staged, Unstaged and Untracked are file counts from porcelain status.
	Staged    int `json:"staged"`
	Unstaged  int `json:"unstaged"`
	Untracked int `json:"untracked"`

	// HasUncommittedChanges is true iff Staged+Unstaged+Untracked > 0.
	// It is always derived from the three counts, never stored independently.
	HasUncommittedChanges bool `json:"hasUncommittedChanges"`
}

// CommandFailedError reports a git invocation that exited non-zero for a
// reason other than "not a repository" (e.g. a corrupted index).
type CommandFailedError struct {
	ExitCode int
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("git status failed with exit code %d: %s", e.ExitCode, strings.TrimSpace(e.Stderr))
}

// Probe computes worktree status snapshots by invoking git.
type Probe struct {
	runner  executor.Runner
	timeout executor.Options
}

// New creates a Probe that runs git through the given runner with the given
// per-command timeout.
func New(runner executor.Runner, opts executor.Options) *Probe {
	return &Probe{runner: runner, timeout: opts}
}

// Probe returns the status snapshot for the worktree at path.
// It is a pure function of the worktree state at call time; callers own any
// caching. Returns errors.ErrNotARepository when the path is not a git
// worktree, or a *CommandFailedError for other non-zero git exits.
func (p *Probe) Probe(ctx context.Context, path string) (*Status, error) {
	command := "git -C " + executor.Quote(path) + " status --porcelain=v2 --branch"

	result, err := p.runner.Execute(ctx, command, p.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to run git status: %w", err)
	}
	if result.TimedOut {
		return nil, fmt.Errorf("git status timed out after %v", result.Duration)
	}
	if result.ExitCode != 0 {
		// git exits 128 both when the path is not a repository and when the
		// directory itself is gone ("cannot change to '...'"), which is what
		// a deleted worktree looks like.
		if strings.Contains(result.Stderr, "not a git repository") ||
			strings.Contains(result.Stderr, "cannot change to") {
			return nil, fmt.Errorf("%q: %w", path, tmerrors.ErrNotARepository)
		}
		return nil, &CommandFailedError{ExitCode: result.ExitCode, Stderr: result.Stderr}
	}

	return parsePorcelain(result.Stdout), nil
}

// parsePorcelain parses `git status --porcelain=v2 --branch` output.
// Entry types: "1" (ordinary changed), "2" (renamed or copied), "u" (unmerged),
// "?" (untracked). Rename entries carry a single XY pair so they are never
// double-counted as both staged and untracked.
func parsePorcelain(out string) *Status {
	status := &Status{}

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# branch.head "):
			status.Branch = strings.TrimPrefix(line, "# branch.head ")
		case strings.HasPrefix(line, "# branch.ab "):
			status.Ahead, status.Behind = parseAheadBehind(strings.TrimPrefix(line, "# branch.ab "))
		case strings.HasPrefix(line, "1 "), strings.HasPrefix(line, "2 "):
			// Field 2 is the two-character XY state: X is the index side,
			// Y is the working tree side.
			fields := strings.SplitN(line, " ", 3)
			if len(fields) < 2 || len(fields[1]) != 2 {
				continue
			}
			if fields[1][0] != '.' {
				status.Staged++
			}
			if fields[1][1] != '.' {
				status.Unstaged++
			}
		case strings.HasPrefix(line, "u "):
			status.Unstaged++
		case strings.HasPrefix(line, "? "):
			status.Untracked++
		}
	}

	status.HasUncommittedChanges = status.Staged+status.Unstaged+status.Untracked > 0
	return status
}

// parseAheadBehind parses the "+N -M" payload of a branch.ab line.
func parseAheadBehind(ab string) (ahead, behind int) {
	for _, field := range strings.Fields(ab) {
		if len(field) < 2 {
			continue
		}
		n, err := strconv.Atoi(field[1:])
		if err != nil {
			continue
		}
		switch field[0] {
		case '+':
			ahead = n
		case '-':
			behind = n
		}
	}
	return ahead, behind
}
