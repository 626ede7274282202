// Package testhelpers provides common utilities for tests across packages.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// HomeDir creates a temporary directory with the .tmuxman structure.
// Returns the temp dir root and the .tmuxman dir path.
// The temp dir is automatically cleaned up when the test completes.
func HomeDir(t *testing.T) (tempDir, tmuxmanDir string) {
	t.Helper()
	tempDir = t.TempDir()
	tmuxmanDir = filepath.Join(tempDir, ".tmuxman")
	if err := os.MkdirAll(tmuxmanDir, 0755); err != nil {
		t.Fatalf("failed to create tmuxman dir: %v", err)
	}
	return tempDir, tmuxmanDir
}

// RepoDir creates a temporary directory shaped like a project checkout, with
// the worktree container already in place. Returns the repo root and the
// container path.
// The temp dir is automatically cleaned up when the test completes.
func RepoDir(t *testing.T) (repoDir, worktreeDir string) {
	t.Helper()
	repoDir = t.TempDir()
	worktreeDir = filepath.Join(repoDir, ".tmuxman", "worktrees")
	if err := os.MkdirAll(worktreeDir, 0755); err != nil {
		t.Fatalf("failed to create worktree dir: %v", err)
	}
	return repoDir, worktreeDir
}

// WorkingDir creates a temporary directory suitable for use as a working directory.
// Returns the temp dir path.
// The temp dir is automatically cleaned up when the test completes.
func WorkingDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
