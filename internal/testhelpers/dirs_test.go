package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHomeDir_CreatesDirectoryStructure(t *testing.T) {
	tempDir, tmuxmanDir := HomeDir(t)

	if !strings.HasPrefix(tmuxmanDir, tempDir) {
		t.Errorf("tmuxmanDir %q should be under tempDir %q", tmuxmanDir, tempDir)
	}

	if !strings.HasSuffix(tmuxmanDir, ".tmuxman") {
		t.Errorf("tmuxmanDir %q should end with .tmuxman", tmuxmanDir)
	}

	info, err := os.Stat(tmuxmanDir)
	if err != nil {
		t.Fatalf("tmuxmanDir should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("tmuxmanDir should be a directory")
	}
}

func TestRepoDir_CreatesWorktreeContainer(t *testing.T) {
	repoDir, worktreeDir := RepoDir(t)

	if !strings.HasPrefix(worktreeDir, repoDir) {
		t.Errorf("worktreeDir %q should be under repoDir %q", worktreeDir, repoDir)
	}

	wantSuffix := filepath.Join(".tmuxman", "worktrees")
	if !strings.HasSuffix(worktreeDir, wantSuffix) {
		t.Errorf("worktreeDir %q should end with %q", worktreeDir, wantSuffix)
	}

	info, err := os.Stat(worktreeDir)
	if err != nil {
		t.Fatalf("worktreeDir should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("worktreeDir should be a directory")
	}
}

func TestWorkingDir_CreatesDirectory(t *testing.T) {
	dir := WorkingDir(t)

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("working dir should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("working dir should be a directory")
	}
}
