package gitstatus

import (
	"context"
	"errors"
	"strings"
	"testing"

	tmerrors "tmuxman/internal/errors"
	"tmuxman/internal/executor"
)

// fakeRunner returns a canned result and records the command it was given.
type fakeRunner struct {
	result  *executor.Result
	err     error
	command string
}

func (f *fakeRunner) Execute(ctx context.Context, command string, opts executor.Options) (*executor.Result, error) {
	f.command = command
	return f.result, f.err
}

func TestProbe_CleanTree(t *testing.T) {
	out := "# branch.oid 1234abcd\n" +
		"# branch.head feature/login\n" +
		"# branch.upstream origin/feature/login\n" +
		"# branch.ab +0 -0\n"

	runner := &fakeRunner{result: &executor.Result{ExitCode: 0, Stdout: out}}
	p := New(runner, executor.Options{})

	status, err := p.Probe(context.Background(), "/tmp/wt")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if status.Branch != "feature/login" {
		t.Errorf("Branch = %q, want %q", status.Branch, "feature/login")
	}
	if status.Staged != 0 || status.Unstaged != 0 || status.Untracked != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", status.Staged, status.Unstaged, status.Untracked)
	}
	if status.HasUncommittedChanges {
		t.Error("HasUncommittedChanges should be false for a clean tree")
	}
	if !strings.Contains(runner.command, "'/tmp/wt'") {
		t.Errorf("worktree path not quoted in command: %q", runner.command)
	}
}

func TestProbe_DirtyTree(t *testing.T) {
	out := "# branch.head main\n" +
		"# branch.ab +2 -1\n" +
		"1 M. N... 100644 100644 100644 aaaa bbbb staged.go\n" +
		"1 .M N... 100644 100644 100644 aaaa bbbb unstaged.go\n" +
		"1 MM N... 100644 100644 100644 aaaa bbbb both.go\n" +
		"? junk.txt\n" +
		"? more-junk.txt\n"

	runner := &fakeRunner{result: &executor.Result{ExitCode: 0, Stdout: out}}
	p := New(runner, executor.Options{})

	status, err := p.Probe(context.Background(), "/tmp/wt")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if status.Ahead != 2 || status.Behind != 1 {
		t.Errorf("ahead/behind = %d/%d, want 2/1", status.Ahead, status.Behind)
	}
	if status.Staged != 2 {
		t.Errorf("Staged = %d, want 2", status.Staged)
	}
	if status.Unstaged != 2 {
		t.Errorf("Unstaged = %d, want 2", status.Unstaged)
	}
	if status.Untracked != 2 {
		t.Errorf("Untracked = %d, want 2", status.Untracked)
	}
	if !status.HasUncommittedChanges {
		t.Error("HasUncommittedChanges should be true")
	}
}

func TestProbe_RenameCountedOnce(t *testing.T) {
	// A staged rename produces a "2" entry and must count as one staged
	// change, not as staged plus untracked.
	out := "# branch.head main\n" +
		"2 R. N... 100644 100644 100644 aaaa bbbb R100 new.go\told.go\n"

	runner := &fakeRunner{result: &executor.Result{ExitCode: 0, Stdout: out}}
	p := New(runner, executor.Options{})

	status, err := p.Probe(context.Background(), "/tmp/wt")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if status.Staged != 1 {
		t.Errorf("Staged = %d, want 1", status.Staged)
	}
	if status.Untracked != 0 {
		t.Errorf("Untracked = %d, want 0", status.Untracked)
	}
}

func TestProbe_NotARepository(t *testing.T) {
	runner := &fakeRunner{result: &executor.Result{
		ExitCode: 128,
		Stderr:   "fatal: not a git repository (or any of the parent directories): .git",
	}}
	p := New(runner, executor.Options{})

	_, err := p.Probe(context.Background(), "/tmp/nowhere")
	if !errors.Is(err, tmerrors.ErrNotARepository) {
		t.Errorf("err = %v, want ErrNotARepository", err)
	}
}

func TestProbe_WorktreeDirectoryGone(t *testing.T) {
	runner := &fakeRunner{result: &executor.Result{
		ExitCode: 128,
		Stderr:   "fatal: cannot change to '/repos/demo/.tmuxman/worktrees/login': No such file or directory",
	}}
	p := New(runner, executor.Options{})

	_, err := p.Probe(context.Background(), "/repos/demo/.tmuxman/worktrees/login")
	if !errors.Is(err, tmerrors.ErrNotARepository) {
		t.Errorf("err = %v, want ErrNotARepository for a deleted worktree", err)
	}
}

func TestProbe_CommandFailed(t *testing.T) {
	runner := &fakeRunner{result: &executor.Result{
		ExitCode: 129,
		Stderr:   "fatal: index file corrupt",
	}}
	p := New(runner, executor.Options{})

	_, err := p.Probe(context.Background(), "/tmp/wt")
	var cmdErr *CommandFailedError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("err = %v, want *CommandFailedError", err)
	}
	if cmdErr.ExitCode != 129 {
		t.Errorf("ExitCode = %d, want 129", cmdErr.ExitCode)
	}
}

func TestHasUncommittedChanges_Derived(t *testing.T) {
	tests := []struct {
		staged, unstaged, untracked int
		want                        bool
	}{
		{0, 0, 0, false},
		{1, 0, 0, true},
		{0, 1, 0, true},
		{0, 0, 1, true},
		{3, 2, 5, true},
	}

	for _, tt := range tests {
		var lines []string
		lines = append(lines, "# branch.head main")
		for i := 0; i < tt.staged; i++ {
			lines = append(lines, "1 M. N... 100644 100644 100644 aaaa bbbb f.go")
		}
		for i := 0; i < tt.unstaged; i++ {
			lines = append(lines, "1 .M N... 100644 100644 100644 aaaa bbbb g.go")
		}
		for i := 0; i < tt.untracked; i++ {
			lines = append(lines, "? h.txt")
		}

		status := parsePorcelain(strings.Join(lines, "\n"))
		if status.HasUncommittedChanges != tt.want {
			t.Errorf("counts %d/%d/%d: HasUncommittedChanges = %v, want %v",
				tt.staged, tt.unstaged, tt.untracked, status.HasUncommittedChanges, tt.want)
		}
	}
}
