package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tmuxman/internal/gitstatus"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(filepath.Join(t.TempDir(), "sessions.json"))
}

func demoSession() *Session {
	return &Session{
		Project:      "demo",
		Feature:      "login",
		ProjectPath:  "/home/dev/demo",
		WorktreePath: "/home/dev/demo/.tmuxman/worktrees/login",
		Branch:       "feature/login",
	}
}

func TestRegistry_GetAbsent(t *testing.T) {
	r := newTestRegistry(t)

	if _, ok := r.Get("ghost", "none"); ok {
		t.Error("Get should report absence for an unregistered identity")
	}
}

func TestRegistry_UpsertAndGet(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Upsert(demoSession()); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, ok := r.Get("demo", "login")
	if !ok {
		t.Fatal("Get should find the upserted session")
	}
	if got.Branch != "feature/login" {
		t.Errorf("Branch = %q, want %q", got.Branch, "feature/login")
	}

	// Returned record is a clone: mutating it must not affect the registry.
	got.Branch = "mutated"
	again, _ := r.Get("demo", "login")
	if again.Branch != "feature/login" {
		t.Error("Get must return clones, not shared pointers")
	}
}

func TestRegistry_UpsertReplacesWholeRecord(t *testing.T) {
	r := newTestRegistry(t)

	first := demoSession()
	first.GitStats = &gitstatus.Status{Branch: "feature/login", Staged: 3, HasUncommittedChanges: true}
	if err := r.Upsert(first); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	second := demoSession()
	second.Branch = "feature/login-v2"
	if err := r.Upsert(second); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, _ := r.Get("demo", "login")
	if got.Branch != "feature/login-v2" {
		t.Errorf("Branch = %q, want replacement to win", got.Branch)
	}
	if got.GitStats != nil {
		t.Error("replacement must be whole-record: old GitStats should be gone")
	}
}

func TestRegistry_ListFilterAndOrder(t *testing.T) {
	r := newTestRegistry(t)

	for _, k := range []Key{
		{"beta", "search"},
		{"alpha", "login"},
		{"alpha", "billing"},
	} {
		if err := r.Upsert(&Session{Project: k.Project, Feature: k.Feature}); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	all := r.List("")
	if len(all) != 3 {
		t.Fatalf("List(\"\") returned %d sessions, want 3", len(all))
	}
	want := []Key{{"alpha", "billing"}, {"alpha", "login"}, {"beta", "search"}}
	for i, k := range want {
		if all[i].Key() != k {
			t.Errorf("List order [%d] = %v, want %v", i, all[i].Key(), k)
		}
	}

	alpha := r.List("alpha")
	if len(alpha) != 2 {
		t.Errorf("List(alpha) returned %d sessions, want 2", len(alpha))
	}
}

func TestRegistry_Persistence(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "sessions.json")

	r := NewRegistry(stateFile)
	sess := demoSession()
	sess.IsActive = true
	if err := r.Upsert(sess); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if _, err := os.Stat(stateFile); err != nil {
		t.Fatalf("state file not written: %v", err)
	}

	reloaded := NewRegistry(stateFile)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, ok := reloaded.Get("demo", "login")
	if !ok {
		t.Fatal("reloaded registry should contain the session")
	}
	if got.WorktreePath != sess.WorktreePath {
		t.Errorf("WorktreePath = %q, want %q", got.WorktreePath, sess.WorktreePath)
	}
	if got.IsActive {
		t.Error("IsActive must not be trusted from disk")
	}
}

func TestRegistry_LoadMissingFile(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "absent", "sessions.json"))
	if err := r.Load(); err != nil {
		t.Errorf("Load of missing file should not error, got %v", err)
	}
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0", r.Count())
	}
}

func TestRegistry_LoadNullEntries(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "sessions.json")
	content := `{"sessions":[null,{"project":"demo","feature":"login","projectPath":"/repos/demo","worktreePath":"/repos/demo/.tmuxman/worktrees/login","branch":"feature/login"},null]}`
	if err := os.WriteFile(stateFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write state file: %v", err)
	}

	r := NewRegistry(stateFile)
	if err := r.Load(); err != nil {
		t.Fatalf("Load with null entries should not error, got %v", err)
	}

	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}
	if _, ok := r.Get("demo", "login"); !ok {
		t.Error("valid entry should survive a load with null neighbours")
	}
}

func TestRegistry_ConcurrentUpserts(t *testing.T) {
	r := newTestRegistry(t)

	// Parallel whole-record writes on the same key must never interleave
	// partial field sets: the surviving record is internally consistent.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			branch := "feature/login"
			path := "/home/dev/demo/.tmuxman/worktrees/login"
			if n%2 == 1 {
				branch = "feature/login-alt"
				path = "/home/dev/demo/.tmuxman/worktrees/login-alt"
			}
			s := demoSession()
			s.Branch = branch
			s.WorktreePath = path
			_ = r.Upsert(s)
		}(i)
	}
	wg.Wait()

	got, ok := r.Get("demo", "login")
	if !ok {
		t.Fatal("session should exist after concurrent upserts")
	}
	consistent := (got.Branch == "feature/login" && got.WorktreePath == "/home/dev/demo/.tmuxman/worktrees/login") ||
		(got.Branch == "feature/login-alt" && got.WorktreePath == "/home/dev/demo/.tmuxman/worktrees/login-alt")
	if !consistent {
		t.Errorf("record fields interleaved: branch=%q worktree=%q", got.Branch, got.WorktreePath)
	}
}
