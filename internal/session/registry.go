package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Registry is the authoritative store mapping (project, feature) to session
// records. Mutations replace whole records; there are no partial field writes.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[Key]*Session
	stateFile string
}

// NewRegistry creates a registry persisting to the given state file.
func NewRegistry(stateFile string) *Registry {
	return &Registry{
		sessions:  make(map[Key]*Session),
		stateFile: stateFile,
	}
}

// Get retrieves a session by identity.
// Returns a clone for thread-safe access; absence is reported, not an error.
func (r *Registry) Get(project, feature string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[Key{Project: project, Feature: feature}]
	if !ok {
		return nil, false
	}
	return session.Clone(), true
}

// Upsert inserts or replaces a session record atomically (last writer wins
// on whole-record granularity) and persists the change.
func (r *Registry) Upsert(session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Key()] = session.Clone()
	return r.saveLocked()
}

// Delete removes a session from the registry and persists the change.
func (r *Registry) Delete(project, feature string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, Key{Project: project, Feature: feature})
	return r.saveLocked()
}

// List returns clones of all sessions, optionally filtered by project.
// Order is stable for a given snapshot (sorted by project, then feature).
func (r *Registry) List(project string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if project != "" && s.Project != project {
			continue
		}
		result = append(result, s.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Project != result[j].Project {
			return result[i].Project < result[j].Project
		}
		return result[i].Feature < result[j].Feature
	})
	return result
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Load reads the registry state from disk. A missing state file is not an
// error; the registry simply starts empty.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var state struct {
		Sessions []*Session `json:"sessions"`
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to unmarshal state: %w", err)
	}

	for _, s := range state.Sessions {
		// A hand-edited or truncated file can carry null entries.
		if s == nil {
			continue
		}
		// Window liveness is recomputed on lookup, never trusted from disk.
		s.IsActive = false
		r.sessions[s.Key()] = s
	}
	return nil
}

// saveLocked persists the registry state to disk with an atomic
// write-then-rename. Caller must hold the write lock.
func (r *Registry) saveLocked() error {
	stateDir := filepath.Dir(r.stateFile)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Project != sessions[j].Project {
			return sessions[i].Project < sessions[j].Project
		}
		return sessions[i].Feature < sessions[j].Feature
	})

	state := struct {
		Sessions []*Session `json:"sessions"`
	}{Sessions: sessions}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tempPath := r.stateFile + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := os.Rename(tempPath, r.stateFile); err != nil {
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}
