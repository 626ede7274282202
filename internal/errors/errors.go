// Package errors defines sentinel errors used across multiple packages.
package errors

import "errors"

// ErrSessionNotFound is returned when no session is registered for a (project, feature) identity.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when creating a session whose identity is already registered.
var ErrSessionExists = errors.New("session already exists")

// ErrNotARepository is returned when a path is not inside a git worktree.
var ErrNotARepository = errors.New("not a git repository")
