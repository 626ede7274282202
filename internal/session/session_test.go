package session

import (
	"testing"

	"tmuxman/internal/gitstatus"
)

func TestWindowName(t *testing.T) {
	s := &Session{Project: "demo", Feature: "login"}
	if got := s.WindowName(); got != "demo:login" {
		t.Errorf("WindowName() = %q, want %q", got, "demo:login")
	}
}

func TestClone_IndependentStats(t *testing.T) {
	s := &Session{
		Project:  "demo",
		Feature:  "login",
		GitStats: &gitstatus.Status{Branch: "feature/login", Staged: 1, HasUncommittedChanges: true},
	}

	clone := s.Clone()
	clone.GitStats.Staged = 99

	if s.GitStats.Staged != 1 {
		t.Error("Clone must deep-copy GitStats")
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"demo", true},
		{"payment-retries", true},
		{"a1-b2", true},
		{"", false},
		{"Demo", false},
		{"has space", false},
		{"semi;colon", false},
		{"trailing-", false},
		{"-leading", false},
		{"dot.name", false},
		{"quote'name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.valid && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.name, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateName(%q) should fail", tt.name)
			}
		})
	}
}
