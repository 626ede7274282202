package config

import (
	"strings"
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.TmuxSession != "claude-tmux-manager" {
		t.Errorf("TmuxSession = %q, want claude-tmux-manager", cfg.TmuxSession)
	}
	if !strings.HasSuffix(cfg.WorktreeDir, "worktrees") {
		t.Errorf("WorktreeDir = %q, want a worktrees container", cfg.WorktreeDir)
	}
	if cfg.BranchPrefix != "feature/" {
		t.Errorf("BranchPrefix = %q, want feature/", cfg.BranchPrefix)
	}
	if !strings.HasSuffix(cfg.StateFile, "sessions.json") {
		t.Errorf("StateFile = %q, want a sessions.json path", cfg.StateFile)
	}
	if cfg.GitTimeout != 30*time.Second {
		t.Errorf("GitTimeout = %v, want 30s", cfg.GitTimeout)
	}
	if cfg.TerminalTimeout != 10*time.Second {
		t.Errorf("TerminalTimeout = %v, want 10s", cfg.TerminalTimeout)
	}
	if cfg.StatusFreshness != 5*time.Second {
		t.Errorf("StatusFreshness = %v, want 5s", cfg.StatusFreshness)
	}
	if cfg.ListenAddr != "127.0.0.1:8420" {
		t.Errorf("ListenAddr = %q, want 127.0.0.1:8420", cfg.ListenAddr)
	}
	if cfg.Theme != "auto" {
		t.Errorf("Theme = %q, want auto", cfg.Theme)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty tmux session",
			mutate:  func(c *Config) { c.TmuxSession = "" },
			wantErr: "tmux session",
		},
		{
			name:    "empty worktree dir",
			mutate:  func(c *Config) { c.WorktreeDir = "" },
			wantErr: "worktree directory",
		},
		{
			name:    "empty state file",
			mutate:  func(c *Config) { c.StateFile = "" },
			wantErr: "state file",
		},
		{
			name:    "zero git timeout",
			mutate:  func(c *Config) { c.GitTimeout = 0 },
			wantErr: "git timeout",
		},
		{
			name:    "negative terminal timeout",
			mutate:  func(c *Config) { c.TerminalTimeout = -time.Second },
			wantErr: "terminal timeout",
		},
		{
			name:    "negative freshness",
			mutate:  func(c *Config) { c.StatusFreshness = -time.Second },
			wantErr: "freshness",
		},
		{
			name:   "zero freshness is allowed",
			mutate: func(c *Config) { c.StatusFreshness = 0 },
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.Theme = "solarized" },
			wantErr: "theme",
		},
		{
			name:   "light theme is valid",
			mutate: func(c *Config) { c.Theme = "light" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
