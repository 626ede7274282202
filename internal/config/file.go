// Package config provides configuration management for tmuxman.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the configuration loaded from ~/.tmuxman/config.toml.
// All fields are optional; zero values leave the runtime defaults untouched.
type FileConfig struct {
	// TmuxSession overrides the tmux session that holds managed windows.
	TmuxSession string `toml:"tmux_session"`

	// WorktreeDir overrides the per-project worktree container directory.
	WorktreeDir string `toml:"worktree_dir"`

	// BranchPrefix overrides the branch naming prefix.
	BranchPrefix string `toml:"branch_prefix"`

	// GitTimeoutSeconds overrides the git command timeout.
	GitTimeoutSeconds int `toml:"git_timeout_seconds"`

	// TerminalTimeoutSeconds overrides the terminal launch timeout.
	TerminalTimeoutSeconds int `toml:"terminal_timeout_seconds"`

	// StatusFreshnessSeconds overrides the git status freshness window.
	StatusFreshnessSeconds int `toml:"status_freshness_seconds"`

	// ListenAddr overrides the HTTP server bind address.
	ListenAddr string `toml:"listen_addr"`

	// Theme overrides the TUI colour theme: "auto", "dark", or "light".
	Theme string `toml:"theme"`
}

// DefaultConfigPath returns ~/.tmuxman/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tmuxman", "config.toml")
	}
	return filepath.Join(home, ".tmuxman", "config.toml")
}

// LoadFileConfig reads configuration from the default config path.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfig() (*FileConfig, error) {
	return LoadFileConfigFrom(DefaultConfigPath())
}

// LoadFileConfigFrom reads configuration from a specific file path.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfigFrom(configPath string) (*FileConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply merges the file configuration into a runtime Config.
// Only fields explicitly set in the file override the existing values.
func (fc *FileConfig) Apply(c *Config) {
	if fc == nil {
		return
	}
	if fc.TmuxSession != "" {
		c.TmuxSession = fc.TmuxSession
	}
	if fc.WorktreeDir != "" {
		c.WorktreeDir = fc.WorktreeDir
	}
	if fc.BranchPrefix != "" {
		c.BranchPrefix = fc.BranchPrefix
	}
	if fc.GitTimeoutSeconds > 0 {
		c.GitTimeout = time.Duration(fc.GitTimeoutSeconds) * time.Second
	}
	if fc.TerminalTimeoutSeconds > 0 {
		c.TerminalTimeout = time.Duration(fc.TerminalTimeoutSeconds) * time.Second
	}
	if fc.StatusFreshnessSeconds > 0 {
		c.StatusFreshness = time.Duration(fc.StatusFreshnessSeconds) * time.Second
	}
	if fc.ListenAddr != "" {
		c.ListenAddr = fc.ListenAddr
	}
	if fc.Theme != "" {
		c.Theme = fc.Theme
	}
}
