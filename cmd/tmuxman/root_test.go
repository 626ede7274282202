package main

import (
	"os"
	"path/filepath"
	"testing"

	"tmuxman/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	oldConfig, oldSession, oldVerbose, oldTheme := configFile, tmuxSession, verbose, themeFlag
	t.Cleanup(func() {
		configFile, tmuxSession, verbose, themeFlag = oldConfig, oldSession, oldVerbose, oldTheme
	})
	configFile, tmuxSession, verbose, themeFlag = "", "", false, ""
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetFlags(t)
	// Point HOME at an empty dir so no real config file is picked up.
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.TmuxSession != config.DefaultTmuxSession {
		t.Errorf("TmuxSession = %q; want %q", cfg.TmuxSession, config.DefaultTmuxSession)
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())
	tmuxSession = "scratch"
	verbose = true
	themeFlag = "light"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.TmuxSession != "scratch" {
		t.Errorf("TmuxSession = %q; want scratch", cfg.TmuxSession)
	}
	if !cfg.Verbose {
		t.Error("expected Verbose to be set from flag")
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q; want light", cfg.Theme)
	}
}

func TestLoadConfig_FileThenFlag(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("tmux_session = \"from-file\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	configFile = path
	tmuxSession = "from-flag"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	// Flag wins over file.
	if cfg.TmuxSession != "from-flag" {
		t.Errorf("TmuxSession = %q; want from-flag", cfg.TmuxSession)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	resetFlags(t)
	configFile = filepath.Join(t.TempDir(), "nope.toml")

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestBuildManager_LoadsRegistry(t *testing.T) {
	resetFlags(t)
	cfg := config.NewConfig()
	cfg.StateFile = filepath.Join(t.TempDir(), ".tmuxman", "sessions.json")

	manager, err := buildManager(cfg)
	if err != nil {
		t.Fatalf("buildManager() error = %v", err)
	}
	if manager == nil {
		t.Fatal("buildManager() returned nil")
	}
}
