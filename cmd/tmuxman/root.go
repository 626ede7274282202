package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tmuxman/internal/config"
	"tmuxman/internal/executor"
	"tmuxman/internal/gitstatus"
	"tmuxman/internal/session"
	"tmuxman/internal/terminal"
)

var (
	// Flag variables
	configFile  string
	tmuxSession string
	quiet       bool
	verbose     bool
	themeFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "tmuxman",
	Short: "Session manager for git worktrees and tmux windows",
	Long: `tmuxman manages development sessions, each pairing a git worktree
with a tmux window inside a single shared tmux session.

A session is identified by a (project, feature) pair. Creating one
adds a worktree under the project's repository and a tmux window
named <project>:<feature>. Git status for every session is probed
lazily and cached, so listings stay fast even with many worktrees.

CONFIGURATION FILE

tmuxman reads an optional TOML file from ~/.tmuxman/config.toml.
Use --config to point at a different path.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (default: ~/.tmuxman/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&tmuxSession, "session", "s", "", "Override the managed tmux session name")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress diagnostic output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Colour theme: auto, dark, or light")
}

// loadConfig builds the runtime configuration from defaults, the optional
// config file, and command-line flags, in that precedence order.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()

	var fc *config.FileConfig
	var err error
	if configFile != "" {
		fc, err = config.LoadFileConfigFrom(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
		if fc == nil {
			return nil, fmt.Errorf("config file not found: %s", configFile)
		}
	} else {
		fc, err = config.LoadFileConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	fc.Apply(cfg)

	if tmuxSession != "" {
		cfg.TmuxSession = tmuxSession
	}
	if verbose {
		cfg.Verbose = true
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildManager wires a session manager over the real shell executor and the
// registry loaded from disk.
func buildManager(cfg *config.Config) (*session.Manager, error) {
	registry := session.NewRegistry(cfg.StateFile)
	if err := registry.Load(); err != nil {
		return nil, fmt.Errorf("failed to load session registry: %w", err)
	}

	runner := executor.New()
	prober := gitstatus.New(runner, executor.Options{Timeout: cfg.GitTimeout})
	return session.NewManager(registry, runner, prober, cfg), nil
}

// buildLauncher wires a terminal launcher for the current platform.
func buildLauncher(cfg *config.Config) *terminal.Launcher {
	strategy := terminal.StrategyFor(terminal.CurrentPlatform())
	return terminal.NewLauncher(executor.New(), strategy, cfg.TmuxSession, cfg.TerminalTimeout)
}
