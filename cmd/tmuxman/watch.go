package main

import (
	"github.com/spf13/cobra"

	"tmuxman/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [project]",
	Short: "Interactive dashboard of sessions",
	Long: `Open an interactive dashboard showing all sessions, optionally
filtered by project.

The list refreshes every couple of seconds. Press enter on a row to
open a terminal attached to that session's tmux window.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	project := ""
	if len(args) == 1 {
		project = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager, err := buildManager(cfg)
	if err != nil {
		return err
	}
	launcher := buildLauncher(cfg)

	program := tui.New(manager, launcher, project, tui.Theme(cfg.Theme))
	return program.Run()
}
