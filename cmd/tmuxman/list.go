package main

import (
	"github.com/spf13/cobra"

	"tmuxman/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list [project]",
	Short: "List sessions with window state and git status",
	Long: `List registered sessions, optionally filtered by project.

Each row shows whether the session's tmux window is open and a
summary of uncommitted changes in its worktree. Git status is
read from the cache when fresh enough, so repeated listings do
not hammer git.`,
	Aliases: []string{"ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
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

	sessions := manager.ListSessions(cmd.Context(), project)

	f := output.NewFormatter(quiet, cmd.OutOrStdout())
	f.PrintSessionTable(sessions)
	return nil
}
