package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <project> <feature>",
	Short: "Remove a session, its worktree and tmux window",
	Long: `Remove a session and tear down its resources.

The tmux window is killed if present, the git worktree is removed,
and the feature branch is deleted. Branch deletion falls back to a
forced delete when the branch has unmerged commits.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(2),
	RunE:    runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	project, feature := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager, err := buildManager(cfg)
	if err != nil {
		return err
	}

	if err := manager.RemoveSession(cmd.Context(), project, feature); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s:%s\n", project, feature)
	return nil
}
