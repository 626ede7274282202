package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tmuxman/internal/output"
)

var newProjectPath string

var newCmd = &cobra.Command{
	Use:   "new <project> <feature>",
	Short: "Create a session with a worktree and tmux window",
	Long: `Create a new session for the given project and feature.

A git worktree is added under the project repository with a branch
named after the feature, and a tmux window <project>:<feature> is
opened in the managed tmux session. Window creation is best-effort:
the session is usable even when tmux is not running.`,
	Args: cobra.ExactArgs(2),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newProjectPath, "path", "p", "", "Path to the project repository (default: current directory)")
}

func runNew(cmd *cobra.Command, args []string) error {
	project, feature := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	projectPath := newProjectPath
	if projectPath == "" {
		projectPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	manager, err := buildManager(cfg)
	if err != nil {
		return err
	}

	sess, err := manager.CreateSession(cmd.Context(), project, feature, projectPath)
	if err != nil {
		return err
	}

	f := output.NewFormatter(quiet, cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Created session %s\n", sess.WindowName())
	f.PrintSessionDetail(sess)
	return nil
}
