package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"tmuxman/internal/errors"
	"tmuxman/internal/output"
)

var openCmd = &cobra.Command{
	Use:   "open <project> <feature>",
	Short: "Open a terminal attached to a session's tmux window",
	Long: `Open a host terminal window attached to the session's tmux window.

The platform's terminal emulators are tried in order. When none can
be launched, the tmux attach command is printed so the window can be
reached manually; this is reported as a fallback, not a failure.`,
	Args: cobra.ExactArgs(2),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	project, feature := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager, err := buildManager(cfg)
	if err != nil {
		return err
	}

	sess, ok := manager.GetSession(cmd.Context(), project, feature)
	if !ok {
		return fmt.Errorf("%w: %s:%s", errors.ErrSessionNotFound, project, feature)
	}

	var spin *spinner.Spinner
	if !quiet {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " opening terminal for " + sess.WindowName()
		spin.Start()
	}

	launcher := buildLauncher(cfg)
	outcome := launcher.OpenTerminal(cmd.Context(), sess)

	if spin != nil {
		spin.Stop()
	}

	f := output.NewFormatter(quiet, cmd.OutOrStdout())
	f.PrintOutcome(outcome)
	return nil
}
