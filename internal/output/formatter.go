// Package output provides formatted CLI output for tmuxman.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"tmuxman/internal/session"
	"tmuxman/internal/terminal"
)

// Formatter handles user-facing output for the CLI commands.
type Formatter struct {
	quiet   bool
	noColor bool
	writer  io.Writer
}

// NewFormatter creates a new Formatter.
// It checks the NO_COLOR environment variable to determine if colour output
// should be disabled.
func NewFormatter(quiet bool, w io.Writer) *Formatter {
	noColor := os.Getenv("NO_COLOR") != ""
	if noColor {
		color.NoColor = true
	}

	return &Formatter{
		quiet:   quiet,
		noColor: noColor,
		writer:  w,
	}
}

// terminalWidth returns the width of the attached terminal, or a sane default
// when output is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}

// PrintSessionTable prints all sessions in a fixed-column table.
func (f *Formatter) PrintSessionTable(sessions []*session.Session) {
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(f.writer, "No sessions registered")
		_, _ = fmt.Fprintln(f.writer, "")
		_, _ = fmt.Fprintln(f.writer, "Create one with: tmuxman new <project> <feature> --path <repo>")
		return
	}

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.FgHiBlack)

	_, _ = cyan.Fprintf(f.writer, "%-28s %-10s %-8s %s\n", "SESSION", "WINDOW", "CHANGES", "BRANCH")

	width := terminalWidth()
	for _, s := range sessions {
		name := s.WindowName()
		windowState := "closed"
		stateColor := dim
		if s.IsActive {
			windowState = "open"
			stateColor = green
		}

		changes := "-"
		changesColor := dim
		if s.GitStats != nil {
			if s.GitStats.HasUncommittedChanges {
				changes = fmt.Sprintf("+%d ~%d ?%d", s.GitStats.Staged, s.GitStats.Unstaged, s.GitStats.Untracked)
				changesColor = yellow
			} else {
				changes = "clean"
				changesColor = green
			}
		}

		line := fmt.Sprintf("%-28s ", truncate(name, 28))
		_, _ = fmt.Fprint(f.writer, line)
		_, _ = stateColor.Fprintf(f.writer, "%-10s ", windowState)
		_, _ = changesColor.Fprintf(f.writer, "%-8s ", changes)
		_, _ = dim.Fprintln(f.writer, truncate(s.Branch, width-50))
	}
}

// PrintSessionDetail prints a single session with its git status.
func (f *Formatter) PrintSessionDetail(s *session.Session) {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	_, _ = cyan.Fprintln(f.writer, s.WindowName())
	_, _ = white.Fprintf(f.writer, "  Project:   %s\n", s.ProjectPath)
	_, _ = white.Fprintf(f.writer, "  Worktree:  %s\n", s.WorktreePath)
	_, _ = white.Fprintf(f.writer, "  Branch:    %s\n", s.Branch)
	_, _ = white.Fprintf(f.writer, "  Window:    %v\n", s.IsActive)

	if s.GitStats == nil {
		_, _ = dim.Fprintln(f.writer, "  Status:    (not probed yet)")
		return
	}
	_, _ = white.Fprintf(f.writer, "  Ahead:     %d  Behind: %d\n", s.GitStats.Ahead, s.GitStats.Behind)
	_, _ = white.Fprintf(f.writer, "  Staged:    %d  Unstaged: %d  Untracked: %d\n",
		s.GitStats.Staged, s.GitStats.Unstaged, s.GitStats.Untracked)
}

// PrintOutcome prints the result of a terminal-open attempt. Fallback
// outcomes keep the manual instructions front and centre.
func (f *Formatter) PrintOutcome(outcome terminal.Outcome) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	if outcome.Opened {
		_, _ = green.Fprintf(f.writer, "Opened terminal for %s\n", outcome.WindowName)
		return
	}

	fb := outcome.Fallback
	_, _ = yellow.Fprintln(f.writer, fb.Message)
	for i, instruction := range fb.Instructions {
		_, _ = white.Fprintf(f.writer, "  %d. %s\n", i+1, instruction)
	}

	if fb.Debug != nil && !f.quiet {
		_, _ = fmt.Fprintln(f.writer, "")
		_, _ = dim.Fprintf(f.writer, "  last attempt: exit %d", fb.Debug.ExitCode)
		if fb.Debug.Stderr != "" {
			_, _ = dim.Fprintf(f.writer, " (%s)", fb.Debug.Stderr)
		}
		_, _ = fmt.Fprintln(f.writer, "")
	}
}

// truncate shortens a string to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
