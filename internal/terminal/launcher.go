package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"tmuxman/internal/executor"
	"tmuxman/internal/session"
)

// DefaultLaunchTimeout bounds a single terminal launch attempt.
const DefaultLaunchTimeout = 10 * time.Second

// Outcome is the result of a terminal-open request: either the window was
// opened, or Fallback carries manual recovery instructions. Never both.
type Outcome struct {
	Opened     bool
	WindowName string
	Fallback   *Fallback
}

// Fallback carries user-actionable instructions for opening the terminal
// manually, with optional diagnostics from the failed attempt.
type Fallback struct {
	Message      string
	SessionName  string
	WindowName   string
	Instructions []string
	Debug        *executor.Result
}

// Launcher opens host terminals attached to managed tmux windows.
type Launcher struct {
	runner      executor.Runner
	strategy    Strategy
	sessionName string
	timeout     time.Duration
	logf        func(format string, args ...any)
}

// NewLauncher creates a Launcher for the given tmux session using the given
// platform strategy.
func NewLauncher(runner executor.Runner, strategy Strategy, sessionName string, timeout time.Duration) *Launcher {
	if timeout <= 0 {
		timeout = DefaultLaunchTimeout
	}
	return &Launcher{
		runner:      runner,
		strategy:    strategy,
		sessionName: sessionName,
		timeout:     timeout,
		logf:        log.Printf,
	}
}

// OpenTerminal opens a terminal attached to the session's tmux window.
// It never returns an error: terminal-launch mechanisms are fragmented across
// platforms and emulators, so every failure resolves to a Fallback outcome
// carrying the exact commands the user can run themselves.
func (l *Launcher) OpenTerminal(ctx context.Context, sess *session.Session) Outcome {
	windowName := sess.WindowName()

	var lastResult *executor.Result
	for _, launch := range l.strategy.BuildLaunchCommands(l.sessionName, windowName) {
		result, err := l.runner.Execute(ctx, launch, executor.Options{
			Timeout:        l.timeout,
			SuppressErrors: true,
		})
		if err != nil {
			// SuppressErrors means this only happens on a broken runner;
			// treat it like a spawn failure.
			lastResult = &executor.Result{ExitCode: executor.SpawnFailureExitCode, Stderr: err.Error()}
			l.logf("terminal launch attempt errored (%s): %v", l.strategy.Name(), err)
			continue
		}
		if result.ExitCode == 0 {
			return Outcome{Opened: true, WindowName: windowName}
		}
		lastResult = result
		l.logf("terminal launch attempt failed (%s, exit %d): %s",
			l.strategy.Name(), result.ExitCode, result.Stderr)
	}

	return Outcome{
		WindowName: windowName,
		Fallback:   l.fallback(windowName, attachCommand(l.sessionName, windowName), lastResult),
	}
}

// fallback builds the manual-recovery payload. The tmux attach-and-select
// command is always the second instruction.
func (l *Launcher) fallback(windowName, tmuxCmd string, debug *executor.Result) *Fallback {
	return &Fallback{
		Message:     fmt.Sprintf("Could not open a terminal automatically for %s. Run these commands manually:", windowName),
		SessionName: l.sessionName,
		WindowName:  windowName,
		Instructions: []string{
			"Open a terminal on this machine",
			tmuxCmd,
			fmt.Sprintf("If the tmux session does not exist yet, run: tmux new-session -d -s %s", executor.Quote(l.sessionName)),
		},
		Debug: debug,
	}
}
