// Package executor runs external commands through the host shell with
// bounded timeouts and structured results.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// DefaultTimeout is used when Options.Timeout is not set.
const DefaultTimeout = 30 * time.Second

// TimedOutExitCode is the sentinel exit code reported when a command is
// killed for exceeding its timeout. No real process exits with -1.
const TimedOutExitCode = -1

// SpawnFailureExitCode is the sentinel exit code reported when the command
// could not be started at all and errors are suppressed.
const SpawnFailureExitCode = -1

// Options controls a single command execution.
type Options struct {
	// Timeout is the wall-clock bound for the command. Zero means DefaultTimeout.
	Timeout time.Duration

	// SuppressErrors converts spawn-level failures into a Result with a
	// sentinel exit code instead of returning an error.
	SuppressErrors bool
}

// Result contains the outcome of a single command execution.
type Result struct {
	// ExitCode is the exit code of the process, or a sentinel (-1) when the
	// command timed out or failed to spawn.
	ExitCode int

	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// TimedOut reports whether the command was killed for exceeding the timeout.
	TimedOut bool

	// Duration is how long the execution took.
	Duration time.Duration
}

// Runner abstracts command execution so callers can inject a fake in tests.
type Runner interface {
	Execute(ctx context.Context, command string, opts Options) (*Result, error)
}

// Executor runs commands through the host shell.
type Executor struct{}

// New creates a new Executor.
func New() *Executor {
	return &Executor{}
}

// shellCommand returns the shell binary and its command flag for the host platform.
func shellCommand() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// Execute runs a command string through the host shell.
// A single attempt is made per call; retry policy is the caller's responsibility.
// On timeout the process is killed and the Result reports TimedOut with a
// sentinel exit code. Spawn-level failures return an error unless
// opts.SuppressErrors is set, in which case they become a Result with the
// error text in Stderr.
func (e *Executor) Execute(ctx context.Context, command string, opts Options) (*Result, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	shell, flag := shellCommand()
	cmd := exec.CommandContext(cctx, shell, flag, command)
	// Give the process a moment to exit after the kill signal so Wait
	// cannot hang on inherited pipes.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if cctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = TimedOutExitCode
		return result, nil
	}

	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		// Spawn-level failure: the shell itself could not be started.
		if opts.SuppressErrors {
			result.ExitCode = SpawnFailureExitCode
			result.Stderr = runErr.Error()
			return result, nil
		}
		return nil, fmt.Errorf("failed to run command: %w", runErr)
	}

	result.ExitCode = 0
	return result, nil
}

// Quote escapes a string for safe interpolation into a POSIX shell command.
// The value is wrapped in single quotes with each embedded single quote
// rewritten as '\'' so shell metacharacters in user-influenced identifiers
// are inert.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
