// Package terminal opens host terminal windows attached to managed tmux
// windows, degrading to manual instructions when automatic launch fails.
package terminal

import (
	"runtime"
	"strings"

	"tmuxman/internal/executor"
)

// Platform identifies the host operating system family for launch dispatch.
type Platform string

const (
	PlatformDarwin  Platform = "darwin"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformOther   Platform = "other"
)

// CurrentPlatform maps runtime.GOOS onto a launch platform.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformDarwin
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	default:
		return PlatformOther
	}
}

// Strategy builds the shell commands that open a terminal attached to a tmux
// window on one platform. Strategies receive the raw session and window
// names and own all quoting, since escaping rules differ per platform (POSIX
// single quotes mean nothing to cmd.exe). Candidates are ordered: the
// launcher tries them left to right until one succeeds, so a mis-configured
// emulator is distinguishable from a missing one in the logs.
type Strategy interface {
	// Name returns the strategy name (e.g. "darwin", "linux").
	Name() string

	// BuildLaunchCommands returns the ordered candidate shell commands.
	BuildLaunchCommands(sessionName, windowName string) []string
}

// StrategyFor returns the launch strategy for a platform.
func StrategyFor(p Platform) Strategy {
	switch p {
	case PlatformDarwin:
		return &darwinStrategy{}
	case PlatformLinux:
		return &linuxStrategy{}
	case PlatformWindows:
		return &windowsStrategy{}
	default:
		return &otherStrategy{}
	}
}

// attachCommand builds the POSIX tmux attach-and-select command. All dynamic
// segments are shell-escaped before interpolation.
func attachCommand(sessionName, windowName string) string {
	return "tmux attach-session -t " + executor.Quote(sessionName) +
		" \\; select-window -t " + executor.Quote(sessionName+":"+windowName)
}

// darwinStrategy opens Terminal.app via osascript and runs the tmux command
// in the new window.
type darwinStrategy struct{}

func (s *darwinStrategy) Name() string { return "darwin" }

func (s *darwinStrategy) BuildLaunchCommands(sessionName, windowName string) []string {
	// The tmux command is embedded in an AppleScript string literal, so
	// backslashes and double quotes need AppleScript escaping on top of the
	// outer shell quoting.
	escaped := strings.ReplaceAll(attachCommand(sessionName, windowName), `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	script := `tell application "Terminal"` + "\n" +
		`do script "` + escaped + `"` + "\n" +
		`activate` + "\n" +
		`end tell`
	return []string{"osascript -e " + executor.Quote(script)}
}

// linuxStrategy tries common emulators in order of desktop prevalence.
type linuxStrategy struct{}

// linuxEmulators is the ordered candidate list. Each entry wraps the tmux
// command in `sh -c` so the emulator only needs to spawn a shell.
var linuxEmulators = []struct {
	name string
	args string
}{
	{"gnome-terminal", "gnome-terminal -- sh -c %s"},
	{"konsole", "konsole -e sh -c %s"},
	{"xfce4-terminal", "xfce4-terminal -e %s"},
	{"x-terminal-emulator", "x-terminal-emulator -e sh -c %s"},
	{"xterm", "xterm -e sh -c %s"},
}

func (s *linuxStrategy) Name() string { return "linux" }

func (s *linuxStrategy) BuildLaunchCommands(sessionName, windowName string) []string {
	quoted := executor.Quote(attachCommand(sessionName, windowName))
	commands := make([]string, 0, len(linuxEmulators))
	for _, em := range linuxEmulators {
		commands = append(commands, strings.ReplaceAll(em.args, "%s", quoted))
	}
	return commands
}

// windowsStrategy opens a native console host running tmux (under WSL or
// Cygwin). cmd.exe passes single quotes through to the program literally, so
// the embedded command is built with double-quoted arguments; ";" is not a
// command separator in cmd and tmux's separator needs no escaping there.
type windowsStrategy struct{}

func (s *windowsStrategy) Name() string { return "windows" }

func (s *windowsStrategy) BuildLaunchCommands(sessionName, windowName string) []string {
	inner := "tmux attach-session -t " + winQuote(sessionName) +
		" ; select-window -t " + winQuote(sessionName+":"+windowName)
	// The whole command sits inside the outer `cmd /k "..."` argument, where
	// embedded double quotes are doubled.
	escaped := strings.ReplaceAll(inner, `"`, `""`)
	return []string{`cmd /c start cmd /k "` + escaped + `"`}
}

// winQuote wraps a cmd.exe argument in double quotes, doubling any embedded
// ones.
func winQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// otherStrategy is a best-effort fallback for unrecognised platforms.
type otherStrategy struct{}

func (s *otherStrategy) Name() string { return "other" }

func (s *otherStrategy) BuildLaunchCommands(sessionName, windowName string) []string {
	quoted := executor.Quote(attachCommand(sessionName, windowName))
	return []string{
		"x-terminal-emulator -e sh -c " + quoted,
		"xterm -e sh -c " + quoted,
	}
}
