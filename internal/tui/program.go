package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Program wraps the tea.Program for lifecycle management.
type Program struct {
	program *tea.Program
}

// New creates a new dashboard program over the given session source.
func New(lister SessionLister, opener TerminalOpener, project string, theme Theme) *Program {
	// Handle NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := NewModel(lister, opener, project, theme)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	return &Program{program: program}
}

// Run starts the dashboard. This blocks until the program exits.
func (p *Program) Run() error {
	_, err := p.program.Run()
	return err
}

// Quit sends a quit message to the program.
func (p *Program) Quit() {
	p.program.Quit()
}
