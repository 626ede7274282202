package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"tmuxman/internal/session"
	"tmuxman/internal/terminal"
)

// refreshInterval is how often the dashboard re-reads the registry.
const refreshInterval = 2 * time.Second

// SessionLister supplies the dashboard with the current session list.
type SessionLister interface {
	ListSessions(ctx context.Context, project string) []*session.Session
}

// TerminalOpener opens a host terminal attached to a session's window.
type TerminalOpener interface {
	OpenTerminal(ctx context.Context, sess *session.Session) terminal.Outcome
}

// sessionsMsg carries a fresh session snapshot.
type sessionsMsg []*session.Session

// tickMsg triggers a periodic refresh.
type tickMsg time.Time

// openedMsg carries the result of a terminal-open attempt.
type openedMsg terminal.Outcome

// Model is the bubbletea model for the session dashboard.
type Model struct {
	lister  SessionLister
	opener  TerminalOpener
	project string

	sessions []*session.Session
	cursor   int
	status   string

	width  int
	height int
	ready  bool

	styles Styles
}

// NewModel creates a dashboard model over the given session source.
func NewModel(lister SessionLister, opener TerminalOpener, project string, theme Theme) Model {
	return Model{
		lister:  lister,
		opener:  opener,
		project: project,
		styles:  GetStyles(ResolveTheme(theme)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd())
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshInterval)
		defer cancel()
		return sessionsMsg(m.lister.ListSessions(ctx, m.project))
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) openCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), terminal.DefaultLaunchTimeout)
		defer cancel()
		return openedMsg(m.opener.OpenTerminal(ctx, sess))
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case sessionsMsg:
		m.sessions = msg
		if m.cursor >= len(m.sessions) {
			m.cursor = len(m.sessions) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refreshCmd(), tickCmd())

	case openedMsg:
		outcome := terminal.Outcome(msg)
		if outcome.Opened {
			m.status = "opened terminal for " + outcome.WindowName
		} else if outcome.Fallback != nil {
			m.status = outcome.Fallback.Message
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
			return m, nil
		case "r":
			return m, m.refreshCmd()
		case "enter", "o":
			if m.cursor < len(m.sessions) {
				m.status = "opening " + m.sessions[m.cursor].WindowName() + "..."
				return m, m.openCmd(m.sessions[m.cursor])
			}
			return m, nil
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	title := "tmuxman"
	if m.project != "" {
		title += " · " + m.project
	}
	b.WriteString(m.styles.Brand.Render(title))
	b.WriteString("\n\n")

	if len(m.sessions) == 0 {
		b.WriteString(m.styles.Muted.Render("no sessions registered"))
		b.WriteString("\n")
	}

	for i, s := range m.sessions {
		b.WriteString(m.renderRow(s, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Warning.Render(ansi.Truncate(m.status, max(m.width-1, 10), "…")))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderRow(s *session.Session, selected bool) string {
	icon := m.styles.Muted.Render(IconClosed)
	if s.IsActive {
		icon = m.styles.Success.Render(IconOpen)
	}

	changes := m.styles.Muted.Render("      -")
	if s.GitStats != nil {
		if s.GitStats.HasUncommittedChanges {
			changes = m.styles.Warning.Render(fmt.Sprintf("%s +%d ~%d ?%d",
				IconDirty, s.GitStats.Staged, s.GitStats.Unstaged, s.GitStats.Untracked))
		} else {
			changes = m.styles.Success.Render("  clean")
		}
	}

	name := ansi.Truncate(s.WindowName(), 30, "…")
	nameStyle := m.styles.Value
	if selected {
		nameStyle = m.styles.Selected
	}

	return fmt.Sprintf(" %s %s %s  %s",
		icon,
		nameStyle.Render(fmt.Sprintf("%-30s", name)),
		changes,
		m.styles.Label.Render(ansi.Truncate(s.Branch, max(m.width-50, 10), "…")))
}

func (m Model) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"↑/↓", "move"},
		{"enter", "open terminal"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m.styles.HelpKey.Render(k.key)+" "+m.styles.HelpBar.Render(k.desc))
	}
	return strings.Join(parts, m.styles.HelpBar.Render(" · "))
}
