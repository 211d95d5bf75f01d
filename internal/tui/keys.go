package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

// KeyMap lists the key bindings of the chart view.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Today   key.Binding
	Reload  key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "earlier"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "later"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "row up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "row down"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "hours"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "days"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.ZoomIn, k.ZoomOut, k.Today, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.ZoomIn, k.ZoomOut, k.Today},
		{k.Reload, k.Copy, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logKeyPress(msg)

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	var err error
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Left):
		err = m.host.ScrollCells(-1)
	case key.Matches(msg, m.keys.Right):
		err = m.host.ScrollCells(1)
	case key.Matches(msg, m.keys.Up):
		m.host.ScrollRows(-1)
	case key.Matches(msg, m.keys.Down):
		m.host.ScrollRows(1)
	case key.Matches(msg, m.keys.ZoomIn):
		err = m.host.SetPeriod(chart.PeriodHour)
	case key.Matches(msg, m.keys.ZoomOut):
		err = m.host.SetPeriod(chart.PeriodDay)
	case key.Matches(msg, m.keys.Today):
		err = m.host.JumpToday()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, commands.LoadRows(m.repo)
	case key.Matches(msg, m.keys.Copy):
		return m.copyChart()
	}
	if err != nil {
		m.setError(err)
	}
	return m, nil
}

// copyChart copies the visible chart as plain text.
func (m Model) copyChart() (tea.Model, tea.Cmd) {
	text := ansi.Strip(m.rendered)
	if text == "" {
		m.statusMsg = "Nothing to copy"
		return m, nil
	}
	if err := m.copy(text); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		return m, nil
	}
	return m, commands.ShowStatus("Copied chart")
}
