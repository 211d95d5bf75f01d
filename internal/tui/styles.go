// Package tui provides the terminal user interface for gantt.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/gantt/internal/tui/theme"
)

// Styles holds the lipgloss styles of the chrome around the grid, derived
// from a theme palette.
type Styles struct {
	colorBg     lipgloss.Color
	colorFg     lipgloss.Color
	colorMuted  lipgloss.Color
	colorAccent lipgloss.Color

	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	InfoStyle    lipgloss.Style
	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	OverlayStyle      lipgloss.Style
	OverlayTitleStyle lipgloss.Style
}

// NewStyles creates styles from a palette.
func NewStyles(p *theme.Palette) *Styles {
	if p == nil {
		p = theme.NewPalette(nil)
	}
	s := &Styles{
		colorBg:     p.Bg,
		colorFg:     p.Fg,
		colorMuted:  p.FgMuted,
		colorAccent: p.Accent,
	}

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.Bg)
	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.TextOnCurrent).
		Background(p.Current).
		Bold(true)
	s.InfoStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)
	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg).
		Bold(true)

	s.OverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		BorderBackground(p.Bg).
		Background(p.Bg).
		Foreground(p.Fg).
		Padding(0, 2)
	s.OverlayTitleStyle = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true).
		Padding(0, 1)
	return s
}
