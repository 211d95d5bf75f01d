package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/tui/view"
)

// View renders the grid, the footer, and the help overlay when open.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		Grid:             m.rendered,
		Footer:           m.renderFooter(),
		Overlay:          m.renderHelpOverlay(),
		ShowOverlay:      m.showHelp,
		Bg:               m.styles.colorBg,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderFooter() string {
	status := m.statusMsgOrDefault()
	statusStyle := m.styles.StatusStyle
	if m.err != nil && strings.HasPrefix(status, "Error:") {
		statusStyle = m.styles.ErrorStyle
	}

	info := m.windowInfo()
	statusW := max(0, m.width-ansi.StringWidth(info)-1)
	statusLine := statusStyle.Render(ansi.Truncate(status, statusW, "…"))
	gap := max(1, m.width-ansi.StringWidth(ansi.Strip(statusLine))-ansi.StringWidth(info))
	statusLine += m.styles.InfoStyle.Render(strings.Repeat(" ", gap) + info)

	return statusLine + "\n" + m.renderHelp()
}

// statusMsgOrDefault returns the status message or a space to preserve layout.
func (m Model) statusMsgOrDefault() string {
	if m.loading {
		return "Loading..."
	}
	if m.statusMsg == "" {
		return " "
	}
	return m.statusMsg
}

// windowInfo summarizes the visible period and rows.
func (m Model) windowInfo() string {
	w := m.host.Window()
	cells := w.Cells()
	if len(cells) == 0 {
		return ""
	}
	first, last := cells[0].Start, cells[len(cells)-1].Start
	layout := "Jan 02"
	if w.Period == chart.PeriodHour {
		layout = "Jan 02 15h"
	}

	visible := m.host.Visible()
	total := len(m.host.Rows())
	rows := "no rows"
	if len(visible) > 0 {
		off := m.host.RowOffset()
		rows = fmt.Sprintf("rows %d-%d/%d", off+1, off+len(visible), total)
	}
	return fmt.Sprintf("%s → %s · %s", first.Format(layout), last.Format(layout), rows)
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.styles.HelpKeyStyle.Render(h.Key)+m.styles.HelpStyle.Render(" "+h.Desc))
	}
	return ansi.Truncate(strings.Join(parts, m.styles.HelpStyle.Render("  ")), m.width, "")
}

func (m Model) renderHelpOverlay() string {
	if !m.showHelp {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitleStyle.Render("Keys"))
	for _, group := range m.keys.FullHelp() {
		b.WriteString("\n")
		for _, k := range group {
			h := k.Help()
			b.WriteString(fmt.Sprintf("\n%-6s %s", h.Key, h.Desc))
		}
	}
	return m.styles.OverlayStyle.Render(b.String())
}
