package timeline

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/grid"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

// HeaderLines is the number of lines above the first row.
const HeaderLines = 1

const gridLine = "▏"

// Renderer turns grid elements into styled terminal text.
type Renderer struct {
	lg      *lipgloss.Renderer
	palette *theme.Palette
}

// NewRenderer creates a renderer drawing with lg and the palette colors.
// A nil lg uses the default lipgloss renderer.
func NewRenderer(lg *lipgloss.Renderer, palette *theme.Palette) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	if palette == nil {
		palette = theme.NewPalette(nil)
	}
	return &Renderer{lg: lg, palette: palette}
}

// Render draws the header and every visible row. The returned layout holds
// the screen rect of each drawn row and block element, relative to the top
// left corner of the output.
func (h *Host) Render(r *Renderer) (string, grid.Layout) {
	layout := make(grid.Layout)
	labelW := max(0, h.opts.LabelWidth)

	out := []string{h.renderHeader(r, labelW)}
	y := HeaderLines
	for i, id := range h.order {
		v, ok := h.views[id]
		if !ok {
			continue
		}
		s, lines := h.renderRow(r, i, v, labelW, y, layout)
		out = append(out, s)
		y += lines
	}
	h.dirty = false
	return strings.Join(out, "\n"), layout
}

func (h *Host) renderHeader(r *Renderer, labelW int) string {
	p := r.palette
	muted := r.lg.NewStyle().Foreground(p.FgMuted)
	today := r.lg.NewStyle().Foreground(p.TextOnCurrent).Background(p.Current).Bold(true)

	parts := []string{muted.Width(labelW).Render("")}
	for _, c := range h.window.Cells() {
		cols := h.opts.Scale.Columns(c.Width)
		label := ansi.Truncate(c.Label(), cols, "")
		st := muted
		if h.IsToday(c) {
			st = today
		}
		parts = append(parts, st.Width(cols).MaxWidth(cols).Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (h *Host) renderRow(r *Renderer, idx int, v *grid.RowView, labelW, y int, layout grid.Layout) (string, int) {
	el := v.View()
	row := v.Props().Row
	scale := h.opts.Scale

	lines := scale.Lines(pxOr(el.Style[chart.StyleHeight], row.EffectiveHeight()))
	rowCols := scale.Columns(pxOr(el.Style[chart.StyleWidth], v.Props().Width))
	label := r.label(row, labelW, lines)

	if el.Style[chart.StyleOpacity] == "0" {
		blank := r.lg.NewStyle().Width(rowCols).Height(lines).Render("")
		return lipgloss.JoinHorizontal(lipgloss.Top, label, blank), lines
	}
	layout[el.ID] = grid.Rect{X: labelW, Y: y, W: rowCols, H: lines}

	bg := r.palette.RowBg
	if idx%2 == 1 {
		bg = r.palette.RowBgAlt
	}
	if c := el.Style[chart.StyleBackground]; c != "" {
		bg = lipgloss.Color(c)
	}

	clip := el.Style[chart.StyleOverflow] == "hidden"
	parts := []string{label}
	x, remaining := labelW, rowCols
	for _, child := range el.Children {
		cols := scale.Columns(pxOr(child.Style[chart.StyleWidth], 0))
		if clip {
			if remaining <= 0 {
				break
			}
			cols = min(cols, remaining)
		}
		parts = append(parts, r.block(child, bg, cols, lines))
		layout[child.ID] = grid.Rect{X: x, Y: y, W: cols, H: lines}
		x += cols
		remaining -= cols
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...), lines
}

func (r *Renderer) label(row *chart.Row, width, lines int) string {
	if width <= 0 {
		return ""
	}
	text := row.Label
	if text == "" {
		text = row.ID
	}
	text = strings.Repeat("  ", len(row.Parents)) + text
	text = ansi.Truncate(text, width, "…")
	return r.lg.NewStyle().
		Foreground(r.palette.Fg).
		Width(width).
		Height(lines).
		Render(text)
}

// block draws one block element. Class colors apply over the row background,
// explicit style values apply over class colors.
func (r *Renderer) block(el *grid.Element, rowBg lipgloss.Color, cols, lines int) string {
	if el.Style[chart.StyleOpacity] == "0" {
		return r.lg.NewStyle().Width(cols).Height(lines).Render("")
	}

	p := r.palette
	st := r.lg.NewStyle().Background(rowBg).Foreground(p.Fg)
	if el.HasClass(grid.WeekendClass) {
		st = st.Background(p.WeekendBg)
	}
	if el.HasClass(grid.CurrentClass) {
		st = st.Background(p.Current).Foreground(p.TextOnCurrent)
	}
	st = applyStyle(st, el.Style)

	content := ""
	for _, c := range el.Children {
		content += c.Content
	}
	if cols < 2 {
		return st.Width(cols).MaxWidth(cols).Height(lines).Render(ansi.Truncate(content, cols, ""))
	}

	line := st.Foreground(p.GridLine).Render(gridLine)
	edge := strings.TrimSuffix(strings.Repeat(line+"\n", lines), "\n")
	body := st.Width(cols - 1).MaxWidth(cols - 1).Height(lines).Render(ansi.Truncate(content, cols-1, ""))
	return lipgloss.JoinHorizontal(lipgloss.Top, edge, body)
}

// applyStyle maps the color related style keys onto a lipgloss style.
func applyStyle(st lipgloss.Style, s chart.Style) lipgloss.Style {
	if c := s[chart.StyleBackground]; c != "" {
		st = st.Background(lipgloss.Color(c))
	}
	if c := s[chart.StyleColor]; c != "" {
		st = st.Foreground(lipgloss.Color(c))
	}
	switch s[chart.StyleBold] {
	case "true", "bold":
		st = st.Bold(true)
	}
	return st
}

func pxOr(v string, fallback int) int {
	if n, ok := chart.ParsePx(v); ok {
		return n
	}
	return fallback
}

// IsToday reports whether the cell starts at today's period boundary.
func (h *Host) IsToday(c chart.TimeCell) bool {
	if c.Period == chart.PeriodHour {
		return c.LeftGlobal == dateutil.TruncateToHour(h.env.Now()).UnixMilli()
	}
	return c.LeftGlobal == dateutil.StartOfDayMillis(h.env.Now())
}
