// Package view composes the chart screen: the grid, the footer, and an
// optional centered overlay.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadLinesWithBackground pads content to width/height with a background color.
// Lines wider than width are cut.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = ansi.Cut(line, 0, width)
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	return strings.Join(lines, "\n")
}

// RenderOverlay centers overlay and splices it over the base content.
func RenderOverlay(base, overlay string, width, height int, bg lipgloss.Color) string {
	overlayLines := strings.Split(overlay, "\n")
	overlayHeight := len(overlayLines)
	if overlay == "" || overlayHeight == 0 {
		return base
	}

	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}
	overlayWidth = min(overlayWidth, width)
	if overlayWidth == 0 {
		return base
	}

	top := max(0, (height-overlayHeight)/2)
	left := max(0, (width-overlayWidth)/2)

	for i, line := range overlayLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > overlayWidth {
			line = ansi.Cut(line, 0, overlayWidth)
		}
		if lineWidth < overlayWidth {
			line += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", overlayWidth-lineWidth))
		}
		overlayLines[i] = line + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, ""), "\n")
	lines := make([]string, 0, height)
	for row := range height {
		if row < top || row >= top+overlayHeight {
			lines = append(lines, baseLines[row])
			continue
		}
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+overlayWidth, width)
		lines = append(lines, leftSlice+overlayLines[row-top]+rightSlice)
	}
	return strings.Join(lines, "\n")
}
