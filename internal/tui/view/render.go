package view

import "github.com/charmbracelet/lipgloss"

// ViewState contains pre-rendered sections and overlay metadata.
type ViewState struct {
	Width            int
	Height           int
	Grid             string
	Footer           string
	Overlay          string
	ShowOverlay      bool
	Bg               lipgloss.Color
	EmptyPlaceholder string
}

// Render composes the final view output. The grid fills every line the
// footer leaves free.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	footerH := 0
	if state.Footer != "" {
		footerH = lipgloss.Height(state.Footer)
	}
	gridH := max(0, state.Height-footerH)

	grid := PadLinesWithBackground(state.Grid, state.Width, gridH, state.Bg)
	base := grid
	if footerH > 0 {
		footer := PadLinesWithBackground(state.Footer, state.Width, footerH, state.Bg)
		if gridH > 0 {
			base = grid + "\n" + footer
		} else {
			base = footer
		}
	}

	if state.ShowOverlay {
		return RenderOverlay(base, state.Overlay, state.Width, state.Height, state.Bg)
	}
	return base
}
