package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg            lipgloss.Color
	Fg            lipgloss.Color
	FgMuted       lipgloss.Color
	Accent        lipgloss.Color
	Current       lipgloss.Color
	GridLine      lipgloss.Color
	RowBg         lipgloss.Color
	RowBgAlt      lipgloss.Color
	WeekendBg     lipgloss.Color
	Selection     lipgloss.Color
	TextOnAccent  lipgloss.Color
	TextOnCurrent lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)
	altRatio := 0.35
	if isLight {
		altRatio = 0.55
	}

	return &Palette{
		Bg:            lipgloss.Color(t.Bg),
		Fg:            lipgloss.Color(t.Fg),
		FgMuted:       lipgloss.Color(t.FgMuted),
		Accent:        lipgloss.Color(t.Accent),
		Current:       lipgloss.Color(t.Current),
		GridLine:      lipgloss.Color(t.BgSelection),
		RowBg:         lipgloss.Color(t.BgHighlight),
		RowBgAlt:      lipgloss.Color(blendColors(t.BgHighlight, t.Bg, altRatio)),
		WeekendBg:     lipgloss.Color(t.Weekend),
		Selection:     lipgloss.Color(t.BgSelection),
		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnCurrent: lipgloss.Color(chooseTextColor(t.Current, t.Bg, t.Fg)),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance returns the WCAG luminance of a hex color, or 0 if the
// color cannot be parsed.
func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes a towards b by ratio in Lab space. Unparseable input
// returns a unchanged.
func blendColors(a, b string, ratio float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	ratio = max(0, min(1, ratio))
	return ca.BlendLab(cb, ratio).Clamped().Hex()
}
