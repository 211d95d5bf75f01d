package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_UsesThemeColors(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Current:     "#ffff00",
		Weekend:     "#151515",
	}

	p := NewPalette(base)
	if p.RowBg != lipgloss.Color(base.BgHighlight) {
		t.Errorf("RowBg = %q, want %q", p.RowBg, base.BgHighlight)
	}
	if p.GridLine != lipgloss.Color(base.BgSelection) {
		t.Errorf("GridLine = %q, want %q", p.GridLine, base.BgSelection)
	}
	if p.WeekendBg != lipgloss.Color(base.Weekend) {
		t.Errorf("WeekendBg = %q, want %q", p.WeekendBg, base.Weekend)
	}
	if p.RowBgAlt == p.RowBg {
		t.Error("RowBgAlt should differ from RowBg")
	}
}

func TestNewPalette_NilFallsBackToMocha(t *testing.T) {
	mocha, err := Load("mocha")
	if err != nil {
		t.Fatal(err)
	}
	if got := NewPalette(nil).Bg; got != lipgloss.Color(mocha.Bg) {
		t.Errorf("Bg = %q, want %q", got, mocha.Bg)
	}
}

func TestBlendColors(t *testing.T) {
	if got := blendColors("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("ratio 0 = %q, want #000000", got)
	}
	if got := blendColors("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("ratio 1 = %q, want #ffffff", got)
	}
	if got := blendColors("nope", "#ffffff", 0.5); got != "nope" {
		t.Errorf("invalid input = %q, want it unchanged", got)
	}
	mid := blendColors("#000000", "#ffffff", 0.5)
	if l := relativeLuminance(mid); l <= 0 || l >= 1 {
		t.Errorf("mid luminance = %f", l)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

func TestIsLightTheme(t *testing.T) {
	if !isLightTheme("#eff1f5") {
		t.Error("latte background should be light")
	}
	if isLightTheme("#1e1e2e") {
		t.Error("mocha background should be dark")
	}
}
