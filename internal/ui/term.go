package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Row ids: cyan
	colorID = color.New(color.FgCyan)

	// Style overrides: yellow to make them stand out
	colorStyle = color.New(color.FgYellow)

	// Success messages: green
	colorOK = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatID(s string) string {
	return colorID.Sprint(s)
}

func formatStyle(s string) string {
	return colorStyle.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
