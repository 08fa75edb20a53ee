package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/daybalance/internal/event"
)

// Color definitions for consistent styling across the UI.
var (
	// Work: bold cyan
	colorWork = color.New(color.FgCyan, color.Bold)

	// Life: bold green
	colorLife = color.New(color.FgGreen, color.Bold)

	// Sleep and unallotted time: dim
	colorSleep = color.New(color.FgBlue, color.Faint)

	// Recommendations: yellow to make them pop
	colorIdea = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Warnings
	colorWarn = color.New(color.FgRed)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
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

// formatCategory colors text by category.
func formatCategory(c event.Category, s string) string {
	if c == event.CategoryWork {
		return colorWork.Sprint(s)
	}
	return colorLife.Sprint(s)
}

func formatSleep(s string) string {
	return colorSleep.Sprint(s)
}

func formatIdea(s string) string {
	return colorIdea.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
