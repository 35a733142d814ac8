package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// CLI text styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B61FF"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5C542"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func headerText(s string) string  { return headerStyle.Render(s) }
func successText(s string) string { return successStyle.Render(s) }
func warningText(s string) string { return warningStyle.Render(s) }
func errorText(s string) string   { return errorStyle.Render(s) }
func mutedText(s string) string   { return mutedStyle.Render(s) }

// pad right-pads s to width visible cells, ignoring escape sequences
func pad(s string, width int) string {
	if n := width - ansi.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// columnWidth returns the widest visible width in values
func columnWidth(values []string) int {
	w := 0
	for _, v := range values {
		if n := ansi.StringWidth(v); n > w {
			w = n
		}
	}
	return w
}
