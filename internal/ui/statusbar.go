package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/ui/theme"
)

// renderStatusBar renders the bottom status bar from the focused tab's
// field lists.
func renderStatusBar(width int, left, right []string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	l := " " + strings.Join(left, "  ")
	r := strings.Join(right, "  ") + " "

	padding := width - lipgloss.Width(l) - lipgloss.Width(r)
	if padding < 0 {
		padding = 0
	}

	return style.Render(l + strings.Repeat(" ", padding) + r)
}
