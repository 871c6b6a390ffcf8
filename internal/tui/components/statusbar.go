package components

import (
	"strings"

	"github.com/theirongolddev/stratsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest status message on the right, colored by msgColor.
func RenderStatusBar(width int, hints, msg string, msgColor lipgloss.Color) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if msgColor == "" {
		msgColor = t.TextMuted
	}
	msgStyle := lipgloss.NewStyle().Foreground(msgColor).Background(t.Surface)

	left := " " + hints
	right := ""
	if msg != "" {
		right = msg + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Hints give way to the message on narrow terminals.
		left = ""
		padding = max(0, width-lipgloss.Width(right))
	}

	return base.Render(left+strings.Repeat(" ", padding)) + msgStyle.Render(right)
}
