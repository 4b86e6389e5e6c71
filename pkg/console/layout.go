package console

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentsync/agentsync/pkg/styles"
	"github.com/agentsync/agentsync/pkg/tty"
)

// Layout helpers compose larger console surfaces (status screens, plan
// summaries) from smaller pieces. In a terminal they draw lipgloss boxes;
// elsewhere they fall back to plain separators so logs stay readable.

// LayoutTitleBox renders a centered title inside a box of the given width.
func LayoutTitleBox(title string, width int) string {
	if width < lipgloss.Width(title)+4 {
		width = lipgloss.Width(title) + 4
	}
	if tty.IsStderrTerminal() && os.Getenv("NO_COLOR") == "" {
		return lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorInfo).
			Width(width-2).
			Align(lipgloss.Center).
			Render(title)
	}
	separator := strings.Repeat("=", width)
	padding := (width - lipgloss.Width(title)) / 2
	return separator + "\n" + strings.Repeat(" ", padding) + title + "\n" + separator
}

// LayoutInfoSection renders a "label: value" line with an emphasized label.
func LayoutInfoSection(label, value string) string {
	return colorize(styles.Bold, label+":") + " " + value
}

// LayoutEmphasisBox renders content inside a colored box to draw attention.
func LayoutEmphasisBox(content string, color lipgloss.AdaptiveColor) string {
	if tty.IsStderrTerminal() && os.Getenv("NO_COLOR") == "" {
		return lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Render(content)
	}
	return content
}

// LayoutJoinVertical stacks sections top to bottom. Empty input yields an
// empty string.
func LayoutJoinVertical(sections ...string) string {
	if len(sections) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
