// Package styles defines the shared lipgloss color palette and text styles
// used by console output. Keeping them in one place keeps the CLI's look
// consistent across commands.
package styles

import "github.com/charmbracelet/lipgloss"

// Adaptive colors pick a readable variant for light and dark terminals.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bc8cff"}
)

var (
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Error   = lipgloss.NewStyle().Foreground(ColorError)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Info    = lipgloss.NewStyle().Foreground(ColorInfo)
	Muted   = lipgloss.NewStyle().Foreground(ColorMuted)
	Accent  = lipgloss.NewStyle().Foreground(ColorAccent)

	Bold   = lipgloss.NewStyle().Bold(true)
	Header = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
)
