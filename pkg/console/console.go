// Package console formats user-facing CLI output: status messages, file
// diagnostics, tables, and simple layout primitives. Everything here renders
// to a string; callers print to stderr so stdout stays reserved for machine
// output. Styling degrades to plain text when stderr is not a terminal or
// NO_COLOR is set.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentsync/agentsync/pkg/styles"
	"github.com/agentsync/agentsync/pkg/tty"
)

const (
	successIcon = "✓"
	errorIcon   = "✗"
	warningIcon = "⚠"
	infoIcon    = "ℹ"
)

// colorize applies a style only when stderr is a terminal and color is not
// disabled via NO_COLOR.
func colorize(style lipgloss.Style, s string) string {
	if !tty.IsStderrTerminal() || os.Getenv("NO_COLOR") != "" {
		return s
	}
	return style.Render(s)
}

// FormatSuccessMessage formats a success message with a checkmark icon.
func FormatSuccessMessage(msg string) string {
	return colorize(styles.Success, successIcon+" "+msg)
}

// FormatErrorMessage formats an error message with a cross icon.
func FormatErrorMessage(msg string) string {
	return colorize(styles.Error, errorIcon+" "+msg)
}

// FormatWarningMessage formats a warning message with a warning icon.
func FormatWarningMessage(msg string) string {
	return colorize(styles.Warning, warningIcon+" "+msg)
}

// FormatInfoMessage formats an informational message with an info icon.
func FormatInfoMessage(msg string) string {
	return colorize(styles.Info, infoIcon+" "+msg)
}

// FormatVerboseMessage formats a low-priority message shown only in verbose
// mode.
func FormatVerboseMessage(msg string) string {
	return colorize(styles.Muted, msg)
}

// LogVerbose prints a verbose message to stderr when verbose mode is on.
func LogVerbose(verbose bool, msg string) {
	if verbose {
		fmt.Fprintln(os.Stderr, FormatVerboseMessage(msg))
	}
}

// FormatCommandMessage formats a shell command the user is being asked to run.
func FormatCommandMessage(cmd string) string {
	return colorize(styles.Accent, cmd)
}

// IsAccessibleMode reports whether interactive prompts should run in
// accessible mode for screen readers, per the ACCESSIBLE convention.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// ToRelativePath converts an absolute path to one relative to the current
// working directory when that makes it shorter to read. Paths outside the
// working directory are returned unchanged.
func ToRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// FormatFileSize renders a byte count in human-readable units.
func FormatFileSize(size int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case size >= gb:
		return fmt.Sprintf("%.1f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// ErrorPosition locates a diagnostic within a source file. Line and Column
// are 1-based; zero means unknown.
type ErrorPosition struct {
	File   string
	Line   int
	Column int
}

// FileError is a diagnostic tied to a position in an artifact file, in the
// classic compiler format. Context carries source lines around the position
// and Hint suggests a fix; both are optional.
type FileError struct {
	Position ErrorPosition
	Kind     string // "error" or "warning"
	Message  string
	Context  []string
	Hint     string
}

// Error implements the error interface so a FileError can travel through
// normal error returns before being rendered.
func (e FileError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Position.String(), e.kind(), e.Message)
}

func (e FileError) kind() string {
	if e.Kind == "" {
		return "error"
	}
	return e.Kind
}

// String renders a position as file:line:column, omitting unknown parts.
func (p ErrorPosition) String() string {
	s := p.File
	if p.Line > 0 {
		s += fmt.Sprintf(":%d", p.Line)
		if p.Column > 0 {
			s += fmt.Sprintf(":%d", p.Column)
		}
	}
	return s
}

// FormatError renders a FileError in the compiler diagnostic format:
//
//	path/to/file.md:12:3: error: mapping values are not allowed in this context
//	  11 | description: test
//	  12 | targets: [claudecode
//	hint: close the flow sequence with ]
func FormatError(e FileError) string {
	kindStyle := styles.Error
	if e.kind() == "warning" {
		kindStyle = styles.Warning
	}

	var sb strings.Builder
	sb.WriteString(e.Position.String())
	sb.WriteString(": ")
	sb.WriteString(colorize(kindStyle, e.kind()))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	// Context lines are shown centered around the error line.
	startLine := e.Position.Line - len(e.Context)/2
	for i, line := range e.Context {
		n := startLine + i
		if n > 0 {
			sb.WriteString(fmt.Sprintf("  %d | %s\n", n, line))
		} else {
			sb.WriteString(fmt.Sprintf("  | %s\n", line))
		}
	}
	if e.Hint != "" {
		sb.WriteString("hint: " + e.Hint + "\n")
	}
	return sb.String()
}

// FormatErrorWithSuggestions renders an error message followed by a bulleted
// list of suggested next steps.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var sb strings.Builder
	sb.WriteString(FormatErrorMessage(message))
	if len(suggestions) > 0 {
		sb.WriteString("\n\nSuggestions:\n")
		for _, s := range suggestions {
			sb.WriteString("  • " + s + "\n")
		}
	}
	return sb.String()
}
