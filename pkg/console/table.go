package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentsync/agentsync/pkg/styles"
)

// TableConfig describes a table to render: optional title, one header row,
// data rows, and an optional total row separated from the data.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders an aligned text table. Cell contents may already carry
// ANSI styling; widths are computed on the visible text.
func RenderTable(config TableConfig) string {
	columns := len(config.Headers)
	if columns == 0 {
		return ""
	}

	widths := make([]int, columns)
	for i, h := range config.Headers {
		widths[i] = lipgloss.Width(h)
	}
	measure := func(row []string) {
		for i, cell := range row {
			if i < columns && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for _, row := range config.Rows {
		measure(row)
	}
	if config.ShowTotal {
		measure(config.TotalRow)
	}

	renderRow := func(row []string) string {
		cells := make([]string, columns)
		for i := range cells {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(cells, "  "), " ")
	}

	separatorWidth := 0
	for _, w := range widths {
		separatorWidth += w
	}
	separatorWidth += 2 * (columns - 1)
	separator := strings.Repeat("-", separatorWidth)

	var sb strings.Builder
	if config.Title != "" {
		sb.WriteString(colorize(styles.Bold, config.Title))
		sb.WriteString("\n")
	}

	headers := make([]string, columns)
	for i, h := range config.Headers {
		headers[i] = colorize(styles.Header, h)
	}
	sb.WriteString(renderRow(headers))
	sb.WriteString("\n")
	sb.WriteString(separator)
	sb.WriteString("\n")

	for _, row := range config.Rows {
		sb.WriteString(renderRow(row))
		sb.WriteString("\n")
	}

	if config.ShowTotal {
		sb.WriteString(separator)
		sb.WriteString("\n")
		sb.WriteString(renderRow(config.TotalRow))
		sb.WriteString("\n")
	}
	return sb.String()
}
