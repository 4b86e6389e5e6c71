package parser

import (
	"fmt"
	"strings"

	"github.com/agentsync/agentsync/pkg/logger"
)

var yamlErrorLog = logger.New("parser:yaml_error")

// ExtractYAMLError extracts line and column information from YAML parsing errors.
// frontmatterLineOffset is the line number where the frontmatter content begins in
// the file (1-based), so positions reported against the YAML block can be mapped
// back to positions in the artifact file.
func ExtractYAMLError(err error, frontmatterLineOffset int) (line int, column int, message string) {
	yamlErrorLog.Printf("Extracting YAML error information: offset=%d", frontmatterLineOffset)
	errStr := err.Error()

	// goccy/go-yaml reports positions as "[line:column] message". A recognized
	// goccy error is final even when its location turned out to be unknown,
	// so the cleaned message is not lost to the fallback below.
	line, column, message = extractFromGoccyFormat(errStr, frontmatterLineOffset)
	if line > 0 || column > 0 || message != "" {
		yamlErrorLog.Printf("Extracted error location from goccy format: line=%d, column=%d", line, column)
		return line, column, message
	}

	yamlErrorLog.Print("Falling back to string parsing for error location")
	return extractFromStringParsing(errStr, frontmatterLineOffset)
}

// extractFromGoccyFormat extracts line/column from goccy/go-yaml's [line:column] message format
func extractFromGoccyFormat(errStr string, frontmatterLineOffset int) (line int, column int, message string) {
	start := strings.Index(errStr, "[")
	end := strings.Index(errStr, "]")
	if start < 0 || end <= start {
		return 0, 0, ""
	}

	locationPart := errStr[start+1 : end]
	messagePart := strings.TrimSpace(errStr[end+1:])

	parts := strings.Split(locationPart, ":")
	if len(parts) != 2 {
		return 0, 0, ""
	}
	if _, parseErr := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &line); parseErr != nil {
		return 0, 0, ""
	}
	if _, parseErr := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &column); parseErr != nil {
		return 0, 0, ""
	}

	// Line numbers in YAML errors are 1-based relative to the YAML content.
	if line > 0 {
		line += frontmatterLineOffset - 1
	}

	// Avoid reporting 1,1 when the location is really unknown.
	if line <= frontmatterLineOffset && column <= 1 {
		return 0, 0, messagePart
	}
	return line, column, messagePart
}

// extractFromStringParsing handles the "yaml: line X: message" format used by
// other YAML libraries, as a fallback when the goccy format is absent.
func extractFromStringParsing(errStr string, frontmatterLineOffset int) (line int, column int, message string) {
	if !strings.Contains(errStr, "yaml: line ") {
		return 0, 0, errStr
	}

	parts := strings.SplitN(errStr, "yaml: line ", 2)
	lineInfo := parts[1]
	colonIndex := strings.Index(lineInfo, ":")
	if colonIndex <= 0 {
		return 0, 0, errStr
	}

	if _, parseErr := fmt.Sscanf(lineInfo[:colonIndex], "%d", &line); parseErr != nil {
		return 0, 0, errStr
	}
	line += frontmatterLineOffset - 1
	message = strings.TrimSpace(lineInfo[colonIndex+1:])
	return line, 0, message
}
