// Package parser implements the frontmatter codec shared by every
// markdown-based artifact: a leading YAML block delimited by "---" lines,
// followed by a free-text body.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentsync/agentsync/pkg/logger"
)

var frontmatterLog = logger.New("parser:frontmatter")

// Result holds the two halves of a parsed artifact file. FrontmatterLines
// preserves the raw YAML lines (without delimiters) for diagnostics.
type Result struct {
	Frontmatter      map[string]any
	FrontmatterLines []string
	Body             string
}

// ExtractFrontmatter splits content into its YAML frontmatter and body.
//
// A file without a leading "---" line parses as an empty frontmatter map with
// the whole content as body. CRLF input is treated identically to LF input.
// An opening delimiter without a closing one is an error: silently treating
// half a block as body would hide the author's mistake.
func ExtractFrontmatter(content string) (*Result, error) {
	content = NormalizeLineEndings(content)
	lines := strings.Split(content, "\n")

	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return &Result{
			Frontmatter: map[string]any{},
			Body:        trimBlankEdges(content),
		}, nil
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, fmt.Errorf("frontmatter block opened on line 1 is never closed")
	}

	fmLines := lines[1:closing]
	raw := strings.Join(fmLines, "\n")

	frontmatter := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := yaml.Unmarshal([]byte(raw), &frontmatter); err != nil {
			frontmatterLog.Printf("YAML parse failure: %v", err)
			// Frontmatter content starts on line 2 of the file.
			line, column, message := ExtractYAMLError(err, 2)
			if line > 0 {
				return nil, fmt.Errorf("invalid frontmatter at line %d, column %d: %s", line, column, message)
			}
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	body := ""
	if closing+1 < len(lines) {
		body = strings.Join(lines[closing+1:], "\n")
	}

	return &Result{
		Frontmatter:      frontmatter,
		FrontmatterLines: fmLines,
		Body:             trimBlankEdges(body),
	}, nil
}

// RenderFrontmatter produces the canonical file form: a "---" delimited YAML
// block followed by the body and a single trailing newline. An empty
// frontmatter map renders no block at all. Map keys are emitted in sorted
// order so repeated renders are byte-identical.
func RenderFrontmatter(frontmatter map[string]any, body string) (string, error) {
	var sb strings.Builder

	if len(frontmatter) > 0 {
		encoded, err := yaml.Marshal(sortedValue(frontmatter))
		if err != nil {
			return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(encoded)
		sb.WriteString("---\n")
	}

	body = trimBlankEdges(NormalizeLineEndings(body))
	if body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// StripLeadingBlock removes one embedded "---" delimited block from the start
// of a body, plus any blank lines that follow it. Adapters that rebuild a
// native body from canonical content use this to avoid stacking a second
// metadata block on top of an already-wrapped body. Bodies without a leading
// block are returned unchanged.
func StripLeadingBlock(body string) string {
	normalized := NormalizeLineEndings(body)
	lines := strings.Split(normalized, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return body
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			return trimBlankEdges(strings.Join(lines[i+1:], "\n"))
		}
	}
	return body
}

// NormalizeLineEndings converts CRLF line endings to LF.
func NormalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// sortedValue rewrites maps into explicitly ordered form so the encoder
// emits keys in sorted order, making repeated renders byte-identical.
func sortedValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ms := make(yaml.MapSlice, 0, len(val))
		for _, k := range keys {
			ms = append(ms, yaml.MapItem{Key: k, Value: sortedValue(val[k])})
		}
		return ms
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sortedValue(item)
		}
		return out
	default:
		return v
	}
}

// trimBlankEdges removes leading and trailing blank lines while leaving
// interior blank lines intact.
func trimBlankEdges(s string) string {
	return strings.Trim(s, "\n")
}
