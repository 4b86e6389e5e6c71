package tools

import (
	"regexp"
	"strings"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/parser"
)

// Canonical env interpolation is ${VAR}; opencode uses {env:VAR}.
var (
	dollarPlaceholderRe   = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	opencodePlaceholderRe = regexp.MustCompile(`\{env:([A-Za-z_][A-Za-z0-9_]*)\}`)
)

func toOpenCodePlaceholders(s string) string {
	return dollarPlaceholderRe.ReplaceAllString(s, "{env:$1}")
}

func fromOpenCodePlaceholders(s string) string {
	// "$$" is a literal dollar in the expansion template.
	return opencodePlaceholderRe.ReplaceAllString(s, "$${$1}")
}

func mapStringValues(m map[string]string, f func(string) string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = f(v)
	}
	return out
}

func mapStrings(items []string, f func(string) string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = f(s)
	}
	return out
}

// stringList coerces a decoded JSON array into a string slice.
func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// stringMap coerces a decoded JSON object with string values into a string
// map.
func stringMap(v any) (map[string]string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		s, ok := val.(string)
		if !ok {
			return nil, false
		}
		out[k] = s
	}
	return out, true
}

// collapseCommand joins a head command and its arguments into the single
// array form some tools use.
func collapseCommand(command string, args []string) []string {
	out := make([]string, 0, 1+len(args))
	out = append(out, command)
	return append(out, args...)
}

// splitCommand is the inverse of collapseCommand.
func splitCommand(list []string) (string, []string) {
	if len(list) == 0 {
		return "", nil
	}
	if len(list) == 1 {
		return list[0], nil
	}
	return list[0], append([]string(nil), list[1:]...)
}

// joinGlobs renders a canonical glob list in the comma-joined form several
// tools expect in a single frontmatter string.
func joinGlobs(globs []string) string {
	return strings.Join(globs, ",")
}

// splitGlobs parses a comma-joined glob string back into the canonical list.
func splitGlobs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// renderNative produces a tool-native markdown file from frontmatter and
// body. The body is stripped of any embedded stale metadata block first, so
// re-wrapping never stacks a second block on top of an old one.
func renderNative(fm map[string]any, body string) ([]byte, error) {
	content, err := parser.RenderFrontmatter(fm, parser.StripLeadingBlock(body))
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// renderPlain produces a frontmatter-less native file from a body alone.
func renderPlain(body string) []byte {
	stripped := strings.Trim(parser.StripLeadingBlock(body), "\n")
	if stripped == "" {
		return []byte{}
	}
	return []byte(stripped + "\n")
}

// parseNative splits a native markdown file into frontmatter and body.
func parseNative(content []byte) (map[string]any, string, error) {
	res, err := parser.ExtractFrontmatter(string(content))
	if err != nil {
		return nil, "", err
	}
	return res.Frontmatter, res.Body, nil
}

// collectBag gathers the native frontmatter fields outside the recognized
// set; they ride back to the canonical artifact in a tool-namespaced bag.
func collectBag(fm map[string]any, recognized ...string) map[string]any {
	known := make(map[string]bool, len(recognized))
	for _, k := range recognized {
		known[k] = true
	}
	bag := map[string]any{}
	for k, v := range fm {
		if !known[k] {
			bag[k] = v
		}
	}
	if len(bag) == 0 {
		return nil
	}
	return bag
}

// bagInto stores a passthrough bag in canonical Extra under the tool's ID.
func bagInto(extra map[string]any, tool string, bag map[string]any) map[string]any {
	if len(bag) == 0 {
		return extra
	}
	if extra == nil {
		extra = map[string]any{}
	}
	extra[tool] = bag
	return extra
}

// applyBag merges a tool's passthrough bag into a native frontmatter map.
// Recognized fields set by the converter win over bag entries of the same
// name, so callers apply the bag before setting recognized fields.
func applyBag(fm map[string]any, bag map[string]any) map[string]any {
	if fm == nil {
		fm = map[string]any{}
	}
	for k, v := range bag {
		fm[k] = v
	}
	return fm
}

// validateNativeMarkdown is the shared lenient native-file check: the file
// must parse; requiredFields must be present in its frontmatter.
func validateNativeMarkdown(file *File, requiredFields ...string) *artifact.ValidationResult {
	fm, _, err := parseNative(file.Content)
	if err != nil {
		return invalidResult(artifact.ValidationIssue{Path: "/", Message: err.Error()})
	}
	var issues []artifact.ValidationIssue
	for _, field := range requiredFields {
		if _, ok := fm[field]; !ok {
			issues = append(issues, artifact.ValidationIssue{
				Path:    "/" + field,
				Message: "required field is missing",
				Keyword: "required",
			})
		}
	}
	if len(issues) > 0 {
		return invalidResult(issues...)
	}
	return validResult()
}
