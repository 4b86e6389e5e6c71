package tools

import (
	"strings"
	"unicode"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/logger"
)

var sanitizeLog = logger.New("tools:sanitize")

// SanitizeOptions configures SanitizeName.
type SanitizeOptions struct {
	// PreserveSpecialChars lists runes kept verbatim in addition to
	// lowercase alphanumerics and hyphens.
	PreserveSpecialChars []rune
	// TrimHyphens removes leading and trailing hyphens from the result.
	TrimHyphens bool
	// DefaultValue is returned when sanitization yields an empty string.
	DefaultValue string
	// MaxLength truncates the result when positive.
	MaxLength int
}

// SanitizeName is the unified sanitizer every derived identifier goes
// through. It lowercases the input, turns every rune outside the allowed
// class (lowercase alphanumerics, hyphens, and PreserveSpecialChars) into a
// hyphen, collapses hyphen runs, then applies trimming, truncation, and the
// default value per opts.
//
// Because path separators and dots are outside the allowed class, no result
// can contain a separator or a ".." segment.
func SanitizeName(name string, opts *SanitizeOptions) string {
	if opts == nil {
		opts = &SanitizeOptions{}
	}

	preserved := make(map[rune]bool, len(opts.PreserveSpecialChars))
	for _, r := range opts.PreserveSpecialChars {
		preserved[r] = true
	}

	var sb strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', preserved[r]:
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	result := sb.String()
	if opts.TrimHyphens {
		result = strings.Trim(result, "-")
	}
	if opts.MaxLength > 0 && len(result) > opts.MaxLength {
		result = result[:opts.MaxLength]
		if opts.TrimHyphens {
			result = strings.TrimRight(result, "-")
		}
	}
	if result == "" {
		return opts.DefaultValue
	}
	return result
}

// SanitizeFileStem sanitizes an identifier that becomes part of a generated
// filename, such as a subagent's name. Separators and traversal segments
// cannot survive sanitization; a value that sanitizes to nothing at all is a
// ValidationError because it would otherwise produce an unaddressable file.
func SanitizeFileStem(name string) (string, error) {
	result := SanitizeName(name, &SanitizeOptions{
		PreserveSpecialChars: []rune{'_'},
		TrimHyphens:          true,
	})
	if result == "" {
		return "", artifact.NewValidationError("name", name, "sanitizes to an empty identifier")
	}
	if result != name {
		sanitizeLog.Printf("Sanitized file stem: %q -> %q", name, result)
	}
	return result, nil
}

// NormalizeStem converts a canonical file stem to the lowercase-hyphenated
// convention some tools mandate. PascalCase and camelCase word boundaries
// and underscores become hyphens; stems already in the convention pass
// through unchanged. Normalization is deterministic and stable under
// repeated application.
func NormalizeStem(stem string) string {
	if isNormalizedStem(stem) {
		return stem
	}

	var parts []rune
	runes := []rune(stem)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				parts = append(parts, '-')
			}
		}
		parts = append(parts, r)
	}

	return SanitizeName(string(parts), &SanitizeOptions{TrimHyphens: true})
}

func isNormalizedStem(stem string) bool {
	if stem == "" {
		return true
	}
	for _, r := range stem {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return !strings.HasPrefix(stem, "-") && !strings.HasSuffix(stem, "-") && !strings.Contains(stem, "--")
}
