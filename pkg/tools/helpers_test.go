//go:build !integration

package tools

import (
	"reflect"
	"testing"
)

func TestPlaceholderConversion(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		opencode  string
	}{
		{
			name:      "single placeholder",
			canonical: "${GITHUB_TOKEN}",
			opencode:  "{env:GITHUB_TOKEN}",
		},
		{
			name:      "placeholder inside text",
			canonical: "Bearer ${API_KEY} trailing",
			opencode:  "Bearer {env:API_KEY} trailing",
		},
		{
			name:      "multiple placeholders",
			canonical: "${A}:${B}",
			opencode:  "{env:A}:{env:B}",
		},
		{
			name:      "no placeholder passes through",
			canonical: "plain value",
			opencode:  "plain value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toOpenCodePlaceholders(tt.canonical); got != tt.opencode {
				t.Errorf("toOpenCodePlaceholders(%q) = %q, want %q", tt.canonical, got, tt.opencode)
			}
			if got := fromOpenCodePlaceholders(tt.opencode); got != tt.canonical {
				t.Errorf("fromOpenCodePlaceholders(%q) = %q, want %q", tt.opencode, got, tt.canonical)
			}
		})
	}
}

func TestGlobJoining(t *testing.T) {
	globs := []string{"**/*.ts", "src/**"}
	joined := joinGlobs(globs)
	if joined != "**/*.ts,src/**" {
		t.Errorf("joinGlobs = %q", joined)
	}
	if got := splitGlobs(joined); !reflect.DeepEqual(got, globs) {
		t.Errorf("splitGlobs(%q) = %v, want %v", joined, got, globs)
	}
}

func TestSplitGlobsToleratesSpacing(t *testing.T) {
	got := splitGlobs(" **/*.go , , cmd/** ")
	want := []string{"**/*.go", "cmd/**"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitGlobs = %v, want %v", got, want)
	}
	if splitGlobs("") != nil {
		t.Errorf("splitGlobs(\"\") should be nil")
	}
}

func TestCommandCollapsing(t *testing.T) {
	head, args := splitCommand(collapseCommand("npx", []string{"-y", "server"}))
	if head != "npx" || !reflect.DeepEqual(args, []string{"-y", "server"}) {
		t.Errorf("round trip gave %q %v", head, args)
	}

	head, args = splitCommand([]string{"docker"})
	if head != "docker" || args != nil {
		t.Errorf("single-element split gave %q %v", head, args)
	}

	head, args = splitCommand(nil)
	if head != "" || args != nil {
		t.Errorf("empty split gave %q %v", head, args)
	}
}

func TestCollectBag(t *testing.T) {
	fm := map[string]any{
		"description": "known",
		"priority":    7,
		"custom":      "kept",
	}
	bag := collectBag(fm, "description")
	want := map[string]any{"priority": 7, "custom": "kept"}
	if !reflect.DeepEqual(bag, want) {
		t.Errorf("collectBag = %v, want %v", bag, want)
	}

	if collectBag(map[string]any{"description": "x"}, "description") != nil {
		t.Errorf("fully recognized frontmatter should produce a nil bag")
	}
}

func TestApplyBagRecognizedFieldsWin(t *testing.T) {
	fm := applyBag(nil, map[string]any{"description": "stale", "custom": true})
	fm["description"] = "fresh"
	if fm["description"] != "fresh" {
		t.Errorf("recognized field should win over bag entry")
	}
	if fm["custom"] != true {
		t.Errorf("bag entry lost")
	}
}
