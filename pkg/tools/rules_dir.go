package tools

import (
	"fmt"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// ruleFields is the per-tool mapping between canonical rule metadata and one
// native frontmatter schema. toNative produces only the recognized fields;
// fromNative reads them back onto the canonical rule. recognized lists the
// native keys the mapping owns, so everything else lands in the passthrough
// bag.
type ruleFields struct {
	recognized []string
	toNative   func(rule *artifact.Rule) map[string]any
	fromNative func(fm map[string]any, rule *artifact.Rule) error
}

// plainRuleFields is the mapping for tools whose rule files are bare
// markdown with no frontmatter at all.
var plainRuleFields = ruleFields{
	toNative:   func(*artifact.Rule) map[string]any { return nil },
	fromNative: func(map[string]any, *artifact.Rule) error { return nil },
}

// dirRules is the rule family for tools that keep every rule, root included,
// as a frontmatter-bearing file in one directory. Root-ness and glob
// activation are expressed through native fields per the tool's schema.
type dirRules struct {
	tool           string
	project        RuleLocations
	fields         ruleFields
	normalizeStems bool // tool mandates lowercase-hyphenated filenames
}

func (d *dirRules) Locations(scope artifact.Scope) RuleLocations {
	if scope == artifact.ScopeGlobal {
		return RuleLocations{}
	}
	return d.project
}

func (d *dirRules) FromCanonical(rule *artifact.Rule, ctx *RuleContext) (*File, error) {
	loc := d.Locations(ctx.Scope)
	if loc.Dir == "" {
		return nil, nil
	}

	fm := applyBag(map[string]any{}, rule.PassthroughFor(d.tool))
	for k, v := range d.fields.toNative(rule) {
		fm[k] = v
	}

	var content []byte
	var err error
	if len(fm) == 0 {
		content = renderPlain(rule.Body)
	} else {
		content, err = renderNative(fm, rule.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to render rule %s for %s: %w", rule.Stem, d.tool, err)
		}
	}

	stem := rule.Stem
	if d.normalizeStems {
		stem = NormalizeStem(stem)
	}
	return &File{Path: filepath.Join(loc.Dir, stem+loc.Ext), Content: content}, nil
}

func (d *dirRules) ToCanonical(file *File, scope artifact.Scope) (*artifact.Rule, error) {
	loc := d.Locations(scope)
	fm, body, err := parseNative(file.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
	}

	rule := &artifact.Rule{
		Stem: NormalizeStem(nativeStem(file.Path, loc.Ext)),
		Body: body,
	}
	if err := d.fields.fromNative(fm, rule); err != nil {
		return nil, err
	}
	rule.Extra = bagInto(nil, d.tool, collectBag(fm, d.fields.recognized...))
	return rule, nil
}

func (d *dirRules) Validate(file *File) *artifact.ValidationResult {
	return validateNativeMarkdown(file)
}

func (d *dirRules) Deletable(artifact.Scope) bool { return true }
