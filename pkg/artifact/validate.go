package artifact

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentsync/agentsync/pkg/logger"
)

var validateLog = logger.New("artifact:validate")

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	compileOnce     sync.Once
	compiledSchemas map[Feature]*jsonschema.Schema
	compileErr      error
)

var schemaFiles = map[Feature]string{
	FeatureRules:     "rule.json",
	FeatureIgnore:    "ignore.json",
	FeatureMCP:       "mcp.json",
	FeatureCommands:  "command.json",
	FeatureSubagents: "subagent.json",
}

// ValidationIssue is one schema violation found in an artifact.
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Keyword string `json:"keyword,omitempty"`
}

// ValidationResult reports the outcome of validating one artifact. It is a
// plain value; validation never fails with an error of its own.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

func invalidResult(issues ...ValidationIssue) *ValidationResult {
	return &ValidationResult{Valid: false, Issues: issues}
}

func compileSchemas() (map[Feature]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchemas = make(map[Feature]*jsonschema.Schema, len(schemaFiles))
		c := jsonschema.NewCompiler()
		for feature, name := range schemaFiles {
			raw, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				compileErr = fmt.Errorf("failed to read embedded schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("failed to parse embedded schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("failed to register schema %s: %w", name, err)
				return
			}
			schema, err := c.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("failed to compile schema %s: %w", name, err)
				return
			}
			compiledSchemas[feature] = schema
		}
	})
	return compiledSchemas, compileErr
}

// ValidateFrontmatter checks an artifact's frontmatter against the embedded
// schema for its feature. Unrecognized fields are allowed; they are the
// passthrough surface.
func ValidateFrontmatter(feature Feature, fm map[string]any) *ValidationResult {
	if fm == nil {
		fm = map[string]any{}
	}
	return validateInstance(feature, fm)
}

// ValidateServerDocument checks a canonical mcp.json document against the
// embedded server schema.
func ValidateServerDocument(data []byte) *ValidationResult {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return invalidResult(ValidationIssue{Path: "/", Message: fmt.Sprintf("invalid JSON: %v", err)})
	}
	return validateInstance(FeatureMCP, inst)
}

func validateInstance(feature Feature, value any) *ValidationResult {
	schemas, err := compileSchemas()
	if err != nil {
		return invalidResult(ValidationIssue{Path: "/", Message: err.Error()})
	}
	schema, ok := schemas[feature]
	if !ok {
		return invalidResult(ValidationIssue{Path: "/", Message: fmt.Sprintf("no schema for feature %s", feature)})
	}

	inst, err := toInstance(value)
	if err != nil {
		return invalidResult(ValidationIssue{Path: "/", Message: err.Error()})
	}

	if err := schema.Validate(inst); err != nil {
		var issues []ValidationIssue
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			collectValidationIssues(ve, &issues)
			issues = deduplicateIssues(issues)
		}
		if len(issues) == 0 {
			issues = append(issues, ValidationIssue{Path: "/", Message: err.Error()})
		}
		validateLog.Printf("Validation failed: feature=%s issues=%d", feature, len(issues))
		return invalidResult(issues...)
	}
	return &ValidationResult{Valid: true}
}

// toInstance round-trips a value through JSON so the validator sees exactly
// the types it expects, regardless of how the value was decoded.
func toInstance(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode instance: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode instance: %w", err)
	}
	return inst, nil
}

func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		keyword := ""
		if kp := ve.ErrorKind.KeywordPath(); len(kp) > 0 {
			keyword = kp[len(kp)-1]
		}
		// Structural combinators carry no information beyond their causes.
		switch keyword {
		case "oneOf", "allOf", "$ref":
			return
		}
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: ve.ErrorKind.LocalizedString(message.NewPrinter(language.English)),
			Keyword: keyword,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool, len(issues))
	out := make([]ValidationIssue, 0, len(issues))
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, issue)
	}
	return out
}
