package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/console"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/parser"
)

var validateLog = logger.New("cli:validate")

// fileReport is the validation result for one canonical artifact file.
type fileReport struct {
	File   string                     `json:"file"`
	Kind   string                     `json:"kind"`
	Valid  bool                       `json:"valid"`
	Issues []artifact.ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every canonical artifact against its schema",
		Long: `Validate the canonical artifacts under .agentsync/ against their JSON
schemas: rule, ignore, command and sub-agent frontmatter, and the MCP server
document.

The command exits non-zero when any artifact is invalid. A project with more
than one root rule gets a warning; generation writes whichever converts last.

Examples:
  agentsync validate
  agentsync validate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			return RunValidate(s, jsonOut)
		},
	}

	cmd.Flags().Bool("json", false, "Output machine-readable JSON to stdout")
	cmd.Flags().StringArray("base-dir", nil, "Project root to validate (repeatable)")

	return cmd
}

// RunValidate validates every canonical artifact under the base directories.
func RunValidate(s *runSettings, jsonOut bool) error {
	var reports []fileReport
	var warnings []string

	for _, dir := range s.BaseDirs {
		dirReports, dirWarnings, err := validateDir(dir)
		if err != nil {
			return err
		}
		reports = append(reports, dirReports...)
		warnings = append(warnings, dirWarnings...)
	}

	invalid := 0
	for _, r := range reports {
		if !r.Valid {
			invalid++
		}
	}
	validateLog.Printf("Validated %d artifacts, %d invalid", len(reports), invalid)

	if jsonOut {
		out, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode validation report: %w", err)
		}
		fmt.Println(string(out))
	} else {
		printValidationReports(reports, warnings)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d artifacts are invalid", invalid, len(reports))
	}
	return nil
}

// validateDir validates one base directory's canonical tree.
func validateDir(dir string) ([]fileReport, []string, error) {
	var reports []fileReport
	var warnings []string

	markdownFeatures := []artifact.Feature{
		artifact.FeatureRules, artifact.FeatureIgnore, artifact.FeatureCommands, artifact.FeatureSubagents,
	}

	rootRules := 0
	for _, feature := range markdownFeatures {
		paths, err := artifact.ListMarkdownFiles(artifact.FeatureDir(dir, feature))
		if err != nil {
			return nil, nil, err
		}
		for _, path := range paths {
			report := validateMarkdownFile(path, feature)
			if feature == artifact.FeatureRules && report.Valid && isRootRule(path) {
				rootRules++
			}
			reports = append(reports, report)
		}
	}
	if rootRules > 1 {
		warnings = append(warnings, fmt.Sprintf("%d rules set root: true; each tool's root file holds only the last one converted", rootRules))
	}

	serverPath := artifact.ServerFile(dir)
	if data, err := os.ReadFile(serverPath); err == nil {
		vr := artifact.ValidateServerDocument(data)
		reports = append(reports, fileReport{
			File:   console.ToRelativePath(serverPath),
			Kind:   string(artifact.FeatureMCP),
			Valid:  vr.Valid,
			Issues: vr.Issues,
		})
	}

	return reports, warnings, nil
}

// validateMarkdownFile checks one artifact's frontmatter against the schema
// for its kind. Unparseable YAML is reported as an issue, not an error.
func validateMarkdownFile(path string, feature artifact.Feature) fileReport {
	report := fileReport{File: console.ToRelativePath(path), Kind: string(feature)}

	raw, err := os.ReadFile(path)
	if err != nil {
		report.Issues = []artifact.ValidationIssue{{Path: "", Message: err.Error()}}
		return report
	}
	res, err := parser.ExtractFrontmatter(string(raw))
	if err != nil {
		report.Issues = []artifact.ValidationIssue{{Path: "(frontmatter)", Message: err.Error()}}
		return report
	}

	vr := artifact.ValidateFrontmatter(feature, res.Frontmatter)
	report.Valid = vr.Valid
	report.Issues = vr.Issues
	return report
}

// isRootRule reports whether a rule file sets root: true. Parse failures
// count as non-root; they are already reported as invalid.
func isRootRule(path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	res, err := parser.ExtractFrontmatter(string(raw))
	if err != nil {
		return false
	}
	root, ok := res.Frontmatter["root"].(bool)
	return ok && root
}

func printValidationReports(reports []fileReport, warnings []string) {
	if len(reports) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("No canonical artifacts found"))
		return
	}

	invalid := 0
	for _, r := range reports {
		if r.Valid {
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(r.File))
			continue
		}
		invalid++
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(r.File))
		for _, issue := range r.Issues {
			loc := issue.Path
			if loc == "" {
				loc = "/"
			}
			fmt.Fprintf(os.Stderr, "    %s: %s\n", loc, issue.Message)
		}
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(w))
	}

	if invalid == 0 {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("All %d artifacts are valid", len(reports))))
	}
}
