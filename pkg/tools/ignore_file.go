package tools

import (
	"strings"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// ignoreImportStem is the canonical stem an imported ignore file lands on.
const ignoreImportStem = "default"

// ignoreFile is the shared ignore family: every supporting tool reads one
// fixed file in gitignore syntax at the project root. Eligible canonical
// lists arrive pre-sorted by stem and are concatenated with a blank line
// between sections.
type ignoreFile struct {
	tool string
	path string
}

func (f *ignoreFile) Location(scope artifact.Scope) string {
	if scope == artifact.ScopeGlobal {
		return ""
	}
	return f.path
}

func (f *ignoreFile) FromCanonical(lists []*artifact.IgnoreList, scope artifact.Scope) (*File, error) {
	loc := f.Location(scope)
	if loc == "" {
		return nil, nil
	}

	var sections []string
	for _, list := range lists {
		if body := strings.Trim(list.Body, "\n"); body != "" {
			sections = append(sections, body)
		}
	}
	if len(sections) == 0 {
		return nil, nil
	}
	content := strings.Join(sections, "\n\n") + "\n"
	return &File{Path: loc, Content: []byte(content)}, nil
}

func (f *ignoreFile) ToCanonical(file *File, scope artifact.Scope) (*artifact.IgnoreList, error) {
	return &artifact.IgnoreList{
		Stem: ignoreImportStem,
		Body: strings.Trim(string(file.Content), "\n"),
	}, nil
}

func (f *ignoreFile) Validate(*File) *artifact.ValidationResult {
	// Gitignore syntax has no invalid lines.
	return validResult()
}

func (f *ignoreFile) Deletable(artifact.Scope) bool { return true }
