package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListMarkdownFiles returns the sorted paths of .md files directly under dir.
// A missing directory is not an error; it simply holds no artifacts.
func ListMarkdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadFile reads a file, mapping a missing file to NotFoundError.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// LoadRule reads and parses one canonical rule file.
func LoadRule(path string) (*Rule, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRule(Stem(path), string(data))
}

// LoadIgnoreList reads and parses one canonical ignore list file.
func LoadIgnoreList(path string) (*IgnoreList, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseIgnoreList(Stem(path), string(data))
}

// LoadCommand reads and parses one canonical slash command file.
func LoadCommand(path string) (*Command, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCommand(Stem(path), string(data))
}

// LoadSubagent reads and parses one canonical subagent file.
func LoadSubagent(path string) (*Subagent, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSubagent(Stem(path), string(data))
}

// LoadServerSet reads and parses the canonical server definition file.
func LoadServerSet(path string) (*ServerSet, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseServerSet(data)
}
