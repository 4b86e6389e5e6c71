//go:build !integration

package logger_test

import (
	"fmt"
	"os"

	"github.com/agentsync/agentsync/pkg/logger"
)

// Examples run without a *testing.T, so DEBUG is managed with os.Setenv
// directly.

func ExampleNew() {
	os.Setenv("DEBUG", "artifact:*")
	defer os.Unsetenv("DEBUG")

	log := logger.New("artifact:rule")
	fmt.Println(log.Enabled())

	other := logger.New("tools:registry")
	fmt.Println(other.Enabled())

	// Output:
	// true
	// false
}

func ExampleLogger_Printf() {
	os.Setenv("DEBUG", "*")
	defer os.Unsetenv("DEBUG")

	log := logger.New("parser:frontmatter")

	// Messages go to stderr as "namespace message +elapsed".
	log.Printf("parsed %d artifacts", 3)
	// Output:
}
