// Package tty answers whether the process's standard streams are attached to
// a terminal. Styled output and cursor control are only emitted when they are.
package tty

import (
	"os"

	"golang.org/x/term"
)

// IsStderrTerminal reports whether stderr is attached to a terminal.
func IsStderrTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// IsStdoutTerminal reports whether stdout is attached to a terminal.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStdinTerminal reports whether stdin is attached to a terminal. Interactive
// prompts are skipped when it is not.
func IsStdinTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
