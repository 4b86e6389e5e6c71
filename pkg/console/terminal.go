package console

import (
	"fmt"
	"os"

	"github.com/agentsync/agentsync/pkg/tty"
)

// Cursor control for in-place updates (watch mode). All functions are no-ops
// when stderr is not a terminal so redirected output stays clean.

// MoveCursorUp moves the cursor up by the given number of lines.
func MoveCursorUp(lines int) {
	if lines <= 0 || !tty.IsStderrTerminal() {
		return
	}
	fmt.Fprintf(os.Stderr, "\033[%dA", lines)
}

// MoveCursorDown moves the cursor down by the given number of lines.
func MoveCursorDown(lines int) {
	if lines <= 0 || !tty.IsStderrTerminal() {
		return
	}
	fmt.Fprintf(os.Stderr, "\033[%dB", lines)
}

// ClearLine clears the current line and returns the cursor to its start.
func ClearLine() {
	if !tty.IsStderrTerminal() {
		return
	}
	fmt.Fprint(os.Stderr, "\r\033[K")
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen() {
	if !tty.IsStderrTerminal() {
		return
	}
	fmt.Fprint(os.Stderr, "\033[2J\033[H")
}
