// Package logger provides namespaced debug logging controlled by the DEBUG
// environment variable, in the style of the npm debug package.
//
// Each file creates one logger for its own namespace:
//
//	var log = logger.New("tools:convert")
//
// Loggers are silent unless DEBUG matches their namespace. DEBUG holds a
// comma-separated list of patterns where "*" is a wildcard and a leading "-"
// excludes:
//
//	DEBUG=*                       all namespaces
//	DEBUG=tools:*                 one package
//	DEBUG=tools:*,processor:*     several packages
//	DEBUG=*,-tools:sanitize       everything except one file
//
// Output goes to stderr as "namespace message +elapsed" where elapsed is the
// time since the logger's previous message. Debug logging is for developers;
// user-facing output belongs to pkg/console.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes debug messages for a single namespace.
type Logger struct {
	namespace string
	enabled   bool

	mu   sync.Mutex
	last time.Time
}

// New creates a logger for the given namespace. The DEBUG environment
// variable is consulted once, at creation time.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   matches(os.Getenv("DEBUG"), namespace),
	}
}

// Enabled reports whether this logger's namespace is selected by DEBUG.
// Callers can use it to skip expensive argument construction.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted message when the logger is enabled.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// Print logs the concatenation of its arguments when the logger is enabled.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprint(args...))
}

func (l *Logger) emit(msg string) {
	l.mu.Lock()
	now := time.Now()
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, msg, formatElapsed(elapsed))
}

func formatElapsed(d time.Duration) string {
	if d == 0 {
		return "0ns"
	}
	return d.String()
}

// matches evaluates the DEBUG pattern list against a namespace. Exclusion
// patterns win over inclusion patterns regardless of order.
func matches(patterns, namespace string) bool {
	if patterns == "" {
		return false
	}

	included := false
	for _, raw := range strings.FieldsFunc(patterns, func(r rune) bool { return r == ',' || r == ' ' }) {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		if negated := strings.HasPrefix(pattern, "-"); negated {
			if matchPattern(pattern[1:], namespace) {
				return false
			}
			continue
		}
		if matchPattern(pattern, namespace) {
			included = true
		}
	}
	return included
}

// matchPattern matches a single pattern where "*" matches any run of
// characters, anchored at both ends.
func matchPattern(pattern, namespace string) bool {
	if pattern == "*" {
		return true
	}
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == namespace
	}

	rest := namespace
	for i, part := range parts {
		switch {
		case i == 0:
			if !strings.HasPrefix(rest, part) {
				return false
			}
			rest = rest[len(part):]
		case i == len(parts)-1:
			if !strings.HasSuffix(rest, part) {
				return false
			}
		default:
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
		}
	}
	return true
}
