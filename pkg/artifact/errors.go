package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/agentsync/agentsync/pkg/logger"
)

var errorsLog = logger.New("artifact:errors")

// NotFoundError reports a requested file that does not exist. Single-file
// loads treat it as fatal; enumeration treats it as "nothing to convert".
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// NewNotFoundError creates a NotFoundError for the given path.
func NewNotFoundError(path string) *NotFoundError {
	errorsLog.Printf("Not found: %s", path)
	return &NotFoundError{Path: path}
}

// IsNotFound reports whether err is a NotFoundError or an underlying
// fs.ErrNotExist.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// ValidationError reports content that violates the canonical or a native
// schema. It aborts only the artifact it concerns.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Hint   string
}

func (e *ValidationError) Error() string {
	s := e.Message()
	if e.Hint != "" {
		s += " (" + e.Hint + ")"
	}
	return s
}

// Message renders the error without its hint, for callers that present the
// hint separately.
func (e *ValidationError) Message() string {
	var sb strings.Builder
	sb.WriteString("invalid")
	if e.Field != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&sb, " %q", e.Value)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	return sb.String()
}

// NewValidationError creates a ValidationError for a field and reason.
func NewValidationError(field, value, reason string) *ValidationError {
	errorsLog.Printf("Validation failure: field=%s value=%q reason=%s", field, value, reason)
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError reports mutually exclusive fields both set on one record,
// such as a server definition carrying both a command and a URL.
type ConflictError struct {
	Name   string
	FieldA string
	FieldB string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s and %s are mutually exclusive", e.Name, e.FieldA, e.FieldB)
}

// NewConflictError creates a ConflictError for a named record.
func NewConflictError(name, fieldA, fieldB string) *ConflictError {
	errorsLog.Printf("Conflict: name=%s fields=%s,%s", name, fieldA, fieldB)
	return &ConflictError{Name: name, FieldA: fieldA, FieldB: fieldB}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
