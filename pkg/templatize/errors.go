package templatize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputNotFound is returned when the source package does not exist
	ErrInputNotFound = errors.New("input document not found")
	// ErrBodyNotFound is returned when the main document part has no w:body element
	ErrBodyNotFound = errors.New("document body not found")
	// ErrAnchorNotFound is returned when an insertion reference is no longer a child of the body
	ErrAnchorNotFound = errors.New("reference paragraph not found in body")
)

// DocumentError represents an error during package operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// PlanError describes a plan step that cannot be applied
type PlanError struct {
	Step      int
	Op        Op
	Paragraph int
	Message   string
	Cause     error
}

func (e *PlanError) Error() string {
	var sb strings.Builder
	if e.Step >= 0 {
		fmt.Fprintf(&sb, "plan step %d", e.Step)
	} else {
		sb.WriteString("plan removal")
	}
	if e.Op != "" {
		fmt.Fprintf(&sb, " (%s)", e.Op)
	}
	fmt.Fprintf(&sb, " on paragraph %d: %s", e.Paragraph, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *PlanError) Unwrap() error {
	return e.Cause
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.errors
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}

// IsPlanError checks if an error is, or wraps, a plan error
func IsPlanError(err error) bool {
	var pe *PlanError
	return errors.As(err, &pe)
}
