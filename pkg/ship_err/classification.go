// pkg/ship_err/classification.go
//
// Error classification with exit codes for the commit pipeline.

package ship_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - Input validation failures (exit 2)
	CategoryValidation
	// CategoryRepositoryOpen - No repository at or above the working directory (exit 1)
	CategoryRepositoryOpen
	// CategoryStorage - Status scan, index persistence, tree/commit reads (exit 1)
	CategoryStorage
	// CategoryConfig - Missing committer identity or unreadable config (exit 1)
	CategoryConfig
	// CategoryCommit - Commit write or reference update failures (exit 1)
	CategoryCommit
	// CategoryPush - Transport failures; only ever seen by the background process
	CategoryPush
	// CategoryUser - User cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - Bugs in ship itself (exit 3)
	CategoryInternal
	// CategoryDependency - Missing dependencies (exit 1)
	CategoryDependency
)

func (c ErrorCategory) String() string {
	switch c {
	case CategorySystem:
		return "system"
	case CategoryValidation:
		return "validation"
	case CategoryRepositoryOpen:
		return "repository_open"
	case CategoryStorage:
		return "storage"
	case CategoryConfig:
		return "config"
	case CategoryCommit:
		return "commit"
	case CategoryPush:
		return "push"
	case CategoryUser:
		return "user"
	case CategoryInternal:
		return "internal"
	case CategoryDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// GetExitCode extracts exit code from any error.
// Returns 0 for nil, the category code for classified errors, 0 for
// expected user errors and 1 for everything else.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Expected outcomes win over any classification underneath them.
	if IsExpectedUserError(err) {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	return 1
}

// CategoryOf returns the category of the first ClassifiedError in the chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category, true
	}
	return CategorySystem, false
}

// NewRepositoryOpenError reports that no repository could be found or opened.
func NewRepositoryOpenError(path string, cause error) error {
	return &ClassifiedError{
		Category: CategoryRepositoryOpen,
		Message:  fmt.Sprintf("no git repository found at or above %s", path),
		Cause:    cause,
		Remediation: []string{
			"Run ship from inside a git working tree",
			"Create one with: git init",
		},
	}
}

// NewStorageError reports a failure reading or writing repository storage.
func NewStorageError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryStorage,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewConfigError reports missing or unreadable configuration.
func NewConfigError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryConfig,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewCommitError reports a failure writing a commit or moving a reference.
func NewCommitError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryCommit,
		Message:  message,
		Cause:    cause,
	}
}

// NewPushError reports a transport failure.
func NewPushError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryPush,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Remediation: remediation,
	}
}

// NewDependencyError creates an error for missing dependencies
func NewDependencyError(dependency, operation string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryDependency,
		Message:     fmt.Sprintf("%s is required for %s but not found", dependency, operation),
		Remediation: remediation,
	}
}

// NewInternalError creates an error for ship bugs
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
	}
}

// NewUserCancelledError creates an error for user-initiated cancellation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category:    CategoryUser,
		Message:     fmt.Sprintf("Operation cancelled by user: %s", operation),
		Remediation: []string{"Run the command again to retry; staged changes are kept"},
	}
}
