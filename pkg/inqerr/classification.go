// pkg/inqerr/classification.go
//
// Error categories and the process exit codes they map to.

package inqerr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/check"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/validate"
)

// ErrorCategory classifies errors for exit-code selection
type ErrorCategory int

const (
	// CategorySystem - OS/terminal/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - answers that never passed their checks (exit 2)
	CategoryValidation
	// CategoryConfig - bad flags, config files, form files or check specs (exit 2)
	CategoryConfig
	// CategoryUser - user cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - bugs in inq itself (exit 3)
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryConfig:
		return "config"
	case CategoryUser:
		return "user"
	case CategoryInternal:
		return "internal"
	default:
		return "system"
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

func (e *ClassifiedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		fmt.Fprintf(&sb, "\n\nCause: %v", e.Cause)
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			fmt.Fprintf(&sb, "\n  %d. %s", i+1, step)
		}
	}
	return sb.String()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation, CategoryConfig:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// GetExitCode extracts the exit code from any error.
// Returns 0 for nil and for expected user errors, 1 for unclassified errors.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	var status *ExitStatus
	if errors.As(err, &status) {
		return status.Code
	}

	if IsExpectedUserError(err) {
		return 0
	}
	return 1
}

// NewConfigError reports a problem with flags, configuration or a form file.
func NewConfigError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryConfig,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewValidationError reports answers that were rejected until the attempt
// limit ran out.
func NewValidationError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewTerminalError reports a failure to read from or write to the terminal.
func NewTerminalError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategorySystem,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError creates an error for inq bugs
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in inq",
			"Please report it with this error message and steps to reproduce",
		},
	}
}

// NewUserCancelledError creates an error for user-initiated cancellation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category:    CategoryUser,
		Message:     fmt.Sprintf("Operation cancelled by user: %s", operation),
		Remediation: []string{"Run the command again to retry"},
	}
}

// ClassifyError attaches a category to errors that do not yet carry one,
// recognising the sentinels the prompt packages return.
func ClassifyError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) || IsSilent(err) {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		c := NewUserCancelledError(operation).(*ClassifiedError)
		c.Cause = err
		return c

	case errors.Is(err, validate.ErrAttemptsExhausted):
		return NewValidationError(
			fmt.Sprintf("%s: no valid answer given", operation),
			err,
			"Check the expected format shown after each rejected answer",
			"Raise the limit with --max-attempts or set it to 0 to keep asking",
		)

	case errors.Is(err, check.ErrNotNumeric):
		return NewConfigError(
			fmt.Sprintf("%s: invalid numeric check", operation),
			err,
			"Use a Go numeric type name such as int, uint8 or float64",
		)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return NewTerminalError(
			fmt.Sprintf("%s: input ended unexpectedly", operation),
			err,
		)

	default:
		return &ClassifiedError{
			Category: CategorySystem,
			Message:  fmt.Sprintf("%s failed", operation),
			Cause:    err,
		}
	}
}
