// pkg/inqerr/exit.go

package inqerr

import (
	"errors"
	"fmt"
)

// ExitStatus ends a command with a status code and no message, the way
// test(1) reports false.
type ExitStatus struct {
	Code   int
	Reason string
}

func (e *ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Reason)
}

// NewExitStatus returns a silent exit with code.
func NewExitStatus(code int, reason string) error {
	return &ExitStatus{Code: code, Reason: reason}
}

// IsSilent reports whether err should end the process without printing.
func IsSilent(err error) bool {
	var e *ExitStatus
	return errors.As(err, &e)
}
