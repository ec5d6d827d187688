// pkg/inqerr/wrap.go

package inqerr

import (
	cerr "github.com/cockroachdb/errors"
)

// WrapConfigError adds a stack and a configuration hint to err.
func WrapConfigError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "configuration is invalid")
}

// WrapFormError adds a stack and a form-file hint to err.
func WrapFormError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "form file is invalid")
}
