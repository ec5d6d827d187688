// pkg/inq_cli/wrap.go

package inq_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunFunc is a command body that receives a RuntimeContext.
type RunFunc func(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error

// Wrap ensures panic recovery, telemetry, logging and error classification.
func Wrap(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}

		rc := inq_io.NewContext(parent, cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		rc.Log.Debug("Command starting", zap.Int("args", len(args)))

		err = fn(rc, cmd, args)
		if err != nil && !inqerr.IsExpectedUserError(err) {
			err = cerr.WithStack(inqerr.ClassifyError(err, cmd.CommandPath()))
		}
		return err
	}
}
