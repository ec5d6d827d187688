// cmd/version/version.go

package version

import (
	"fmt"
	"runtime"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/spf13/cobra"
)

// VersionCmd prints the build version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the inq version",
	Args:  cobra.NoArgs,
	RunE: inq_cli.Wrap(func(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(inq_cli.Stdout, "inq %s (%s %s/%s)\n",
			inq_io.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return err
	}),
}
