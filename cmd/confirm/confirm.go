// cmd/confirm/confirm.go

package confirm

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfirmCmd asks a yes/no question answered with one keystroke.
var ConfirmCmd = &cobra.Command{
	Use:   "confirm <question>...",
	Short: "Ask a y/n question",
	Long: `Show "<question>? [y/n] " and wait for a single y or n key, in either
case. Prints "yes" or "no" on stdout. With --quiet nothing is printed and the
exit status is 0 for yes and 1 for no.`,
	Example: `  inq confirm --quiet "Delete the backup" && rm backup.tar`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    inq_cli.Wrap(runConfirm),
}

func init() {
	ConfirmCmd.Flags().BoolP("quiet", "q", false, "report the answer through the exit status only")
}

func runConfirm(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	s := inq_cli.StartSession(rc, inq_cli.Config())
	defer s.Close()

	yes, err := s.YesNo(s.Signals.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	rc.Log.Info("Confirmation answered", zap.Bool("yes", yes))

	switch {
	case quiet && yes:
		return nil
	case quiet:
		return inqerr.NewExitStatus(1, "declined")
	case yes:
		return inq_cli.PrintAnswer("yes")
	default:
		return inq_cli.PrintAnswer("no")
	}
}
