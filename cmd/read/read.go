// cmd/read/read.go

package read

import (
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ReadCmd reads an answer without showing a prompt.
var ReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read an answer without a prompt",
	Long: `Read keys from the terminal in the configured style until the answer
passes every --check, then print it on stdout.

Checks are written kind:argument and may be repeated; all must accept.
A "message:<text>" entry replaces the rejection text of the check before it.

  equals:y,n            one of the listed values, any case
  equals-cs:A,b         one of the listed values, exact case
  matches:^[a-z]+$      whole answer matches the pattern
  length:3              exactly this many characters
  charset:abc           only characters from the set
  numeric:int           a literal of the named Go numeric type
  range:int:1:10        a number within the inclusive range
  not:<check>           the inner check rejects
  any:<check>||<check>  at least one inner check accepts`,
	Example: `  inq read --check numeric:uint8
  inq --style instant read --check equals:a,b,c --check "message:pick a, b or c"`,
	Args: cobra.NoArgs,
	RunE: inq_cli.Wrap(runRead),
}

func init() {
	inq_cli.AddCheckFlags(ReadCmd)
}

func runRead(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	checks, err := inq_cli.ChecksFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := inq_cli.Config()
	s := inq_cli.StartSession(rc, cfg)
	defer s.Close()

	rc.Log.Info("Reading answer", zap.Int("checks", len(checks)))
	answer, err := s.Read(s.Signals.Context(), cfg.StyleValue(), checks...)
	if err != nil {
		return err
	}
	return inq_cli.PrintAnswer(answer)
}
