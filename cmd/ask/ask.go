// cmd/ask/ask.go

package ask

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/spf13/cobra"
)

// AskCmd asks a question on a line of its own and reads the answer below it.
var AskCmd = &cobra.Command{
	Use:   "ask <question>...",
	Short: "Ask a question and read the answer on the next line",
	Long: `Show "<question>?" on its own line, once, then read an answer that
passes every --check. See 'inq read --help' for the check syntax.`,
	Example: `  inq ask "Which port should the service listen on" --check range:uint16:1024:65535`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    inq_cli.Wrap(runAsk),
}

func init() {
	inq_cli.AddCheckFlags(AskCmd)
}

func runAsk(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	checks, err := inq_cli.ChecksFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := inq_cli.Config()
	s := inq_cli.StartSession(rc, cfg)
	defer s.Close()

	answer, err := s.Ask(s.Signals.Context(), strings.Join(args, " "), cfg.StyleValue(), checks...)
	if err != nil {
		return err
	}
	return inq_cli.PrintAnswer(answer)
}
