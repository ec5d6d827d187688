// cmd/get/get.go

package get

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/prompt"
	"github.com/spf13/cobra"
)

// GetCmd prompts with "message: " and reads an answer.
var GetCmd = &cobra.Command{
	Use:   "get <message>...",
	Short: `Prompt with "message: " and read an answer`,
	Long: `Show "<message>: " and read an answer that passes every --check. The
prompt is shown again before each retry unless --prompt-once is set.
See 'inq read --help' for the check syntax.`,
	Example: `  inq get Username --check "matches:^[a-z_][a-z0-9_-]*$"
  inq --style masked get Password`,
	Args: cobra.MinimumNArgs(1),
	RunE: inq_cli.Wrap(runGet),
}

func init() {
	inq_cli.AddCheckFlags(GetCmd)
}

func runGet(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	checks, err := inq_cli.ChecksFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := inq_cli.Config()
	s := inq_cli.StartSession(rc, cfg)
	defer s.Close()

	message := strings.Join(args, " ") + prompt.GetSuffix
	opts := prompt.Options{Style: cfg.StyleValue(), PromptOnce: cfg.PromptOnce}
	answer, err := s.Input(s.Signals.Context(), message, opts, checks...)
	if err != nil {
		return err
	}
	return inq_cli.PrintAnswer(answer)
}
