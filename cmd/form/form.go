// cmd/form/form.go

package form

import (
	"fmt"
	"strings"

	inqform "github.com/CodeMonkeyCybersecurity/inq/pkg/form"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// FormCmd runs the questions of a YAML form file.
var FormCmd = &cobra.Command{
	Use:   "form <file>",
	Short: "Ask the questions of a form file and print the answers",
	Long: `Ask every question of a YAML form file in order and print the answers
on stdout, keyed by question name. json and yaml print one object in form
order; env prints a dotenv file; sh prints POSIX assignments for eval.

  title: New account
  questions:
    - name: user
      message: Username
      checks: ["charset:abcdefghijklmnopqrstuvwxyz", "message:lowercase letters only"]
    - name: password
      message: Password
      style: masked
      checks:
        - length: 12
          message: exactly twelve characters
    - name: admin
      message: Grant admin rights
      mode: confirm

Masked answers are never written to the log.`,
	Example: `  inq form account.yaml --format yaml > answers.yaml
  eval "$(inq form account.yaml --format sh)"`,
	Args: cobra.ExactArgs(1),
	RunE: inq_cli.Wrap(runForm),
}

func init() {
	FormCmd.Flags().StringP("format", "f", "json", "answer encoding: json, yaml, env or sh")
}

func runForm(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case inqform.FormatJSON, inqform.FormatYAML, "yml", inqform.FormatEnv, "dotenv", inqform.FormatShell, "shell":
	default:
		return inqerr.NewConfigError("unknown --format "+format, nil,
			"Use one of "+strings.Join(inqform.Formats, ", "))
	}

	f, err := inqform.Load(args[0])
	if err != nil {
		return err
	}
	if err := f.Supports(inq_io.Version); err != nil {
		return err
	}
	rc.Attributes["form"] = args[0]
	rc.Log.Info("Form loaded", zap.String("path", args[0]), zap.Int("questions", len(f.Questions)))

	s := inq_cli.StartSession(rc, inq_cli.Config())
	defer s.Close()

	if f.Title != "" {
		fmt.Fprintln(inq_cli.UI, f.Title)
	}
	answers, err := f.Run(s.Signals.Context(), s, rc.Log)
	if err != nil {
		return err
	}
	return answers.Encode(inq_cli.Stdout, format)
}
