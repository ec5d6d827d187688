/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/inq/cmd/ask"
	"github.com/CodeMonkeyCybersecurity/inq/cmd/confirm"
	"github.com/CodeMonkeyCybersecurity/inq/cmd/form"
	"github.com/CodeMonkeyCybersecurity/inq/cmd/get"
	"github.com/CodeMonkeyCybersecurity/inq/cmd/read"
	"github.com/CodeMonkeyCybersecurity/inq/cmd/version"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/config"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flags that are not config keys.
const (
	flagConfig  = "config"
	flagEnvFile = "env-file"
)

// RootCmd is the base command for inq.
var RootCmd = &cobra.Command{
	Use:   "inq",
	Short: "Prompt for validated terminal input from shell scripts",
	Long: `inq reads answers from the terminal, one key at a time, and keeps asking
until the answer passes every check. Prompts and rejection messages go to
stderr; the accepted answer is printed on stdout.

  name=$(inq get "Your name" --check "charset:abcdefghijklmnopqrstuvwxyz")
  pin=$(inq --style masked get PIN --check length:4 --check numeric:uint16)
  inq confirm "Continue" && echo going on`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownTelemetry()
	},
	RunE: inq_cli.Wrap(func(rc *inq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Log.Info("No subcommand provided")
		return cmd.Help()
	}),
}

func init() {
	d := config.Defaults()
	pf := RootCmd.PersistentFlags()

	pf.String(config.FlagName(config.KeyStyle), d.Style, "input style: basic, masked or instant")
	pf.Bool(config.FlagName(config.KeyPromptOnce), d.PromptOnce, "show the prompt once instead of before every retry")
	pf.String(config.FlagName(config.KeyMask), d.Mask, "glyph echoed for each masked character")
	pf.Int(config.FlagName(config.KeyMaxAttempts), d.MaxAttempts, "give up after this many rejected answers (0 keeps asking)")
	pf.String(config.FlagName(config.KeyLogLevel), d.LogLevel, "log level: debug, info, warn, error")
	pf.String(config.FlagName(config.KeyLogPath), d.LogPath, "log file (default $XDG_STATE_HOME/inq/inq.log)")
	pf.Bool(config.FlagName(config.KeyColor), d.Color, "color prompts and rejection messages")
	pf.Bool(config.FlagName(config.KeyTelemetry), d.Telemetry, "record command spans to $XDG_STATE_HOME/inq/telemetry.jsonl")
	pf.String(flagConfig, "", "config file (default $XDG_CONFIG_HOME/inq/config.yaml)")
	pf.String(flagEnvFile, ".env", "dotenv file read into the environment before INQ_* variables")
}

// setup loads settings, then starts logging and telemetry.
func setup(cmd *cobra.Command, args []string) error {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return inqerr.NewInternalError("cannot bind flags", err)
	}

	configFile, _ := cmd.Flags().GetString(flagConfig)
	envFile, _ := cmd.Flags().GetString(flagEnvFile)

	cfg, err := config.Load(v, config.LoadOptions{ConfigFile: configFile, DotEnv: envFile})
	if err != nil {
		return err
	}

	logger.InitializeWithFallback(cfg.LoggerConfig())
	if err := telemetry.Init("inq", cfg.Telemetry); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}
	inq_cli.SetConfig(cfg)

	logger.L().Debug("Settings loaded",
		zap.String("command", cmd.CommandPath()),
		zap.String("args", telemetry.TruncateArgs(args)),
		zap.String("style", cfg.Style),
		zap.Bool("prompt_once", cfg.PromptOnce),
		zap.Int("max_attempts", cfg.MaxAttempts),
	)
	return nil
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := telemetry.Shutdown(ctx); err != nil {
		logger.L().Warn("Failed to flush telemetry", zap.Error(err))
	}
}

// HelpCmd wraps help so that it can be invoked like a normal command.
var HelpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Help about any command",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RootCmd.Help()
		}
		c, _, err := RootCmd.Find(args)
		if err != nil || c == nil {
			return inqerr.NewExpectedError(cerr.Newf("command not found: %s", strings.Join(args, " ")))
		}
		return c.Help()
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.SetHelpCommand(HelpCmd)

	for _, subCmd := range []*cobra.Command{
		read.ReadCmd,
		get.GetCmd,
		ask.AskCmd,
		confirm.ConfirmCmd,
		form.FormCmd,
		version.VersionCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute runs the root command and exits with the code for its error.
func Execute() {
	RegisterCommands()
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	defer logger.Sync()

	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	if err == nil {
		return 0
	}

	// Telemetry is normally flushed in PersistentPostRun, which cobra skips
	// when RunE fails.
	shutdownTelemetry()

	code := inqerr.GetExitCode(err)
	if inqerr.IsSilent(err) {
		logger.L().Debug("Silent exit", zap.Error(err), zap.Int("exit_code", code))
		return code
	}
	inqerr.PrintError(logger.L(), stderr, "inq", err)
	if inqerr.IsExpectedUserError(err) {
		return code
	}
	for _, hint := range cerr.GetAllHints(err) {
		fmt.Fprintf(stderr, "Hint: %s\n", hint)
	}
	logger.L().Debug("Exiting", zap.Int("exit_code", code))
	return code
}
