// pkg/inq_cli/session.go

package inq_cli

import (
	"io"
	"os"
	"sync"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/check"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/config"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_io"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/prompt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	settingsMu sync.RWMutex
	settings   = config.Defaults()
)

// SetConfig records the settings loaded by the root command.
func SetConfig(cfg config.Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// Config returns the settings loaded by the root command.
func Config() config.Config {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// UI is where prompts, echo and rejection messages go. Answers are printed
// on stdout so that `x=$(inq get Name)` captures only the answer.
var UI io.Writer = os.Stderr

// SessionOptions are applied after the settings-derived options of every
// session. Tests use it to script keys.
var SessionOptions []prompt.Option

// Session is a prompter whose terminal mode is restored if the process is
// interrupted mid-read.
type Session struct {
	*prompt.Prompter
	Signals *SignalHandler
}

// StartSession builds a prompter from cfg and installs the signal handler.
// Callers must Close the session.
func StartSession(rc *inq_io.RuntimeContext, cfg config.Config, extra ...prompt.Option) *Session {
	opts := []prompt.Option{
		prompt.WithOutput(UI, UI),
		prompt.WithLogger(rc.Log),
		prompt.WithMask(cfg.MaskByte()),
		prompt.WithMaxAttempts(cfg.MaxAttempts),
		prompt.WithColor(cfg.Color),
	}
	opts = append(opts, SessionOptions...)
	p := prompt.New(append(opts, extra...)...)

	h := NewSignalHandler(rc.Ctx)
	h.RegisterCleanup(p.Restore)

	rc.Log.Debug("Prompt session started",
		zap.String("style", cfg.Style),
		zap.Int("max_attempts", cfg.MaxAttempts),
	)
	return &Session{Prompter: p, Signals: h}
}

// Close releases the signal handler.
func (s *Session) Close() {
	s.Signals.Stop()
}

// AddCheckFlags adds the repeatable --check flag.
func AddCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("check", "k", nil,
		"check the answer must pass, e.g. length:3, range:int:1:10, message:<text> (repeatable)")
}

// ChecksFromFlags compiles the --check values of cmd.
func ChecksFromFlags(cmd *cobra.Command) ([]check.Check, error) {
	texts, err := cmd.Flags().GetStringArray("check")
	if err != nil {
		return nil, inqerr.NewInternalError("check flag not registered", err)
	}
	specs, err := check.ParseSpecs(texts)
	if err != nil {
		return nil, inqerr.NewConfigError("invalid --check", err,
			"Run 'inq read --help' for the check syntax")
	}
	checks, err := check.BuildAll(specs)
	if err != nil {
		return nil, inqerr.NewConfigError("invalid --check", err)
	}
	return checks, nil
}
