// pkg/prompt/prompt.go

// Package prompt joins the key reader, the line editor and the validation
// loop into message-driven prompts.
//
//	p := prompt.New()
//	name, err := p.Get(ctx, "Username", lineedit.Basic, check.Charset("abcdefghijklmnopqrstuvwxyz"))
package prompt

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/check"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/lineedit"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/rawkey"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/validate"
	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	// GetSuffix follows the message of a Get prompt.
	GetSuffix = ": "
	// AskSuffix follows the question of an Ask prompt.
	AskSuffix = "?\n"
	// YesNoSuffix follows the question of a YesNo prompt.
	YesNoSuffix = "? [y/n] "
)

// Options selects how an answer is read.
type Options struct {
	Style lineedit.Style
	// PromptOnce shows the message a single time before the first attempt
	// instead of before every attempt.
	PromptOnce bool
}

// Prompter shows messages and reads validated answers.
type Prompter struct {
	keys    *keySource
	editor  *lineedit.Editor
	loop    *validate.Loop
	out     io.Writer
	log     *zap.Logger
	theme   Theme
	restore func() error
}

type settings struct {
	keys        rawkey.KeyReader
	out         io.Writer
	errOut      io.Writer
	log         *zap.Logger
	editorOpts  []lineedit.Option
	maxAttempts int
	color       bool
}

// Option configures a Prompter.
type Option func(*settings)

// WithKeys reads keystrokes from keys instead of the terminal.
func WithKeys(keys rawkey.KeyReader) Option {
	return func(s *settings) { s.keys = keys }
}

// WithOutput sends echo and messages to out and rejection messages to
// errOut.
func WithOutput(out, errOut io.Writer) Option {
	return func(s *settings) {
		s.out = out
		s.errOut = errOut
	}
}

// WithLogger attaches a logger shared by every layer.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMask sets the glyph echoed in Masked style.
func WithMask(mask byte) Option {
	return func(s *settings) { s.editorOpts = append(s.editorOpts, lineedit.WithMask(mask)) }
}

// WithKeymap overrides the platform key codes.
func WithKeymap(km lineedit.Keymap) Option {
	return func(s *settings) { s.editorOpts = append(s.editorOpts, lineedit.WithKeymap(km)) }
}

// WithMaxAttempts bounds the number of answers read per prompt. 0, the
// default, keeps asking until an answer is accepted.
func WithMaxAttempts(n int) Option {
	return func(s *settings) { s.maxAttempts = n }
}

// WithColor turns on styled messages.
func WithColor(on bool) Option {
	return func(s *settings) { s.color = on }
}

// New returns a Prompter on the process's terminal unless options say
// otherwise.
func New(opts ...Option) *Prompter {
	s := settings{
		out:    os.Stdout,
		errOut: os.Stderr,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	p := &Prompter{
		out:     s.out,
		log:     s.log,
		theme:   NewTheme(s.color),
		restore: func() error { return nil },
	}

	if s.keys == nil {
		r := rawkey.Stdin(rawkey.WithLogger(s.log.Named("rawkey")))
		s.keys = r
		p.restore = r.Restore
	}
	p.keys = &keySource{KeyReader: s.keys}

	editorOpts := append([]lineedit.Option{lineedit.WithLogger(s.log.Named("lineedit"))}, s.editorOpts...)
	p.editor = lineedit.New(p.keys, s.out, editorOpts...)
	p.loop = &validate.Loop{
		Out:         s.out,
		Err:         s.errOut,
		Render:      p.theme.Rejection,
		Log:         s.log.Named("validate"),
		MaxAttempts: s.maxAttempts,
	}
	return p
}

// Restore puts the terminal back into the mode it had before the read in
// flight, if any. It is safe to call from a signal handler.
func (p *Prompter) Restore() error {
	return p.restore()
}

// Read reads one answer in style that passes every check.
func (p *Prompter) Read(ctx context.Context, style lineedit.Style, checks ...check.Check) (string, error) {
	return p.run(ctx, p.editor.Producer(style), checks)
}

// Input shows message and reads an answer. With PromptOnce unset the message
// is shown again before every retry.
func (p *Prompter) Input(ctx context.Context, message string, opts Options, checks ...check.Check) (string, error) {
	p.log.Debug("Prompting",
		zap.String("style", opts.Style.String()),
		zap.Bool("prompt_once", opts.PromptOnce),
		zap.Int("checks", len(checks)),
	)

	produce := p.editor.Producer(opts.Style)
	if opts.PromptOnce {
		p.show(message)
	} else {
		read := produce
		produce = func() string {
			p.show(message)
			return read()
		}
	}
	return p.run(ctx, produce, checks)
}

// run stops retrying once the key source has ended: the answer read at that
// point is still checked, but a rejection returns io.ErrUnexpectedEOF
// instead of asking again.
func (p *Prompter) run(ctx context.Context, produce func() string, checks []check.Check) (string, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	p.keys.reset()
	read := produce
	produce = func() string {
		answer := read()
		if err := p.keys.ended(); err != nil {
			p.log.Debug("Key source ended", zap.Error(err))
			cancel(cerr.Wrapf(io.ErrUnexpectedEOF, "key source ended: %v", err))
		}
		return answer
	}
	return p.loop.Run(ctx, produce, checks...)
}

// Get shows "message: " before every attempt.
func (p *Prompter) Get(ctx context.Context, message string, style lineedit.Style, checks ...check.Check) (string, error) {
	return p.Input(ctx, message+GetSuffix, Options{Style: style}, checks...)
}

// Ask shows "question?" on a line of its own, once.
func (p *Prompter) Ask(ctx context.Context, question string, style lineedit.Style, checks ...check.Check) (string, error) {
	return p.Input(ctx, question+AskSuffix, Options{Style: style, PromptOnce: true}, checks...)
}

// YesNo asks for a single y or n keystroke, in either case.
func (p *Prompter) YesNo(ctx context.Context, question string) (bool, error) {
	answer, err := p.Input(ctx, question+YesNoSuffix, Options{Style: lineedit.Instant},
		check.WithMessage(check.Equals(false, "y", "n"), "Please answer y or n"))
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

func (p *Prompter) show(message string) {
	if _, err := io.WriteString(p.out, p.theme.Message(message)); err != nil {
		p.log.Warn("Failed to write prompt", zap.Error(err))
	}
}

// Read reads one answer from the terminal in style, retrying until every
// check accepts.
func Read(style lineedit.Style, checks ...check.Check) string {
	p := New()
	return validate.Validate(p.editor.Producer(style), checks...)
}
