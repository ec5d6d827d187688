// pkg/lineedit/editor.go

// Package lineedit turns raw keystrokes into finished input strings.
//
// What is captured and what is displayed are kept apart: the same
// accumulation loop serves plain text entry, masked (password) entry, and
// single-keystroke answers such as y/n confirmations.
package lineedit

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/rawkey"
	"go.uber.org/zap"
)

// DefaultMask is the glyph echoed for each character in Masked style.
const DefaultMask byte = '*'

// Keymap names the platform key codes the editor reacts to.
type Keymap struct {
	// Confirm ends line input. It is never stored or echoed.
	Confirm byte
	// Delete removes the last character.
	Delete byte
	// CursorBack moves the cursor one column left when erasing.
	CursorBack byte
}

// Editor reads keys from a KeyReader and echoes them to out.
type Editor struct {
	keys   rawkey.KeyReader
	out    io.Writer
	keymap Keymap
	mask   byte
	log    *zap.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithKeymap overrides the platform default key codes.
func WithKeymap(km Keymap) Option {
	return func(e *Editor) { e.keymap = km }
}

// WithMask sets the glyph shown in Masked style.
func WithMask(mask byte) Option {
	return func(e *Editor) { e.mask = mask }
}

// WithLogger attaches a logger. Typed characters are never logged.
func WithLogger(log *zap.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// New returns an Editor reading from keys and echoing to out.
func New(keys rawkey.KeyReader, out io.Writer, opts ...Option) *Editor {
	e := &Editor{
		keys:   keys,
		out:    out,
		keymap: DefaultKeymap(),
		mask:   DefaultMask,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Read reads one answer in the given style. Style is a closed set; an
// undefined value is a programming error and panics.
func (e *Editor) Read(style Style) string {
	switch style {
	case Basic:
		return e.ReadLine(false)
	case Masked:
		return e.ReadLine(true)
	case Instant:
		return e.ReadInstant()
	default:
		panic(fmt.Sprintf("lineedit: undefined style %d", int(style)))
	}
}

// Producer binds a style to the editor, yielding a function that reads one
// answer per call.
func (e *Editor) Producer(style Style) func() string {
	if !style.Valid() {
		panic(fmt.Sprintf("lineedit: undefined style %d", int(style)))
	}
	return func() string { return e.Read(style) }
}

// ReadLine accumulates keys until Confirm. A failed key read ends the line
// exactly as Confirm would. When masked is set only the mask glyph reaches
// out, once per character.
func (e *Editor) ReadLine(masked bool) string {
	var line []byte

	for {
		k, err := e.keys.ReadKey()
		if err != nil {
			e.log.Debug("Key source ended, treating as confirm", zap.Error(err))
			break
		}

		switch k {
		case e.keymap.Confirm:
			e.log.Debug("Line confirmed", zap.Int("bytes", len(line)), zap.Bool("masked", masked))
			return string(line)

		case e.keymap.Delete:
			if len(line) == 0 {
				continue
			}
			_, size := utf8.DecodeLastRune(line)
			line = line[:len(line)-size]
			e.echo(e.keymap.CursorBack, ' ', e.keymap.CursorBack)

		default:
			line = append(line, k)
			switch {
			case !masked:
				e.echo(k)
			case utf8.RuneStart(k):
				// Continuation bytes of a multi-byte character get no glyph
				// of their own.
				e.echo(e.mask)
			}
		}
	}

	return string(line)
}

// ReadInstant reads exactly one key and returns it as a one-character
// string. The key is echoed upper-cased; letters outside ASCII are echoed
// unchanged. A failed read yields "".
func (e *Editor) ReadInstant() string {
	k, err := e.keys.ReadKey()
	if err != nil {
		e.log.Debug("Key source ended before instant key", zap.Error(err))
		return ""
	}

	e.echo(upper(k))
	return string([]byte{k})
}

func (e *Editor) echo(b ...byte) {
	if _, err := e.out.Write(b); err != nil {
		e.log.Warn("Failed to echo keystroke", zap.Error(err))
	}
}

func upper(k byte) byte {
	if k >= utf8.RuneSelf {
		return k
	}
	return byte(unicode.ToUpper(rune(k)))
}
