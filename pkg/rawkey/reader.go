// pkg/rawkey/reader.go

// Package rawkey reads single keystrokes from the controlling terminal.
//
// Each ReadKey call switches the terminal out of canonical (line-buffered)
// mode and turns local echo off, reads exactly one byte, and restores the
// original mode before returning. The mode is never left changed between
// keystrokes, so an interrupt that lands between two reads cannot leave the
// terminal raw.
//
// Only one read may be in flight at a time. A second concurrent ReadKey on
// the same terminal is undefined; embedding applications must serialise
// their prompts.
package rawkey

import (
	"io"
	"os"
	"sync"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// KeyEOF is returned alongside a non-nil error when no key could be read.
// 0xFF never occurs in UTF-8 encoded input.
const KeyEOF byte = 0xFF

// KeyReader yields one raw keystroke per call.
type KeyReader interface {
	ReadKey() (byte, error)
}

// Reader is a KeyReader backed by a terminal file descriptor.
type Reader struct {
	in  *os.File
	fd  int
	tty bool
	log *zap.Logger

	mu     sync.Mutex
	active *modeGuard
	buf    [1]byte
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger attaches a logger. Keystroke values are never logged.
func WithLogger(log *zap.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}

// New returns a Reader for in. When in is not a terminal (a pipe, a file)
// bytes are read as-is and no mode change is attempted.
func New(in *os.File, opts ...Option) *Reader {
	r := &Reader{
		in:  in,
		fd:  int(in.Fd()),
		log: zap.NewNop(),
	}
	r.tty = term.IsTerminal(r.fd)
	for _, opt := range opts {
		opt(r)
	}
	r.log.Debug("Key reader ready", zap.Int("fd", r.fd), zap.Bool("tty", r.tty))
	return r
}

// Stdin returns a Reader for os.Stdin.
func Stdin(opts ...Option) *Reader {
	return New(os.Stdin, opts...)
}

// IsTerminal reports whether the reader toggles terminal modes.
func (r *Reader) IsTerminal() bool {
	return r.tty
}

// ReadKey blocks until one keystroke is available. On failure it returns
// KeyEOF and the cause; the terminal mode is restored on every path.
func (r *Reader) ReadKey() (byte, error) {
	if !r.tty {
		return r.readByte()
	}

	g, err := acquire(r.fd)
	if err != nil {
		r.log.Warn("Could not switch terminal to key-at-a-time mode", zap.Error(err))
		return KeyEOF, cerr.Wrap(err, "switch terminal mode")
	}
	r.hold(g)
	defer r.release(g)

	return r.readByte()
}

// Restore puts the terminal back into the mode it had before the read that
// is currently in flight. It is a no-op when no read is active and is safe
// to call from a signal handler goroutine.
func (r *Reader) Restore() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return nil
	}
	err := r.active.restore()
	r.active = nil
	if err != nil {
		return cerr.Wrap(err, "restore terminal mode")
	}
	return nil
}

func (r *Reader) hold(g *modeGuard) {
	r.mu.Lock()
	r.active = g
	r.mu.Unlock()
}

func (r *Reader) release(g *modeGuard) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Restore may already have run from another goroutine.
	if r.active != g {
		return
	}
	if err := g.restore(); err != nil {
		r.log.Error("Failed to restore terminal mode", zap.Error(err))
	}
	r.active = nil
}

func (r *Reader) readByte() (byte, error) {
	n, err := r.in.Read(r.buf[:])
	if err != nil {
		if !cerr.Is(err, io.EOF) {
			r.log.Debug("Key read failed", zap.Error(err))
		}
		return KeyEOF, err
	}
	if n == 0 {
		return KeyEOF, io.ErrNoProgress
	}
	return r.buf[0], nil
}
