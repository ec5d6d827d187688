// pkg/inq_cli/signals.go
//
// Signal handling so that an interrupt during a prompt leaves the terminal
// usable.

package inq_cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CleanupTimeout bounds the time cleanup functions may take after a signal.
const CleanupTimeout = 5 * time.Second

// CleanupFunc is a function that performs cleanup operations
type CleanupFunc func() error

// SignalHandler runs cleanup and exits on SIGINT or SIGTERM.
type SignalHandler struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	cleanupFuncs []CleanupFunc

	sigChan  chan os.Signal
	doneChan chan struct{}
	stopOnce sync.Once

	stderr io.Writer
	exit   func(code int)
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(ctx context.Context) *SignalHandler {
	h := newSignalHandler(ctx, os.Stderr, os.Exit)
	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)
	go h.handleSignals()
	return h
}

func newSignalHandler(ctx context.Context, stderr io.Writer, exit func(int)) *SignalHandler {
	ctx, cancel := context.WithCancel(ctx)
	return &SignalHandler{
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  make(chan os.Signal, 2),
		doneChan: make(chan struct{}),
		stderr:   stderr,
		exit:     exit,
	}
}

// RegisterCleanup adds a cleanup function to be called on shutdown.
// Cleanup functions are called in REVERSE order (LIFO)
func (h *SignalHandler) RegisterCleanup(cleanup CleanupFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleanupFuncs = append(h.cleanupFuncs, cleanup)
}

// Context is cancelled when a signal arrives.
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

func (h *SignalHandler) handleSignals() {
	logger := otelzap.Ctx(h.ctx)

	var sig os.Signal
	select {
	case sig = <-h.sigChan:
	case <-h.doneChan:
		return
	}

	logger.Info("Received signal, initiating cleanup", zap.String("signal", sig.String()))
	fmt.Fprintf(h.stderr, "\nReceived %v, restoring terminal...\n", sig)

	// A second signal during cleanup forces the exit.
	go func() {
		select {
		case second := <-h.sigChan:
			logger.Error("Received second signal, forcing exit", zap.String("signal", second.String()))
			fmt.Fprintln(h.stderr, "Received second interrupt, forcing exit!")
			h.exit(1)
		case <-h.doneChan:
		}
	}()

	h.cancel()

	if err := h.runCleanup(); err != nil {
		fmt.Fprintf(h.stderr, "Cleanup completed with errors: %v\n", err)
		h.exit(1)
		return
	}
	h.exit(130) // Standard exit code for SIGINT
}

// runCleanup executes all cleanup functions with a timeout
func (h *SignalHandler) runCleanup() error {
	logger := otelzap.Ctx(h.ctx)

	h.mu.Lock()
	funcs := append([]CleanupFunc(nil), h.cleanupFuncs...)
	h.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		var lastErr error
		for i := len(funcs) - 1; i >= 0; i-- {
			if err := funcs[i](); err != nil {
				logger.Warn("Cleanup function failed", zap.Int("index", i), zap.Error(err))
				lastErr = err
			}
		}
		done <- lastErr
	}()

	timer := time.NewTimer(CleanupTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		logger.Error("Cleanup timed out", zap.Duration("timeout", CleanupTimeout))
		return cerr.Newf("cleanup timed out after %s", CleanupTimeout)
	}
}

// Stop releases the signal subscription. Safe to call more than once.
func (h *SignalHandler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.doneChan)
		h.cancel()
	})
}
