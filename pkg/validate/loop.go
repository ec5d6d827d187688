// pkg/validate/loop.go

// Package validate repeats input acquisition until every check accepts.
package validate

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/check"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrAttemptsExhausted is returned by Run when MaxAttempts is positive and
// that many answers were rejected.
var ErrAttemptsExhausted = cerr.New("too many invalid answers")

// Loop drives one validated read. The zero value writes nowhere and retries
// forever; use New for a loop bound to the process's standard streams.
type Loop struct {
	// Out receives the line break that ends each answer.
	Out io.Writer
	// Err receives one rejection message per failed attempt.
	Err io.Writer
	// Render, if set, decorates rejection messages before they are written.
	Render func(msg string) string
	Log    *zap.Logger
	// MaxAttempts bounds the number of answers read. 0 means no bound.
	MaxAttempts int
}

// New returns a Loop writing to stdout and stderr with no attempt bound.
func New(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{Out: os.Stdout, Err: os.Stderr, Log: log}
}

// Run calls produce until its result passes every check, in order, and
// returns that result. With no checks produce is called exactly once and
// its result is returned as-is.
//
// Rejections never escape: each is reported on Err and followed by a fresh
// call to produce. Run returns an error only when ctx is done (checked
// between attempts) or MaxAttempts is reached.
func (l *Loop) Run(ctx context.Context, produce func() string, checks ...check.Check) (string, error) {
	log := l.logger()

	if len(checks) == 0 {
		candidate := produce()
		l.endLine()
		return candidate, nil
	}

	counters := telemetry.Attempts()
	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return "", cerr.Wrapf(context.Cause(ctx), "input cancelled before attempt %d", attempt)
		}

		candidate := produce()
		l.endLine()

		idx, err := firstFailure(candidate, checks)
		if err == nil {
			log.Debug("Input accepted", zap.Int("attempt", attempt))
			counters.Accepted(ctx, attempt)
			return candidate, nil
		}

		msg := check.MessageOf(err)
		log.Warn("Input rejected",
			zap.Int("attempt", attempt),
			zap.Int("check", idx),
			zap.Int("length", len(candidate)),
			zap.String("message", msg),
		)
		l.report(msg)
		counters.Rejected(ctx, idx)

		if l.MaxAttempts > 0 && attempt >= l.MaxAttempts {
			counters.Exhausted(ctx)
			return "", cerr.WithHint(
				cerr.Wrapf(ErrAttemptsExhausted, "%d attempts", attempt),
				"raise or unset max-attempts to keep asking",
			)
		}
	}
}

func firstFailure(candidate string, checks []check.Check) (int, error) {
	for i, c := range checks {
		if err := c.Evaluate(candidate); err != nil {
			return i, err
		}
	}
	return -1, nil
}

func (l *Loop) report(msg string) {
	if l.Err == nil {
		return
	}
	if l.Render != nil {
		msg = l.Render(msg)
	}
	fmt.Fprintln(l.Err, msg)
}

func (l *Loop) endLine() {
	if l.Out != nil {
		fmt.Fprintln(l.Out)
	}
}

func (l *Loop) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// Validate is Run on the standard streams with no attempt bound and no
// cancellation. It returns only once an answer is accepted.
func Validate(produce func() string, checks ...check.Check) string {
	// Unbounded with a background context, Run cannot fail.
	answer, _ := New(nil).Run(context.Background(), produce, checks...)
	return answer
}
