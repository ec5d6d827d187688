package validate

import (
	"bytes"
	"context"
	"testing"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// answers returns a producer yielding each value in turn, then "".
func answers(values ...string) (func() string, *int) {
	calls := 0
	return func() string {
		calls++
		if calls > len(values) {
			return ""
		}
		return values[calls-1]
	}, &calls
}

func newLoop() (*Loop, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &Loop{Out: out, Err: errOut}, out, errOut
}

func TestRun_NoChecksReturnsRawOutput(t *testing.T) {
	t.Parallel()
	l, out, errOut := newLoop()
	produce, calls := answers("  definitely not a number \x7f", "second")

	got, err := l.Run(context.Background(), produce)

	require.NoError(t, err)
	assert.Equal(t, "  definitely not a number \x7f", got)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRun_RetriesUntilAccepted(t *testing.T) {
	t.Parallel()
	l, out, errOut := newLoop()
	produce, calls := answers("x", "0", "7")

	got, err := l.Run(context.Background(), produce, check.Numeric[int](), check.Range[int](1, 10))

	require.NoError(t, err)
	assert.Equal(t, "7", got)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, "\n\n\n", out.String())
	assert.Equal(t, check.DefaultMessage+"\n"+check.DefaultMessage+"\n", errOut.String())
}

func TestRun_FirstFailingCheckSetsMessage(t *testing.T) {
	t.Parallel()
	l, _, errOut := newLoop()
	l.MaxAttempts = 2
	produce, _ := answers("a", "ab")

	_, err := l.Run(context.Background(), produce,
		check.WithMessage(check.Length(2), "need two chars"),
		check.WithMessage(check.Charset("x"), "only x"),
	)

	// "a" fails both checks but only the first is reported.
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, "need two chars\nonly x\n", errOut.String())
}

func TestRun_MaxAttempts(t *testing.T) {
	t.Parallel()
	l, _, errOut := newLoop()
	l.MaxAttempts = 2
	produce, calls := answers("a", "b", "ok")

	_, err := l.Run(context.Background(), produce, check.Equals(true, "ok"))

	require.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, check.DefaultMessage+"\n"+check.DefaultMessage+"\n", errOut.String())
}

func TestRun_CustomFuncErrorTextIsMessage(t *testing.T) {
	t.Parallel()
	l, _, errOut := newLoop()
	produce, _ := answers("bad", "good")
	custom := check.Func(func(s string) error {
		if s != "good" {
			return assert.AnError
		}
		return nil
	})

	got, err := l.Run(context.Background(), produce, custom)

	require.NoError(t, err)
	assert.Equal(t, "good", got)
	assert.Equal(t, assert.AnError.Error()+"\n", errOut.String())
}

func TestRun_ContextCheckedBetweenAttempts(t *testing.T) {
	t.Parallel()
	l, _, _ := newLoop()
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	produce := func() string {
		calls++
		cancel()
		return "rejected"
	}

	_, err := l.Run(ctx, produce, check.Length(0))

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "the in-flight attempt completes, the next one is not started")
}

func TestRun_LogsRejectionsWithoutCandidate(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	l, _, _ := newLoop()
	l.Log = zap.New(core)
	produce, _ := answers("s3cret", "ok")

	_, err := l.Run(context.Background(), produce, check.Equals(true, "ok"))
	require.NoError(t, err)

	warn := logs.FilterMessage("Input rejected").All()
	require.Len(t, warn, 1)
	fields := warn[0].ContextMap()
	assert.EqualValues(t, 1, fields["attempt"])
	assert.EqualValues(t, 6, fields["length"])
	for _, v := range fields {
		assert.NotEqual(t, "s3cret", v)
	}
	assert.Equal(t, 1, logs.FilterMessage("Input accepted").Len())
}

func TestRun_NilWritersAreSkipped(t *testing.T) {
	t.Parallel()
	l := &Loop{}
	produce, _ := answers("no", "yes")

	got, err := l.Run(context.Background(), produce, check.Equals(false, "yes"))

	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestRun_RenderDecoratesMessages(t *testing.T) {
	t.Parallel()
	l, _, errOut := newLoop()
	l.Render = func(msg string) string { return "! " + msg }
	produce, _ := answers("no", "yes")

	_, err := l.Run(context.Background(), produce, check.WithMessage(check.Equals(false, "yes"), "say yes"))

	require.NoError(t, err)
	assert.Equal(t, "! say yes\n", errOut.String())
}
