// pkg/inq_io/context.go

package inq_io

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// RuntimeContext carries what one CLI command needs besides its arguments.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	TraceID    string
	Attributes map[string]string
}

// NewContext starts a span for cmdName and derives a logger scoped to it.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	ctx, span := telemetry.Start(ctx, cmdName)

	traceID := span.SpanContext().TraceID().String()
	if !span.SpanContext().IsValid() {
		traceID = logger.GenerateTraceID()
	}

	log := logger.L().Named(cmdName).With(
		zap.String("command", cmdName),
		zap.String("trace_id", traceID),
	)

	return &RuntimeContext{
		Ctx:        ctx,
		Log:        log,
		Timestamp:  time.Now(),
		Span:       span,
		Command:    cmdName,
		TraceID:    traceID,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = inqerr.NewInternalError("unexpected failure", cerr.AssertionFailedf("panic: %v", r))
		rc.Log.Error("Panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome, records it on the span and flushes logs.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)

	switch {
	case err == nil:
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	case inqerr.IsSilent(err):
		rc.Log.Info("Command completed",
			zap.Duration("duration", duration),
			zap.Int("exit_code", inqerr.GetExitCode(err)),
		)
	default:
		rc.Log.Error("Command failed",
			zap.Duration("duration", duration),
			zap.Int("exit_code", inqerr.GetExitCode(err)),
			zap.Error(err),
		)
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", telemetry.TruncateArgs(os.Args[1:])),
		attribute.String("version", Version),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)

	logger.Sync()
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if inqerr.IsExpectedUserError(err) {
		return "user"
	}
	if inqerr.IsSilent(err) {
		return "status"
	}
	var classified *inqerr.ClassifiedError
	if cerr.As(err, &classified) {
		return strings.ToLower(classified.Category.String())
	}
	return "system"
}
