// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	mu       sync.RWMutex
	tracer   trace.Tracer = noop.NewTracerProvider().Tracer("inq")
	shutdown              = func(context.Context) error { return nil }
)

// Path is where spans are appended as JSON lines when telemetry is on.
func Path() string {
	return xdg.StatePath("inq", "telemetry.jsonl")
}

// Init configures OpenTelemetry; call this early in main(). With enabled
// unset spans are discarded.
func Init(service string, enabled bool) error {
	if !enabled {
		install(noop.NewTracerProvider().Tracer(service), nil)
		return nil
	}

	path := Path()
	if err := xdg.EnsureDir(path); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}
	return InitWithWriter(service, file)
}

// InitWithWriter exports spans to w. w is closed by Shutdown when it is an
// io.Closer.
func InitWithWriter(service string, w io.Writer) error {
	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithoutTimestamps(), // Spans already have timestamps
	)
	if err != nil {
		if c, ok := w.(io.Closer); ok {
			_ = c.Close()
		}
		return cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", service),
			attribute.String("host.name", hostname()),
		)),
	)
	otel.SetTracerProvider(tp)

	install(tp.Tracer(service), func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if c, ok := w.(io.Closer); ok {
			if closeErr := c.Close(); err == nil {
				err = closeErr
			}
		}
		return err
	})
	return nil
}

func install(t trace.Tracer, stop func(context.Context) error) {
	mu.Lock()
	defer mu.Unlock()
	tracer = t
	if stop == nil {
		stop = func(context.Context) error { return nil }
	}
	shutdown = stop
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	mu.RLock()
	t := tracer
	mu.RUnlock()
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Shutdown flushes pending spans and closes the export file.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	stop := shutdown
	shutdown = func(context.Context) error { return nil }
	mu.Unlock()
	return stop(ctx)
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

// TruncateArgs joins args for a span attribute, capped at 256 bytes.
// Arguments never include answers, which are read from the terminal.
func TruncateArgs(args []string) string {
	full := strings.Join(args, " ")
	if len(full) > 256 {
		return full[:256] + "..."
	}
	return full
}
