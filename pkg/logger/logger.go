// pkg/logger/logger.go

// Package logger configures inq's process-wide zap logger.
//
// Log entries never go to the terminal: stdout carries the prompt echo and
// stderr the validation messages, so anything else written there would
// corrupt what the user sees. Entries are JSON lines in a file under the
// XDG state directory; when no file is writable logging is disabled.
package logger

import (
	"sync"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

// L returns the process logger. It is a no-op logger until Initialize
// succeeds.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger installs l as the process logger, the zap global logger and
// the otelzap global logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	log = l
	mu.Unlock()

	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// New builds a JSON file logger for cfg without installing it.
func New(cfg Config) (*zap.Logger, string, error) {
	path := ResolveLogPath(cfg.Path)
	if path == "" {
		return nil, "", cerr.WithHint(cerr.New("no writable log path found"),
			"set log_path in the config file or INQ_LOG_PATH")
	}

	writer, err := GetLogFileWriter(path)
	if err != nil {
		return nil, "", err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), writer, ParseLogLevel(cfg.Level))

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	return zap.New(core, opts...), path, nil
}

// Initialize builds the file logger for cfg and installs it.
func Initialize(cfg Config) error {
	l, path, err := New(cfg)
	if err != nil {
		return err
	}
	SetLogger(l)
	l.Info("Logger initialized",
		zap.String("log_level", ParseLogLevel(cfg.Level).String()),
		zap.String("log_path", path),
	)
	return nil
}

// InitializeWithFallback is Initialize that installs a no-op logger instead
// of failing.
func InitializeWithFallback(cfg Config) {
	if err := Initialize(cfg); err != nil {
		SetLogger(zap.NewNop())
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	// Syncing a file that is already closed, or stdout on some platforms,
	// reports an error nobody can act on.
	_ = L().Sync()
}
