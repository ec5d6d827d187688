/* pkg/logger/lifecycle.go */

package logger

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateTraceID returns a short 8-char trace ID.
func GenerateTraceID() string {
	return uuid.New().String()[:8]
}

// LogCommandLifecycle logs a command start and returns a deferred function
// that logs its outcome.
func LogCommandLifecycle(log *zap.Logger, cmdName string) func(err *error) {
	start := time.Now()
	traceID := GenerateTraceID()
	log.Info("Command started", zap.String("command", cmdName), zap.String("trace_id", traceID))

	return func(err *error) {
		duration := time.Since(start)
		if err != nil && *err != nil {
			log.Error("Command failed",
				zap.String("command", cmdName),
				zap.Duration("duration", duration),
				zap.String("trace_id", traceID),
				zap.Error(*err),
			)
			return
		}
		log.Info("Command completed",
			zap.String("command", cmdName),
			zap.Duration("duration", duration),
			zap.String("trace_id", traceID),
		)
	}
}
