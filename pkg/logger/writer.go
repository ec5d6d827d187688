// pkg/logger/writer.go

package logger

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// EnsureLogPermissions creates the log directory (0700) and file (0600).
func EnsureLogPermissions(path string) error {
	if err := xdg.EnsureDir(path); err != nil {
		return cerr.Wrapf(err, "create log directory for %s", path)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return cerr.Wrapf(err, "open log file %s", path)
	}
	if err := file.Close(); err != nil {
		return cerr.Wrapf(err, "close log file %s", path)
	}

	if err := os.Chmod(path, xdg.FilePermOwnerReadWrite); err != nil {
		return cerr.Wrapf(err, "restrict log file %s", path)
	}
	return nil
}

// GetLogFileWriter opens path for appending.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := EnsureLogPermissions(path); err != nil {
		return nil, cerr.Wrap(err, "log permission error")
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return nil, cerr.Wrap(err, "failed to open log file")
	}
	return zapcore.Lock(file), nil
}
