/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/xdg"
)

// AppName names inq's state and config directories.
const AppName = "inq"

// PlatformLogPaths returns candidate log paths in order of priority.
func PlatformLogPaths() []string {
	return []string{
		xdg.StatePath(AppName, "inq.log"),               // ~/.local/state/inq/inq.log
		filepath.Join(os.TempDir(), AppName, "inq.log"), // ephemeral
	}
}

// ResolveLogPath returns explicit when it is writable, or else the first
// writable platform path. It returns "" when nothing is writable.
func ResolveLogPath(explicit string) string {
	candidates := PlatformLogPaths()
	if explicit != "" {
		candidates = []string{explicit}
	}
	for _, path := range candidates {
		if err := EnsureLogPermissions(path); err == nil {
			return path
		}
	}
	return ""
}
