package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"TRACE":   zapcore.DebugLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"chatty":  zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}

	assert.True(t, ValidLevel("Info"))
	assert.True(t, ValidLevel(""))
	assert.False(t, ValidLevel("chatty"))
}

func TestEnsureLogPermissions(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "inq.log")

	require.NoError(t, EnsureLogPermissions(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestResolveLogPath(t *testing.T) {
	t.Parallel()
	explicit := filepath.Join(t.TempDir(), "custom.log")

	assert.Equal(t, explicit, ResolveLogPath(explicit))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	assert.Empty(t, ResolveLogPath(filepath.Join(blocker, "under-a-file.log")))
}

func TestPlatformLogPaths_UseState(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	paths := PlatformLogPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, filepath.Join(dir, "inq", "inq.log"), paths[0])
}

func TestInitialize_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inq.log")
	t.Cleanup(func() { SetLogger(nil) })

	require.NoError(t, Initialize(Config{Level: "debug", Path: path}))
	L().Debug("hello", zap.Int("n", 1))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.EqualValues(t, 1, entry["n"])
	assert.Same(t, L(), zap.L())
}

func TestInitializeWithFallback_InstallsNop(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	t.Cleanup(func() { SetLogger(nil) })

	InitializeWithFallback(Config{Path: filepath.Join(blocker, "inq.log")})

	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}

func TestLogCommandLifecycle(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	done := LogCommandLifecycle(log, "read")
	var err error
	done(&err)

	failed := LogCommandLifecycle(log, "ask")
	err = errors.New("boom")
	failed(&err)

	assert.Equal(t, 2, logs.FilterMessage("Command started").Len())
	assert.Equal(t, 1, logs.FilterMessage("Command completed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Command failed").Len())
	assert.Len(t, GenerateTraceID(), 8)
}
