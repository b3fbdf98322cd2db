package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, LevelForVerbosity(tt.verbosity))
		})
	}
}

func TestSetupLoggerTo(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)
	t.Setenv(EnvLogFile, "")

	var console bytes.Buffer
	SetupLoggerTo(&console, 1)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	logger := GetLogger("test")
	logger.Info().Msg("hello from setup")
	assert.Contains(t, console.String(), "hello from setup")
	assert.NotContains(t, console.String(), "\x1b[", "console output to a buffer is not colored")

	logPath := filepath.Join(tempDir, "vendorsync", "vendorsync.log")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err, "log file should be created at %s", logPath)
	assert.Contains(t, string(data), "hello from setup")
}

func TestSetupLogger_FileOverride(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "custom", "sync.log")
	t.Setenv(EnvLogFile, logPath)

	SetupLoggerTo(&bytes.Buffer{}, 0)
	log.Warn().Msg("to the custom file")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the custom file")
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv(EnvLogFile, "")
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, filepath.Join("/custom/state", "vendorsync", "vendorsync.log"), getLogFilePath())

	t.Setenv(EnvLogFile, "OFF")
	assert.Equal(t, "", getLogFilePath())

	t.Setenv(EnvLogFile, "/tmp/x.log")
	assert.Equal(t, "/tmp/x.log", getLogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := GetLogger("mirror")
	logger.Info().Msg("cloning")

	assert.Contains(t, buf.String(), `"component":"mirror"`)
	assert.Contains(t, buf.String(), "cloning")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogCommand("git", []string{"rev-parse", "HEAD"})

	output := buf.String()
	assert.Contains(t, output, "git")
	assert.Contains(t, output, "rev-parse")
	assert.Contains(t, output, "Executing command")
}

func TestLogDuration(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogDuration(time.Now().Add(-5*time.Second), "generate")

	output := buf.String()
	assert.Contains(t, output, "generate")
	assert.Contains(t, output, "duration")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "sync-tree")
	require.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
}
