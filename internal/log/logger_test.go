package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_BasicLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := New(logPath, LevelDebug)
	require.NoError(t, err)

	logger.Debug("debug message")
	logger.Info("info %s", "message")
	logger.Warn("warning message")
	logger.Error("error message")

	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], `"level":"debug"`)
	require.Contains(t, lines[0], `"message":"debug message"`)
	require.Contains(t, lines[1], `"message":"info message"`)
	require.Contains(t, lines[2], `"level":"warn"`)
	require.Contains(t, lines[3], `"level":"error"`)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")

	out := buf.String()
	require.NotContains(t, out, "debug message")
	require.NotContains(t, out, "info message")
	require.Contains(t, out, "warning message")
	require.Contains(t, out, "error message")
}

func TestLogger_FilePermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "crun.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0700))
	require.NoError(t, os.WriteFile(logPath, nil, 0644))

	logger, err := New(logPath, LevelInfo)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLogger_SetEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelDebug)

	logger.SetEnabled(false)
	logger.Info("hidden")
	logger.SetEnabled(true)
	logger.Info("visible")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "visible")
}

func TestLogger_Writer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelDebug)

	w := logger.Writer(LevelInfo)
	n, err := w.Write([]byte("from writer\n"))
	require.NoError(t, err)
	require.Equal(t, 12, n)
	require.Contains(t, buf.String(), `"message":"from writer"`)
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.Info("message %d", i)
		}(i)
	}
	wg.Wait()

	require.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 20)
}

func TestNilLogger(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	logger.SetEnabled(true)
	require.NoError(t, logger.Close())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{" Error ", LevelError},
		{"nonsense", LevelWarn},
		{"", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewWriter(&buf, LevelDebug))
	t.Cleanup(func() { SetDefault(nil) })

	Info("global %d", 1)
	Debug("global debug")

	require.Contains(t, buf.String(), "global 1")
	require.Contains(t, buf.String(), "global debug")
	require.NoError(t, Close())

	_, isNop := Default().(NopLogger)
	require.True(t, isNop)
}

func TestNopLogger(t *testing.T) {
	var l Interface = NopLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	require.NoError(t, l.Close())
}
