package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Backends(t *testing.T) {
	l, closer, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)
	require.NoError(t, closer.Close())

	l, closer, err = New(Options{Backend: "zap", Level: "debug"})
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)
	require.NoError(t, closer.Close())

	_, _, err = New(Options{Backend: "logrus"})
	require.Error(t, err)
}

func TestNew_WritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollcall.log")

	l, closer, err := New(Options{File: path})
	require.NoError(t, err)

	l.Info(context.Background(), "hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestLevels(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, slogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, slogLevel("warning"))
	assert.Equal(t, slog.LevelInfo, slogLevel("nonsense"))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(""))
}

// backends builds each backend writing JSON to a buffer at level.
func backends(level string) map[string]func(*bytes.Buffer) Logger {
	return map[string]func(*bytes.Buffer) Logger{
		BackendSlog: func(b *bytes.Buffer) Logger {
			return NewSlogLogger(slog.New(slog.NewJSONHandler(b, &slog.HandlerOptions{Level: slogLevel(level)})))
		},
		BackendZap: func(b *bytes.Buffer) Logger {
			return NewZapLogger(zap.New(newZapCore(b, zapLevel(level))))
		},
	}
}

func TestBackends_WriteMessagesAndAttributes(t *testing.T) {
	for name, build := range backends("debug") {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			l := build(&buf).With("module", "attendance")
			ctx := context.Background()

			l.Debug(ctx, "dialogue started", "identity", "u1")
			l.Warn(ctx, "mirror unreadable", "date", "2024-01-01")
			l.Error(ctx, "append failed", "rows", 3)

			out := buf.String()
			for _, want := range []string{
				"dialogue started", "mirror unreadable", "append failed",
				`"identity":"u1"`, `"date":"2024-01-01"`, `"rows":3`, `"module":"attendance"`,
			} {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestBackends_RespectLevel(t *testing.T) {
	for name, build := range backends("warn") {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			l := build(&buf)

			l.Info(context.TODO(), "checked in")
			l.Warn(context.TODO(), "notification failed")

			assert.NotContains(t, buf.String(), "checked in")
			assert.Contains(t, buf.String(), "notification failed")
		})
	}
}

func TestDiscard(t *testing.T) {
	l := Discard().With("k", "v")
	assert.NotPanics(t, func() { l.Error(context.Background(), "dropped") })
}
