package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargoc/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestLogger_Levels(t *testing.T) {
	disableColor(t)

	buf := &bytes.Buffer{}
	lg := logger.NewWithWriter(buf)

	lg.Debug("hidden")
	lg.Info("compiling a.c")
	lg.Warn("remote dependency not fetched")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "compiling a.c\n")
	assert.Contains(t, out, "warning: remote dependency not fetched\n")
}

func TestLogger_SetVerbose(t *testing.T) {
	disableColor(t)

	buf := &bytes.Buffer{}
	lg := logger.NewWithWriter(buf)
	lg.SetVerbose(true)
	lg.Debug("up to date: a.o")
	assert.Contains(t, buf.String(), "up to date: a.o")

	buf.Reset()
	lg.SetVerbose(false)
	lg.Debug("up to date: b.o")
	assert.Empty(t, buf.String())
}

func TestLogger_SetOutput(t *testing.T) {
	disableColor(t)

	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	lg := logger.NewWithWriter(first)
	lg.SetOutput(second)
	lg.Info("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
}

func TestLogger_ErrorChainAndMetadata(t *testing.T) {
	disableColor(t)

	buf := &bytes.Buffer{}
	lg := logger.NewWithWriter(buf)

	sentinel := zerr.New("source path not found")
	err := zerr.With(zerr.Wrap(sentinel, "failed to resolve sources"), "path", "src/missing.c")
	err = zerr.Wrap(err, "build failed")

	lg.Error(err)

	assert.Equal(t,
		"error: build failed: failed to resolve sources: source path not found path=src/missing.c\n",
		buf.String(),
	)
}

func TestLogger_ErrorStandard(t *testing.T) {
	disableColor(t)

	buf := &bytes.Buffer{}
	lg := logger.NewWithWriter(buf)
	lg.Error(errors.New("plain failure"))
	assert.Equal(t, "error: plain failure\n", buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.NewWithWriter(buf)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	disableColor(t)

	buf := &bytes.Buffer{}
	var handler slog.Handler = logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler = handler.WithAttrs([]slog.Attr{slog.String("project", "app")})
	handler = handler.WithGroup("dep")

	slog.New(handler).Info("resolved", "name", "mathlib")

	assert.Equal(t, "resolved dep.project=app dep.name=mathlib\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	require.False(t, handler.Enabled(t.Context(), slog.LevelInfo))
	require.True(t, handler.Enabled(t.Context(), slog.LevelError))
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	handler := logger.NewPrettyHandler(nil, nil)
	assert.True(t, handler.Enabled(t.Context(), slog.LevelInfo))
}
