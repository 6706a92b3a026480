// Package shell provides the process runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs cmd and waits for it to exit.
// Output of non-interactive commands is logged line by line and mirrored to the vertex
// carried by ctx, if any. Interactive commands inherit the terminal.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) error {
	if cmd.Program == "" {
		return zerr.With(zerr.Wrap(domain.ErrEmptyCommand, "command failed"), "args", strings.Join(cmd.Args, " "))
	}

	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...) //nolint:gosec // commands are synthesized from the manifest
	c.Dir = cmd.Dir

	var stdoutLog, stderrLog *logWriter
	if cmd.Interactive {
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
	} else {
		stdoutLog = &logWriter{logger: e.logger, level: domain.LogLevelInfo}
		stderrLog = &logWriter{logger: e.logger, level: domain.LogLevelWarn}
		var stdout, stderr io.Writer = stdoutLog, stderrLog
		if v, ok := ports.VertexFromContext(ctx); ok {
			stdout = io.MultiWriter(stdoutLog, v.Stdout())
			stderr = io.MultiWriter(stderrLog, v.Stderr())
		}
		c.Stdout = stdout
		c.Stderr = stderr
	}

	err := c.Run()

	if stdoutLog != nil {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return zerr.With(wrapped, "command", cmd.String())
	}

	return nil
}

type logWriter struct {
	logger ports.Logger
	level  domain.LogLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == domain.LogLevelInfo {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}
