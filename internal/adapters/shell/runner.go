// Package shell runs external programs for the resolver adapters.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
// Standard output is captured; standard error is forwarded line by line to the logger.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes cmd and returns its standard output.
func (r *Runner) Run(ctx context.Context, cmd ports.Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // command is built by the resolver
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = append(os.Environ(), cmd.Env...)

	var stdout bytes.Buffer
	stderr := &logWriter{logger: r.logger}
	c.Stdout = &stdout
	c.Stderr = stderr

	err := c.Run()
	stderr.Flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", cmd.Name)
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		if last := stderr.Last(); last != "" {
			wrapped = zerr.With(wrapped, "stderr", last)
		}
		return nil, wrapped
	}

	return stdout.Bytes(), nil
}

// logWriter forwards complete lines to the logger and keeps the last one.
type logWriter struct {
	logger ports.Logger

	mu   sync.Mutex
	buf  []byte
	last string
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

// Last returns the last non-empty line written.
func (w *logWriter) Last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}
	w.last = strings.TrimSpace(line)
	if w.logger != nil {
		w.logger.Info(line)
	}
}
