package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/acm19/imagetools/internal/logger"
)

// Outcome is the captured result of one engine call.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Engine runs image engine invocations.
type Engine interface {
	// Binary returns the executable used for display strings.
	Binary() string
	// Run executes inv to completion. A non-zero exit or start failure is
	// returned as a KindEngineExecutionFailed error alongside the outcome.
	Run(ctx context.Context, inv Invocation) (*Outcome, error)
}

// waitDelay bounds how long Run waits for output pipes after the engine is killed.
const waitDelay = time.Second

// magickEngine implements Engine by spawning the ImageMagick CLI.
type magickEngine struct {
	binary  string
	timeout time.Duration
}

// NewMagickEngine creates an Engine for binary. A zero timeout means calls run
// until the engine exits or ctx is cancelled.
func NewMagickEngine(binary string, timeout time.Duration) Engine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &magickEngine{binary: binary, timeout: timeout}
}

func (e *magickEngine) Binary() string {
	return e.binary
}

// Run executes the invocation, capturing stdout and stderr separately.
func (e *magickEngine) Run(ctx context.Context, inv Invocation) (*Outcome, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, inv.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Delegates such as ghostscript can outlive the engine and keep the
	// pipes open, so the whole group is killed and Wait is bounded.
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	logger.Debug("Running engine", "command", inv.Command(e.binary))
	start := time.Now()
	err := cmd.Run()

	outcome := &Outcome{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		logger.Debug("Engine finished", "duration", time.Since(start))
		return outcome, nil
	}

	var exitErr *exec.ExitError
	if ctxErr := ctx.Err(); ctxErr != nil && e.timeout > 0 && errors.Is(ctxErr, context.DeadlineExceeded) {
		outcome.ExitCode = -1
		logger.Debug("Engine timed out", "timeout", e.timeout)
		return outcome, Wrap(KindEngineExecutionFailed, "run", fmt.Sprintf("engine timed out after %s", e.timeout), ctxErr)
	}
	if errors.As(err, &exitErr) {
		outcome.ExitCode = exitErr.ExitCode()
	} else {
		outcome.ExitCode = -1
	}
	logger.Debug("Engine failed", "exit_code", outcome.ExitCode, "error", err)
	return outcome, executionError(outcome, err)
}

// executionError carries the engine's own diagnostic text verbatim: stderr,
// else stdout, else the process error.
func executionError(outcome *Outcome, err error) error {
	msg := strings.TrimSpace(outcome.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(outcome.Stdout)
	}
	if msg == "" {
		return Wrap(KindEngineExecutionFailed, "run", "engine execution failed", err)
	}
	return &Error{Kind: KindEngineExecutionFailed, Op: "run", Message: msg}
}
