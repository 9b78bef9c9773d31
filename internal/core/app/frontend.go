package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"objcunused/internal/core/config"
	"objcunused/internal/core/errors"
	"objcunused/internal/core/ports"
	"objcunused/internal/engine/events"
)

var (
	_ ports.Frontend = (*TraceFrontend)(nil)
	_ ports.Frontend = (*CommandFrontend)(nil)
)

// TraceFrontend replays a recorded event file. The main file argument is not
// consulted; the trace already describes one translation unit.
type TraceFrontend struct {
	Path   string
	Format events.Format
}

func (f *TraceFrontend) Run(ctx context.Context, _ string, sink events.Sink) (int, error) {
	if err := ctx.Err(); err != nil {
		return 1, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return 1, errors.AddContext(
			errors.Wrap(err, errors.CodeNotFound, "open event trace"),
			errors.CtxPath, f.Path,
		)
	}
	defer file.Close()

	format := f.Format
	if format == "" {
		format = events.FormatFromPath(f.Path)
	}
	if _, err := events.Replay(file, format, sink); err != nil {
		return 1, errors.AddContext(err, errors.CtxPath, f.Path)
	}
	return 0, nil
}

// CommandFrontend runs an external front-end that writes JSON-lines events to
// stdout. The main file is appended to Args.
type CommandFrontend struct {
	Command string
	Args    []string
	Timeout time.Duration
	Stderr  io.Writer
}

func (f *CommandFrontend) Run(ctx context.Context, mainFile string, sink events.Sink) (int, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	args := append(append([]string(nil), f.Args...), mainFile)
	cmd := exec.CommandContext(ctx, f.Command, args...)
	cmd.Stderr = f.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 1, errors.Wrap(err, errors.CodeInternal, "front-end stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return 1, frontendFailure(err, f.Command, 1)
	}

	_, replayErr := events.Replay(stdout, events.FormatJSONLines, sink)
	if replayErr != nil {
		// Stop the process so Wait does not block on a full pipe.
		cancel()
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()

	code := 0
	var exitErr *exec.ExitError
	switch {
	case stderrors.As(waitErr, &exitErr):
		code = exitErr.ExitCode()
	case waitErr != nil:
		code = 1
	}
	if replayErr != nil {
		if code <= 0 {
			code = 1
		}
		return code, frontendFailure(replayErr, f.Command, code)
	}
	if code < 0 {
		// Killed by a signal or the timeout.
		code = 1
	}
	if code != 0 {
		return code, frontendFailure(waitErr, f.Command, code)
	}
	return 0, nil
}

func frontendFailure(err error, command string, code int) error {
	wrapped := errors.Wrap(err, errors.CodeFrontendFailure, fmt.Sprintf("front-end %q failed", command))
	return errors.AddContext(wrapped, errors.CtxExitCode, code)
}

// unconfiguredFrontend stands in when neither a command nor a trace is set,
// so commands that only read history can still build an App.
type unconfiguredFrontend struct{}

func (unconfiguredFrontend) Run(context.Context, string, events.Sink) (int, error) {
	return 1, errNoFrontend()
}

func errNoFrontend() error {
	return errors.New(errors.CodeValidationError, "no front-end configured: set frontend.command or frontend.trace")
}

// NewFrontend builds the configured event source. Exactly one of command or
// trace must be set; validation already rejects both.
func NewFrontend(cfg config.Frontend) (ports.Frontend, error) {
	switch {
	case strings.TrimSpace(cfg.Command) != "":
		return &CommandFrontend{
			Command: cfg.Command,
			Args:    cfg.Args,
			Timeout: cfg.Timeout,
		}, nil
	case strings.TrimSpace(cfg.Trace) != "":
		tf := &TraceFrontend{Path: cfg.Trace}
		if cfg.TraceFormat != "" && cfg.TraceFormat != "auto" {
			format, err := events.ParseFormat(cfg.TraceFormat)
			if err != nil {
				return nil, err
			}
			tf.Format = format
		}
		return tf, nil
	default:
		return nil, errNoFrontend()
	}
}
