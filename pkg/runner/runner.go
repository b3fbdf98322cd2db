package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/rs/zerolog"
)

// Command describes a single blocking subprocess invocation
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the current process environment.
	Env map[string]string
	// Stream echoes the subprocess output to the runner's console writers
	// while it is being captured.
	Stream bool
}

// String renders the command line for logs and messages
func (c Command) String() string {
	s := c.Name
	for _, a := range c.Args {
		s += " " + a
	}
	return s
}

// Result is what a finished subprocess produced
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes subprocesses. Packages that shell out depend on this
// interface so tests can substitute a mock.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Options contains configuration for the exec runner
type Options struct {
	// Timeout bounds each subprocess; zero means no timeout.
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
	// Logger defaults to the "runner" component logger.
	Logger *zerolog.Logger
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger  zerolog.Logger
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

// NewExecRunner creates a runner backed by os/exec
func NewExecRunner(opts Options) *ExecRunner {
	logger := logging.GetLogger("runner")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &ExecRunner{
		logger:  logger,
		timeout: opts.Timeout,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// Run executes the command and blocks until it exits
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if c.Name == "" {
		return Result{}, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	if c.Dir != "" {
		if _, err := os.Stat(c.Dir); os.IsNotExist(err) {
			return Result{}, errors.Newf(errors.ErrFileAccess,
				"working directory does not exist: %s", c.Dir).
				WithDetail("dir", c.Dir)
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logging.LogCommand(c.Name, c.Args)
	r.logger.Info().
		Str("command", c.Name).
		Strs("args", c.Args).
		Str("workingDir", c.Dir).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, c.Env[k]))
	}

	var stdout, stderr bytes.Buffer
	if c.Stream {
		cmd.Stdout = io.MultiWriter(&stdout, r.stdout)
		cmd.Stderr = io.MultiWriter(&stderr, r.stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if stdout.Len() > 0 {
		r.logger.Debug().Str("output", result.Stdout).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		r.logger.Debug().Str("output", result.Stderr).Msg("Command stderr")
	}

	if err != nil {
		result.ExitCode = -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		}

		r.logger.Error().
			Err(err).
			Str("command", c.Name).
			Strs("args", c.Args).
			Int("exitCode", result.ExitCode).
			Str("stderr", result.Stderr).
			Msg("Command execution failed")

		return result, errors.Wrapf(err, errors.ErrCommandExecute,
			"failed to execute command: %s", c.String()).
			WithDetail("exitCode", result.ExitCode).
			WithDetail("stderr", result.Stderr)
	}

	r.logger.Debug().
		Str("command", c.Name).
		Dur("duration", result.Duration).
		Msg("Command executed successfully")

	return result, nil
}
