package system

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Command describes an external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line as a user would type it.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of a process that was started.
type Result struct {
	Command  Command
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success reports a zero exit code.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner abstracts command execution to ease testing. A non-nil error means
// the process could not be started or was interrupted; a process that ran and
// failed is reported through Result.ExitCode.
type Runner interface {
	// Run executes cmd attached to the terminal and blocks until it exits.
	Run(ctx context.Context, cmd Command) (Result, error)
	// Output executes cmd with stdout and stderr captured.
	Output(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner executes commands using the local OS.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner bound to the process standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	return r.execute(ctx, cmd, c, nil, nil)
}

func (r *ExecRunner) Output(ctx context.Context, cmd Command) (Result, error) {
	var stdout, stderr bytes.Buffer

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	return r.execute(ctx, cmd, c, &stdout, &stderr)
}

func (r *ExecRunner) execute(ctx context.Context, cmd Command, c *exec.Cmd, stdout, stderr *bytes.Buffer) (Result, error) {
	start := time.Now()
	err := c.Run()

	result := Result{Command: cmd, Duration: time.Since(start)}
	if stdout != nil {
		result.Stdout = stdout.String()
	}
	if stderr != nil {
		result.Stderr = stderr.String()
	}

	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		result.ExitCode = -1
		return result, errors.Wrapf(ctx.Err(), "%s interrupted", cmd.Name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, errors.Wrapf(err, "failed to start %s", cmd.Name)
}
