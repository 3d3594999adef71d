package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command describes a single process invocation.
type Command struct {
	Name string   // executable name or path
	Args []string // arguments, excluding the executable
	Dir  string   // working directory; empty means the current directory
	Env  []string // full environment in KEY=VALUE form; nil inherits the parent's
}

// String renders the command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Output captures the result of a process execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands and probes tool availability.
type Runner interface {
	// Run executes cmd and waits for it to exit.
	Run(ctx context.Context, cmd Command) (*Output, error)

	// Available reports whether the named tool can be invoked.
	Available(name string) bool
}

// ExecRunner runs commands as local processes.
type ExecRunner struct {
	// Stdout and Stderr, when set, receive a live copy of the process output
	// in addition to the captured buffers.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd with os/exec. The process output is always captured; the
// returned error is non-nil only when the process could not be run.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Output, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env

	var stdoutBuf, stderrBuf bytes.Buffer
	c.Stdout = tee(&stdoutBuf, r.Stdout)
	c.Stderr = tee(&stderrBuf, r.Stderr)

	err := c.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running %s: %w", cmd.Name, err)
	}

	return output, nil
}

// Available reports whether name resolves to an executable on PATH.
func (r *ExecRunner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
