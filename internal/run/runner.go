// Package run abstracts subprocess execution so callers can be tested with
// canned command results.
package run

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// Runner executes external commands.
type Runner interface {
	// LookPath reports whether name resolves to an executable and returns
	// its path.
	LookPath(name string) (string, error)

	// Run executes the command with stdio attached, blocking until it exits.
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes the command and returns its combined output.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner is the real Runner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func (ExecRunner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	return cmd.CombinedOutput()
}

// ExitCode returns the exit status carried by err, or -1 when the error does
// not wrap an exit status (command not found, context cancelled, nil process).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
