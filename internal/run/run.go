// Package run wraps external command execution behind a small interface so
// commands can be scripted in tests. Every external tool reposync drives
// (git, python, pip, uv) is invoked through a Runner.
package run

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes external commands.
type Runner interface {
	// Run executes the command, streaming its output to the runner's
	// configured writers. Returns an error on non-zero exit.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and returns its trimmed stdout.
	// Stderr is captured and included in the returned error.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports the full path of an executable, or an error if it
	// cannot be found in PATH.
	LookPath(file string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Dir is the working directory for every command. Empty means the
	// process working directory.
	Dir string

	// Stdout and Stderr receive streamed output from Run. Nil writers
	// discard the stream.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", CommandLine(name, args), err)
	}
	return nil
}

// Output executes the command and returns its trimmed stdout.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", CommandLine(name, args), err, msg)
		}
		return "", fmt.Errorf("running %s: %w", CommandLine(name, args), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath wraps exec.LookPath.
func (r *ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CommandLine renders a command and its arguments the way an operator would
// type it, for error messages and recovery hints.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
