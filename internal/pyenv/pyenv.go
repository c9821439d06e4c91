// Package pyenv validates a project's Python virtualenv and refreshes its
// declared dependencies. Like internal/git, it is a leaf package: callers
// pass configuration as parameters and all tool invocations go through a
// run.Runner.
package pyenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schmitthub/reposync/internal/run"
)

var (
	// ErrInterpreterMissing is returned when the virtualenv interpreter
	// does not exist at its expected path.
	ErrInterpreterMissing = errors.New("virtualenv interpreter not found")

	// ErrVersionMismatch is returned when the interpreter reports a
	// version other than the required one.
	ErrVersionMismatch = errors.New("interpreter version mismatch")

	// ErrManifestMissing is returned by Refresh when the dependency
	// manifest does not exist. Callers treat it as a warning, not a
	// failure.
	ErrManifestMissing = errors.New("dependency manifest not found")
)

// Options configures an Env. Zero-valued fields are invalid; callers fill
// them from settings.
type Options struct {
	// RequiredVersion is the exact version string the interpreter must
	// report, e.g. "3.11.9".
	RequiredVersion string
	// VenvDir is the virtualenv directory relative to Root.
	VenvDir string
	// Manifest is the dependency manifest relative to Root.
	Manifest string
}

// Env is a project virtualenv rooted at a repository working tree.
type Env struct {
	runner run.Runner
	root   string
	opts   Options
}

// New creates an Env for the repository rooted at root.
func New(runner run.Runner, root string, opts Options) *Env {
	return &Env{runner: runner, root: root, opts: opts}
}

// Interpreter returns the expected interpreter path inside the virtualenv.
func (e *Env) Interpreter() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.root, e.opts.VenvDir, "Scripts", "python.exe")
	}
	return filepath.Join(e.root, e.opts.VenvDir, "bin", "python")
}

// ActivateScript returns the activation script path and whether it exists.
func (e *Env) ActivateScript() (string, bool) {
	var path string
	if runtime.GOOS == "windows" {
		path = filepath.Join(e.root, e.opts.VenvDir, "Scripts", "activate")
	} else {
		path = filepath.Join(e.root, e.opts.VenvDir, "bin", "activate")
	}
	_, err := os.Stat(path)
	return path, err == nil
}

// ManifestPath returns the manifest path and whether it exists.
func (e *Env) ManifestPath() (string, bool) {
	path := filepath.Join(e.root, e.opts.Manifest)
	_, err := os.Stat(path)
	return path, err == nil
}

// Version invokes the interpreter and returns the version it reports,
// parsed from output of the form "Python 3.11.9".
func (e *Env) Version(ctx context.Context) (string, error) {
	out, err := e.runner.Output(ctx, e.Interpreter(), "--version")
	if err != nil {
		return "", fmt.Errorf("probing interpreter version: %w", err)
	}
	version, ok := strings.CutPrefix(out, "Python ")
	if !ok {
		return "", fmt.Errorf("unexpected version output %q", out)
	}
	return strings.TrimSpace(version), nil
}

// Validate checks that the interpreter exists and reports exactly the
// required version. It must pass before any install step runs: an
// incompatible pre-existing environment is never installed into.
func (e *Env) Validate(ctx context.Context) error {
	interpreter := e.Interpreter()
	if _, err := os.Stat(interpreter); err != nil {
		return fmt.Errorf("%w at %s", ErrInterpreterMissing, interpreter)
	}

	version, err := e.Version(ctx)
	if err != nil {
		return err
	}
	if version != e.opts.RequiredVersion {
		return fmt.Errorf("%w: have %s, need %s", ErrVersionMismatch, version, e.opts.RequiredVersion)
	}
	return nil
}

// Refresh installs or upgrades the dependencies declared in the manifest.
// When uv is available it is preferred; otherwise pip is upgraded first and
// then used for the install. Returns ErrManifestMissing (wrapped) when there
// is no manifest.
func (e *Env) Refresh(ctx context.Context) error {
	manifest, ok := e.ManifestPath()
	if !ok {
		return fmt.Errorf("%w: %s", ErrManifestMissing, manifest)
	}

	interpreter := e.Interpreter()

	if uv, err := e.runner.LookPath("uv"); err == nil {
		if err := e.runner.Run(ctx, uv, "pip", "install", "--python", interpreter, "--upgrade", "-r", manifest); err != nil {
			return fmt.Errorf("upgrading dependencies with uv: %w", err)
		}
		return nil
	}

	if err := e.runner.Run(ctx, interpreter, "-m", "pip", "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("upgrading pip: %w", err)
	}
	if err := e.runner.Run(ctx, interpreter, "-m", "pip", "install", "--upgrade", "-r", manifest); err != nil {
		return fmt.Errorf("upgrading dependencies with pip: %w", err)
	}
	return nil
}
