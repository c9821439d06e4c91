// Package cmdutil provides shared plumbing for reposync commands.
package cmdutil

import (
	"github.com/schmitthub/reposync/internal/config"
	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/iostreams"
	"github.com/schmitthub/reposync/internal/prompter"
	"github.com/schmitthub/reposync/internal/run"
)

// Factory provides shared dependencies for CLI commands.
// It is a dependency injection container: the struct defines what
// dependencies exist, while internal/cmd/factory wires the real
// implementations. Commands extract only the fields they need into
// per-command Options structs.
type Factory struct {
	// WorkDir is the directory commands operate on (set from flags or the
	// process working directory).
	WorkDir string
	Debug   bool

	// Version info (set at build time via ldflags)
	Version string
	Commit  string

	// IO streams for input/output (for testability)
	IOStreams *iostreams.IOStreams

	// Dependency providers (closures wired by the factory constructor)
	Runner         func() run.Runner
	GitClient      func() *git.Client
	Prompter       func() *prompter.Prompter
	SettingsLoader func() (*config.SettingsLoader, error)
	Settings       func() (*config.Settings, error)
}
