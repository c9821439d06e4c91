// Package deps provides the deps command, the dependency-refresh half of
// sync as a standalone operation.
package deps

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/config"
	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/iostreams"
	"github.com/schmitthub/reposync/internal/pyenv"
	"github.com/schmitthub/reposync/internal/run"
)

// DepsOptions contains the options for the deps command.
type DepsOptions struct {
	IOStreams *iostreams.IOStreams
	Runner    func() run.Runner
	Settings  func() (*config.Settings, error)

	WorkDir string
}

// NewCmdDeps creates the deps command.
func NewCmdDeps(f *cmdutil.Factory, runF func(context.Context, *DepsOptions) error) *cobra.Command {
	opts := &DepsOptions{
		IOStreams: f.IOStreams,
		Runner:    f.Runner,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Validate the virtualenv and upgrade declared dependencies",
		Long: `Validates the project virtualenv (the interpreter must exist and
report exactly the pinned version) and then upgrades the dependencies
declared in the manifest, preferring uv over pip when available.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.WorkDir = f.WorkDir
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return depsRun(cmd.Context(), opts)
		},
	}

	return cmd
}

func depsRun(ctx context.Context, opts *DepsOptions) error {
	workDir := opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		workDir = cwd
	}

	settings, err := opts.Settings()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// The venv lives at the repository root, not necessarily the cwd.
	repo, err := git.Open(workDir)
	if err != nil {
		return err
	}

	cs := opts.IOStreams.ColorScheme()
	env := pyenv.New(opts.Runner(), repo.Root(), pyenv.Options{
		RequiredVersion: settings.Python.RequiredVersion,
		VenvDir:         settings.Python.VenvDir,
		Manifest:        settings.Python.Manifest,
	})

	if err := env.Validate(ctx); err != nil {
		return err
	}
	fmt.Fprintf(opts.IOStreams.ErrOut, "%s Interpreter %s reports %s\n",
		cs.SuccessIcon(), env.Interpreter(), settings.Python.RequiredVersion)

	if err := env.Refresh(ctx); err != nil {
		if errors.Is(err, pyenv.ErrManifestMissing) {
			fmt.Fprintf(opts.IOStreams.ErrOut, "%s %v; nothing to refresh\n", cs.WarningIcon(), err)
			return nil
		}
		return err
	}

	fmt.Fprintf(opts.IOStreams.Out, "%s Dependencies up to date\n", cs.SuccessIcon())
	return nil
}
