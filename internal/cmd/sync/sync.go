// Package sync provides the sync command, the primary reposync operation.
package sync

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/config"
	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/iostreams"
	"github.com/schmitthub/reposync/internal/run"
	"github.com/schmitthub/reposync/internal/syncer"
)

// SyncOptions contains the options for the sync command.
type SyncOptions struct {
	IOStreams *iostreams.IOStreams
	Runner    func() run.Runner
	GitClient func() *git.Client
	Prompter  func() syncer.Prompter
	Settings  func() (*config.Settings, error)

	WorkDir   string
	Remote    string
	Branch    string
	AssumeYes bool
	SkipDeps  bool
}

// NewCmdSync creates the sync command.
func NewCmdSync(f *cmdutil.Factory, runF func(context.Context, *SyncOptions) error) *cobra.Command {
	opts := &SyncOptions{
		IOStreams: f.IOStreams,
		Runner:    f.Runner,
		GitClient: f.GitClient,
		Prompter:  func() syncer.Prompter { return f.Prompter() },
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the repository with upstream and refresh dependencies",
		Long: `Synchronizes the current repository with its upstream remote, then
refreshes the project's Python dependencies.

The sequence is linear: verify git, register the directory as trusted,
pick the remote and upstream default branch (asking when ambiguous),
fetch, reconcile the local branch (including detached-HEAD recovery),
pull, validate the virtualenv interpreter, and upgrade the declared
dependencies. Any failing guard aborts the run; the repository is left
exactly as the failing tool left it.`,
		Example: `  # Sync the current directory
  reposync sync

  # Sync without prompts, e.g. from a cron job
  reposync sync --yes

  # Update the working copy but leave the virtualenv alone
  reposync sync --skip-deps

  # Sync a specific remote and branch
  reposync sync --remote upstream --branch main`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.WorkDir = f.WorkDir
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return syncRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Remote, "remote", "", "Sync against this remote instead of discovering one")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Sync this branch instead of detecting the upstream default")
	cmd.Flags().BoolVarP(&opts.AssumeYes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.Flags().BoolVar(&opts.SkipDeps, "skip-deps", false, "Stop after the pull, before any dependency step")

	return cmd
}

func syncRun(ctx context.Context, opts *SyncOptions) error {
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

	s := syncer.New(opts.IOStreams, opts.Prompter(), opts.GitClient(), opts.Runner(), settings, syncer.Options{
		WorkDir:   workDir,
		Remote:    opts.Remote,
		Branch:    opts.Branch,
		AssumeYes: opts.AssumeYes,
		SkipDeps:  opts.SkipDeps,
	})
	return s.Run(ctx)
}
