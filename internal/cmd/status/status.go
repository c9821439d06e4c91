// Package status provides the status command.
package status

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/iostreams"
)

// StatusOptions contains the options for the status command.
type StatusOptions struct {
	IOStreams *iostreams.IOStreams

	WorkDir string
}

// NewCmdStatus creates the status command.
func NewCmdStatus(f *cmdutil.Factory, runF func(context.Context, *StatusOptions) error) *cobra.Command {
	opts := &StatusOptions{
		IOStreams: f.IOStreams,
	}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the latest commit and working-tree state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.WorkDir = f.WorkDir
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return statusRun(cmd.Context(), opts)
		},
	}

	return cmd
}

func statusRun(_ context.Context, opts *StatusOptions) error {
	workDir := opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		workDir = cwd
	}

	repo, err := git.Open(workDir)
	if err != nil {
		return err
	}

	cs := opts.IOStreams.ColorScheme()
	out := opts.IOStreams.Out

	branch, err := repo.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == "" {
		fmt.Fprintf(out, "Branch: %s\n", cs.Yellow("(detached HEAD)"))
	} else {
		fmt.Fprintf(out, "Branch: %s\n", cs.Bold(branch))
	}

	commit, err := repo.LastCommit()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Commit: %s %s\n", cs.Cyan(commit.ShortHash()), commit.Subject)
	fmt.Fprintf(out, "Author: %s (%s)\n", commit.Author, commit.Date.Format("2006-01-02 15:04"))

	untracked, err := repo.UntrackedFiles()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Untracked files: %d\n", len(untracked))

	return nil
}
