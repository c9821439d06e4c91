// Package reposync hosts the CLI entry point.
package reposync

import (
	"errors"
	"fmt"

	"github.com/schmitthub/reposync/internal/cmd/factory"
	"github.com/schmitthub/reposync/internal/cmd/root"
	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/logger"
)

// Build-time variables injected via ldflags
var (
	Version = "dev"
	Commit  = "none"
)

// Main is the entry point for the reposync CLI.
// It initializes the Factory, creates the root command, and executes it.
func Main() int {
	// Ensure logs are flushed on exit
	defer logger.CloseFileWriter()

	f := factory.New(Version, Commit)

	rootCmd := root.NewCmdRoot(f)

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		var exitErr *cmdutil.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		if errors.Is(err, cmdutil.SilentError) {
			return 1
		}

		var flagErr *cmdutil.FlagError
		if errors.As(err, &flagErr) {
			fmt.Fprintln(f.IOStreams.ErrOut, cmd.UsageString())
		}
		return 1
	}

	return 0
}
