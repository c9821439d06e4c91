// Package root assembles the reposync command tree.
package root

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schmitthub/reposync/internal/cmd/deps"
	"github.com/schmitthub/reposync/internal/cmd/status"
	synccmd "github.com/schmitthub/reposync/internal/cmd/sync"
	versioncmd "github.com/schmitthub/reposync/internal/cmd/version"
	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/config"
	"github.com/schmitthub/reposync/internal/logger"
)

// NewCmdRoot creates the root command for the reposync CLI.
func NewCmdRoot(f *cmdutil.Factory) *cobra.Command {
	var debug bool
	var workDir string

	cmd := &cobra.Command{
		Use:   "reposync",
		Short: "Keep a working copy and its Python environment in sync with upstream",
		Long: `Reposync synchronizes a local git working copy with its upstream
remote and refreshes the project's Python dependency environment.

Quick start:
  reposync sync          # Fetch, reconcile the branch, pull, refresh deps
  reposync status        # Show the latest commit and working-tree state
  reposync deps          # Refresh dependencies only`,
		SilenceUsage: true,
		Annotations: map[string]string{
			"versionInfo": versioncmd.Format(f.Version, f.Commit),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			f.Debug = debug
			if workDir != "" {
				abs, err := filepath.Abs(workDir)
				if err != nil {
					return fmt.Errorf("resolving --dir: %w", err)
				}
				f.WorkDir = abs
			}

			initializeLogger(f, debug)

			logger.Debug().
				Str("version", f.Version).
				Bool("debug", debug).
				Msg("reposync starting")

			return nil
		},
		Version: f.Version,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "Run as if started in this directory")

	cmd.SetVersionTemplate(versioncmd.Format(f.Version, f.Commit))

	cmd.AddCommand(synccmd.NewCmdSync(f, nil))
	cmd.AddCommand(status.NewCmdStatus(f, nil))
	cmd.AddCommand(deps.NewCmdDeps(f, nil))
	cmd.AddCommand(versioncmd.NewCmdVersion(f, f.Version, f.Commit))

	return cmd
}

// initializeLogger sets up the logger with file logging if possible.
// Falls back to console-only logging on any errors.
func initializeLogger(f *cmdutil.Factory, debug bool) {
	settings, err := f.Settings()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to load settings")
		return
	}

	logsDir, err := config.LogsDir()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to get logs directory")
		return
	}

	logCfg := &logger.LoggingConfig{
		FileEnabled: settings.Logging.FileEnabled,
		MaxSizeMB:   settings.Logging.MaxSizeMB,
		MaxAgeDays:  settings.Logging.MaxAgeDays,
		MaxBackups:  settings.Logging.MaxBackups,
	}

	if err := logger.InitWithFile(debug, logsDir, logCfg); err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
	}
}
