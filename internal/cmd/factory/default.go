// Package factory wires the real implementations behind cmdutil.Factory.
package factory

import (
	"os"
	"sync"

	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/config"
	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/iostreams"
	"github.com/schmitthub/reposync/internal/prompter"
	"github.com/schmitthub/reposync/internal/run"
)

// New creates a fully-wired Factory with lazy-initialized dependency
// closures. Called exactly once at the CLI entry point. Tests should NOT
// import this package — construct &cmdutil.Factory{} directly.
func New(version, commit string) *cmdutil.Factory {
	ios := iostreams.NewIOStreams()

	if ios.IsOutputTTY() {
		// Respect NO_COLOR environment variable
		if os.Getenv("NO_COLOR") != "" {
			ios.SetColorEnabled(false)
		}
	} else {
		ios.SetColorEnabled(false)
	}

	// Respect CI environment (disable prompts)
	if os.Getenv("CI") != "" {
		ios.SetNeverPrompt(true)
	}

	f := &cmdutil.Factory{
		Version:   version,
		Commit:    commit,
		IOStreams: ios,
	}

	// --- Lazy dependency closures ---

	var (
		runnerOnce sync.Once
		runner     *run.ExecRunner
	)
	f.Runner = func() run.Runner {
		runnerOnce.Do(func() {
			runner = &run.ExecRunner{
				Dir:    f.WorkDir,
				Stdout: ios.Out,
				Stderr: ios.ErrOut,
			}
		})
		return runner
	}

	f.GitClient = func() *git.Client {
		return git.NewClient(f.Runner())
	}

	f.Prompter = func() *prompter.Prompter {
		return prompter.New(ios)
	}

	var (
		settingsOnce   sync.Once
		settingsLoader *config.SettingsLoader
		settingsData   *config.Settings
		settingsErr    error
	)
	initSettings := func() {
		settingsOnce.Do(func() {
			settingsLoader, settingsErr = config.NewSettingsLoader()
			if settingsErr == nil {
				settingsData, settingsErr = settingsLoader.Load()
			}
		})
	}
	f.SettingsLoader = func() (*config.SettingsLoader, error) {
		initSettings()
		return settingsLoader, settingsErr
	}
	f.Settings = func() (*config.Settings, error) {
		initSettings()
		return settingsData, settingsErr
	}

	return f
}
