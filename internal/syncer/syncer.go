// Package syncer drives the repository synchronization sequence: environment
// guards, remote and branch negotiation, fetch and merge, then dependency
// refresh. The flow is strictly sequential; every guard either passes or
// aborts the run, and ambiguous cases are resolved by asking the operator.
package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/schmitthub/reposync/internal/config"
	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/iostreams"
	"github.com/schmitthub/reposync/internal/logger"
	"github.com/schmitthub/reposync/internal/pyenv"
	"github.com/schmitthub/reposync/internal/run"
)

// Prompter is the operator-question capability the syncer needs. It is
// satisfied by prompter.Prompter and stubbed in tests.
type Prompter interface {
	Confirm(message string, defaultYes bool) (bool, error)
	SelectExact(message string, options []string) (string, error)
}

// Options are the per-run knobs, populated from command flags.
type Options struct {
	// WorkDir is the directory to synchronize. Empty means the process
	// working directory (resolved by the caller).
	WorkDir string

	// Remote overrides remote discovery with an explicit remote name.
	Remote string

	// Branch overrides default-branch detection with an explicit branch.
	Branch string

	// AssumeYes answers every confirmation affirmatively.
	AssumeYes bool

	// SkipDeps stops the run after the pull, before any interpreter or
	// dependency step.
	SkipDeps bool
}

// Synchronizer runs the sync sequence.
type Synchronizer struct {
	ios      *iostreams.IOStreams
	prompter Prompter
	client   *git.Client
	runner   run.Runner
	settings *config.Settings
	opts     Options
}

// New assembles a Synchronizer from its collaborators.
func New(ios *iostreams.IOStreams, p Prompter, client *git.Client, runner run.Runner, settings *config.Settings, opts Options) *Synchronizer {
	return &Synchronizer{
		ios:      ios,
		prompter: p,
		client:   client,
		runner:   runner,
		settings: settings,
		opts:     opts,
	}
}

// Run executes the full sequence. The returned error is terminal: nothing is
// retried and the repository is left exactly as the failing tool left it.
func (s *Synchronizer) Run(ctx context.Context) error {
	cs := s.ios.ColorScheme()

	// Tool availability.
	gitPath, err := s.client.Installed()
	if err != nil {
		return fmt.Errorf("%w (install git and rerun)", err)
	}
	logger.Debug().Str("git", gitPath).Msg("git located")

	// Ownership trust. A failed read means an empty trust list; a failed
	// add is reported but does not stop the run.
	s.registerTrustedDir(ctx)

	// Repository shape.
	repo, err := git.Open(s.opts.WorkDir)
	if err != nil {
		return err
	}

	remote, err := s.selectRemote(ctx, repo)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.ios.ErrOut, "%s Using remote %s\n", cs.SuccessIcon(), cs.Bold(remote))

	s.reportUntracked(repo)

	branches, err := s.client.RemoteBranches(ctx, remote)
	if err != nil {
		return fmt.Errorf("listing branches on %q: %w", remote, err)
	}
	if len(branches) == 0 {
		return fmt.Errorf("remote %q advertises no branches", remote)
	}

	defaultBranch, err := s.selectDefaultBranch(branches)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.ios.ErrOut, "%s Upstream default branch is %s\n", cs.SuccessIcon(), cs.Bold(defaultBranch))

	// HEAD state is classified before the fetch so reconciliation decisions
	// reflect the tree the operator is looking at.
	currentBranch, err := repo.CurrentBranch()
	if err != nil {
		return fmt.Errorf("classifying HEAD: %w", err)
	}

	fmt.Fprintf(s.ios.ErrOut, "Fetching from %s...\n", remote)
	if err := s.client.Fetch(ctx, remote); err != nil {
		return err
	}

	syncBranch, err := s.reconcileBranch(ctx, repo, remote, defaultBranch, currentBranch)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.ios.ErrOut, "Pulling %s/%s...\n", remote, syncBranch)
	if err := s.client.Pull(ctx, remote, syncBranch); err != nil {
		return fmt.Errorf("%w (resolve conflicts manually, then rerun)", err)
	}

	if s.opts.SkipDeps {
		fmt.Fprintf(s.ios.ErrOut, "%s Skipping dependency refresh\n", cs.WarningIcon())
	} else if err := s.refreshDependencies(ctx, repo.Root()); err != nil {
		return err
	}

	return s.report(repo)
}

// registerTrustedDir adds the work directory to git's global safe.directory
// list when it is not already present. Read failures are treated as an empty
// list; add failures are warnings. The asymmetry is deliberate and matches
// the tool's long-standing behavior.
func (s *Synchronizer) registerTrustedDir(ctx context.Context) {
	cs := s.ios.ColorScheme()

	trusted, err := s.client.SafeDirectories(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("no safe.directory entries readable")
	}
	for _, dir := range trusted {
		if dir == s.opts.WorkDir {
			logger.Debug().Str("dir", dir).Msg("directory already trusted")
			return
		}
	}

	if err := s.client.AddSafeDirectory(ctx, s.opts.WorkDir); err != nil {
		fmt.Fprintf(s.ios.ErrOut, "%s Could not register %s as a trusted directory: %v\n",
			cs.WarningIcon(), s.opts.WorkDir, err)
		return
	}
	fmt.Fprintf(s.ios.ErrOut, "%s Registered %s as a trusted directory\n", cs.SuccessIcon(), s.opts.WorkDir)
}

// selectRemote picks the remote to sync against: the --remote override, the
// conventional name when configured, an operator selection when several
// exist, or a freshly created remote when none do.
func (s *Synchronizer) selectRemote(ctx context.Context, repo *git.Repo) (string, error) {
	remotes, err := repo.Remotes()
	if err != nil {
		return "", err
	}

	if s.opts.Remote != "" {
		for _, name := range remotes {
			if name == s.opts.Remote {
				return name, nil
			}
		}
		return "", fmt.Errorf("remote %q is not configured (have %v)", s.opts.Remote, remotes)
	}

	if len(remotes) == 0 {
		return s.createUpstreamRemote(ctx)
	}

	for _, name := range remotes {
		if name == s.settings.Remote {
			return name, nil
		}
	}

	selected, err := s.prompter.SelectExact("Several remotes are configured", remotes)
	if err != nil {
		return "", fmt.Errorf("selecting remote: %w", err)
	}
	return selected, nil
}

// createUpstreamRemote offers to point a new conventional remote at the
// canonical upstream. Declining is a terminal failure: there is nothing to
// sync against.
func (s *Synchronizer) createUpstreamRemote(ctx context.Context) (string, error) {
	name, url := s.settings.Remote, s.settings.UpstreamURL

	ok := s.opts.AssumeYes
	if !ok {
		var err error
		ok, err = s.prompter.Confirm(
			fmt.Sprintf("No remotes configured. Add %q pointing at %s?", name, url), true)
		if err != nil {
			return "", err
		}
	}
	if !ok {
		return "", errors.New("no remote to sync against")
	}

	if err := s.client.AddRemote(ctx, name, url); err != nil {
		return "", err
	}
	return name, nil
}

// reportUntracked lists untracked files. Purely informational: the sync
// never touches them, and a status failure only logs.
func (s *Synchronizer) reportUntracked(repo *git.Repo) {
	untracked, err := repo.UntrackedFiles()
	if err != nil {
		logger.Debug().Err(err).Msg("could not enumerate untracked files")
		return
	}
	if len(untracked) == 0 {
		return
	}

	fmt.Fprintf(s.ios.ErrOut, "Untracked files (left alone):\n")
	for _, path := range untracked {
		fmt.Fprintf(s.ios.ErrOut, "  %s\n", path)
	}
}

// selectDefaultBranch scans the remote's branches against the priority list;
// the first priority name present wins regardless of remote ordering. With
// no match the operator picks one.
func (s *Synchronizer) selectDefaultBranch(branches []string) (string, error) {
	have := make(map[string]bool, len(branches))
	for _, b := range branches {
		have[b] = true
	}

	if s.opts.Branch != "" {
		if !have[s.opts.Branch] {
			return "", fmt.Errorf("branch %q not found on the remote", s.opts.Branch)
		}
		return s.opts.Branch, nil
	}

	for _, candidate := range s.settings.BranchPriority {
		if have[candidate] {
			return candidate, nil
		}
	}

	selected, err := s.prompter.SelectExact("No conventional default branch found; pick one", branches)
	if err != nil {
		return "", fmt.Errorf("selecting default branch: %w", err)
	}
	return selected, nil
}

// reconcileBranch returns the branch the pull targets. Detached HEADs are
// reattached to the default branch. A named branch other than the default
// may, at the operator's choice, stay put; the pull then targets it instead.
func (s *Synchronizer) reconcileBranch(ctx context.Context, repo *git.Repo, remote, defaultBranch, currentBranch string) (string, error) {
	cs := s.ios.ColorScheme()

	detached := currentBranch == ""
	if !detached && currentBranch == defaultBranch {
		return defaultBranch, nil
	}

	if !detached {
		ok := s.opts.AssumeYes
		if !ok {
			var err error
			ok, err = s.prompter.Confirm(
				fmt.Sprintf("Currently on %q; switch to %q?", currentBranch, defaultBranch), true)
			if err != nil {
				return "", err
			}
		}
		if !ok {
			fmt.Fprintf(s.ios.ErrOut, "%s Staying on %s\n", cs.WarningIcon(), currentBranch)
			return currentBranch, nil
		}
	}

	exists, err := repo.BranchExists(defaultBranch)
	if err != nil {
		return "", err
	}
	if exists {
		if err := s.client.Checkout(ctx, defaultBranch); err != nil {
			return "", err
		}
	} else {
		if err := s.client.CheckoutTracking(ctx, defaultBranch, remote); err != nil {
			return "", err
		}
	}
	fmt.Fprintf(s.ios.ErrOut, "%s Switched to %s\n", cs.SuccessIcon(), defaultBranch)
	return defaultBranch, nil
}

// refreshDependencies validates the virtualenv, then upgrades the declared
// dependencies. A missing manifest downgrades to a warning; everything else
// is terminal.
func (s *Synchronizer) refreshDependencies(ctx context.Context, root string) error {
	cs := s.ios.ColorScheme()

	env := pyenv.New(s.runner, root, pyenv.Options{
		RequiredVersion: s.settings.Python.RequiredVersion,
		VenvDir:         s.settings.Python.VenvDir,
		Manifest:        s.settings.Python.Manifest,
	})

	if err := env.Validate(ctx); err != nil {
		return err
	}

	if script, ok := env.ActivateScript(); ok {
		logger.Debug().Str("script", script).Msg("activation script present")
	} else {
		fmt.Fprintf(s.ios.ErrOut, "%s No activation script at %s; using the interpreter directly\n",
			cs.WarningIcon(), script)
	}

	fmt.Fprintf(s.ios.ErrOut, "Refreshing dependencies...\n")
	if err := env.Refresh(ctx); err != nil {
		if errors.Is(err, pyenv.ErrManifestMissing) {
			fmt.Fprintf(s.ios.ErrOut, "%s %v; skipping dependency refresh\n", cs.WarningIcon(), err)
			return nil
		}
		return err
	}
	return nil
}

// report prints the latest commit and the closing success message.
func (s *Synchronizer) report(repo *git.Repo) error {
	cs := s.ios.ColorScheme()

	commit, err := repo.LastCommit()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.ios.Out, "Latest commit: %s %s (%s, %s)\n",
		cs.Cyan(commit.ShortHash()), commit.Subject, commit.Author,
		commit.Date.Format("2006-01-02 15:04"))
	fmt.Fprintf(s.ios.Out, "%s Repository synchronized\n", cs.SuccessIcon())
	return nil
}
