// Package git provides the git layer for reposync.
//
// This is a leaf package: it imports only stdlib, go-git, and internal/run.
// Local read-only inspection (repository shape, HEAD state, untracked files,
// commit metadata) goes through go-git. Operations that touch the network,
// global configuration, or merge machinery shell out to the git CLI (see
// cli.go) so credentials and conflict behavior are exactly native git's.
package git

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
)

// ErrNotRepository is returned when the path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Repo is a read-only view of a local repository, backed by go-git.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open opens the git repository containing the given path, walking up the
// directory tree to find the repository root.
//
// Returns ErrNotRepository (wrapped) if path is not inside a git repository.
func Open(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &Repo{
		repo: repo,
		root: wt.Filesystem.Root(),
	}, nil
}

// Root returns the root directory of the repository working tree.
func (r *Repo) Root() string {
	return r.root
}

// CurrentBranch returns the current branch name.
// Returns empty string and no error for detached HEAD state.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	if head.Name() == plumbing.HEAD {
		// Detached HEAD
		return "", nil
	}
	return head.Name().Short(), nil
}

// BranchExists checks if a local branch exists.
func (r *Repo) BranchExists(branch string) (bool, error) {
	branchRef := plumbing.NewBranchReferenceName(branch)
	_, err := r.repo.Reference(branchRef, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking branch %q: %w", branch, err)
	}
	return true, nil
}

// Remotes returns the configured remote names.
func (r *Repo) Remotes() ([]string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("listing remotes: %w", err)
	}
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	return names, nil
}

// HasRemote reports whether a remote with the given name is configured.
func (r *Repo) HasRemote(name string) (bool, error) {
	names, err := r.Remotes()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// UntrackedFiles returns the paths of files present in the working tree but
// unknown to git. The listing is informational; nothing mutates them.
func (r *Repo) UntrackedFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var untracked []string
	for path, st := range status {
		if st.Worktree == gogit.Untracked {
			untracked = append(untracked, path)
		}
	}
	return untracked, nil
}

// Commit holds the metadata reposync reports about a commit.
type Commit struct {
	Hash    string
	Author  string
	Date    time.Time
	Subject string
}

// ShortHash returns the abbreviated commit hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// LastCommit returns metadata for the commit HEAD points at.
func (r *Repo) LastCommit() (*Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD commit: %w", err)
	}

	subject, _, _ := strings.Cut(commit.Message, "\n")
	return &Commit{
		Hash:    commit.Hash.String(),
		Author:  commit.Author.Name,
		Date:    commit.Author.When,
		Subject: strings.TrimSpace(subject),
	}, nil
}
