// Package gittest provides helpers for building throwaway repositories in
// tests. All repositories are created on disk under t.TempDir.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// TestRepo wraps a go-git repository with its working directory.
type TestRepo struct {
	Repo *gogit.Repository
	Dir  string
}

// Init creates a repository with a single commit on the "master" branch.
// The branch is pinned so tests do not depend on go-git's init default.
func Init(t *testing.T) *TestRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false, gogit.WithDefaultBranch(plumbing.Master))
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	tr := &TestRepo{Repo: repo, Dir: dir}
	tr.Commit(t, "README.md", "# test\n", "initial commit")
	return tr
}

// Commit writes a file and commits it.
func (tr *TestRepo) Commit(t *testing.T, name, content, message string) plumbing.Hash {
	t.Helper()

	if err := os.WriteFile(filepath.Join(tr.Dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}

	wt, err := tr.Repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("Add %s: %v", name, err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash
}

// WriteFile drops an untracked file into the working tree.
func (tr *TestRepo) WriteFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(tr.Dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// AddRemote configures a remote on the repository.
func (tr *TestRepo) AddRemote(t *testing.T, name, url string) {
	t.Helper()
	_, err := tr.Repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		t.Fatalf("CreateRemote %s: %v", name, err)
	}
}

// DetachHead checks out the current HEAD commit directly, leaving the
// repository in detached state.
func (tr *TestRepo) DetachHead(t *testing.T) {
	t.Helper()

	head, err := tr.Repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	wt, err := tr.Repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: head.Hash()}); err != nil {
		t.Fatalf("Checkout detached: %v", err)
	}
}

// CreateBranch creates and checks out a new branch at HEAD.
func (tr *TestRepo) CreateBranch(t *testing.T, name string) {
	t.Helper()

	wt, err := tr.Repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	if err != nil {
		t.Fatalf("Checkout -b %s: %v", name, err)
	}
}
