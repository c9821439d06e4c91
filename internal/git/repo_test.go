package git_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/git/gittest"
)

func TestOpenNotARepository(t *testing.T) {
	_, err := git.Open(t.TempDir())
	if !errors.Is(err, git.ErrNotRepository) {
		t.Errorf("Open() error = %v, want ErrNotRepository", err)
	}
}

func TestOpenFindsRoot(t *testing.T) {
	tr := gittest.Init(t)

	repo, err := git.Open(tr.Dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if repo.Root() == "" {
		t.Error("Root() should not be empty")
	}
}

func TestCurrentBranch(t *testing.T) {
	tr := gittest.Init(t)
	repo, err := git.Open(tr.Dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch() error = %v", err)
	}
	if branch == "" {
		t.Error("CurrentBranch() should name a branch on a fresh repo")
	}
}

func TestCurrentBranchDetached(t *testing.T) {
	tr := gittest.Init(t)
	tr.DetachHead(t)

	repo, err := git.Open(tr.Dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch() error = %v", err)
	}
	if branch != "" {
		t.Errorf("CurrentBranch() = %q, want empty for detached HEAD", branch)
	}
}

func TestBranchExists(t *testing.T) {
	tr := gittest.Init(t)
	tr.CreateBranch(t, "feature-x")

	repo, err := git.Open(tr.Dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	exists, err := repo.BranchExists("feature-x")
	if err != nil {
		t.Fatalf("BranchExists() error = %v", err)
	}
	if !exists {
		t.Error("BranchExists(feature-x) = false, want true")
	}

	exists, err = repo.BranchExists("no-such-branch")
	if err != nil {
		t.Fatalf("BranchExists() error = %v", err)
	}
	if exists {
		t.Error("BranchExists(no-such-branch) = true, want false")
	}
}

func TestRemotes(t *testing.T) {
	tr := gittest.Init(t)
	tr.AddRemote(t, "origin", "https://example.com/a.git")
	tr.AddRemote(t, "upstream", "https://example.com/b.git")

	repo, err := git.Open(tr.Dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	names, err := repo.Remotes()
	if err != nil {
		t.Fatalf("Remotes() error = %v", err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "origin" || names[1] != "upstream" {
		t.Errorf("Remotes() = %v, want [origin upstream]", names)
	}

	has, err := repo.HasRemote("origin")
	if err != nil {
		t.Fatalf("HasRemote() error = %v", err)
	}
	if !has {
		t.Error("HasRemote(origin) = false, want true")
	}
}

func TestUntrackedFiles(t *testing.T) {
	tr := gittest.Init(t)
	tr.WriteFile(t, "scratch.txt", "not tracked\n")

	repo, err := git.Open(tr.Dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	files, err := repo.UntrackedFiles()
	if err != nil {
		t.Fatalf("UntrackedFiles() error = %v", err)
	}
	if len(files) != 1 || files[0] != "scratch.txt" {
		t.Errorf("UntrackedFiles() = %v, want [scratch.txt]", files)
	}
}

func TestLastCommit(t *testing.T) {
	tr := gittest.Init(t)
	tr.Commit(t, "main.py", "print('hi')\n", "add entry point\n\nlonger body text")

	repo, err := git.Open(tr.Dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	commit, err := repo.LastCommit()
	if err != nil {
		t.Fatalf("LastCommit() error = %v", err)
	}
	if commit.Subject != "add entry point" {
		t.Errorf("Subject = %q, want %q", commit.Subject, "add entry point")
	}
	if commit.Author != "Test Author" {
		t.Errorf("Author = %q, want %q", commit.Author, "Test Author")
	}
	if len(commit.ShortHash()) != 7 {
		t.Errorf("ShortHash() = %q, want 7 characters", commit.ShortHash())
	}
}
