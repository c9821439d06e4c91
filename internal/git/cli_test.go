package git_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/schmitthub/reposync/internal/git"
	"github.com/schmitthub/reposync/internal/run/runtest"
)

func TestInstalled(t *testing.T) {
	stub := &runtest.Stub{Executables: []string{"git"}}
	c := git.NewClient(stub)

	path, err := c.Installed()
	if err != nil {
		t.Fatalf("Installed() error = %v", err)
	}
	if path == "" {
		t.Error("Installed() returned empty path")
	}
}

func TestInstalledMissing(t *testing.T) {
	stub := &runtest.Stub{}
	c := git.NewClient(stub)

	if _, err := c.Installed(); err == nil {
		t.Error("Installed() should fail when git is not in PATH")
	}
}

func TestSafeDirectories(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{"two entries", "/repo/a\n/repo/b", []string{"/repo/a", "/repo/b"}},
		{"empty output", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &runtest.Stub{}
			stub.Register("git config --global --get-all safe.directory", tt.output, nil)

			got, err := git.NewClient(stub).SafeDirectories(context.Background())
			if err != nil {
				t.Fatalf("SafeDirectories() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SafeDirectories() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoteBranchesParsesHeads(t *testing.T) {
	out := "f0a1b2c3\trefs/heads/develop\n" +
		"a1b2c3d4\trefs/heads/main\n" +
		"deadbeef\trefs/heads/feature/login\n"

	stub := &runtest.Stub{}
	stub.Register("git ls-remote --heads origin", out, nil)

	got, err := git.NewClient(stub).RemoteBranches(context.Background(), "origin")
	if err != nil {
		t.Fatalf("RemoteBranches() error = %v", err)
	}
	want := []string{"develop", "main", "feature/login"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RemoteBranches() = %v, want %v", got, want)
	}
}

func TestRemoteBranchesError(t *testing.T) {
	stub := &runtest.Stub{}
	stub.Register("git ls-remote", "", errors.New("could not read from remote"))

	if _, err := git.NewClient(stub).RemoteBranches(context.Background(), "origin"); err == nil {
		t.Error("RemoteBranches() should propagate ls-remote failure")
	}
}

func TestCheckoutTracking(t *testing.T) {
	stub := &runtest.Stub{}
	stub.Register("git checkout -b main --track origin/main", "", nil)

	err := git.NewClient(stub).CheckoutTracking(context.Background(), "main", "origin")
	if err != nil {
		t.Fatalf("CheckoutTracking() error = %v", err)
	}
	if calls := stub.CallsMatching("git checkout -b main --track origin/main"); len(calls) != 1 {
		t.Errorf("expected one tracked checkout, got %d", len(calls))
	}
}

func TestPull(t *testing.T) {
	stub := &runtest.Stub{}
	stub.Register("git pull origin main", "", nil)

	if err := git.NewClient(stub).Pull(context.Background(), "origin", "main"); err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
}
