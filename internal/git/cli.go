package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/schmitthub/reposync/internal/run"
)

// Client invokes the git CLI through a run.Runner. Each method maps to a
// single git invocation; failures carry the exact command line so the
// operator can rerun it by hand.
type Client struct {
	runner run.Runner
}

// NewClient creates a Client over the given runner.
func NewClient(runner run.Runner) *Client {
	return &Client{runner: runner}
}

// Installed reports the resolved path of the git executable, or an error if
// git cannot be found in PATH.
func (c *Client) Installed() (string, error) {
	path, err := c.runner.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("git executable not found in PATH: %w", err)
	}
	return path, nil
}

// SafeDirectories returns the global safe.directory trust list. git exits
// non-zero when the key is unset, so callers should treat an error as an
// empty list.
func (c *Client) SafeDirectories(ctx context.Context) ([]string, error) {
	out, err := c.runner.Output(ctx, "git", "config", "--global", "--get-all", "safe.directory")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// AddSafeDirectory registers a path in the global safe.directory trust list.
func (c *Client) AddSafeDirectory(ctx context.Context, path string) error {
	return c.runner.Run(ctx, "git", "config", "--global", "--add", "safe.directory", path)
}

// AddRemote configures a new remote.
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	return c.runner.Run(ctx, "git", "remote", "add", name, url)
}

// RemoteBranches lists the branch names advertised by a remote, via
// `git ls-remote --heads`.
func (c *Client) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	out, err := c.runner.Output(ctx, "git", "ls-remote", "--heads", remote)
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(out, "\n") {
		// Each line is "<hash>\trefs/heads/<name>".
		_, ref, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		if name, ok := strings.CutPrefix(strings.TrimSpace(ref), "refs/heads/"); ok {
			branches = append(branches, name)
		}
	}
	return branches, nil
}

// Fetch downloads objects and refs from the remote.
func (c *Client) Fetch(ctx context.Context, remote string) error {
	return c.runner.Run(ctx, "git", "fetch", remote)
}

// Checkout switches to an existing local branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	return c.runner.Run(ctx, "git", "checkout", branch)
}

// CheckoutTracking creates a local branch tracking the remote's version and
// switches to it.
func (c *Client) CheckoutTracking(ctx context.Context, branch, remote string) error {
	return c.runner.Run(ctx, "git", "checkout", "-b", branch, "--track", remote+"/"+branch)
}

// Pull merges the remote branch into the current branch.
func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	return c.runner.Run(ctx, "git", "pull", remote, branch)
}
