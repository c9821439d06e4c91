package status

import (
	"strings"
	"testing"

	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/git/gittest"
	"github.com/schmitthub/reposync/internal/iostreams/iostreamstest"
)

func TestStatusRun(t *testing.T) {
	tr := gittest.Init(t)
	tr.Commit(t, "app.py", "print('hi')\n", "add app")
	tr.WriteFile(t, "notes.txt", "untracked\n")

	ios := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: ios.IOStreams, WorkDir: tr.Dir}

	cmd := NewCmdStatus(f, nil)
	cmd.SetArgs(nil)
	cmd.SetOut(ios.OutBuf)
	cmd.SetErr(ios.ErrBuf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := ios.OutBuf.String()
	for _, want := range []string{"Branch: master", "add app", "Test Author", "Untracked files: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusRunDetached(t *testing.T) {
	tr := gittest.Init(t)
	tr.DetachHead(t)

	ios := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: ios.IOStreams, WorkDir: tr.Dir}

	cmd := NewCmdStatus(f, nil)
	cmd.SetOut(ios.OutBuf)
	cmd.SetErr(ios.ErrBuf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(ios.OutBuf.String(), "detached HEAD") {
		t.Errorf("output should flag detached HEAD:\n%s", ios.OutBuf.String())
	}
}

func TestStatusRunNotARepo(t *testing.T) {
	ios := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: ios.IOStreams, WorkDir: t.TempDir()}

	cmd := NewCmdStatus(f, nil)
	cmd.SetOut(ios.OutBuf)
	cmd.SetErr(ios.ErrBuf)

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() should fail outside a repository")
	}
}
