package root

import (
	"testing"

	"github.com/schmitthub/reposync/internal/cmdutil"
	"github.com/schmitthub/reposync/internal/iostreams/iostreamstest"
)

func TestNewCmdRootRegistersCommands(t *testing.T) {
	ios := iostreamstest.New()
	f := &cmdutil.Factory{
		Version:   "1.0.0",
		Commit:    "abc1234",
		IOStreams: ios.IOStreams,
	}

	cmd := NewCmdRoot(f)

	want := map[string]bool{
		"sync":    false,
		"status":  false,
		"deps":    false,
		"version": false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if cmd.Annotations["versionInfo"] == "" {
		t.Error("versionInfo annotation should be set")
	}
	if !cmd.SilenceUsage {
		t.Error("usage should be silenced on errors")
	}
}
