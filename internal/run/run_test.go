package run

import (
	"bytes"
	"context"
	"runtime"
	"testing"
)

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"git", nil, "git"},
		{"git", []string{"fetch", "origin"}, "git fetch origin"},
	}
	for _, tt := range tests {
		if got := CommandLine(tt.name, tt.args); got != tt.want {
			t.Errorf("CommandLine(%q, %v) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}

func TestExecRunnerOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix echo binary")
	}

	r := &ExecRunner{}
	out, err := r.Output(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Output() = %q, want %q", out, "hello")
	}
}

func TestExecRunnerRunStreams(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix echo binary")
	}

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout}
	if err := r.Run(context.Background(), "echo", "streamed"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := stdout.String(); got != "streamed\n" {
		t.Errorf("stdout = %q, want %q", got, "streamed\n")
	}
}

func TestExecRunnerOutputFailure(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Output(context.Background(), "reposync-no-such-binary")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestLookPath(t *testing.T) {
	r := &ExecRunner{}
	if _, err := r.LookPath("reposync-no-such-binary"); err == nil {
		t.Error("expected LookPath error for missing binary")
	}
}
