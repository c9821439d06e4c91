package iostreams

import (
	"bytes"
	"strings"
	"testing"
)

func TestIsInteractive(t *testing.T) {
	ios := &IOStreams{
		In:     strings.NewReader(""),
		Out:    &bytes.Buffer{},
		ErrOut: &bytes.Buffer{},
	}

	if ios.IsInteractive() {
		t.Error("buffer-backed streams should not be interactive")
	}

	ios.SetStdinTTY(true)
	ios.SetStdoutTTY(true)
	if !ios.IsInteractive() {
		t.Error("expected interactive after forcing TTYs")
	}

	ios.SetNeverPrompt(true)
	if ios.IsInteractive() {
		t.Error("never-prompt should win over TTY detection")
	}
}

func TestColorEnabled(t *testing.T) {
	ios := &IOStreams{Out: &bytes.Buffer{}}

	// Auto-detect: buffer output is not a TTY.
	if ios.ColorEnabled() {
		t.Error("color should be disabled for non-TTY output")
	}

	ios.SetColorEnabled(true)
	if !ios.ColorEnabled() {
		t.Error("explicit enable should win")
	}
}

func TestColorScheme(t *testing.T) {
	cs := NewColorScheme(false)
	if got := cs.Red("fail"); got != "fail" {
		t.Errorf("disabled scheme altered string: %q", got)
	}

	cs = NewColorScheme(true)
	if got := cs.Green("ok"); !strings.Contains(got, "ok") || got == "ok" {
		t.Errorf("enabled scheme should wrap string in escapes, got %q", got)
	}
	if !strings.HasSuffix(cs.Bold("x"), ansiReset) {
		t.Error("styled output should reset")
	}
}
