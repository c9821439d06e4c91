// Package iostreamstest provides test doubles for the iostreams package.
package iostreamstest

import (
	"bytes"
	"strings"

	"github.com/schmitthub/reposync/internal/iostreams"
)

// TestIOStreams wraps IOStreams for testing with accessible buffers.
type TestIOStreams struct {
	*iostreams.IOStreams
	OutBuf *bytes.Buffer
	ErrBuf *bytes.Buffer
}

// New creates IOStreams for testing.
// Non-interactive, colors disabled, empty stdin.
func New() *TestIOStreams {
	return NewWithInput("")
}

// NewWithInput creates IOStreams for testing with canned stdin content.
// Streams that are plain buffers are never TTYs, so prompts fall back to
// reading the canned input or their defaults.
func NewWithInput(input string) *TestIOStreams {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	ios := &iostreams.IOStreams{
		In:     strings.NewReader(input),
		Out:    out,
		ErrOut: errOut,
	}
	ios.SetColorEnabled(false)

	return &TestIOStreams{
		IOStreams: ios,
		OutBuf:    out,
		ErrBuf:    errOut,
	}
}

// SetInteractive marks all three streams as TTYs so prompts run for real.
func (s *TestIOStreams) SetInteractive(v bool) {
	s.SetStdinTTY(v)
	s.SetStdoutTTY(v)
	s.SetStderrTTY(v)
}
