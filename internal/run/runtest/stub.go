// Package runtest provides a scripted run.Runner for tests.
package runtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/schmitthub/reposync/internal/run"
)

// Call records one command invocation.
type Call struct {
	Name string
	Args []string
}

// Line renders the call as a command line.
func (c Call) Line() string {
	return run.CommandLine(c.Name, c.Args)
}

type response struct {
	pattern string
	output  string
	err     error
}

// Stub is a run.Runner that matches invoked command lines against registered
// prefixes and replays canned responses. Unregistered commands fail the
// invocation, so tests catch unexpected tool calls.
type Stub struct {
	mu        sync.Mutex
	responses []response
	calls     []Call

	// Executables lists names LookPath resolves; everything else fails.
	Executables []string
}

// Register scripts a response for any command line starting with pattern.
// Later registrations of the same pattern win over earlier ones.
func (s *Stub) Register(pattern, output string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append([]response{{pattern: pattern, output: output, err: err}}, s.responses...)
}

func (s *Stub) dispatch(name string, args []string) (string, error) {
	line := run.CommandLine(name, args)

	s.mu.Lock()
	s.calls = append(s.calls, Call{Name: name, Args: args})
	responses := s.responses
	s.mu.Unlock()

	for _, r := range responses {
		if strings.HasPrefix(line, r.pattern) {
			return r.output, r.err
		}
	}
	return "", fmt.Errorf("runtest: unexpected command %q", line)
}

// Run implements run.Runner.
func (s *Stub) Run(_ context.Context, name string, args ...string) error {
	_, err := s.dispatch(name, args)
	return err
}

// Output implements run.Runner.
func (s *Stub) Output(_ context.Context, name string, args ...string) (string, error) {
	return s.dispatch(name, args)
}

// LookPath implements run.Runner.
func (s *Stub) LookPath(file string) (string, error) {
	for _, exe := range s.Executables {
		if exe == file {
			return "/usr/bin/" + file, nil
		}
	}
	return "", fmt.Errorf("runtest: executable %q not stubbed", file)
}

// Calls returns every recorded invocation in order.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsMatching returns recorded invocations whose command line starts with
// the given prefix.
func (s *Stub) CallsMatching(prefix string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if strings.HasPrefix(c.Line(), prefix) {
			out = append(out, c)
		}
	}
	return out
}
