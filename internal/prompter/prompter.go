// Package prompter provides interactive operator prompts over IOStreams.
//
// Prompts write to stderr to keep stdout clean for data output. When the
// streams are not interactive, every prompt resolves to its default without
// blocking, so the tool stays usable in CI.
package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/schmitthub/reposync/internal/iostreams"
)

// ErrNoMatch is returned by SelectExact when the operator's answer does not
// exactly match one of the offered options.
var ErrNoMatch = errors.New("answer does not match any option")

// ErrNonInteractive is returned when a prompt has no usable default and the
// streams are not connected to a terminal.
var ErrNonInteractive = errors.New("input required but session is not interactive")

// Prompter asks the operator questions through IOStreams.
type Prompter struct {
	ios *iostreams.IOStreams
}

// New creates a Prompter over the given streams.
func New(ios *iostreams.IOStreams) *Prompter {
	return &Prompter{ios: ios}
}

// Confirm asks a yes/no question. An empty answer (or EOF) resolves to
// defaultYes. In non-interactive mode the default is returned without
// prompting.
func (p *Prompter) Confirm(message string, defaultYes bool) (bool, error) {
	if !p.ios.IsInteractive() {
		return defaultYes, nil
	}

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.ios.ErrOut, "%s %s ", message, hint)

	answer, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.ios.ErrOut)
			return defaultYes, nil
		}
		return false, err
	}

	answer = strings.ToLower(answer)
	if answer == "" {
		return defaultYes, nil
	}
	return answer == "y" || answer == "yes", nil
}

// SelectExact presents options and requires the operator to type one of them
// verbatim. There is no default: a non-interactive session fails with
// ErrNonInteractive, and an answer outside the list fails with ErrNoMatch
// (wrapped with the offending answer).
func (p *Prompter) SelectExact(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to select from")
	}
	if !p.ios.IsInteractive() {
		return "", ErrNonInteractive
	}

	fmt.Fprintf(p.ios.ErrOut, "%s\n", message)
	for _, opt := range options {
		fmt.Fprintf(p.ios.ErrOut, "  %s\n", opt)
	}
	fmt.Fprint(p.ios.ErrOut, "Enter one of the names above: ")

	answer, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	for _, opt := range options {
		if answer == opt {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoMatch, answer)
}

// readLine reads one trimmed line from the input stream.
func (p *Prompter) readLine() (string, error) {
	reader := bufio.NewReader(p.ios.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
