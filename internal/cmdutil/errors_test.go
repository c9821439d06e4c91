package cmdutil

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	if got := err.Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}

	var exitErr *ExitError
	wrapped := fmt.Errorf("wrapped: %w", err)
	if !errors.As(wrapped, &exitErr) || exitErr.Code != 3 {
		t.Error("errors.As should unwrap ExitError")
	}
}

func TestFlagError(t *testing.T) {
	err := FlagErrorf("unknown flag %q", "--frob")
	if got := err.Error(); got != `unknown flag "--frob"` {
		t.Errorf("Error() = %q", got)
	}

	var flagErr *FlagError
	if !errors.As(err, &flagErr) {
		t.Error("FlagErrorf should produce a *FlagError")
	}
}

func TestSilentError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", SilentError)
	if !errors.Is(wrapped, SilentError) {
		t.Error("errors.Is should match SilentError through wrapping")
	}
}
