// Package loggertest provides logger helpers for tests.
package loggertest

import "github.com/rs/zerolog"

// NewNop returns a logger that discards every event.
func NewNop() zerolog.Logger {
	return zerolog.Nop()
}
