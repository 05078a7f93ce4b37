// Package battlelog provides the battle core's injectable debug channel.
//
// The original implementation threads a single `context.debug.runtime(msg)`
// call through the status manager and session (see
// engine/battle/status/manager.py's `_log_dot_observe` and
// engine/battle/session.py). The teacher's own examples reach for the
// standard `log` package rather than a third-party logging library, so this
// keeps that ambient choice: Logger is a tiny interface any *log.Logger
// satisfies, with a no-op default so battles run silently unless a caller
// opts in.
package battlelog

import (
	"fmt"
	"log"
	"os"
)

// Logger receives one formatted line per notable battle event: status
// add/tick/expire, soft-failures, and data-integrity skips. Implementations
// must be safe to call from a single-threaded tick loop; no concurrency
// guarantees are required or provided.
type Logger interface {
	Runtime(msg string)
}

// StdLogger adapts *log.Logger to the Logger interface.
type StdLogger struct {
	*log.Logger
}

// Runtime logs msg with a "battle: " prefix.
func (s *StdLogger) Runtime(msg string) {
	s.Logger.Println("battle:", msg)
}

// NewStd returns a Logger that writes to os.Stderr, matching the teacher's
// convention of a plain stdlib logger rather than a structured one.
func NewStd() Logger {
	return &StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}
}

// noop silently discards everything. This is the default used whenever a
// component is constructed without an explicit Logger.
type noop struct{}

func (noop) Runtime(string) {}

// Noop is the silent default Logger.
var Noop Logger = noop{}

// Runtimef is a convenience wrapper that only formats the message if logger
// is non-nil and not the Noop default, avoiding wasted fmt.Sprintf calls on
// the hot path when no logger is attached.
func Runtimef(logger Logger, format string, args ...any) {
	if logger == nil || logger == Noop {
		return
	}
	logger.Runtime(fmt.Sprintf(format, args...))
}
