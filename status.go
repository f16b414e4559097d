// File: lixenwraith/logprops/status.go
package logprops

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// The status logger reports problems found while resolving properties. It
// must never read properties itself, so it is configured only in code.
var statusLogger atomic.Pointer[slog.Logger]

func init() {
	statusLogger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})).With("component", "logprops"))
}

// StatusLogger returns the logger used for diagnostics.
func StatusLogger() *slog.Logger {
	return statusLogger.Load()
}

// SetStatusLogger replaces the diagnostics logger. A nil logger restores
// slog.Default().
func SetStatusLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	statusLogger.Store(logger)
}
