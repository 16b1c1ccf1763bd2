package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tracetm/internal/logging"
)

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// CreateLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout trace output).
func CreateLogger(debug bool, level string) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	if level != "" {
		return logging.New(logging.ParseLevel(level))
	}
	return logging.NewNop()
}
