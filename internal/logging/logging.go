// Package logging builds the process logger from config settings.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Options configures New.
type Options struct {
	// Level is the minimum level logged.
	Level slog.Level

	// Format is "json" or "text". Anything else means text.
	Format string

	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer
}

// New creates a logger. It does not set the global logger, so callers can
// hold isolated instances.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
