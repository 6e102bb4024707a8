// Package logger holds the process-wide slog logger used by holectl.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger. It discards everything until Init is called.
var L = discard()

// Options configures Init.
type Options struct {
	File    string     // JSON log file, appended to. Empty disables file logging.
	Verbose bool       // Text logging to Stderr
	Level   slog.Level // Minimum level. Default: LevelInfo, or LevelDebug when Verbose
	Stderr  io.Writer  // Default: os.Stderr
}

// Init configures L. It returns a function that closes any opened log file.
// File logging takes precedence over Verbose.
func Init(opts Options) (func() error, error) {
	level := opts.Level
	if level == 0 && opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		L = slog.New(slog.NewJSONHandler(f, hopts))
		return f.Close, nil

	case opts.Verbose:
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		L = slog.New(slog.NewTextHandler(w, hopts))

	default:
		L = discard()
	}
	return func() error { return nil }, nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
