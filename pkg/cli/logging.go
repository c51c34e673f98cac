package cli

import (
	"io"
	"log/slog"
)

// LogLevel picks the slog level for the console flags. Silent wins
// over verbose.
func LogLevel(verbose, silent bool) slog.Level {
	switch {
	case silent:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// NewLogger returns a text logger on w at level. Timestamps are
// dropped; the console output is read by people, not collectors.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
