package internal

import (
	"io"
	"log/slog"
)

// NewLogger creates the application logger.
// Dev uses human-readable text at DEBUG, otherwise JSON at INFO.
func NewLogger(w io.Writer, isDev bool) *slog.Logger {
	if isDev {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
