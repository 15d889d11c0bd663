package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup creates and installs the package-level default slog logger.
// The HTTP server logs JSON for machine consumption; the CLI tools use the
// text handler for readability. Logs always go to stderr so they never mix
// with command output.
func Setup(jsonFormat bool, level slog.Level) {
	SetupWriter(os.Stderr, jsonFormat, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, jsonFormat bool, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// slog.Level. Unknown names default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
