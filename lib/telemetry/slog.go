package telemetry

import (
	"log/slog"
	"os"
)

// installs the process-wide slog handler. debug toggles the level,
// everything goes to stderr so artifact output on stdout stays clean.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
