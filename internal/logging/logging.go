// Package logging builds the process-wide slog logger. Per-domain loggers
// are derived with With("component", ...) and injected into services and
// handlers; no package keeps logger state of its own.
package logging

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger. In the dev environment the level drops
// to debug and output switches to the friendlier text handler.
func New(env string) *slog.Logger {
	if env == "dev" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
