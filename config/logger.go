package config

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger configured from the environment:
// JSON handler in production, text handler otherwise. LOG_LEVEL may be
// debug, info, warn, or error (default: info).
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel()}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
