package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/smartxerox/internal/config"
)

// New creates a preconfigured slog.Logger. Debug output is enabled outside production.
func New(cfg *config.Config) *slog.Logger {
	return NewWithWriter(os.Stdout, Level(cfg))
}

// NewWithWriter builds a JSON logger writing to w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "smartxerox"))
}

// Level picks the minimum log level for cfg.
func Level(cfg *config.Config) slog.Level {
	if cfg == nil || cfg.Production() {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
