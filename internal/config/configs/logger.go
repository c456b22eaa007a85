package configs

import (
	"io"
	"log/slog"
	"strings"
)

// Logger configures the process-wide structured logger. Level sets the
// minimum emitted level ("debug", "info", "warn", "error"); Format selects
// the handler encoding, "text" (default) or "json". Unrecognised values
// fall back to info-level text output.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// Handler builds the slog handler described by the config, writing to w.
func (c Logger) Handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.slogLevel()}
	if strings.EqualFold(strings.TrimSpace(c.Format), "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func (c Logger) slogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
