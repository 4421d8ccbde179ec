package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Log formats accepted by Config.LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// parseLevel accepts slog level names ("debug", "info", "warn", "error",
// also with offsets such as "debug+2"). Empty means info.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// newLogger builds the run's logger. It never touches slog's default, so
// apps created side by side in tests stay isolated. Values are expected to
// have passed NewConfig; anything unparsable falls back to info and text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, _ := parseLevel(levelStr)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(outW, opts)
	if strings.EqualFold(formatStr, LogFormatJSON) {
		handler = slog.NewJSONHandler(outW, opts)
	}
	return slog.New(handler).With("service", "aspectgo")
}
