package log

import (
	"log/slog"
	"strings"
)

// LevelFromString parses a log level from its string representation. The
// match is case-insensitive. Unrecognised strings return Info.
func LevelFromString(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// VerbosityToLevel maps a geth-style 0-5 verbosity flag to a slog level:
// 0-1 error, 2 warn, 3 info, 4+ debug.
func VerbosityToLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 1:
		return slog.LevelError
	case verbosity == 2:
		return slog.LevelWarn
	case verbosity == 3:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
