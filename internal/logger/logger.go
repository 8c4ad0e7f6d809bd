package logger

import (
	"log"

	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// level is shared with the installed handler, so configuration loaded after
// InitLogger can still adjust verbosity.
var level = new(slog.LevelVar)

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// SetLevel adjusts the active log level; unknown names fall back to info.
func SetLevel(s string) {
	l, _ := levelFromString(s)
	level.Set(l)
}

func InitLogger(path, levelName string) {
	SetLevel(levelName)

	logDir := filepath.Dir(path)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Fatal("Failed to create log directory:", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal("Failed to open log file:", err)
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}
