package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

var errLoggerInit = errors.New("failed to initialize logger")

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LogPath resolves the log file location, defaulting to
// $XDG_STATE_HOME/sysmoni/sysmoni.log.
func LogPath(logFile string) (string, error) {
	if logFile != "" {
		return logFile, nil
	}
	return xdg.StateFile(filepath.Join(AppName, DefaultLogName))
}

// LoggerInit points the default slog logger at a file. The terminal belongs
// to the dashboard, so nothing may be logged to stdout or stderr while it runs.
func LoggerInit(logFile string, level slog.Level) (io.Closer, error) {
	logPath, errPath := LogPath(logFile)
	if errPath != nil {
		return nil, errors.Join(errPath, errLoggerInit)
	}

	file, errOpen := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if errOpen != nil {
		return nil, errors.Join(errOpen, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return file, nil
}
