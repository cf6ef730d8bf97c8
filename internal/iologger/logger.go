// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/papersdb/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "papersdb.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates fresh file.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	writer, err := output(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func output(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
	default:
		return os.Stderr, nil
	}

	logPath := filepath.Join(logDir, LogFile)
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	file, err := os.OpenFile(logPath, flag, 0644)
	if err != nil {
		return nil, CreateLogFileError(logPath, err)
	}
	return file, nil
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
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
