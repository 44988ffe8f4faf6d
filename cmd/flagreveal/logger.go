package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/npratt/flagreveal/internal/config"
)

// debugLogName is the debug log file name inside the log directory.
const debugLogName = "flagreveal-debug.log"

// DebugLoggerResult contains the results of setting up the debug log.
type DebugLoggerResult struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if it was opened.
func (r *DebugLoggerResult) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// SetupDebugLogger creates a logger that writes to a rotating file. In TUI
// mode it replaces stderr logging, which would corrupt the display.
func SetupDebugLogger(logDir string, level slog.Leveler, rotationCfg config.LogRotationConfig) (*DebugLoggerResult, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	debugLogPath := filepath.Join(logDir, debugLogName)

	debugLogWriter := &lumberjack.Logger{
		Filename:   debugLogPath,
		MaxSize:    rotationCfg.MaxSizeMB,
		MaxBackups: rotationCfg.MaxBackups,
		MaxAge:     rotationCfg.MaxAgeDays,
		Compress:   rotationCfg.Compress,
	}

	return &DebugLoggerResult{
		Logger:   SetupDebugLoggerWithWriter(debugLogWriter, level),
		LogFile:  debugLogWriter,
		FilePath: debugLogPath,
	}, nil
}

// SetupDebugLoggerWithWriter creates a logger that writes to the given writer.
func SetupDebugLoggerWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// FanoutLogger returns a logger that writes every record to both loggers.
func FanoutLogger(primary, secondary *slog.Logger) *slog.Logger {
	return slog.New(slogmulti.Fanout(primary.Handler(), secondary.Handler()))
}
