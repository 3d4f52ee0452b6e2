// Package logging wraps charmbracelet/log with the defaults gomdtree uses:
// leveled output on stderr without timestamps, and a context carrier so
// library code logs through whichever logger the command installed.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// interactivePrefix labels messages written for a person at a terminal.
const interactivePrefix = "gomdtree"

//nolint:gochecknoglobals // Process-wide default logger.
var (
	defaultLogger     atomic.Pointer[log.Logger]
	defaultLoggerOnce sync.Once
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger.CompareAndSwap(nil, New("info"))
	})
	return defaultLogger.Load()
}

// New creates a stderr logger with the specified level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w with the specified level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive creates an info-level stdout logger for command feedback
// such as "created configuration file".
func NewInteractive() *log.Logger {
	logger := NewWithWriter(os.Stdout, "info")
	logger.SetPrefix(interactivePrefix)
	return logger
}

// ParseLevel maps a level name to a log level. Unknown names yield info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault replaces the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultLoggerOnce.Do(func() {})
	defaultLogger.Store(logger)
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	getDefaultLogger().SetLevel(ParseLevel(level))
}
