// Package logger provides verbose logging for plaza.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow fetching and ranking.
// Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders log messages by severity.
type Level int

// Log levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed in front of messages.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Logger prefixes messages with a component name.
type Logger struct {
	component string
}

// For returns a logger tagged with component, e.g. "[DEBUG] search: ...".
func For(component string) *Logger {
	return &Logger{component: component}
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) { l.log(LevelInfo, format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func (l *Logger) Warn(format string, args ...any) { l.log(LevelWarn, format, args...) }

// Error prints a message regardless of verbose mode.
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

func (l *Logger) log(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && level < LevelError {
		return
	}
	prefix := "[" + level.String() + "] "
	if l != nil && l.component != "" {
		prefix += l.component + ": "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

var std = &Logger{}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { std.log(LevelDebug, format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { std.log(LevelInfo, format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { std.log(LevelWarn, format, args...) }

// Error prints a message regardless of verbose mode.
func Error(format string, args ...any) { std.log(LevelError, format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
