// Package log provides the leveled, structured logger shared by every
// package in this module. It wraps log/slog the way the teacher wraps
// fmt/errors for its own diagnostics: one small type, no global state
// beyond a process-default instance.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level mirrors the RUST_LOG-style leveled output named in §6.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug, LevelTrace:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ParseLevel accepts error, warn (or warning), info, debug and trace,
// case-insensitively. Any other input, "off" included, returns LevelInfo
// and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, true
	case "warn", "warning":
		return LevelWarn, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	case "trace":
		return LevelTrace, true
	}
	return LevelInfo, false
}

// Logger is a leveled, structured logger. Build one with New or use
// Default; the zero value has no handler and its logging methods panic.
type Logger struct {
	level Level
	inner *slog.Logger
}

// New builds a Logger writing to w at level.
func New(w io.Writer, level Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	return &Logger{level: level, inner: slog.New(h)}
}

var std = New(os.Stderr, LevelInfo)

// Default returns the process-wide logger used when a caller has not
// constructed its own (e.g. library code invoked outside the CLI).
func Default() *Logger { return std }

// SetDefault replaces the process-wide logger, used by cmd/oxvg once it
// has parsed --verbose/RUST_LOG.
func SetDefault(l *Logger) { std = l }

func (l *Logger) With(args ...any) *Logger {
	return &Logger{level: l.level, inner: l.inner.With(args...)}
}

func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Trace(msg string, args ...any) {
	if l.level >= LevelTrace {
		l.inner.Debug(msg, args...)
	}
}
