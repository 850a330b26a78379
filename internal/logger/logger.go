package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog so callers don't depend on the handler setup.
type Logger struct {
	sl *slog.Logger
}

var log *Logger

// Init configures the default JSON logger writing to stdout.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	log = New(handler)
}

func New(h slog.Handler) *Logger {
	return &Logger{sl: slog.New(h)}
}

func NewJSONHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(w, opts)
}

func Info(msg string, args ...any) {
	log.sl.Info(msg, args...)
}

func Infof(format string, v ...any) {
	log.sl.Info(fmt.Sprintf(format, v...))
}

func Error(msg string, args ...any) {
	log.sl.Error(msg, args...)
}

func Errorf(format string, v ...any) {
	log.sl.Error(fmt.Sprintf(format, v...))
}

func Debug(msg string, args ...any) {
	log.sl.Debug(msg, args...)
}

func Debugf(format string, v ...any) {
	log.sl.Debug(fmt.Sprintf(format, v...))
}

func Fatal(msg string) {
	log.sl.Error(msg)
	os.Exit(1)
}

func Fatalf(format string, v ...any) {
	log.sl.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

// WithError returns a logger with the error attached as a field.
func WithError(err error) *Logger {
	return &Logger{sl: log.sl.With("error", err)}
}

// WithFields returns a logger with the given fields attached.
func WithFields(fields map[string]interface{}) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{sl: log.sl.With(args...)}
}

func (l *Logger) Info(msg string, args ...any) {
	l.sl.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.sl.Error(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.sl.Debug(msg, args...)
}
