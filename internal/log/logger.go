// Package log wraps log/slog with the small structured-logging surface
// the audit pipeline needs: a leveled logger, coded-error integration,
// and a process-wide default for packages without an injected logger.
package log

import (
	"log/slog"
	"os"

	"github.com/felixgeelhaar/dsdrift/internal/errors"
)

// Logger is a structured logger backed by slog.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger from the given configuration.
func New(config Config) *Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{slog: slog.New(handler)}
}

// Default builds a Logger with DefaultConfig.
func Default() *Logger {
	return New(DefaultConfig())
}

// With returns a Logger carrying the given attributes on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// WithError attaches error details as attributes. Coded errors
// contribute their code and suggestions alongside the message.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	driftErr, ok := err.(*errors.DriftError)
	if !ok {
		return l.With("error", err.Error())
	}

	args := []any{
		"error", driftErr.Message,
		"error_code", string(driftErr.Code),
	}
	if len(driftErr.Suggestions) > 0 {
		args = append(args, "suggestions", driftErr.Suggestions)
	}
	if driftErr.Cause != nil {
		args = append(args, "cause", driftErr.Cause.Error())
	}
	return l.With(args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// LogError emits one error record with the full detail of a coded error:
// code, message, suggestions, docs link, and cause when present.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	driftErr, ok := err.(*errors.DriftError)
	if !ok {
		l.Error("operation failed", "error", err.Error())
		return
	}

	args := []any{
		"error_code", string(driftErr.Code),
		"error_message", driftErr.Message,
	}
	if len(driftErr.Suggestions) > 0 {
		args = append(args, "suggestions", driftErr.Suggestions)
	}
	if driftErr.DocsURL != "" {
		args = append(args, "docs_url", driftErr.DocsURL)
	}
	if driftErr.Cause != nil {
		args = append(args, "cause", driftErr.Cause.Error())
	}
	l.Error("operation failed", args...)
}
