package log

import "sync"

var (
	defaultLogger *Logger
	loggerMu      sync.RWMutex
)

// SetDefaultLogger replaces the process-wide default logger. The CLI
// calls this once after flag parsing.
func SetDefaultLogger(logger *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = logger
}

// DefaultLogger returns the process-wide default logger, lazily
// initializing it when nothing configured one.
func DefaultLogger() *Logger {
	loggerMu.RLock()
	if defaultLogger != nil {
		defer loggerMu.RUnlock()
		return defaultLogger
	}
	loggerMu.RUnlock()

	logger := Default()
	SetDefaultLogger(logger)
	return logger
}

// Debug logs a debug message on the default logger.
func Debug(msg string, args ...any) { DefaultLogger().Debug(msg, args...) }

// Info logs an info message on the default logger.
func Info(msg string, args ...any) { DefaultLogger().Info(msg, args...) }

// Warn logs a warning message on the default logger.
func Warn(msg string, args ...any) { DefaultLogger().Warn(msg, args...) }

// Error logs an error message on the default logger.
func Error(msg string, args ...any) { DefaultLogger().Error(msg, args...) }
