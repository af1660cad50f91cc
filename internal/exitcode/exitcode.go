package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/felixgeelhaar/dsdrift/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates an invalid or unreadable configuration file
	ConfigError = 3

	// CriticalDrift indicates the audit found critical-severity signals
	CriticalDrift = 4

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var driftErr *errors.DriftError
	if stderrors.As(err, &driftErr) {
		if strings.HasPrefix(string(driftErr.Code), "CONFIG-") {
			return ConfigError
		}
		return GeneralError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "unknown command") ||
		strings.Contains(errMsg, "invalid flag") {
		return UsageError
	}

	return GeneralError
}
