package log

import (
	"io"
	"os"
	"strings"
)

// Format selects the handler a logger writes through.
type Format int

const (
	// FormatText is the human-readable default for CLI runs.
	FormatText Format = iota
	// FormatJSON is for machine consumption (CI log collectors).
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a format name, case-insensitively. Unknown names
// fall back to text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Config holds logger construction options.
type Config struct {
	Level  Level
	Format Format

	// Writer receives all log output. Defaults to stderr so reports on
	// stdout stay machine-parseable.
	Writer io.Writer

	// AddSource includes the source file and line in each record.
	AddSource bool
}

// DefaultConfig logs warnings and above as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
		Writer: os.Stderr,
	}
}
