package signal

import (
	"encoding/hex"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// Severity is the ordered severity vocabulary for drift signals.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank returns the ordering of a severity: info < warning < critical.
// Unknown severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether s is at or above the given threshold.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ParseSeverity parses a string into a Severity.
// Returns false for anything outside the vocabulary.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo, true
	case "warning", "warn":
		return SeverityWarning, true
	case "critical":
		return SeverityCritical, true
	default:
		return "", false
	}
}

// Type classifies what kind of design-system deviation a signal reports.
type Type string

const (
	TypeHardcodedValue       Type = "hardcoded-value"
	TypeUnusedToken          Type = "unused-token"
	TypeUnusedComponent      Type = "unused-component"
	TypeOrphanedComponent    Type = "orphaned-component"
	TypeOrphanedToken        Type = "orphaned-token"
	TypeNamingInconsistency  Type = "naming-inconsistency"
	TypeSemanticMismatch     Type = "semantic-mismatch"
	TypeRepeatedPattern      Type = "repeated-pattern"
	TypeDeprecatedPattern    Type = "deprecated-pattern"
	TypeValueDivergence      Type = "value-divergence"
	TypeFrameworkSprawl      Type = "framework-sprawl"
	TypeMissingDocumentation Type = "missing-documentation"
	TypeAccessibilityIssue   Type = "accessibility-issue"
)

// Types lists the closed vocabulary of known signal types.
var Types = []Type{
	TypeHardcodedValue,
	TypeUnusedToken,
	TypeUnusedComponent,
	TypeOrphanedComponent,
	TypeOrphanedToken,
	TypeNamingInconsistency,
	TypeSemanticMismatch,
	TypeRepeatedPattern,
	TypeDeprecatedPattern,
	TypeValueDivergence,
	TypeFrameworkSprawl,
	TypeMissingDocumentation,
	TypeAccessibilityIssue,
}

// Known reports whether t belongs to the known type vocabulary.
func (t Type) Known() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// EntityType identifies what kind of design-system entity a signal points at.
type EntityType string

const (
	EntityComponent EntityType = "component"
	EntityToken     EntityType = "token"
)

// Source identifies the entity a signal was detected on and where it lives.
type Source struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	EntityName string     `json:"entity_name"`

	// Location is "<path>:<line>" or just "<path>" when line-less.
	Location string `json:"location"`
}

var trailingLine = regexp.MustCompile(`:\d+$`)

// Path returns the file path component of Location, without any :line suffix.
func (s Source) Path() string {
	return trailingLine.ReplaceAllString(s.Location, "")
}

// Dir returns the directory containing the signal's file.
func (s Source) Dir() string {
	return path.Dir(s.Path())
}

// Detail keys conventionally carried by scanners in DriftSignal.Details.
const (
	// DetailActual holds the offending literal value (stringifiable).
	DetailActual = "actual"
	// DetailTokenSuggestions holds ordered strings of the form
	// "<value> → <canonical-name> (<NN>% match)".
	DetailTokenSuggestions = "tokenSuggestions"
)

// DriftSignal is one detected deviation from the design system.
type DriftSignal struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	Severity   Severity       `json:"severity"`
	Source     Source         `json:"source"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	DetectedAt time.Time      `json:"detected_at"`
}

// Actual returns the stringified details["actual"], or "" when absent.
func (d DriftSignal) Actual() string {
	if d.Details == nil {
		return ""
	}
	v, ok := d.Details[DetailActual]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// TokenSuggestions returns the ordered suggestion strings from Details,
// or nil when the scanner attached none.
func (d DriftSignal) TokenSuggestions() []string {
	if d.Details == nil {
		return nil
	}
	switch v := d.Details[DetailTokenSuggestions].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

// Fingerprint returns a stable content hash of the signal, used by the
// ignore list to recognize previously acknowledged signals across runs.
// IDs and timestamps are excluded so re-scans produce the same fingerprint.
func (d DriftSignal) Fingerprint() string {
	h := blake3.New()
	for _, part := range []string{
		string(d.Type),
		string(d.Source.EntityType),
		d.Source.EntityID,
		d.Source.Location,
		d.Message,
		d.Actual(),
	} {
		_, _ = h.WriteString(part)
		_, _ = h.WriteString("\x00")
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
