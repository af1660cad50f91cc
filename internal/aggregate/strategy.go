package aggregate

import (
	"fmt"
	"path"
	"strings"

	"github.com/felixgeelhaar/dsdrift/internal/rules"
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// Strategy decides which signals belong to the same actionable group.
// Key returns the grouping key for a signal, or ok=false when the strategy
// has nothing to say about it; Summarize renders a one-line description of
// a finished group and must mention both the count and the key.
type Strategy interface {
	Name() string
	Key(sig signal.DriftSignal) (key string, ok bool)
	Summarize(signals []signal.DriftSignal, key string) string
}

// Built-in strategy names, in default priority order.
const (
	StrategyValue      = "value"
	StrategySuggestion = "suggestion"
	StrategyPath       = "path"
	StrategyEntity     = "entity"
)

// DefaultStrategies returns the built-in strategies in their default
// priority order: value, suggestion, path, entity.
func DefaultStrategies(pathPatterns []string) []Strategy {
	return []Strategy{
		valueStrategy{},
		suggestionStrategy{},
		pathStrategy{patterns: pathPatterns},
		entityStrategy{},
	}
}

// BuiltinStrategy resolves a built-in strategy by name.
func BuiltinStrategy(name string, pathPatterns []string) (Strategy, bool) {
	switch name {
	case StrategyValue:
		return valueStrategy{}, true
	case StrategySuggestion:
		return suggestionStrategy{}, true
	case StrategyPath:
		return pathStrategy{patterns: pathPatterns}, true
	case StrategyEntity:
		return entityStrategy{}, true
	default:
		return nil, false
	}
}

// valueStrategy groups hardcoded-value signals by the offending literal.
// The same literal recurring across unrelated components is one systemic
// fix: introduce one token.
type valueStrategy struct{}

func (valueStrategy) Name() string { return StrategyValue }

func (valueStrategy) Key(sig signal.DriftSignal) (string, bool) {
	if sig.Type != signal.TypeHardcodedValue {
		return "", false
	}
	actual := sig.Actual()
	if actual == "" {
		return "", false
	}
	return actual, true
}

func (valueStrategy) Summarize(signals []signal.DriftSignal, key string) string {
	return fmt.Sprintf("%d occurrences of %s", len(signals), key)
}

// suggestionStrategy groups signals whose first token suggestion resolves
// to the same canonical token. Near-duplicate values (slightly different
// hex) that all map to one replacement are one fix, not many.
type suggestionStrategy struct{}

func (suggestionStrategy) Name() string { return StrategySuggestion }

func (suggestionStrategy) Key(sig signal.DriftSignal) (string, bool) {
	suggestions := sig.TokenSuggestions()
	if len(suggestions) == 0 {
		return "", false
	}
	return ParseSuggestionToken(suggestions[0])
}

func (suggestionStrategy) Summarize(signals []signal.DriftSignal, key string) string {
	return fmt.Sprintf("%d values resolvable to token %s", len(signals), key)
}

// ParseSuggestionToken extracts the canonical token name from a suggestion
// string of the form "<value> → <canonical-name> (<NN>% match)".
func ParseSuggestionToken(suggestion string) (string, bool) {
	const arrow = "→ "
	i := strings.Index(suggestion, arrow)
	if i < 0 {
		return "", false
	}
	rest := suggestion[i+len(arrow):]
	if j := strings.Index(rest, " ("); j >= 0 {
		rest = rest[:j]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}

// pathStrategy groups signals by directory. When path patterns are
// configured, a signal's directory is normalized to the first pattern that
// matches it or any of its ancestors, so a signal nested levels below a
// matched prefix still lands in that pattern's group. Without patterns the
// key is the immediate parent directory. Clusters of unrelated issue types
// in one directory usually indicate a single remediation task.
type pathStrategy struct {
	patterns []string
}

func (pathStrategy) Name() string { return StrategyPath }

func (s pathStrategy) Key(sig signal.DriftSignal) (string, bool) {
	dir := sig.Source.Dir()
	for _, pattern := range s.patterns {
		for d := dir; ; {
			if ok, err := rules.MatchGlob(pattern, d); err == nil && ok {
				return pattern, true
			}
			parent := path.Dir(d)
			if parent == d {
				break
			}
			d = parent
		}
	}
	// No pattern matched (or none configured): the immediate parent
	// directory is the key.
	return dir, true
}

func (pathStrategy) Summarize(signals []signal.DriftSignal, key string) string {
	return fmt.Sprintf("%d issues clustered in %s", len(signals), key)
}

// entityStrategy groups several drift types on the same component or token
// into one review item for that entity's owner.
type entityStrategy struct{}

func (entityStrategy) Name() string { return StrategyEntity }

func (entityStrategy) Key(sig signal.DriftSignal) (string, bool) {
	if sig.Source.EntityID == "" {
		return "", false
	}
	return sig.Source.EntityID, true
}

func (entityStrategy) Summarize(signals []signal.DriftSignal, key string) string {
	name := key
	if len(signals) > 0 && signals[0].Source.EntityName != "" {
		name = signals[0].Source.EntityName
	}
	return fmt.Sprintf("%d issues on %s", len(signals), name)
}

// CustomStrategy lets callers plug their own grouping logic at any
// priority position. KeyFunc returning ok=false passes the signal on to
// the next strategy in the list.
type CustomStrategy struct {
	StrategyName  string
	KeyFunc       func(sig signal.DriftSignal) (string, bool)
	SummarizeFunc func(signals []signal.DriftSignal, key string) string
}

func (c CustomStrategy) Name() string { return c.StrategyName }

func (c CustomStrategy) Key(sig signal.DriftSignal) (string, bool) {
	if c.KeyFunc == nil {
		return "", false
	}
	return c.KeyFunc(sig)
}

func (c CustomStrategy) Summarize(signals []signal.DriftSignal, key string) string {
	if c.SummarizeFunc == nil {
		return fmt.Sprintf("%d signals grouped by %s", len(signals), key)
	}
	return c.SummarizeFunc(signals, key)
}
