package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

func hardcoded(id, name, location, actual string) signal.DriftSignal {
	return signal.DriftSignal{
		ID:       id,
		Type:     signal.TypeHardcodedValue,
		Severity: signal.SeverityWarning,
		Source: signal.Source{
			EntityType: signal.EntityComponent,
			EntityID:   "comp-" + name,
			EntityName: name,
			Location:   location,
		},
		Message: "Hardcoded value " + actual,
		Details: map[string]any{signal.DetailActual: actual},
	}
}

func TestValueStrategyKey(t *testing.T) {
	strat := valueStrategy{}

	key, ok := strat.Key(hardcoded("s1", "Button", "src/Button.tsx:10", "#3b82f6"))
	require.True(t, ok)
	assert.Equal(t, "#3b82f6", key)

	// Only hardcoded-value signals with a non-empty value qualify.
	_, ok = strat.Key(signal.DriftSignal{Type: signal.TypeUnusedToken})
	assert.False(t, ok)

	noValue := hardcoded("s2", "Button", "src/Button.tsx:10", "#fff")
	noValue.Details = nil
	_, ok = strat.Key(noValue)
	assert.False(t, ok)
}

func TestValueStrategySummarize(t *testing.T) {
	members := []signal.DriftSignal{
		hardcoded("s1", "A", "src/A.tsx:1", "16px"),
		hardcoded("s2", "B", "src/B.tsx:2", "16px"),
		hardcoded("s3", "C", "src/C.tsx:3", "16px"),
	}
	assert.Equal(t, "3 occurrences of 16px", valueStrategy{}.Summarize(members, "16px"))
}

func TestParseSuggestionToken(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"#3b82f6 → color.primary (98% match)", "color.primary", true},
		{"#2563eb → color.primary (85% match)", "color.primary", true},
		{"16px → spacing.md", "spacing.md", true},
		{"no arrow here", "", false},
		{"#fff → ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSuggestionToken(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestionStrategyKey(t *testing.T) {
	strat := suggestionStrategy{}

	sig := hardcoded("s1", "Button", "src/Button.tsx:10", "#3b82f6")
	sig.Details[signal.DetailTokenSuggestions] = []any{"#3b82f6 → color.primary (98% match)"}

	key, ok := strat.Key(sig)
	require.True(t, ok)
	assert.Equal(t, "color.primary", key)

	// Different literals resolving to the same token share a key.
	other := hardcoded("s2", "Card", "src/Card.tsx:4", "#2563eb")
	other.Details[signal.DetailTokenSuggestions] = []any{"#2563eb → color.primary (85% match)"}
	otherKey, ok := strat.Key(other)
	require.True(t, ok)
	assert.Equal(t, key, otherKey)

	_, ok = strat.Key(hardcoded("s3", "Plain", "src/Plain.tsx:1", "#fff"))
	assert.False(t, ok)
}

func TestPathStrategyKey(t *testing.T) {
	noPatterns := pathStrategy{}

	key, ok := noPatterns.Key(hardcoded("s1", "Button", "src/components/Button.tsx:10", "#fff"))
	require.True(t, ok)
	assert.Equal(t, "src/components", key)

	// With a configured pattern the key is the pattern itself, regardless of
	// how deep below the matched prefix the signal sits.
	patterned := pathStrategy{patterns: []string{"src/legacy/**"}}

	shallow, ok := patterned.Key(hardcoded("s2", "Old", "src/legacy/Old.tsx:1", "#fff"))
	require.True(t, ok)
	deep, ok2 := patterned.Key(hardcoded("s3", "Older", "src/legacy/deep/nested/Older.tsx:1", "#fff"))
	require.True(t, ok2)
	assert.Equal(t, "src/legacy/**", shallow)
	assert.Equal(t, shallow, deep)

	// Non-matching paths fall back to the parent directory.
	fallback, ok := patterned.Key(hardcoded("s4", "New", "src/modern/New.tsx:1", "#fff"))
	require.True(t, ok)
	assert.Equal(t, "src/modern", fallback)
}

func TestEntityStrategyKey(t *testing.T) {
	strat := entityStrategy{}

	sig := hardcoded("s1", "Button", "src/Button.tsx:10", "#fff")
	key, ok := strat.Key(sig)
	require.True(t, ok)
	assert.Equal(t, "comp-Button", key)

	sig.Source.EntityID = ""
	_, ok = strat.Key(sig)
	assert.False(t, ok)
}

func TestEntityStrategySummarizeUsesName(t *testing.T) {
	members := []signal.DriftSignal{
		hardcoded("s1", "Button", "src/Button.tsx:10", "#fff"),
		hardcoded("s2", "Button", "src/Button.tsx:22", "16px"),
	}
	assert.Equal(t, "2 issues on Button", entityStrategy{}.Summarize(members, "comp-Button"))
}

func TestCustomStrategy(t *testing.T) {
	strat := CustomStrategy{
		StrategyName: "by-message",
		KeyFunc: func(sig signal.DriftSignal) (string, bool) {
			return sig.Message, sig.Message != ""
		},
	}

	assert.Equal(t, "by-message", strat.Name())

	key, ok := strat.Key(signal.DriftSignal{Message: "m"})
	require.True(t, ok)
	assert.Equal(t, "m", key)

	// Default summary when no SummarizeFunc is provided.
	assert.Equal(t, "2 signals grouped by m",
		strat.Summarize(make([]signal.DriftSignal, 2), "m"))

	// Nil KeyFunc never claims a signal.
	_, ok = CustomStrategy{StrategyName: "noop"}.Key(signal.DriftSignal{Message: "m"})
	assert.False(t, ok)
}

func TestBuiltinStrategy(t *testing.T) {
	for _, name := range []string{StrategyValue, StrategySuggestion, StrategyPath, StrategyEntity} {
		strat, ok := BuiltinStrategy(name, nil)
		require.True(t, ok, name)
		assert.Equal(t, name, strat.Name())
	}

	_, ok := BuiltinStrategy("unknown", nil)
	assert.False(t, ok)
}
