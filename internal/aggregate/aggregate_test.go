package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(nil, Config{})

	assert.NotNil(t, result.Groups)
	assert.NotNil(t, result.Ungrouped)
	assert.Zero(t, result.TotalSignals)
	assert.Zero(t, result.TotalGroups)
	assert.Equal(t, 1.0, result.ReductionRatio)
}

func TestAggregate_SingleSignalStaysUngrouped(t *testing.T) {
	sig := hardcoded("s1", "Button", "src/Button.tsx:10", "#3b82f6")

	result := Aggregate([]signal.DriftSignal{sig}, Config{})

	assert.Empty(t, result.Groups)
	require.Len(t, result.Ungrouped, 1)
	assert.Equal(t, "s1", result.Ungrouped[0].ID)
	assert.Equal(t, 1.0, result.ReductionRatio)
}

func TestAggregate_IdenticalValuesReductionRatio(t *testing.T) {
	const n = 10
	signals := make([]signal.DriftSignal, 0, n)
	for i := 0; i < n; i++ {
		signals = append(signals, hardcoded(
			string(rune('a'+i)), "Comp", "src/Comp.tsx:1", "#3b82f6"))
	}

	result := Aggregate(signals, Config{})

	require.Len(t, result.Groups, 1)
	assert.Empty(t, result.Ungrouped)
	assert.Equal(t, n, result.Groups[0].TotalCount)
	assert.Equal(t, float64(n), result.ReductionRatio)
	assert.Equal(t, GroupingKey{Strategy: StrategyValue, Value: "#3b82f6"}, result.Groups[0].GroupingKey)
}

func TestAggregate_PartitionInvariant(t *testing.T) {
	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/A.tsx:1", "#3b82f6"),
		hardcoded("s2", "B", "src/B.tsx:2", "#3b82f6"),
		hardcoded("s3", "C", "lib/C.tsx:3", "16px"),
		{
			ID:       "s4",
			Type:     signal.TypeUnusedToken,
			Severity: signal.SeverityInfo,
			Source:   signal.Source{EntityType: signal.EntityToken, EntityID: "t1", EntityName: "color.old", Location: "tokens.css:3"},
		},
	}

	result := Aggregate(signals, Config{})

	seen := make(map[string]int)
	for _, group := range result.Groups {
		assert.Equal(t, len(group.Signals), group.TotalCount)
		for _, sig := range group.Signals {
			seen[sig.ID]++
		}
	}
	for _, sig := range result.Ungrouped {
		seen[sig.ID]++
	}

	require.Len(t, seen, len(signals))
	for id, count := range seen {
		assert.Equal(t, 1, count, "signal %s must appear exactly once", id)
	}
	assert.Equal(t, len(signals), result.TotalSignals)
}

// An under-sized candidate goes straight to the ungrouped list; it is not
// re-offered to lower-priority strategies that might have grouped it.
func TestAggregate_NoFallthroughBelowMinGroupSize(t *testing.T) {
	// Both signals sit in the same directory, so the path strategy would
	// group them, but each carries a distinct value so the value strategy
	// claims them first into two singleton candidates.
	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/components/A.tsx:1", "#111111"),
		hardcoded("s2", "B", "src/components/B.tsx:2", "#222222"),
	}

	result := Aggregate(signals, Config{})

	assert.Empty(t, result.Groups)
	assert.Len(t, result.Ungrouped, 2)
}

func TestAggregate_StrategyPriorityOrder(t *testing.T) {
	// Same value and same entity: the value strategy is first in the default
	// order, so it claims both.
	signals := []signal.DriftSignal{
		hardcoded("s1", "Button", "src/Button.tsx:1", "#3b82f6"),
		hardcoded("s2", "Button", "src/Button.tsx:9", "#3b82f6"),
	}

	result := Aggregate(signals, Config{})

	require.Len(t, result.Groups, 1)
	assert.Equal(t, StrategyValue, result.Groups[0].GroupingKey.Strategy)
}

func TestAggregate_PathPatternClustersAcrossDepth(t *testing.T) {
	// Three naming inconsistencies under src/legacy at different depths,
	// with distinct values so the value strategy produces no viable group.
	mk := func(id, location string) signal.DriftSignal {
		return signal.DriftSignal{
			ID:       id,
			Type:     signal.TypeNamingInconsistency,
			Severity: signal.SeverityInfo,
			Source: signal.Source{
				EntityType: signal.EntityComponent,
				EntityID:   "comp-" + id,
				EntityName: "Legacy" + id,
				Location:   location,
			},
		}
	}
	signals := []signal.DriftSignal{
		mk("s1", "src/legacy/Card.tsx:5"),
		mk("s2", "src/legacy/forms/Input.tsx:12"),
		mk("s3", "src/legacy/forms/fields/Select.tsx:3"),
	}

	result := Aggregate(signals, Config{PathPatterns: []string{"src/legacy/**"}})

	require.Len(t, result.Groups, 1)
	group := result.Groups[0]
	assert.Equal(t, GroupingKey{Strategy: StrategyPath, Value: "src/legacy/**"}, group.GroupingKey)
	assert.Equal(t, 3, group.TotalCount)
	assert.Equal(t, "3 issues clustered in src/legacy/**", group.Summary)
	assert.Empty(t, result.Ungrouped)
}

func TestAggregate_RepresentativeHighestSeverityFirstOccurrence(t *testing.T) {
	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/A.tsx:1", "#3b82f6"),
		hardcoded("s2", "B", "src/B.tsx:2", "#3b82f6"),
		hardcoded("s3", "C", "src/C.tsx:3", "#3b82f6"),
	}
	signals[1].Severity = signal.SeverityCritical
	signals[2].Severity = signal.SeverityCritical

	result := Aggregate(signals, Config{})

	require.Len(t, result.Groups, 1)
	group := result.Groups[0]
	// s2 and s3 tie on severity; the earlier occurrence wins.
	assert.Equal(t, "s2", group.Representative.ID)
	assert.Equal(t, SeverityCounts{Critical: 2, Warning: 1}, group.BySeverity)
}

func TestAggregate_MinGroupSize(t *testing.T) {
	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/A.tsx:1", "#3b82f6"),
		hardcoded("s2", "B", "src/B.tsx:2", "#3b82f6"),
	}

	// Raising the threshold above the candidate size breaks up the group.
	result := Aggregate(signals, Config{MinGroupSize: 3})
	assert.Empty(t, result.Groups)
	assert.Len(t, result.Ungrouped, 2)

	// The default threshold of 2 keeps it.
	result = Aggregate(signals, Config{})
	assert.Len(t, result.Groups, 1)
}

func TestAggregate_UngroupedPreservesInputOrder(t *testing.T) {
	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/a/A.tsx:1", "#111111"),
		hardcoded("s2", "B", "src/b/B.tsx:2", "#3b82f6"),
		hardcoded("s3", "C", "src/c/C.tsx:3", "#333333"),
		hardcoded("s4", "D", "src/d/D.tsx:4", "#3b82f6"),
		hardcoded("s5", "E", "src/e/E.tsx:5", "#555555"),
	}

	result := Aggregate(signals, Config{})

	require.Len(t, result.Groups, 1)
	ids := make([]string, 0, len(result.Ungrouped))
	for _, sig := range result.Ungrouped {
		ids = append(ids, sig.ID)
	}
	assert.Equal(t, []string{"s1", "s3", "s5"}, ids)
}

func TestAggregate_CustomStrategyFirst(t *testing.T) {
	byType := CustomStrategy{
		StrategyName: "type",
		KeyFunc: func(sig signal.DriftSignal) (string, bool) {
			return string(sig.Type), true
		},
	}

	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/A.tsx:1", "#111111"),
		hardcoded("s2", "B", "src/B.tsx:2", "#222222"),
	}

	result := Aggregate(signals, Config{Strategies: []Strategy{byType}})

	require.Len(t, result.Groups, 1)
	assert.Equal(t, "type", result.Groups[0].GroupingKey.Strategy)
	assert.Equal(t, string(signal.TypeHardcodedValue), result.Groups[0].GroupingKey.Value)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/A.tsx:1", "#3b82f6"),
		hardcoded("s2", "B", "src/B.tsx:2", "#3b82f6"),
	}
	before := append([]signal.DriftSignal(nil), signals...)

	Aggregate(signals, Config{})

	assert.Equal(t, before, signals)
}

func TestAggregate_GroupIDsAreUnique(t *testing.T) {
	signals := []signal.DriftSignal{
		hardcoded("s1", "A", "src/A.tsx:1", "#111111"),
		hardcoded("s2", "B", "src/B.tsx:2", "#111111"),
		hardcoded("s3", "C", "src/C.tsx:3", "#222222"),
		hardcoded("s4", "D", "src/D.tsx:4", "#222222"),
	}

	result := Aggregate(signals, Config{})

	require.Len(t, result.Groups, 2)
	assert.NotEmpty(t, result.Groups[0].ID)
	assert.NotEqual(t, result.Groups[0].ID, result.Groups[1].ID)
}
