// Package aggregate collapses large numbers of near-duplicate drift
// signals into a small set of actionable groups. Signals are claimed by a
// priority-ordered list of grouping strategies; candidate groups below the
// minimum size fall back to the ungrouped list without being retried under
// a lower-priority strategy.
package aggregate

import (
	"sort"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// DefaultMinGroupSize is the smallest candidate group that becomes a
// DriftGroup when the config leaves MinGroupSize unset.
const DefaultMinGroupSize = 2

// Config controls one aggregation run.
type Config struct {
	// Strategies are tried in order per signal; the first strategy that
	// produces a key claims the signal. Nil selects the default order
	// value, suggestion, path, entity.
	Strategies []Strategy

	// MinGroupSize is the smallest candidate group that is reported as a
	// group. Zero means DefaultMinGroupSize.
	MinGroupSize int

	// PathPatterns configures the built-in path strategy when Strategies
	// is nil.
	PathPatterns []string
}

// GroupingKey records which strategy claimed a group and with what key.
type GroupingKey struct {
	Strategy string `json:"strategy"`
	Value    string `json:"value"`
}

// SeverityCounts tallies group members by severity.
type SeverityCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// DriftGroup is one reported cluster of signals that share a root cause.
type DriftGroup struct {
	ID          string             `json:"id"`
	GroupingKey GroupingKey        `json:"grouping_key"`
	Summary     string             `json:"summary"`
	Signals     []signal.DriftSignal `json:"signals"`
	TotalCount  int                `json:"total_count"`
	BySeverity  SeverityCounts     `json:"by_severity"`

	// Representative is the member with the highest severity; ties break
	// toward the earliest input position for determinism.
	Representative signal.DriftSignal `json:"representative"`
}

// Result is the aggregation output. Every input signal appears in exactly
// one of Groups[*].Signals or Ungrouped.
type Result struct {
	Groups       []DriftGroup         `json:"groups"`
	Ungrouped    []signal.DriftSignal `json:"ungrouped"`
	TotalSignals int                  `json:"total_signals"`
	TotalGroups  int                  `json:"total_groups"`

	// ReductionRatio is TotalSignals / (TotalGroups + len(Ungrouped)),
	// and 1 for empty input.
	ReductionRatio float64 `json:"reduction_ratio"`
}

type candidate struct {
	strategy Strategy
	key      string
	indices  []int
}

// Aggregate groups signals according to the configured strategies.
// It is pure: the input slice is never mutated and output slices are
// freshly allocated. Group order follows the first occurrence of each
// group's earliest member; ungrouped signals keep their input order.
func Aggregate(signals []signal.DriftSignal, cfg Config) Result {
	minSize := cfg.MinGroupSize
	if minSize <= 0 {
		minSize = DefaultMinGroupSize
	}
	strategies := cfg.Strategies
	if strategies == nil {
		strategies = DefaultStrategies(cfg.PathPatterns)
	}

	if len(signals) == 0 {
		return Result{
			Groups:         []DriftGroup{},
			Ungrouped:      []signal.DriftSignal{},
			TotalSignals:   0,
			TotalGroups:    0,
			ReductionRatio: 1,
		}
	}

	// First pass: each signal is claimed by the first strategy that
	// produces a key. Candidates keep first-occurrence order.
	candidates := make(map[GroupingKey]*candidate)
	var order []GroupingKey
	unclaimed := make([]int, 0)

	for i, sig := range signals {
		claimed := false
		for _, strat := range strategies {
			key, ok := strat.Key(sig)
			if !ok {
				continue
			}
			gk := GroupingKey{Strategy: strat.Name(), Value: key}
			c, exists := candidates[gk]
			if !exists {
				c = &candidate{strategy: strat, key: key}
				candidates[gk] = c
				order = append(order, gk)
			}
			c.indices = append(c.indices, i)
			claimed = true
			break
		}
		if !claimed {
			unclaimed = append(unclaimed, i)
		}
	}

	// Second pass: candidates meeting the size threshold become groups;
	// the rest fall into the ungrouped list. There is no retry against
	// lower-priority strategies for under-sized candidates.
	groups := make([]DriftGroup, 0, len(order))
	ungroupedIdx := append([]int(nil), unclaimed...)

	for _, gk := range order {
		c := candidates[gk]
		if len(c.indices) < minSize {
			ungroupedIdx = append(ungroupedIdx, c.indices...)
			continue
		}
		groups = append(groups, buildGroup(signals, c, gk))
	}

	// Restore input order for ungrouped signals.
	sort.Ints(ungroupedIdx)
	ungrouped := make([]signal.DriftSignal, 0, len(ungroupedIdx))
	for _, i := range ungroupedIdx {
		ungrouped = append(ungrouped, signals[i])
	}

	ratio := float64(len(signals)) / float64(len(groups)+len(ungrouped))

	return Result{
		Groups:         groups,
		Ungrouped:      ungrouped,
		TotalSignals:   len(signals),
		TotalGroups:    len(groups),
		ReductionRatio: ratio,
	}
}

func buildGroup(signals []signal.DriftSignal, c *candidate, gk GroupingKey) DriftGroup {
	members := make([]signal.DriftSignal, 0, len(c.indices))
	var counts SeverityCounts
	rep := signals[c.indices[0]]

	for _, i := range c.indices {
		sig := signals[i]
		members = append(members, sig)
		switch sig.Severity {
		case signal.SeverityCritical:
			counts.Critical++
		case signal.SeverityWarning:
			counts.Warning++
		case signal.SeverityInfo:
			counts.Info++
		}
		if sig.Severity.Rank() > rep.Severity.Rank() {
			rep = sig
		}
	}

	return DriftGroup{
		ID:             uuid.NewString(),
		GroupingKey:    gk,
		Summary:        c.strategy.Summarize(members, c.key),
		Signals:        members,
		TotalCount:     len(members),
		BySeverity:     counts,
		Representative: rep,
	}
}
