package rules

import (
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// PipelineConfig carries one run's worth of filtering configuration.
// Rules are immutable for the duration of a run.
type PipelineConfig struct {
	// SeverityOverrides replaces the severity of every signal of a given
	// type, before any rule evaluation.
	SeverityOverrides map[signal.Type]signal.Severity

	// MinSeverity drops signals below the threshold. Empty disables it.
	MinSeverity signal.Severity

	// Types restricts the run to the listed signal types. Empty keeps all.
	Types []signal.Type

	Promote []PromoteRule
	Enforce []EnforceRule
	Ignore  []IgnoreRule

	// Acknowledged holds fingerprints of previously acknowledged signals
	// (the persisted ignore list). They are dropped unless IncludeIgnored.
	Acknowledged   map[string]struct{}
	IncludeIgnored bool
}

// Run applies the full filtering pipeline in its fixed order:
// severity overrides, severity threshold, type filter, promote rules,
// enforce rules, ignore rules, acknowledged-signal filter. The order is
// part of the contract; reordering changes results (an override can lift a
// signal over the threshold, a promotion can make it ignorable by severity).
func (e *Engine) Run(signals []signal.DriftSignal, cfg PipelineConfig) []signal.DriftSignal {
	out := ApplySeverityOverrides(signals, cfg.SeverityOverrides)
	out = FilterBySeverity(out, cfg.MinSeverity)
	out = FilterByTypes(out, cfg.Types)
	out = e.ApplyPromoteRules(out, cfg.Promote)
	out = e.ApplyEnforceRules(out, cfg.Enforce)
	out = e.ApplyIgnoreRules(out, cfg.Ignore)
	out = FilterAcknowledged(out, cfg.Acknowledged, cfg.IncludeIgnored)
	return out
}

// ApplySeverityOverrides replaces the severity of every signal whose type
// has an entry in the override map. Pure; a nil map is the identity.
func ApplySeverityOverrides(signals []signal.DriftSignal, overrides map[signal.Type]signal.Severity) []signal.DriftSignal {
	out := append([]signal.DriftSignal(nil), signals...)
	if len(overrides) == 0 {
		return out
	}
	for i, sig := range out {
		if sev, ok := overrides[sig.Type]; ok {
			out[i].Severity = sev
		}
	}
	return out
}

// FilterBySeverity keeps signals at or above min. Empty min keeps all.
func FilterBySeverity(signals []signal.DriftSignal, min signal.Severity) []signal.DriftSignal {
	if min == "" {
		return append([]signal.DriftSignal(nil), signals...)
	}
	out := make([]signal.DriftSignal, 0, len(signals))
	for _, sig := range signals {
		if sig.Severity.AtLeast(min) {
			out = append(out, sig)
		}
	}
	return out
}

// FilterByTypes keeps signals whose type is in the allow list.
// An empty list keeps all.
func FilterByTypes(signals []signal.DriftSignal, types []signal.Type) []signal.DriftSignal {
	if len(types) == 0 {
		return append([]signal.DriftSignal(nil), signals...)
	}
	allowed := make(map[signal.Type]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	out := make([]signal.DriftSignal, 0, len(signals))
	for _, sig := range signals {
		if _, ok := allowed[sig.Type]; ok {
			out = append(out, sig)
		}
	}
	return out
}

// FilterAcknowledged drops signals whose fingerprint is in the acknowledged
// set, unless includeIgnored asks for them back.
func FilterAcknowledged(signals []signal.DriftSignal, acknowledged map[string]struct{}, includeIgnored bool) []signal.DriftSignal {
	if includeIgnored || len(acknowledged) == 0 {
		return append([]signal.DriftSignal(nil), signals...)
	}
	out := make([]signal.DriftSignal, 0, len(signals))
	for _, sig := range signals {
		if _, ok := acknowledged[sig.Fingerprint()]; !ok {
			out = append(out, sig)
		}
	}
	return out
}
