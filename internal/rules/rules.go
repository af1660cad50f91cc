package rules

import (
	"regexp"
	"sync"

	"github.com/felixgeelhaar/dsdrift/internal/log"
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// Filter is the shared matching shape for ignore, promote, and enforce rules.
// Every populated dimension must match (AND). A filter with no dimension
// populated matches nothing.
type Filter struct {
	// Type matches the signal type exactly.
	Type signal.Type `yaml:"type,omitempty" json:"type,omitempty"`

	// Severity matches the signal severity exactly.
	Severity signal.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`

	// File is a glob matched against the signal's file path
	// (location with any trailing :line stripped).
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// Component is a regex tested against the entity name; it only applies
	// to signals whose source entity is a component.
	Component string `yaml:"component,omitempty" json:"component,omitempty"`

	// Token is the component counterpart for token entities.
	Token string `yaml:"token,omitempty" json:"token,omitempty"`

	// Value is a regex tested against the stringified offending value.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Empty reports whether no dimension is populated.
func (f Filter) Empty() bool {
	return f.Type == "" && f.Severity == "" && f.File == "" &&
		f.Component == "" && f.Token == "" && f.Value == ""
}

// IgnoreRule suppresses matching signals.
type IgnoreRule struct {
	Filter `yaml:",inline"`
}

// PromoteRule raises matching signals to a configured severity.
type PromoteRule struct {
	Filter `yaml:",inline"`

	To     signal.Severity `yaml:"to" json:"to"`
	Reason string          `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// EnforceRule force-escalates matching signals to critical.
type EnforceRule struct {
	Filter `yaml:",inline"`

	Reason string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// WarnFunc receives non-fatal rule problems (invalid regex or glob).
// Matching never aborts a run; the offending rule is skipped for the signal.
type WarnFunc func(msg string, args ...any)

// Engine evaluates rule lists against drift signals. All Apply methods are
// pure: they allocate fresh slices and never mutate their input.
type Engine struct {
	warn WarnFunc

	mu       sync.Mutex
	regexes  map[string]*regexp.Regexp
	badExprs map[string]bool
}

// NewEngine creates an Engine that reports rule problems through warn.
// A nil warn falls back to the default structured logger.
func NewEngine(warn WarnFunc) *Engine {
	if warn == nil {
		warn = func(msg string, args ...any) {
			log.Warn(msg, args...)
		}
	}
	return &Engine{
		warn:     warn,
		regexes:  make(map[string]*regexp.Regexp),
		badExprs: make(map[string]bool),
	}
}

// ApplyIgnoreRules keeps every signal matched by no ignore rule.
// Rules are OR'd for exclusion; order does not matter. An empty rule list
// is the identity.
func (e *Engine) ApplyIgnoreRules(signals []signal.DriftSignal, rules []IgnoreRule) []signal.DriftSignal {
	if len(rules) == 0 {
		return append([]signal.DriftSignal(nil), signals...)
	}

	kept := make([]signal.DriftSignal, 0, len(signals))
	for _, sig := range signals {
		ignored := false
		for _, rule := range rules {
			if e.Matches(sig, rule.Filter) {
				ignored = true
				break
			}
		}
		if !ignored {
			kept = append(kept, sig)
		}
	}
	return kept
}

// ApplyPromoteRules evaluates promote rules in list order per signal; the
// first matching rule wins and later rules are not consulted. A promotion
// never lowers severity.
func (e *Engine) ApplyPromoteRules(signals []signal.DriftSignal, rules []PromoteRule) []signal.DriftSignal {
	out := append([]signal.DriftSignal(nil), signals...)
	if len(rules) == 0 {
		return out
	}

	for i, sig := range out {
		for _, rule := range rules {
			if !e.Matches(sig, rule.Filter) {
				continue
			}
			if rule.To.Rank() > sig.Severity.Rank() {
				out[i].Severity = rule.To
			}
			break
		}
	}
	return out
}

// ApplyEnforceRules escalates every signal matched by an enforce rule to
// critical. First match wins, though all enforce rules escalate identically.
func (e *Engine) ApplyEnforceRules(signals []signal.DriftSignal, rules []EnforceRule) []signal.DriftSignal {
	out := append([]signal.DriftSignal(nil), signals...)
	if len(rules) == 0 {
		return out
	}

	for i, sig := range out {
		for _, rule := range rules {
			if e.Matches(sig, rule.Filter) {
				out[i].Severity = signal.SeverityCritical
				break
			}
		}
	}
	return out
}

// Matches reports whether a signal satisfies every populated dimension of a
// filter. A filter with no populated dimension matches nothing.
func (e *Engine) Matches(sig signal.DriftSignal, f Filter) bool {
	if f.Empty() {
		return false
	}

	if f.Type != "" && f.Type != sig.Type {
		return false
	}
	if f.Severity != "" && f.Severity != sig.Severity {
		return false
	}
	if f.File != "" {
		ok, err := MatchGlob(f.File, sig.Source.Path())
		if err != nil {
			e.warnOnce("invalid file glob in rule", "pattern", f.File, "error", err.Error())
			return false
		}
		if !ok {
			return false
		}
	}
	if f.Component != "" {
		if sig.Source.EntityType != signal.EntityComponent {
			return false
		}
		if !e.regexMatch(f.Component, sig.Source.EntityName, "component") {
			return false
		}
	}
	if f.Token != "" {
		if sig.Source.EntityType != signal.EntityToken {
			return false
		}
		if !e.regexMatch(f.Token, sig.Source.EntityName, "token") {
			return false
		}
	}
	if f.Value != "" {
		if !e.regexMatch(f.Value, sig.Actual(), "value") {
			return false
		}
	}
	return true
}

// regexMatch compiles expr (cached) and tests it against s. An invalid
// expression makes the dimension non-matching and warns once per pattern.
func (e *Engine) regexMatch(expr, s, dimension string) bool {
	e.mu.Lock()
	re, ok := e.regexes[expr]
	if !ok && !e.badExprs[expr] {
		var err error
		re, err = regexp.Compile(expr)
		if err != nil {
			e.badExprs[expr] = true
			e.mu.Unlock()
			e.warn("invalid regex in rule, rule skipped", "dimension", dimension, "pattern", expr, "error", err.Error())
			return false
		}
		e.regexes[expr] = re
	}
	e.mu.Unlock()

	if re == nil {
		return false
	}
	return re.MatchString(s)
}

func (e *Engine) warnOnce(msg string, args ...any) {
	pattern := ""
	if len(args) >= 2 {
		pattern, _ = args[1].(string)
	}
	e.mu.Lock()
	if e.badExprs["glob:"+pattern] {
		e.mu.Unlock()
		return
	}
	e.badExprs["glob:"+pattern] = true
	e.mu.Unlock()
	e.warn(msg, args...)
}
