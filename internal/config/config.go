// Package config loads the per-project audit configuration from
// .dsdrift.yaml. Configuration is read once per run and treated as
// immutable afterwards.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/dsdrift/internal/aggregate"
	"github.com/felixgeelhaar/dsdrift/internal/errors"
	"github.com/felixgeelhaar/dsdrift/internal/rules"
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = ".dsdrift.yaml"

// Config is the full user-editable run configuration.
type Config struct {
	// Rules configures the filtering pipeline.
	Rules RulesConfig `yaml:"rules"`

	// Aggregation configures signal grouping.
	Aggregation AggregationConfig `yaml:"aggregation"`

	// Report configures output rendering.
	Report ReportConfig `yaml:"report"`
}

// RulesConfig mirrors the rule-engine pipeline inputs.
type RulesConfig struct {
	// SeverityOverrides maps a signal type to a replacement severity,
	// applied before any rule evaluation.
	SeverityOverrides map[signal.Type]signal.Severity `yaml:"severityOverrides"`

	// MinSeverity drops signals below the threshold.
	MinSeverity signal.Severity `yaml:"minSeverity"`

	// Types restricts the audit to the listed signal types.
	Types []signal.Type `yaml:"types"`

	Ignore  []rules.IgnoreRule  `yaml:"ignore"`
	Promote []rules.PromoteRule `yaml:"promote"`
	Enforce []rules.EnforceRule `yaml:"enforce"`

	// IncludeIgnored brings previously acknowledged signals back into
	// the report.
	IncludeIgnored bool `yaml:"includeIgnored"`
}

// AggregationConfig selects and orders grouping strategies.
type AggregationConfig struct {
	// Strategies is the priority order of built-in strategy names.
	// Empty means value, suggestion, path, entity.
	Strategies []string `yaml:"strategies"`

	// MinGroupSize is the smallest reported group. Zero means 2.
	MinGroupSize int `yaml:"minGroupSize"`

	// PathPatterns are globs the path strategy normalizes directories to.
	PathPatterns []string `yaml:"pathPatterns"`
}

// ReportConfig controls rendering of the final report.
type ReportConfig struct {
	// Format is "terminal", "markdown", or "json".
	Format string `yaml:"format"`

	// MaxGroups limits how many groups the terminal report prints.
	// Zero means all.
	MaxGroups int `yaml:"maxGroups"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Report: ReportConfig{Format: "terminal"},
	}
}

// Load reads and validates a configuration file. A missing file at the
// default path yields Default(); a missing file at an explicit path is an
// error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.NewConfigNotFoundError(path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("failed to read config: %s", path), err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config: %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize rewrites severity aliases ("warn") to their canonical form.
// The pipeline and the severity tallies compare exact vocabulary values, so
// an alias that survives past loading would rank as unknown and silently
// disable the threshold, override, or promotion that carries it.
func (c *Config) normalize() {
	c.Rules.MinSeverity = canonicalSeverity(c.Rules.MinSeverity)
	for typ, sev := range c.Rules.SeverityOverrides {
		c.Rules.SeverityOverrides[typ] = canonicalSeverity(sev)
	}
	for i := range c.Rules.Promote {
		c.Rules.Promote[i].To = canonicalSeverity(c.Rules.Promote[i].To)
		c.Rules.Promote[i].Severity = canonicalSeverity(c.Rules.Promote[i].Severity)
	}
	for i := range c.Rules.Enforce {
		c.Rules.Enforce[i].Severity = canonicalSeverity(c.Rules.Enforce[i].Severity)
	}
	for i := range c.Rules.Ignore {
		c.Rules.Ignore[i].Severity = canonicalSeverity(c.Rules.Ignore[i].Severity)
	}
}

func canonicalSeverity(s signal.Severity) signal.Severity {
	if s == "" {
		return s
	}
	if sev, ok := signal.ParseSeverity(string(s)); ok {
		return sev
	}
	return s
}

// Validate checks severities, strategy names, and rule shapes. Invalid
// regexes and globs inside rules are deliberately not validated here: the
// rule engine skips them per signal with a warning instead of aborting.
func (c Config) Validate() error {
	for _, sev := range []signal.Severity{c.Rules.MinSeverity} {
		if sev != "" {
			if _, ok := signal.ParseSeverity(string(sev)); !ok {
				return errors.NewConfigInvalidError(fmt.Sprintf("unknown severity %q", sev))
			}
		}
	}
	for typ, sev := range c.Rules.SeverityOverrides {
		if _, ok := signal.ParseSeverity(string(sev)); !ok {
			return errors.NewConfigInvalidError(fmt.Sprintf("unknown severity %q for type %q", sev, typ))
		}
	}
	// A typo in the type allow list would silently filter every signal out.
	for _, typ := range c.Rules.Types {
		if !typ.Known() {
			return errors.NewConfigInvalidError(fmt.Sprintf("unknown signal type %q in types filter", typ))
		}
	}
	for i, rule := range c.Rules.Promote {
		if _, ok := signal.ParseSeverity(string(rule.To)); !ok {
			return errors.NewConfigInvalidError(fmt.Sprintf("promote rule %d: unknown target severity %q", i, rule.To))
		}
	}
	for _, name := range c.Aggregation.Strategies {
		if _, ok := aggregate.BuiltinStrategy(name, nil); !ok {
			return errors.NewUnknownStrategyError(name)
		}
	}
	if c.Aggregation.MinGroupSize < 0 {
		return errors.NewConfigInvalidError("minGroupSize cannot be negative")
	}
	switch c.Report.Format {
	case "", "terminal", "markdown", "json":
	default:
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown report format %q", c.Report.Format))
	}
	return nil
}

// PipelineConfig converts the rules section into the engine's input,
// attaching the acknowledged fingerprints from the ignore list.
func (c Config) PipelineConfig(acknowledged map[string]struct{}) rules.PipelineConfig {
	return rules.PipelineConfig{
		SeverityOverrides: c.Rules.SeverityOverrides,
		MinSeverity:       c.Rules.MinSeverity,
		Types:             c.Rules.Types,
		Promote:           c.Rules.Promote,
		Enforce:           c.Rules.Enforce,
		Ignore:            c.Rules.Ignore,
		Acknowledged:      acknowledged,
		IncludeIgnored:    c.Rules.IncludeIgnored,
	}
}

// AggregateConfig converts the aggregation section into the aggregator's
// input, resolving strategy names in their configured order.
func (c Config) AggregateConfig() aggregate.Config {
	cfg := aggregate.Config{
		MinGroupSize: c.Aggregation.MinGroupSize,
		PathPatterns: c.Aggregation.PathPatterns,
	}
	if len(c.Aggregation.Strategies) > 0 {
		for _, name := range c.Aggregation.Strategies {
			// Validate() already rejected unknown names.
			if strat, ok := aggregate.BuiltinStrategy(name, c.Aggregation.PathPatterns); ok {
				cfg.Strategies = append(cfg.Strategies, strat)
			}
		}
	}
	return cfg
}
