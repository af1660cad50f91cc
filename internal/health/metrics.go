package health

import (
	"strings"

	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// HighDensityFileThreshold is the per-file signal count above which a file
// counts toward the critical-issues pillar's high-density penalty.
const HighDensityFileThreshold = 10

// Metrics is an immutable snapshot of counts and flags derived from a
// completed scan, diff, and aggregation run.
type Metrics struct {
	ComponentCount int `json:"component_count"`
	TokenCount     int `json:"token_count"`

	// TotalDriftCount is the post-filter signal total. When zero, scoring
	// falls back to HardcodedValueCount as the drift volume.
	TotalDriftCount int `json:"total_drift_count"`

	HardcodedValueCount      int `json:"hardcoded_value_count"`
	VendoredDriftCount       int `json:"vendored_drift_count"`
	UnusedTokenCount         int `json:"unused_token_count"`
	UnusedComponentCount     int `json:"unused_component_count"`
	OrphanedComponentCount   int `json:"orphaned_component_count"`
	RepeatedPatternCount     int `json:"repeated_pattern_count"`
	NamingInconsistencyCount int `json:"naming_inconsistency_count"`
	SemanticMismatchCount    int `json:"semantic_mismatch_count"`
	DeprecatedPatternCount   int `json:"deprecated_pattern_count"`
	CriticalCount            int `json:"critical_count"`
	HighDensityFileCount     int `json:"high_density_file_count"`

	HasUtilityFramework    bool `json:"has_utility_framework"`
	HasDesignSystemLibrary bool `json:"has_design_system_library"`

	// Optional context for richer suggestions, derived from signal text.
	TopHardcodedColor   string   `json:"top_hardcoded_color,omitempty"`
	WorstFile           string   `json:"worst_file,omitempty"`
	UniqueSpacingValues int      `json:"unique_spacing_values,omitempty"`
	DetectedFrameworks  []string `json:"detected_frameworks,omitempty"`
}

// FrameworkInfo carries framework-detection results into the metrics.
type FrameworkInfo struct {
	HasUtilityFramework    bool
	HasDesignSystemLibrary bool
	Names                  []string
}

// vendoredPrefixes marks directories whose drift is not the user's code.
var vendoredPrefixes = []string{
	"node_modules/", "vendor/", "dist/", "build/", ".next/", "coverage/",
}

// CollectMetrics builds a Metrics snapshot from post-filter signals plus
// entity counts and framework detection supplied by the caller.
func CollectMetrics(signals []signal.DriftSignal, componentCount, tokenCount int, frameworks FrameworkInfo) Metrics {
	m := Metrics{
		ComponentCount:         componentCount,
		TokenCount:             tokenCount,
		TotalDriftCount:        len(signals),
		HasUtilityFramework:    frameworks.HasUtilityFramework,
		HasDesignSystemLibrary: frameworks.HasDesignSystemLibrary,
		DetectedFrameworks:     frameworks.Names,
	}

	perFile := make(map[string]int)
	for _, sig := range signals {
		switch sig.Type {
		case signal.TypeHardcodedValue:
			m.HardcodedValueCount++
		case signal.TypeUnusedToken:
			m.UnusedTokenCount++
		case signal.TypeUnusedComponent:
			m.UnusedComponentCount++
		case signal.TypeOrphanedComponent:
			m.OrphanedComponentCount++
		case signal.TypeRepeatedPattern:
			m.RepeatedPatternCount++
		case signal.TypeNamingInconsistency:
			m.NamingInconsistencyCount++
		case signal.TypeSemanticMismatch:
			m.SemanticMismatchCount++
		case signal.TypeDeprecatedPattern:
			m.DeprecatedPatternCount++
		}

		if sig.Severity == signal.SeverityCritical {
			m.CriticalCount++
		}

		path := sig.Source.Path()
		perFile[path]++
		if isVendored(path) {
			m.VendoredDriftCount++
		}
	}

	for _, count := range perFile {
		if count > HighDensityFileThreshold {
			m.HighDensityFileCount++
		}
	}

	return m
}

func isVendored(path string) bool {
	for _, prefix := range vendoredPrefixes {
		if strings.HasPrefix(path, prefix) || strings.Contains(path, "/"+prefix) {
			return true
		}
	}
	return false
}
