// Package health converts aggregate drift metrics into a 0-100 design
// system health score across four weighted pillars, with explanatory
// suggestions. Scoring is pure and deterministic; the same metrics always
// produce the same result.
package health

import (
	"fmt"
	"math"
)

// Tier buckets the overall score for display.
type Tier string

const (
	TierGreat    Tier = "Great"
	TierGood     Tier = "Good"
	TierOK       Tier = "OK"
	TierBad      Tier = "Bad"
	TierTerrible Tier = "Terrible"
	TierNA       Tier = "N/A"
)

// Pillar maxima. The four pillars sum to 100.
const (
	MaxValueDiscipline = 60
	MaxTokenHealth     = 20
	MaxConsistency     = 10
	MaxCriticalIssues  = 10
)

// Pillar is one scored dimension of the overall health score.
type Pillar struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
	Description string `json:"description"`
}

// Pillars holds the four scored dimensions.
type Pillars struct {
	ValueDiscipline Pillar `json:"value_discipline"`
	TokenHealth     Pillar `json:"token_health"`
	Consistency     Pillar `json:"consistency"`
	CriticalIssues  Pillar `json:"critical_issues"`
}

// ScoreResult is the scored, tiered, suggestion-annotated outcome of one
// scoring call. Score is nil when there is no UI surface to evaluate.
type ScoreResult struct {
	Score       *int     `json:"score"`
	Tier        Tier     `json:"tier"`
	Pillars     Pillars  `json:"pillars"`
	Suggestions []string `json:"suggestions"`
	Metrics     Metrics  `json:"metrics"`
}

// Score converts a metrics snapshot into a health score. It never fails:
// zero components, tokens, and drift is a valid state that scores as N/A.
func Score(m Metrics) ScoreResult {
	totalDrift := m.TotalDriftCount
	if totalDrift == 0 {
		totalDrift = m.HardcodedValueCount
	}

	if m.ComponentCount == 0 && m.TokenCount == 0 && totalDrift == 0 {
		return ScoreResult{
			Score: nil,
			Tier:  TierNA,
			Pillars: Pillars{
				ValueDiscipline: Pillar{Name: "Value Discipline", MaxScore: MaxValueDiscipline, Description: "No components to evaluate"},
				TokenHealth:     Pillar{Name: "Token Health", MaxScore: MaxTokenHealth, Description: "No tokens to evaluate"},
				Consistency:     Pillar{Name: "Consistency", MaxScore: MaxConsistency, Description: "No components to evaluate"},
				CriticalIssues:  Pillar{Name: "Critical Issues", MaxScore: MaxCriticalIssues, Description: "No signals to evaluate"},
			},
			Suggestions: []string{"No UI surface detected: nothing to evaluate yet. Run a scan once components or tokens exist."},
			Metrics:     m,
		}
	}

	var suggestions []string

	valueScore, density := scoreValueDiscipline(m, totalDrift, &suggestions)
	tokenScore := scoreTokenHealth(m, density, totalDrift, &suggestions)
	consistencyScore := scoreConsistency(m, &suggestions)
	criticalScore := scoreCriticalIssues(m, &suggestions)

	if m.UniqueSpacingValues > 15 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Found %d unique spacing values; consolidate them into a spacing scale.",
			m.UniqueSpacingValues))
	}

	// Small codebases cannot trivially max out the consistency and
	// critical pillars: both are scaled by component volume.
	scale := math.Min(float64(m.ComponentCount)/3, 1)
	scaledConsistency := int(math.Round(float64(consistencyScore) * scale))
	scaledCritical := int(math.Round(float64(criticalScore) * scale))

	total := valueScore + tokenScore + scaledConsistency + scaledCritical
	total = applyDriftCeiling(total, totalDrift, m.ComponentCount)

	pillars := Pillars{
		ValueDiscipline: Pillar{
			Name:        "Value Discipline",
			Score:       valueScore,
			MaxScore:    MaxValueDiscipline,
			Description: "Hardcoded values and dead code per component",
		},
		TokenHealth: Pillar{
			Name:        "Token Health",
			Score:       tokenScore,
			MaxScore:    MaxTokenHealth,
			Description: "Token coverage, usage, and framework adoption",
		},
		Consistency: Pillar{
			Name:        "Consistency",
			Score:       scaledConsistency,
			MaxScore:    MaxConsistency,
			Description: "Naming and semantic alignment with the design system",
		},
		CriticalIssues: Pillar{
			Name:        "Critical Issues",
			Score:       scaledCritical,
			MaxScore:    MaxCriticalIssues,
			Description: "Critical, deprecated, and high-density findings",
		},
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, synthesizeSuggestion(total, pillars))
	}

	return ScoreResult{
		Score:       &total,
		Tier:        tierFor(total),
		Pillars:     pillars,
		Suggestions: suggestions,
		Metrics:     m,
	}
}

// scoreValueDiscipline computes pillar 1 (0-60) and returns the drift
// density it derived, which the token-health pillar reuses.
func scoreValueDiscipline(m Metrics, totalDrift int, suggestions *[]string) (int, float64) {
	components := math.Max(float64(m.ComponentCount), 1)

	userHardcoded := m.HardcodedValueCount - m.VendoredDriftCount
	if userHardcoded < 0 {
		userHardcoded = 0
	}

	hardcodedDensity := float64(userHardcoded) / components
	deadCodeDensity := float64(m.UnusedComponentCount+m.OrphanedComponentCount+m.RepeatedPatternCount) / components
	totalDriftDensity := float64(totalDrift) / components

	density := math.Max(hardcodedDensity+0.3*deadCodeDensity, 0.5*totalDriftDensity)
	score := int(math.Round(MaxValueDiscipline * clamp(1-density/2, 0, 1)))

	switch {
	case density > 1.0:
		*suggestions = append(*suggestions, severeDriftSuggestion(m))
	case density > 0.3:
		*suggestions = append(*suggestions, moderateDriftSuggestion(m))
	case density > 0:
		*suggestions = append(*suggestions, lowDriftSuggestion(m))
	}

	deadCode := m.UnusedComponentCount + m.OrphanedComponentCount
	if deadCode >= 5 {
		*suggestions = append(*suggestions, fmt.Sprintf(
			"%d components are unused or orphaned; remove them or wire them back into the system.",
			deadCode))
	}

	return score, density
}

func severeDriftSuggestion(m Metrics) string {
	msg := "Drift is severe: more than one issue per component on average. Prioritize tokenizing hardcoded values"
	if m.TopHardcodedColor != "" {
		msg += fmt.Sprintf(", starting with %s (your most repeated color)", m.TopHardcodedColor)
	}
	if m.WorstFile != "" {
		msg += fmt.Sprintf("; %s has the most findings", m.WorstFile)
	}
	return msg + "."
}

func moderateDriftSuggestion(m Metrics) string {
	msg := "Hardcoded values are accumulating; replace the most repeated literals with tokens"
	if m.TopHardcodedColor != "" {
		msg += fmt.Sprintf(" (start with %s)", m.TopHardcodedColor)
	} else if m.WorstFile != "" {
		msg += fmt.Sprintf(" (start with %s)", m.WorstFile)
	}
	return msg + "."
}

func lowDriftSuggestion(m Metrics) string {
	msg := "Drift is low; tokenize the remaining hardcoded values while the count is still small"
	if m.TopHardcodedColor != "" {
		msg += fmt.Sprintf(" (start with %s)", m.TopHardcodedColor)
	} else if m.WorstFile != "" {
		msg += fmt.Sprintf(" (start with %s)", m.WorstFile)
	}
	return msg + "."
}

// scoreTokenHealth computes pillar 2 (0-20) as the sum of four 0-5
// sub-scores, rounded once.
func scoreTokenHealth(m Metrics, density float64, totalDrift int, suggestions *[]string) int {
	var utility, library float64
	if m.HasUtilityFramework {
		utility = 3
		if m.TokenCount > 0 {
			utility += 2
		}
	}
	if m.HasDesignSystemLibrary {
		library = 3
		if m.TokenCount > 0 {
			library += 2
		}
	}

	coverage := 5 * clamp(float64(m.TokenCount)/20, 0, 1)

	var usage float64
	switch {
	case m.TokenCount > 0:
		used := float64(m.TokenCount - m.UnusedTokenCount)
		usage = 5 * clamp(used/float64(m.TokenCount), 0, 1)

		if m.UnusedTokenCount > 0 {
			unusedPct := float64(m.UnusedTokenCount) / float64(m.TokenCount)
			if unusedPct > 0.3 {
				*suggestions = append(*suggestions, fmt.Sprintf(
					"%.0f%% of your tokens are never used; adopt them in components or prune them.",
					unusedPct*100))
			}
		}
	case m.HasUtilityFramework || m.HasDesignSystemLibrary:
		// No explicit tokens, but a framework supplies an implicit scale.
		// Partial credit shrinks as value-discipline density grows.
		switch {
		case density < 0.1:
			usage = 5
		case density < 0.5:
			usage = 3
		default:
			usage = 1
		}
	case totalDrift > 0 && density < 0.1:
		// No tokens and no framework, but the little drift there is stays
		// disciplined: partial credit.
		usage = 3
	}

	return int(math.Round(utility + library + coverage + usage))
}

// scoreConsistency computes pillar 3 (0-10) from naming and semantic
// inconsistency per component.
func scoreConsistency(m Metrics, suggestions *[]string) int {
	components := math.Max(float64(m.ComponentCount), 1)
	inconsistencies := m.NamingInconsistencyCount + m.SemanticMismatchCount
	rate := float64(inconsistencies) / components

	if rate > 0.1 {
		*suggestions = append(*suggestions, fmt.Sprintf(
			"%d naming or semantic inconsistencies found; align names with your canonical token set.",
			inconsistencies))
	}

	return int(math.Round(MaxConsistency * clamp(1-rate/0.25, 0, 1)))
}

// scoreCriticalIssues computes pillar 4 (0-10). Deprecated patterns count
// at half weight and high-density files at a third.
func scoreCriticalIssues(m Metrics, suggestions *[]string) int {
	effective := m.CriticalCount +
		int(math.Ceil(float64(m.DeprecatedPatternCount)/2)) +
		m.HighDensityFileCount/3

	if m.CriticalCount > 0 {
		*suggestions = append(*suggestions, fmt.Sprintf(
			"%d critical findings need attention before anything else.", m.CriticalCount))
	} else if m.DeprecatedPatternCount > 0 {
		*suggestions = append(*suggestions, fmt.Sprintf(
			"%d deprecated patterns remain; migrate them before they spread.", m.DeprecatedPatternCount))
	}

	score := MaxCriticalIssues - 3*effective
	if score < 0 {
		score = 0
	}
	return score
}

// applyDriftCeiling caps the total so large, noisy codebases cannot reach
// a "Great" score through component-count dilution alone.
func applyDriftCeiling(total, totalDrift, componentCount int) int {
	if totalDrift <= 0 || componentCount <= 0 {
		return total
	}
	driftPerComponent := float64(totalDrift) / float64(componentCount)

	var ceiling int
	switch {
	case totalDrift > 200:
		ceiling = 69
	case totalDrift > 100:
		ceiling = int(math.Round(74 + (1-clamp(driftPerComponent, 0, 1))*10))
	case totalDrift > 50 && driftPerComponent > 0.3:
		ceiling = 89
	default:
		return total
	}

	if total > ceiling {
		return ceiling
	}
	return total
}

func tierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierGreat
	case score >= 60:
		return TierGood
	case score >= 40:
		return TierOK
	case score >= 20:
		return TierBad
	default:
		return TierTerrible
	}
}

// synthesizeSuggestion guarantees at least one suggestion on every scored
// result. Perfect scores get congratulated; everything else points at the
// weakest pillar.
func synthesizeSuggestion(total int, pillars Pillars) string {
	if total >= 100 {
		return "Perfect score: your codebase is fully aligned with its design system. Keep it that way."
	}

	weakest := weakestPillar(pillars)
	if total >= 90 {
		return fmt.Sprintf("To reach 100, improve %s (%d/%d).",
			weakest.Name, weakest.Score, weakest.MaxScore)
	}
	return fmt.Sprintf("Your weakest area is %s (%d/%d).",
		weakest.Name, weakest.Score, weakest.MaxScore)
}

// weakestPillar picks the pillar with the lowest percentage of its
// maximum. Ties resolve in declaration order, value discipline first.
func weakestPillar(p Pillars) Pillar {
	all := []Pillar{p.ValueDiscipline, p.TokenHealth, p.Consistency, p.CriticalIssues}
	weakest := all[0]
	weakestPct := pct(all[0])
	for _, pillar := range all[1:] {
		if v := pct(pillar); v < weakestPct {
			weakest = pillar
			weakestPct = v
		}
	}
	return weakest
}

func pct(p Pillar) float64 {
	if p.MaxScore == 0 {
		return 1
	}
	return float64(p.Score) / float64(p.MaxScore)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
