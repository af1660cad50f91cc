package health

import (
	"regexp"
	"sort"

	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// Suggestion context enrichment: simple text extraction from signals that
// makes the scorer's suggestions concrete (which color, which file). None
// of this affects the numeric score.

var (
	hexColorRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})\b`)
	spacingRe  = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:px|rem|em)\b`)
)

// Enrich fills the optional context fields of a Metrics snapshot from the
// signal set: the most repeated hardcoded color, the file carrying the
// most signals, and the number of distinct spacing literals.
func Enrich(m Metrics, signals []signal.DriftSignal) Metrics {
	m.TopHardcodedColor = topHardcodedColor(signals)
	m.WorstFile = worstFile(signals)
	m.UniqueSpacingValues = uniqueSpacingValues(signals)
	return m
}

// topHardcodedColor returns the most frequent hex literal among
// hardcoded-value signals. Ties resolve lexicographically for determinism.
func topHardcodedColor(signals []signal.DriftSignal) string {
	counts := make(map[string]int)
	for _, sig := range signals {
		if sig.Type != signal.TypeHardcodedValue {
			continue
		}
		text := sig.Actual()
		if text == "" {
			text = sig.Message
		}
		for _, color := range hexColorRe.FindAllString(text, -1) {
			counts[color]++
		}
	}

	best := ""
	bestCount := 0
	for color, count := range counts {
		if count > bestCount || (count == bestCount && color < best) {
			best = color
			bestCount = count
		}
	}
	return best
}

// worstFile returns the file path with the most signals, or "" for an
// empty set. Ties resolve lexicographically.
func worstFile(signals []signal.DriftSignal) string {
	counts := make(map[string]int)
	for _, sig := range signals {
		counts[sig.Source.Path()]++
	}

	paths := make([]string, 0, len(counts))
	for path := range counts {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	best := ""
	bestCount := 0
	for _, path := range paths {
		if counts[path] > bestCount {
			best = path
			bestCount = counts[path]
		}
	}
	return best
}

// uniqueSpacingValues counts distinct px/rem/em literals across all
// signal values and messages.
func uniqueSpacingValues(signals []signal.DriftSignal) int {
	seen := make(map[string]struct{})
	for _, sig := range signals {
		text := sig.Actual()
		if text == "" {
			text = sig.Message
		}
		for _, v := range spacingRe.FindAllString(text, -1) {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
