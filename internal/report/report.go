// Package report renders aggregation and health results for humans and
// machines. The data structures are serialized verbatim for JSON; the
// terminal and markdown renderers are presentation only.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/dsdrift/internal/aggregate"
	"github.com/felixgeelhaar/dsdrift/internal/health"
)

// Report pairs the two pipeline outputs for rendering and serialization.
type Report struct {
	Aggregation aggregate.Result   `json:"aggregation"`
	Health      health.ScoreResult `json:"health"`
}

// Options configures rendering.
type Options struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer

	// NoColor strips styling from terminal output.
	NoColor bool

	// MaxGroups limits how many groups the terminal and markdown
	// renderers print. Zero prints all.
	MaxGroups int
}

func (o *Options) writer() io.Writer {
	if o == nil || o.Writer == nil {
		return os.Stdout
	}
	return o.Writer
}

// Render writes the report in the requested format: "terminal" (default),
// "markdown", or "json".
func Render(format string, r Report, opts *Options) error {
	switch format {
	case "", "terminal":
		return renderTerminal(r, opts)
	case "markdown":
		return renderMarkdown(r, opts)
	case "json":
		encoder := json.NewEncoder(opts.writer())
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	default:
		return fmt.Errorf("unknown report format: %s (supported: terminal, markdown, json)", format)
	}
}

// limitGroups applies the MaxGroups option.
func limitGroups(groups []aggregate.DriftGroup, opts *Options) ([]aggregate.DriftGroup, int) {
	max := 0
	if opts != nil {
		max = opts.MaxGroups
	}
	if max <= 0 || len(groups) <= max {
		return groups, 0
	}
	return groups[:max], len(groups) - max
}

// scoreLabel renders "N/A" or the numeric score.
func scoreLabel(h health.ScoreResult) string {
	if h.Score == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d/100", *h.Score)
}
