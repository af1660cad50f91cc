package report

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/dsdrift/internal/health"
)

func renderMarkdown(r Report, opts *Options) error {
	var b strings.Builder

	b.WriteString("# Design System Health Report\n\n")
	b.WriteString(fmt.Sprintf("**Score: %s (%s)**\n\n", scoreLabel(r.Health), r.Health.Tier))

	b.WriteString("| Pillar | Score | Max |\n")
	b.WriteString("|---|---|---|\n")
	for _, pillar := range []health.Pillar{
		r.Health.Pillars.ValueDiscipline,
		r.Health.Pillars.TokenHealth,
		r.Health.Pillars.Consistency,
		r.Health.Pillars.CriticalIssues,
	} {
		b.WriteString(fmt.Sprintf("| %s | %d | %d |\n", pillar.Name, pillar.Score, pillar.MaxScore))
	}
	b.WriteString("\n")

	agg := r.Aggregation
	b.WriteString(fmt.Sprintf("%d signals reduced to %d groups and %d individual findings (%.1fx).\n\n",
		agg.TotalSignals, agg.TotalGroups, len(agg.Ungrouped), agg.ReductionRatio))

	groups, hidden := limitGroups(agg.Groups, opts)
	if len(groups) > 0 {
		b.WriteString("## Groups\n\n")
		for _, group := range groups {
			b.WriteString(fmt.Sprintf("### %s\n\n", group.Summary))
			b.WriteString(fmt.Sprintf("Strategy `%s`, key `%s`: %d critical, %d warning, %d info.\n\n",
				group.GroupingKey.Strategy, group.GroupingKey.Value,
				group.BySeverity.Critical, group.BySeverity.Warning, group.BySeverity.Info))
			for _, sig := range group.Signals {
				b.WriteString(fmt.Sprintf("- `%s` %s (%s)\n", sig.Source.Location, sig.Message, sig.Severity))
			}
			b.WriteString("\n")
		}
		if hidden > 0 {
			b.WriteString(fmt.Sprintf("_…and %d more groups._\n\n", hidden))
		}
	}

	if len(agg.Ungrouped) > 0 {
		b.WriteString("## Individual findings\n\n")
		for _, sig := range agg.Ungrouped {
			b.WriteString(fmt.Sprintf("- `%s` %s (%s)\n", sig.Source.Location, sig.Message, sig.Severity))
		}
		b.WriteString("\n")
	}

	if len(r.Health.Suggestions) > 0 {
		b.WriteString("## Suggestions\n\n")
		for _, suggestion := range r.Health.Suggestions {
			b.WriteString("- " + suggestion + "\n")
		}
	}

	_, err := fmt.Fprint(opts.writer(), b.String())
	return err
}
