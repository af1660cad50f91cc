package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/dsdrift/internal/aggregate"
	"github.com/felixgeelhaar/dsdrift/internal/health"
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// styles holds the lipgloss styles for the terminal renderer.
type styles struct {
	title    lipgloss.Style
	tier     map[health.Tier]lipgloss.Style
	severity map[signal.Severity]lipgloss.Style
	muted    lipgloss.Style
	summary  lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain,
			tier: map[health.Tier]lipgloss.Style{
				health.TierGreat: plain, health.TierGood: plain, health.TierOK: plain,
				health.TierBad: plain, health.TierTerrible: plain, health.TierNA: plain,
			},
			severity: map[signal.Severity]lipgloss.Style{
				signal.SeverityCritical: plain,
				signal.SeverityWarning:  plain,
				signal.SeverityInfo:     plain,
			},
			muted:   plain,
			summary: plain,
		}
	}

	return styles{
		title: lipgloss.NewStyle().Bold(true),
		tier: map[health.Tier]lipgloss.Style{
			health.TierGreat:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
			health.TierGood:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40")),
			health.TierOK:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			health.TierBad:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
			health.TierTerrible: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
			health.TierNA:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		},
		severity: map[signal.Severity]lipgloss.Style{
			signal.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			signal.SeverityWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			signal.SeverityInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		},
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		summary: lipgloss.NewStyle().Bold(true),
	}
}

func renderTerminal(r Report, opts *Options) error {
	w := opts.writer()
	noColor := opts != nil && opts.NoColor
	s := newStyles(noColor)

	var b strings.Builder

	b.WriteString(s.title.Render("Design System Health"))
	b.WriteString("  ")
	b.WriteString(s.tier[r.Health.Tier].Render(fmt.Sprintf("%s (%s)", scoreLabel(r.Health), r.Health.Tier)))
	b.WriteString("\n\n")

	for _, pillar := range []health.Pillar{
		r.Health.Pillars.ValueDiscipline,
		r.Health.Pillars.TokenHealth,
		r.Health.Pillars.Consistency,
		r.Health.Pillars.CriticalIssues,
	} {
		b.WriteString(fmt.Sprintf("  %-18s %2d/%d  %s\n",
			pillar.Name, pillar.Score, pillar.MaxScore, s.muted.Render(pillar.Description)))
	}
	b.WriteString("\n")

	agg := r.Aggregation
	b.WriteString(s.summary.Render(fmt.Sprintf(
		"%d signals → %d groups + %d individual (%.1fx reduction)",
		agg.TotalSignals, agg.TotalGroups, len(agg.Ungrouped), agg.ReductionRatio)))
	b.WriteString("\n\n")

	groups, hidden := limitGroups(agg.Groups, opts)
	for _, group := range groups {
		b.WriteString(renderGroup(group, s))
	}
	if hidden > 0 {
		b.WriteString(s.muted.Render(fmt.Sprintf("  … and %d more groups\n", hidden)))
	}

	if len(agg.Ungrouped) > 0 {
		b.WriteString(s.title.Render("Individual findings"))
		b.WriteString("\n")
		for _, sig := range agg.Ungrouped {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				s.severity[sig.Severity].Render(strings.ToUpper(string(sig.Severity))),
				sig.Message,
				s.muted.Render(sig.Source.Location)))
		}
		b.WriteString("\n")
	}

	if len(r.Health.Suggestions) > 0 {
		b.WriteString(s.title.Render("Suggestions"))
		b.WriteString("\n")
		for _, suggestion := range r.Health.Suggestions {
			b.WriteString("  • " + suggestion + "\n")
		}
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}

func renderGroup(group aggregate.DriftGroup, s styles) string {
	var b strings.Builder

	sev := group.Representative.Severity
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		s.severity[sev].Render("●"),
		s.summary.Render(group.Summary),
		s.muted.Render(fmt.Sprintf("[%s]", group.GroupingKey.Strategy))))

	counts := group.BySeverity
	parts := make([]string, 0, 3)
	if counts.Critical > 0 {
		parts = append(parts, fmt.Sprintf("%d critical", counts.Critical))
	}
	if counts.Warning > 0 {
		parts = append(parts, fmt.Sprintf("%d warning", counts.Warning))
	}
	if counts.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", counts.Info))
	}
	b.WriteString("  " + s.muted.Render(strings.Join(parts, ", ")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  e.g. %s %s\n\n",
		group.Representative.Message,
		s.muted.Render(group.Representative.Source.Location)))

	return b.String()
}
