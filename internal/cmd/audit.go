package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dsdrift/internal/aggregate"
	"github.com/felixgeelhaar/dsdrift/internal/config"
	"github.com/felixgeelhaar/dsdrift/internal/detect"
	"github.com/felixgeelhaar/dsdrift/internal/exitcode"
	"github.com/felixgeelhaar/dsdrift/internal/health"
	"github.com/felixgeelhaar/dsdrift/internal/ignorelist"
	"github.com/felixgeelhaar/dsdrift/internal/report"
	"github.com/felixgeelhaar/dsdrift/internal/rules"
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

var (
	auditSignalsPath   string
	auditProjectRoot   string
	auditFormat        string
	auditIgnorePath    string
	auditIncludeIgnore bool
	auditFailOnCrit    bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Filter, group, and score scanner-produced drift signals",
	Long: `Run the full audit pipeline over a scanner's drift signals:

  1. Apply severity overrides and ignore/promote/enforce rules
  2. Group near-duplicate signals into actionable clusters
  3. Score design system health across four pillars

The signals file is either a JSON array of drift signals or an envelope
object carrying component/token counts alongside the signals.

Exit codes:
  0 - Audit completed
  4 - Audit completed and critical signals remain (with --fail-on-critical)`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if auditFormat != "" {
		cfg.Report.Format = auditFormat
	}
	if auditIncludeIgnore {
		cfg.Rules.IncludeIgnored = true
	}

	scan, err := signal.LoadScanResult(auditSignalsPath)
	if err != nil {
		return err
	}

	ignored, err := ignorelist.Load(auditIgnorePath)
	if err != nil {
		return err
	}

	engine := rules.NewEngine(nil)
	filtered := engine.Run(scan.Signals, cfg.PipelineConfig(ignored.Fingerprints()))

	result := aggregate.Aggregate(filtered, cfg.AggregateConfig())

	detection := detect.Detect(auditProjectRoot)
	metrics := health.CollectMetrics(filtered, scan.ComponentCount, scan.TokenCount, health.FrameworkInfo{
		HasUtilityFramework:    detection.HasUtilityFramework,
		HasDesignSystemLibrary: detection.HasDesignSystemLibrary,
		Names:                  detection.Frameworks,
	})
	metrics = health.Enrich(metrics, filtered)
	score := health.Score(metrics)

	err = report.Render(cfg.Report.Format, report.Report{
		Aggregation: result,
		Health:      score,
	}, &report.Options{
		Writer:    cmd.OutOrStdout(),
		NoColor:   noColor,
		MaxGroups: cfg.Report.MaxGroups,
	})
	if err != nil {
		return err
	}

	if auditFailOnCrit && metrics.CriticalCount > 0 {
		// Render first, then signal the failure through the exit code.
		fmt.Fprintf(cmd.ErrOrStderr(), "%d critical signals remain\n", metrics.CriticalCount)
		exitcode.Exit(exitcode.CriticalDrift)
	}
	return nil
}

func init() {
	auditCmd.Flags().StringVar(&auditSignalsPath, "signals", "", "scanner output file (JSON)")
	auditCmd.Flags().StringVar(&auditProjectRoot, "project", ".", "project root for framework detection")
	auditCmd.Flags().StringVar(&auditFormat, "format", "", "report format: terminal, markdown, json")
	auditCmd.Flags().StringVar(&auditIgnorePath, "ignore-file", "", "ignore list path (default .dsdrift/ignore.json)")
	auditCmd.Flags().BoolVar(&auditIncludeIgnore, "include-ignored", false, "include previously acknowledged signals")
	auditCmd.Flags().BoolVar(&auditFailOnCrit, "fail-on-critical", false, "exit non-zero when critical signals remain")
	_ = auditCmd.MarkFlagRequired("signals")

	rootCmd.AddCommand(auditCmd)
}
