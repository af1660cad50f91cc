package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dsdrift/internal/config"
	"github.com/felixgeelhaar/dsdrift/internal/ignorelist"
	"github.com/felixgeelhaar/dsdrift/internal/rules"
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

var (
	ackSignalsPath string
	ackIgnorePath  string
)

var acknowledgeCmd = &cobra.Command{
	Use:     "acknowledge",
	Aliases: []string{"ack"},
	Short:   "Acknowledge the current signals so future audits skip them",
	Long: `Add the current post-filter signals to the ignore list. Acknowledged
signals are filtered out of future audits unless --include-ignored asks
for them back. The list stores content fingerprints, so a signal stays
acknowledged until its message, location, or value changes.`,
	RunE: runAcknowledge,
}

func runAcknowledge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	scan, err := signal.LoadScanResult(ackSignalsPath)
	if err != nil {
		return err
	}

	list, err := ignorelist.Load(ackIgnorePath)
	if err != nil {
		return err
	}

	// Acknowledge what the user actually sees: the post-rule signal set,
	// with already-acknowledged ones excluded from re-acknowledgement.
	engine := rules.NewEngine(nil)
	filtered := engine.Run(scan.Signals, cfg.PipelineConfig(list.Fingerprints()))

	added := list.Acknowledge(filtered, time.Now().UTC())
	if err := list.Save(ackIgnorePath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Acknowledged %d signals (%d total on the ignore list)\n",
		added, len(list.Entries))
	return nil
}

func init() {
	acknowledgeCmd.Flags().StringVar(&ackSignalsPath, "signals", "", "scanner output file (JSON)")
	acknowledgeCmd.Flags().StringVar(&ackIgnorePath, "ignore-file", "", "ignore list path (default .dsdrift/ignore.json)")
	_ = acknowledgeCmd.MarkFlagRequired("signals")

	rootCmd.AddCommand(acknowledgeCmd)
}
