package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dsdrift/internal/log"
)

var (
	cfgFile   string
	noColor   bool
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "dsdrift",
	Short: "Design system drift auditor",
	Long: `dsdrift audits a codebase for divergence from its design system.
It takes the drift signals produced by a scanner, filters them through
configurable ignore/promote/enforce rules, collapses near-duplicates into
actionable groups, and scores overall design system health on a 0-100 scale.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config := log.DefaultConfig()
		config.Level = log.ParseLevel(logLevel)
		config.Format = log.ParseFormat(logFormat)
		log.SetDefaultLogger(log.New(config))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .dsdrift.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}
