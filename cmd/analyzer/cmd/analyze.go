package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/pairscan/internal/snapshot"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a saved snapshot offline",
	Long: `Run the full analysis on a snapshot written by 'pairscan fetch' or
'pairscan scan --save-snapshot'. The symbol and interval recorded in the
snapshot take precedence over the configuration.

Example:
  pairscan analyze --input output/btcusdt_1h_20250301T120000Z.json`,
	RunE: runAnalyze,
}

var (
	analyzeInput string
	analyzeOpts  outputOptions
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "f", "", "snapshot file (required)")
	analyzeCmd.MarkFlagRequired("input")
	addOutputFlags(analyzeCmd, &analyzeOpts)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	snap, err := snapshot.Load(analyzeInput)
	if err != nil {
		return err
	}
	if snap.Symbol == "" {
		snap.Symbol = cfg.Symbol
	}
	if snap.Interval == "" {
		snap.Interval = cfg.Interval
	}

	log.Info().Str("input", analyzeInput).Str("symbol", snap.Symbol).Msg("Analyzing snapshot")
	if _, err := analyzeAndEmit(snap, analyzeOpts); err != nil {
		return fmt.Errorf("analyze %s: %w", analyzeInput, err)
	}
	return nil
}
