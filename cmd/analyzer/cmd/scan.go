package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/pairscan/internal/snapshot"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch live market data and scan it for anomalies",
	Long: `Fetch candles, recent trades and the order book for the configured pair,
run the full analysis and report the results.

Examples:
  pairscan scan
  pairscan scan -s ETHUSDT -i 15m --save-snapshot
  pairscan scan --json --no-export > report.json`,
	RunE: runScan,
}

var (
	scanOpts         outputOptions
	scanSaveSnapshot bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	addOutputFlags(scanCmd, &scanOpts)
	scanCmd.Flags().BoolVar(&scanSaveSnapshot, "save-snapshot", false, "also save the raw snapshot to the output directory")
}

func addOutputFlags(cmd *cobra.Command, opts *outputOptions) {
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the full JSON report instead of the summary")
	cmd.Flags().BoolVar(&opts.noExport, "no-export", false, "do not write report files")
	cmd.Flags().BoolVar(&opts.noNotify, "no-notify", false, "do not send a Telegram alert")
}

func runScan(cmd *cobra.Command, args []string) error {
	snap, err := fetchSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	if scanSaveSnapshot {
		path := filepath.Join(cfg.OutputDir, snapshot.FileName(snap))
		if err := snapshot.Save(path, snap); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Snapshot saved")
	}

	_, err = analyzeAndEmit(snap, scanOpts)
	return err
}
