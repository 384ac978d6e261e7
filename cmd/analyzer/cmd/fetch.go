package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alias1177/pairscan/internal/snapshot"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Save a raw market snapshot without analyzing it",
	Long: `Download candles, trades and depth exactly as the exchange returned them
and write them to a JSON file for later offline analysis.

Example:
  pairscan fetch -s BTCUSDT -o btc.json
  pairscan analyze --input btc.json`,
	RunE: runFetch,
}

var fetchOutput string

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "snapshot file (default <output_dir>/<symbol>_<interval>_<time>.json)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	snap, err := fetchSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	path := fetchOutput
	if path == "" {
		path = filepath.Join(cfg.OutputDir, snapshot.FileName(snap))
	}
	if err := snapshot.Save(path, snap); err != nil {
		return err
	}

	fmt.Printf("✓ Snapshot saved: %s\n", path)
	fmt.Printf("  Candles: %d | Trades: %d | Bids: %d | Asks: %d\n",
		len(snap.Candles), len(snap.Trades), len(snap.Depth.Bids), len(snap.Depth.Asks))
	return nil
}
