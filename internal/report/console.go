package report

import (
	"fmt"
	"io"
	"time"

	"github.com/Alias1177/pairscan/internal/model"
)

// PrintSummary outputs a human readable digest of the run
func PrintSummary(w io.Writer, r *model.Report) {
	fmt.Fprintf(w, "\n===== MARKET ANOMALY SCAN: %s %s =====\n", r.Symbol, r.Interval)
	fmt.Fprintf(w, "Run: %s | Generated: %s\n", r.RunID, r.GeneratedAt.Format(time.RFC3339))

	// Cleaning
	fmt.Fprintf(w, "\nInput Cleaning:\n")
	printClean(w, "Candles", r.Cleaning.Candles)
	printClean(w, "Trades", r.Cleaning.Trades)
	printClean(w, "Depth", r.Cleaning.Depth)

	// Latest candle
	if n := len(r.Candles); n > 0 {
		latest := r.Candles[n-1]
		fmt.Fprintf(w, "\nLatest Candle: %s (O: %s, H: %s, L: %s, C: %s, V: %s)\n",
			latest.OpenTime.Format(time.RFC3339), f(latest.Open), f(latest.High), f(latest.Low), f(latest.Close), f(latest.Volume))
		if n <= r.Series.Len() {
			fmt.Fprintf(w, "Price Change: %s | Volume Change: %s\n",
				pct(r.Series.PriceChange[n-1]), pct(r.Series.VolumeChange[n-1]))
		}
	}

	// Outliers
	fmt.Fprintf(w, "\nOutliers (|z| > %.2f): %d\n", r.Config.ZScoreThreshold, len(r.Outliers))
	for _, o := range r.Outliers {
		fmt.Fprintf(w, "- %s #%d %s: value %s, z %.2f\n",
			o.Metric, o.Index, o.Timestamp.Format(time.RFC3339), f(o.Value), o.ZScore)
	}

	// Pump and dump
	fmt.Fprintf(w, "\nPump-and-Dump Flags (price > %s, volume > %s): %d\n",
		pct(model.Some(r.Config.PumpPriceThreshold)), pct(model.Some(r.Config.PumpVolumeThreshold)), len(r.PumpDumps))
	for _, e := range r.PumpDumps {
		fmt.Fprintf(w, "- #%d %s: price %s, volume %s\n",
			e.Index, e.Timestamp.Format(time.RFC3339), pct(model.Some(e.PriceChange)), pct(model.Some(e.VolumeChange)))
	}

	// Correlation
	fmt.Fprintf(w, "\nStrong Correlations (|r| > %.2f): %d\n", r.Config.CorrelationThreshold, len(r.StrongCorrelations))
	for _, p := range r.StrongCorrelations {
		fmt.Fprintf(w, "- %s ~ %s: %.3f\n", p.A, p.B, p.Coefficient)
	}
	if r.VolumePriceCorrelation.Valid {
		fmt.Fprintf(w, "Volume vs Price Change: %.3f\n", r.VolumePriceCorrelation.Value)
	} else {
		fmt.Fprintf(w, "Volume vs Price Change: n/a\n")
	}

	// Depth
	fmt.Fprintf(w, "\nOrder Book:\n")
	fmt.Fprintf(w, "Bids: %d levels, total %s, mean %s, max %s\n",
		r.Depth.Bids.Levels, f(r.Depth.Bids.Total), f(r.Depth.Bids.Mean), f(r.Depth.Bids.Max))
	fmt.Fprintf(w, "Asks: %d levels, total %s, mean %s, max %s\n",
		r.Depth.Asks.Levels, f(r.Depth.Asks.Total), f(r.Depth.Asks.Mean), f(r.Depth.Asks.Max))
	fmt.Fprintln(w)
}

func printClean(w io.Writer, name string, c model.CleanReport) {
	fmt.Fprintf(w, "%s: %d kept of %d (nulls: %d, duplicates: %d, malformed: %d)\n",
		name, c.Kept, c.Total, c.Nulls, c.Duplicates, len(c.Malformed))
}

func pct(x model.NullFloat) string {
	if !x.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", x.Value*100)
}
