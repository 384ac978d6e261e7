package analyze

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/pairscan/internal/analysis/clean"
	"github.com/Alias1177/pairscan/internal/analysis/correlation"
	"github.com/Alias1177/pairscan/internal/analysis/depth"
	"github.com/Alias1177/pairscan/internal/analysis/feature"
	"github.com/Alias1177/pairscan/internal/analysis/outlier"
	"github.com/Alias1177/pairscan/internal/analysis/pumpdump"
	"github.com/Alias1177/pairscan/internal/id"
	"github.com/Alias1177/pairscan/internal/model"
)

// Run executes the full analysis over one raw snapshot. Stages run in
// dependency order and each one works on fresh values; empty or degenerate
// input yields empty or undefined results, never an abort.
func Run(cfg model.AnalysisConfig, snap model.RawSnapshot) *model.Report {
	runID := id.New()
	logger := log.With().Str("component", "analyzer").Str("run_id", runID).Logger()

	report := &model.Report{
		RunID:       runID,
		Symbol:      snap.Symbol,
		Interval:    snap.Interval,
		GeneratedAt: time.Now().UTC(),
		Config:      cfg,
	}

	// 1. Clean all inputs
	candles := clean.RawCandles(snap.Candles)
	trades := clean.RawTrades(snap.Trades)
	book, depthReport := clean.ParseDepth(snap.Depth)

	report.Candles = candles.Rows
	report.Trades = trades.Rows
	report.Cleaning = model.CleaningSummary{
		Candles: candles.Report,
		Trades:  trades.Report,
		Depth:   depthReport,
	}
	logCleaning(logger, "candles", candles.Report)
	logCleaning(logger, "trades", trades.Report)
	logCleaning(logger, "depth", depthReport)

	// 2. Derive change series
	report.Series = feature.Derive(candles.Rows)
	report.TradeFrequency = feature.TradeFrequency(trades.Rows)

	// 3. Outliers
	report.Outliers = append(report.Outliers,
		outlier.Detect(model.MetricVolumeChange, report.Series.Timestamps, report.Series.VolumeChange, cfg.ZScoreThreshold)...)
	report.Outliers = append(report.Outliers,
		outlier.Detect(model.MetricPriceChange, report.Series.Timestamps, report.Series.PriceChange, cfg.ZScoreThreshold)...)
	freqTimes, freqSeries := feature.BucketSeries(report.TradeFrequency.Buckets)
	report.Outliers = append(report.Outliers,
		outlier.Detect(model.MetricTradeFrequency, freqTimes, freqSeries, cfg.ZScoreThreshold)...)

	// 4. Correlation
	corr := correlation.Analyze(correlation.CandleTable(candles.Rows, report.Series), cfg.CorrelationThreshold)
	report.Correlation = corr.Matrix
	report.StrongCorrelations = corr.Strong
	report.VolumePriceCorrelation = correlation.Pearson(report.Series.VolumeChange, report.Series.PriceChange)

	// 5. Pump and dump
	report.PumpDumps, report.PumpDumpFlags = pumpdump.Detect(report.Series, pumpdump.FromConfig(cfg))

	// 6. Order book
	report.Depth = depth.Analyze(book, cfg.HistogramBins)

	logger.Info().
		Int("candles", len(report.Candles)).
		Int("trades", len(report.Trades)).
		Int("outliers", len(report.Outliers)).
		Int("strong_correlations", len(report.StrongCorrelations)).
		Int("pump_dumps", len(report.PumpDumps)).
		Msg("Analysis completed")

	return report
}

func logCleaning(logger zerolog.Logger, input string, r model.CleanReport) {
	if r.Removed() == 0 {
		logger.Debug().Str("input", input).Int("rows", r.Total).Msg("Input clean")
		return
	}

	logger.Warn().
		Str("input", input).
		Int("total", r.Total).
		Int("kept", r.Kept).
		Int("nulls", r.Nulls).
		Int("duplicates", r.Duplicates).
		Int("malformed", len(r.Malformed)).
		Msg("Rows removed during cleaning")

	for _, m := range r.Malformed {
		logger.Debug().Err(m).Str("input", input).Msg("Malformed record")
	}
}
