package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/pairscan/internal/analyze"
	"github.com/Alias1177/pairscan/internal/api/binance"
	"github.com/Alias1177/pairscan/internal/model"
	"github.com/Alias1177/pairscan/internal/notify"
	"github.com/Alias1177/pairscan/internal/report"
)

// outputOptions controls what happens with a finished report
type outputOptions struct {
	quiet    bool
	noExport bool
	noNotify bool
	jsonOut  bool
}

func fetchSnapshot(ctx context.Context) (model.RawSnapshot, error) {
	client := binance.NewClient(binance.ClientOptions{
		BaseURL:        cfg.BinanceBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})

	log.Info().Str("symbol", cfg.Symbol).Str("interval", cfg.Interval).Msg("Fetching latest market data...")
	return client.FetchSnapshot(ctx, binance.SnapshotRequest{
		Symbol:      cfg.Symbol,
		Interval:    cfg.Interval,
		CandleLimit: cfg.CandleLimit,
		TradeLimit:  cfg.TradeLimit,
		DepthLimit:  cfg.DepthLimit,
	})
}

// analyzeAndEmit runs the pipeline and delivers the report to the console,
// the output directory and Telegram as configured
func analyzeAndEmit(snap model.RawSnapshot, opts outputOptions) (*model.Report, error) {
	r := analyze.Run(cfg.Analysis, snap)

	switch {
	case opts.jsonOut:
		if err := report.WriteJSON(os.Stdout, r); err != nil {
			return r, fmt.Errorf("write report: %w", err)
		}
	case !opts.quiet:
		report.PrintSummary(os.Stdout, r)
	}

	if !opts.noExport {
		if _, err := report.Export(cfg.OutputDir, r); err != nil {
			return r, fmt.Errorf("export report: %w", err)
		}
	}

	if !opts.noNotify && cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			// An alert failure must not lose the analysis
			log.Error().Err(err).Msg("Telegram unavailable")
			return r, nil
		}
		if _, err := tg.Notify(r); err != nil {
			log.Error().Err(err).Msg("Alert delivery failed")
		}
	}

	return r, nil
}
