package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/pairscan/internal/config"
	"github.com/Alias1177/pairscan/internal/logging"
)

var (
	cfgFile      string
	flagSymbol   string
	flagInterval string

	// cfg is loaded once per invocation by the root pre-run hook
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pairscan",
	Short: "Market anomaly analyzer for a single trading pair",
	Long: `Pairscan pulls candles, recent trades and an order book snapshot for one
trading pair and scans them for anomalies:

  - z-score outliers in volume change, price change and trade frequency
  - pump-and-dump candidates (sharp price rise on a volume spike)
  - strongly correlated candle fields
  - the bid versus ask quantity distribution

Configuration comes from defaults, an optional YAML/JSON file and
environment variables (a .env file is read when present).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, YAML or JSON (default $CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVarP(&flagSymbol, "symbol", "s", "", "trading pair, e.g. BTCUSDT")
	rootCmd.PersistentFlags().StringVarP(&flagInterval, "interval", "i", "", "candle interval, e.g. 1h")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// config and version work without a runtime configuration
	if cmd == versionCmd || cmd.Parent() == configCmd {
		return logging.Setup(logging.Options{Level: "info"})
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagSymbol != "" {
		loaded.Symbol = strings.ToUpper(flagSymbol)
	}
	if flagInterval != "" {
		loaded.Interval = flagInterval
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Setup(logging.Options{
		Level:  loaded.LogLevel,
		Format: loaded.LogFormat,
		File:   loaded.LogFile,
	}); err != nil {
		return err
	}

	cfg = loaded
	printConfig(cfg)
	return nil
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	log.Debug().
		Str("Symbol", cfg.Symbol).
		Str("Interval", cfg.Interval).
		Int("CandleLimit", cfg.CandleLimit).
		Int("TradeLimit", cfg.TradeLimit).
		Int("DepthLimit", cfg.DepthLimit).
		Float64("ZScoreThreshold", cfg.Analysis.ZScoreThreshold).
		Float64("PumpPriceThreshold", cfg.Analysis.PumpPriceThreshold).
		Float64("PumpVolumeThreshold", cfg.Analysis.PumpVolumeThreshold).
		Float64("CorrelationThreshold", cfg.Analysis.CorrelationThreshold).
		Int("HistogramBins", cfg.Analysis.HistogramBins).
		Bool("Telegram", cfg.TelegramEnabled()).
		Msg("Configuration loaded")
}
