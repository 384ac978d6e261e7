package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Alias1177/pairscan/internal/model"
)

// Binance caps per request
const (
	maxCandleLimit = 1000
	maxTradeLimit  = 1000
	maxDepthLimit  = 5000
)

var validIntervals = map[string]bool{
	"1s": true, "1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true, "1M": true,
}

// Config holds all application configuration
type Config struct {
	Symbol      string `json:"symbol" yaml:"symbol"`
	Interval    string `json:"interval" yaml:"interval"`
	CandleLimit int    `json:"candle_limit" yaml:"candle_limit"`
	TradeLimit  int    `json:"trade_limit" yaml:"trade_limit"`
	DepthLimit  int    `json:"depth_limit" yaml:"depth_limit"`

	Analysis model.AnalysisConfig `json:"analysis" yaml:"analysis"`

	BinanceBaseURL string `json:"binance_base_url" yaml:"binance_base_url"`
	RequestTimeout int    `json:"request_timeout" yaml:"request_timeout"` // seconds
	RequestsPerSec int    `json:"requests_per_sec" yaml:"requests_per_sec"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"` // console or json
	LogFile   string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	TelegramBotToken string `json:"-" yaml:"-"`
	TelegramChatID   int64  `json:"telegram_chat_id,omitempty" yaml:"telegram_chat_id,omitempty"`
}

// Default returns a configuration with the stock settings
func Default() *Config {
	return &Config{
		Symbol:         "BTCUSDT",
		Interval:       "1h",
		CandleLimit:    500,
		TradeLimit:     500,
		DepthLimit:     100,
		Analysis:       model.DefaultAnalysisConfig(),
		BinanceBaseURL: "https://api.binance.com",
		RequestTimeout: 30,
		RequestsPerSec: 5,
		LogLevel:       "info",
		LogFormat:      "console",
		OutputDir:      "./output",
	}
}

// Load initializes configuration from defaults, an optional config file and
// environment variables, in that order of precedence (last wins). An empty
// path falls back to CONFIG_FILE.
func Load(path string) (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile reads a config file on top of the defaults, without
// environment overrides
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, c); err != nil {
		if jsonErr := json.Unmarshal(data, c); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Symbol = strings.ToUpper(getEnvWithDefault("SYMBOL", c.Symbol))
	c.Interval = getEnvWithDefault("INTERVAL", c.Interval)
	c.CandleLimit = getEnvIntWithDefault("CANDLE_LIMIT", c.CandleLimit)
	c.TradeLimit = getEnvIntWithDefault("TRADE_LIMIT", c.TradeLimit)
	c.DepthLimit = getEnvIntWithDefault("DEPTH_LIMIT", c.DepthLimit)

	c.Analysis.ZScoreThreshold = getEnvFloatWithDefault("ZSCORE_THRESHOLD", c.Analysis.ZScoreThreshold)
	c.Analysis.PumpPriceThreshold = getEnvFloatWithDefault("PUMP_PRICE_THRESHOLD", c.Analysis.PumpPriceThreshold)
	c.Analysis.PumpVolumeThreshold = getEnvFloatWithDefault("PUMP_VOLUME_THRESHOLD", c.Analysis.PumpVolumeThreshold)
	c.Analysis.CorrelationThreshold = getEnvFloatWithDefault("CORRELATION_THRESHOLD", c.Analysis.CorrelationThreshold)
	c.Analysis.HistogramBins = getEnvIntWithDefault("HISTOGRAM_BINS", c.Analysis.HistogramBins)

	c.BinanceBaseURL = getEnvWithDefault("BINANCE_BASE_URL", c.BinanceBaseURL)
	c.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", c.RequestTimeout)
	c.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", c.RequestsPerSec)

	c.LogLevel = getEnvWithDefault("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvWithDefault("LOG_FORMAT", c.LogFormat)
	c.LogFile = getEnvWithDefault("LOG_FILE", c.LogFile)
	c.OutputDir = getEnvWithDefault("OUTPUT_DIR", c.OutputDir)

	c.TelegramBotToken = getEnvWithDefault("TELEGRAM_BOT_TOKEN", c.TelegramBotToken)
	c.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", c.TelegramChatID)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return errors.New("symbol is required")
	}
	if !validIntervals[c.Interval] {
		return fmt.Errorf("unsupported interval: %q", c.Interval)
	}
	if c.CandleLimit < 1 || c.CandleLimit > maxCandleLimit {
		return fmt.Errorf("candle_limit must be between 1 and %d", maxCandleLimit)
	}
	if c.TradeLimit < 1 || c.TradeLimit > maxTradeLimit {
		return fmt.Errorf("trade_limit must be between 1 and %d", maxTradeLimit)
	}
	if c.DepthLimit < 1 || c.DepthLimit > maxDepthLimit {
		return fmt.Errorf("depth_limit must be between 1 and %d", maxDepthLimit)
	}
	if c.Analysis.ZScoreThreshold <= 0 {
		return errors.New("analysis.zscore_threshold must be positive")
	}
	if c.Analysis.PumpPriceThreshold <= 0 || c.Analysis.PumpVolumeThreshold <= 0 {
		return errors.New("analysis pump thresholds must be positive")
	}
	if c.Analysis.CorrelationThreshold <= 0 || c.Analysis.CorrelationThreshold >= 1 {
		return errors.New("analysis.correlation_threshold must be between 0 and 1")
	}
	if c.Analysis.HistogramBins < 1 {
		return errors.New("analysis.histogram_bins must be positive")
	}
	if c.BinanceBaseURL == "" {
		return errors.New("binance_base_url is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.RequestsPerSec <= 0 {
		return errors.New("requests_per_sec must be positive")
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.New("log_format must be 'console' or 'json'")
	}
	return nil
}

// TelegramEnabled reports whether alert delivery is configured
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric environment value")
	}
	return defaultValue
}
