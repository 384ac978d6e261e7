// Package binance fetches spot market data from the Binance public REST API.
// Records are returned in their wire shapes; numeric fields are left as raw
// JSON for the cleaner to parse and validate.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/pairscan/internal/model"
	httpClient "github.com/Alias1177/pairscan/internal/platform/http"
)

// DefaultBaseURL is the public spot endpoint
const DefaultBaseURL = "https://api.binance.com"

// Client is the Binance API client
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Binance client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// SnapshotRequest selects what FetchSnapshot retrieves
type SnapshotRequest struct {
	Symbol      string
	Interval    string
	CandleLimit int
	TradeLimit  int
	DepthLimit  int
}

// NewClient creates a new Binance API client
func NewClient(options ClientOptions) *Client {
	baseURL := strings.TrimRight(options.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "binance_client").Logger(),
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()
	c.logger.Debug().Str("url", endpoint).Msg("Fetching")

	body, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Int("bytes", len(body)).Msg("Error parsing JSON")
		return fmt.Errorf("parsing %s response: %w", path, err)
	}
	return nil
}

// GetKlines fetches the most recent candles for a symbol, oldest first
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]model.RawCandle, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	var rows []model.RawCandle
	if err := c.get(ctx, "/api/v3/klines", params, &rows); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(rows)).Msg("Fetched klines")
	return rows, nil
}

// GetTrades fetches the most recent public trades for a symbol
func (c *Client) GetTrades(ctx context.Context, symbol string, limit int) ([]model.RawTrade, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("limit", strconv.Itoa(limit))

	var trades []model.RawTrade
	if err := c.get(ctx, "/api/v3/trades", params, &trades); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(trades)).Msg("Fetched trades")
	return trades, nil
}

// GetDepth fetches an order book snapshot for a symbol
func (c *Client) GetDepth(ctx context.Context, symbol string, limit int) (model.RawDepth, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("limit", strconv.Itoa(limit))

	var depth model.RawDepth
	if err := c.get(ctx, "/api/v3/depth", params, &depth); err != nil {
		return model.RawDepth{}, err
	}

	c.logger.Debug().
		Int("bids", len(depth.Bids)).
		Int("asks", len(depth.Asks)).
		Int64("last_update_id", depth.LastUpdateID).
		Msg("Fetched depth")
	return depth, nil
}

// FetchSnapshot retrieves candles, trades and depth for one symbol. Any
// failed request fails the whole snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, req SnapshotRequest) (model.RawSnapshot, error) {
	snap := model.RawSnapshot{
		Symbol:   req.Symbol,
		Interval: req.Interval,
	}

	var err error
	if snap.Candles, err = c.GetKlines(ctx, req.Symbol, req.Interval, req.CandleLimit); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("fetching klines: %w", err)
	}
	if snap.Trades, err = c.GetTrades(ctx, req.Symbol, req.TradeLimit); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("fetching trades: %w", err)
	}
	if snap.Depth, err = c.GetDepth(ctx, req.Symbol, req.DepthLimit); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("fetching depth: %w", err)
	}
	snap.FetchedAt = time.Now().UTC()

	c.logger.Info().
		Str("symbol", req.Symbol).
		Str("interval", req.Interval).
		Int("candles", len(snap.Candles)).
		Int("trades", len(snap.Trades)).
		Int("bids", len(snap.Depth.Bids)).
		Int("asks", len(snap.Depth.Asks)).
		Msg("Snapshot fetched")

	return snap, nil
}
