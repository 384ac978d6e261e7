package model

import (
	"encoding/json"
	"time"
)

// Candle represents a single cleaned kline
type Candle struct {
	OpenTime            time.Time `json:"open_time"`
	Open                float64   `json:"open"`
	High                float64   `json:"high"`
	Low                 float64   `json:"low"`
	Close               float64   `json:"close"`
	Volume              float64   `json:"volume"`
	CloseTime           time.Time `json:"close_time"`
	QuoteVolume         float64   `json:"quote_volume"`
	TradeCount          int64     `json:"trade_count"`
	TakerBuyBaseVolume  float64   `json:"taker_buy_base_volume"`
	TakerBuyQuoteVolume float64   `json:"taker_buy_quote_volume"`
}

// Trade represents a single executed trade
type Trade struct {
	ID            int64     `json:"id"`
	Time          time.Time `json:"time"`
	Price         float64   `json:"price"`
	Quantity      float64   `json:"qty"`
	QuoteQuantity float64   `json:"quote_qty"`
	IsBuyerMaker  bool      `json:"is_buyer_maker"`
	IsBestMatch   bool      `json:"is_best_match"`
}

// DepthLevel is one price level of the order book
type DepthLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// DepthSnapshot holds both sides of the book, best level first
type DepthSnapshot struct {
	LastUpdateID int64        `json:"last_update_id"`
	Bids         []DepthLevel `json:"bids"`
	Asks         []DepthLevel `json:"asks"`
}

// Kline row positions in the exchange wire format.
const (
	KlineOpenTime = iota
	KlineOpen
	KlineHigh
	KlineLow
	KlineClose
	KlineVolume
	KlineCloseTime
	KlineQuoteVolume
	KlineTradeCount
	KlineTakerBuyBase
	KlineTakerBuyQuote
	KlineIgnore

	KlineFieldCount
)

// KlineFieldNames names every positional kline field, used in diagnostics.
var KlineFieldNames = [KlineFieldCount]string{
	"open_time", "open", "high", "low", "close", "volume",
	"close_time", "quote_volume", "trade_count",
	"taker_buy_base_volume", "taker_buy_quote_volume", "ignore",
}

// RawCandle is one kline row exactly as delivered by the exchange.
// Values stay undecoded until the cleaner parses them.
type RawCandle []json.RawMessage

// RawTrade is one trade object exactly as delivered by the exchange.
type RawTrade map[string]json.RawMessage

// RawDepth is an order book snapshot exactly as delivered by the exchange.
// Each level is a [priceString, quantityString] pair.
type RawDepth struct {
	LastUpdateID int64               `json:"lastUpdateId"`
	Bids         [][]json.RawMessage `json:"bids"`
	Asks         [][]json.RawMessage `json:"asks"`
}

// RawSnapshot bundles everything fetched for one analysis run
type RawSnapshot struct {
	Symbol    string      `json:"symbol"`
	Interval  string      `json:"interval"`
	FetchedAt time.Time   `json:"fetched_at"`
	Candles   []RawCandle `json:"candles"`
	Trades    []RawTrade  `json:"trades"`
	Depth     RawDepth    `json:"depth"`
}
