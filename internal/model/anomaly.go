package model

import "time"

// Metric names used for outlier events
const (
	MetricVolumeChange   = "volume_change_pct"
	MetricPriceChange    = "price_change_pct"
	MetricTradeFrequency = "trade_frequency"
)

// OutlierEvent is a point whose z-score exceeded the configured threshold
type OutlierEvent struct {
	Index     int       `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Metric    string    `json:"metric"`
	Value     float64   `json:"value"`
	ZScore    float64   `json:"z_score"`
}

// PumpDumpEvent marks a candle whose price and volume change both cleared the thresholds
type PumpDumpEvent struct {
	Index        int       `json:"index"`
	Timestamp    time.Time `json:"timestamp"`
	PriceChange  float64   `json:"price_change_pct"`
	VolumeChange float64   `json:"volume_change_pct"`
}

// CorrelatedPair is one entry of the strong-correlation view
type CorrelatedPair struct {
	A           string  `json:"a"`
	B           string  `json:"b"`
	Coefficient float64 `json:"coefficient"`
}
