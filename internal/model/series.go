package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// NullFloat is a float64 that may be undefined. Undefined values encode as
// JSON null and must never be read as zero.
type NullFloat struct {
	Value float64
	Valid bool
}

// Some returns a defined NullFloat. Non-finite values are treated as undefined.
func Some(v float64) NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat{}
	}
	return NullFloat{Value: v, Valid: true}
}

// MarshalJSON implements json.Marshaler
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Some(v)
	return nil
}

func (n NullFloat) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Defined returns only the defined values of a series, in order.
func Defined(series []NullFloat) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if v.Valid {
			out = append(out, v.Value)
		}
	}
	return out
}

// DerivedSeries holds the per-candle percentage changes, aligned to the
// cleaned candles by position.
type DerivedSeries struct {
	Timestamps   []time.Time `json:"timestamps"`
	VolumeChange []NullFloat `json:"volume_change_pct"`
	PriceChange  []NullFloat `json:"price_change_pct"`
}

// Len returns the number of aligned rows
func (s DerivedSeries) Len() int {
	return len(s.Timestamps)
}

// FrequencyBucket counts trades that share one timestamp
type FrequencyBucket struct {
	Time  time.Time `json:"time"`
	Count int       `json:"count"`
}

// TradeFrequency is the trade clustering view of a trade snapshot
type TradeFrequency struct {
	// PerTrade[i] is the number of trades sharing the timestamp of trade i.
	PerTrade []int             `json:"per_trade"`
	Buckets  []FrequencyBucket `json:"buckets"`
}
