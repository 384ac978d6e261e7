// Package feature derives period-over-period series from cleaned candles.
package feature

import (
	"sort"
	"time"

	"github.com/Alias1177/pairscan/internal/model"
)

// PctChange returns (v[i] - v[i-1]) / v[i-1] for every position.
// Index 0 and any position whose predecessor is zero are undefined.
func PctChange(values []float64) []model.NullFloat {
	out := make([]model.NullFloat, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		out[i] = model.Some((values[i] - prev) / prev)
	}
	return out
}

// Derive computes close-price and volume changes aligned to the candles
func Derive(candles []model.Candle) model.DerivedSeries {
	timestamps := make([]time.Time, len(candles))
	closes := make([]float64, len(candles))
	volumes := make([]float64, len(candles))

	for i, c := range candles {
		timestamps[i] = c.OpenTime
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	return model.DerivedSeries{
		Timestamps:   timestamps,
		VolumeChange: PctChange(volumes),
		PriceChange:  PctChange(closes),
	}
}

// TradeFrequency counts how many trades share each timestamp. PerTrade is
// aligned with the input; Buckets are sorted by time.
func TradeFrequency(trades []model.Trade) model.TradeFrequency {
	counts := make(map[int64]int, len(trades))
	for _, t := range trades {
		counts[t.Time.UnixNano()]++
	}

	perTrade := make([]int, len(trades))
	for i, t := range trades {
		perTrade[i] = counts[t.Time.UnixNano()]
	}

	buckets := make([]model.FrequencyBucket, 0, len(counts))
	for ts, n := range counts {
		buckets = append(buckets, model.FrequencyBucket{
			Time:  time.Unix(0, ts).UTC(),
			Count: n,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Time.Before(buckets[j].Time)
	})

	return model.TradeFrequency{
		PerTrade: perTrade,
		Buckets:  buckets,
	}
}

// BucketSeries turns frequency buckets into an outlier-ready series
func BucketSeries(buckets []model.FrequencyBucket) ([]time.Time, []model.NullFloat) {
	timestamps := make([]time.Time, len(buckets))
	series := make([]model.NullFloat, len(buckets))
	for i, b := range buckets {
		timestamps[i] = b.Time
		series[i] = model.Some(float64(b.Count))
	}
	return timestamps, series
}
