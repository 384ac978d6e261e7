// Package pumpdump applies the joint price/volume jump rule.
package pumpdump

import (
	"github.com/Alias1177/pairscan/internal/model"
)

// Thresholds for the conjunctive rule. Both comparisons are strict.
type Thresholds struct {
	PriceChange  float64
	VolumeChange float64
}

// DefaultThresholds flags a >10% price rise on a >50% volume rise
func DefaultThresholds() Thresholds {
	return Thresholds{
		PriceChange:  0.10,
		VolumeChange: 0.50,
	}
}

// FromConfig extracts the rule thresholds from an analysis config. A
// non-positive threshold falls back to its default.
func FromConfig(cfg model.AnalysisConfig) Thresholds {
	t := DefaultThresholds()
	if cfg.PumpPriceThreshold > 0 {
		t.PriceChange = cfg.PumpPriceThreshold
	}
	if cfg.PumpVolumeThreshold > 0 {
		t.VolumeChange = cfg.PumpVolumeThreshold
	}
	return t
}

// Flag reports whether a single pair of changes trips the rule
func (t Thresholds) Flag(price, volume model.NullFloat) bool {
	return price.Valid && volume.Valid &&
		price.Value > t.PriceChange &&
		volume.Value > t.VolumeChange
}

// Detect evaluates the rule at every index of the derived series. It returns
// the flagged events and a flag per index.
func Detect(series model.DerivedSeries, t Thresholds) ([]model.PumpDumpEvent, []bool) {
	n := min(len(series.PriceChange), len(series.VolumeChange))
	flags := make([]bool, n)

	var events []model.PumpDumpEvent
	for i := 0; i < n; i++ {
		price, volume := series.PriceChange[i], series.VolumeChange[i]
		if !t.Flag(price, volume) {
			continue
		}

		flags[i] = true
		event := model.PumpDumpEvent{
			Index:        i,
			PriceChange:  price.Value,
			VolumeChange: volume.Value,
		}
		if i < len(series.Timestamps) {
			event.Timestamp = series.Timestamps[i]
		}
		events = append(events, event)
	}
	return events, flags
}
