package model

import (
	"fmt"
	"time"
)

// AnalysisConfig carries every tunable of one pipeline run
type AnalysisConfig struct {
	ZScoreThreshold      float64 `json:"zscore_threshold" yaml:"zscore_threshold"`
	PumpPriceThreshold   float64 `json:"pump_price_threshold" yaml:"pump_price_threshold"`
	PumpVolumeThreshold  float64 `json:"pump_volume_threshold" yaml:"pump_volume_threshold"`
	CorrelationThreshold float64 `json:"correlation_threshold" yaml:"correlation_threshold"`
	HistogramBins        int     `json:"histogram_bins" yaml:"histogram_bins"`
}

// DefaultAnalysisConfig returns the stock heuristics: 3 sigma outliers,
// +10% price with +50% volume for pump-and-dump, |r| > 0.7 correlation.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		ZScoreThreshold:      3,
		PumpPriceThreshold:   0.10,
		PumpVolumeThreshold:  0.50,
		CorrelationThreshold: 0.7,
		HistogramBins:        50,
	}
}

// MalformedRecordError reports a record that failed to parse. The record is
// excluded from the cleaned output; the run continues.
type MalformedRecordError struct {
	Kind   string `json:"kind"` // candle, trade, bid, ask
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (e *MalformedRecordError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("malformed %s row %d: field %s=%s: %s", e.Kind, e.Row, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("malformed %s row %d: field %s: %s", e.Kind, e.Row, e.Field, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// CleanReport summarizes what a cleaning pass removed
type CleanReport struct {
	Total      int                     `json:"total"`
	Kept       int                     `json:"kept"`
	Nulls      int                     `json:"nulls"`
	Duplicates int                     `json:"duplicates"`
	Malformed  []*MalformedRecordError `json:"malformed,omitempty"`
}

// Merge adds the counts of other to r
func (r CleanReport) Merge(other CleanReport) CleanReport {
	return CleanReport{
		Total:      r.Total + other.Total,
		Kept:       r.Kept + other.Kept,
		Nulls:      r.Nulls + other.Nulls,
		Duplicates: r.Duplicates + other.Duplicates,
		Malformed:  append(append([]*MalformedRecordError{}, r.Malformed...), other.Malformed...),
	}
}

// Removed returns how many rows were dropped for any reason
func (r CleanReport) Removed() int {
	return r.Nulls + r.Duplicates + len(r.Malformed)
}

// CleaningSummary groups the cleaning reports of all inputs of a run
type CleaningSummary struct {
	Candles CleanReport `json:"candles"`
	Trades  CleanReport `json:"trades"`
	Depth   CleanReport `json:"depth"`
}

// Report is everything one analysis run produces
type Report struct {
	RunID       string    `json:"run_id"`
	Symbol      string    `json:"symbol"`
	Interval    string    `json:"interval"`
	GeneratedAt time.Time `json:"generated_at"`

	Config   AnalysisConfig  `json:"config"`
	Cleaning CleaningSummary `json:"cleaning"`

	Candles []Candle      `json:"candles"`
	Trades  []Trade       `json:"trades"`
	Series  DerivedSeries `json:"series"`

	TradeFrequency TradeFrequency `json:"trade_frequency"`
	Outliers       []OutlierEvent `json:"outliers"`

	Correlation            CorrelationMatrix `json:"correlation"`
	StrongCorrelations     []CorrelatedPair  `json:"strong_correlations"`
	VolumePriceCorrelation NullFloat         `json:"volume_price_correlation"`

	PumpDumps     []PumpDumpEvent `json:"pump_dumps"`
	// PumpDumpFlags[i] tells whether candle i tripped the pump-and-dump rule
	PumpDumpFlags []bool          `json:"pump_dump_flags"`

	Depth DepthDistribution `json:"depth"`
}

// HasFindings reports whether the run flagged anything worth an alert
func (r *Report) HasFindings() bool {
	return len(r.PumpDumps) > 0 || len(r.Outliers) > 0
}

// OutliersFor filters outliers by metric name
func (r *Report) OutliersFor(metric string) []OutlierEvent {
	var out []OutlierEvent
	for _, o := range r.Outliers {
		if o.Metric == metric {
			out = append(out, o)
		}
	}
	return out
}
