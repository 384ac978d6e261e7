// Package correlation computes pairwise Pearson coefficients over named,
// row-aligned numeric columns.
package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Alias1177/pairscan/internal/model"
)

// DefaultThreshold is the |r| above which a pair counts as strongly correlated
const DefaultThreshold = 0.7

// Column is one named series; rows are aligned by position across columns
type Column struct {
	Name   string
	Values []model.NullFloat
}

// Result holds the full matrix and the strong-pair view
type Result struct {
	Matrix model.CorrelationMatrix
	Strong []model.CorrelatedPair
}

// Pearson correlates two columns using only the rows where both are defined.
// It is undefined with fewer than two such rows or when either side is
// constant over them.
func Pearson(a, b []model.NullFloat) model.NullFloat {
	n := min(len(a), len(b))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if a[i].Valid && b[i].Valid {
			xs = append(xs, a[i].Value)
			ys = append(ys, b[i].Value)
		}
	}

	if len(xs) < 2 || constant(xs) || constant(ys) {
		return model.NullFloat{}
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return model.NullFloat{}
	}
	return model.Some(math.Max(-1, math.Min(1, r)))
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Analyze builds the symmetric matrix for every column pair and extracts the
// pairs with |r| > threshold. Self pairs never appear in the strong view.
// A non-positive threshold falls back to DefaultThreshold.
func Analyze(columns []Column, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	matrix := model.NewCorrelationMatrix(names)

	var strong []model.CorrelatedPair
	for i := range columns {
		defined := model.Defined(columns[i].Values)
		if len(defined) >= 2 && !constant(defined) {
			matrix.Cells[i][i] = model.Some(1)
		}

		for j := i + 1; j < len(columns); j++ {
			r := Pearson(columns[i].Values, columns[j].Values)
			matrix.Cells[i][j] = r
			matrix.Cells[j][i] = r

			if r.Valid && math.Abs(r.Value) > threshold {
				strong = append(strong, model.CorrelatedPair{
					A:           columns[i].Name,
					B:           columns[j].Name,
					Coefficient: r.Value,
				})
			}
		}
	}

	return Result{Matrix: matrix, Strong: strong}
}

// CandleTable lays out the cleaned candle columns plus the derived change
// series as correlation input.
func CandleTable(candles []model.Candle, derived model.DerivedSeries) []Column {
	column := func(name string, get func(model.Candle) float64) Column {
		values := make([]model.NullFloat, len(candles))
		for i, c := range candles {
			values[i] = model.Some(get(c))
		}
		return Column{Name: name, Values: values}
	}

	return []Column{
		column("open", func(c model.Candle) float64 { return c.Open }),
		column("high", func(c model.Candle) float64 { return c.High }),
		column("low", func(c model.Candle) float64 { return c.Low }),
		column("close", func(c model.Candle) float64 { return c.Close }),
		column("volume", func(c model.Candle) float64 { return c.Volume }),
		column("quote_volume", func(c model.Candle) float64 { return c.QuoteVolume }),
		column("trade_count", func(c model.Candle) float64 { return float64(c.TradeCount) }),
		column("taker_buy_base_volume", func(c model.Candle) float64 { return c.TakerBuyBaseVolume }),
		column("taker_buy_quote_volume", func(c model.Candle) float64 { return c.TakerBuyQuoteVolume }),
		{Name: model.MetricVolumeChange, Values: derived.VolumeChange},
		{Name: model.MetricPriceChange, Values: derived.PriceChange},
	}
}
