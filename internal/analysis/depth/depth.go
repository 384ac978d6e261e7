// Package depth summarizes the quantity distribution of both sides of an
// order book snapshot.
package depth

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Alias1177/pairscan/internal/model"
)

// DefaultBins matches the bucket count of the book distribution chart
const DefaultBins = 50

// Quantities returns the level quantities in book order
func Quantities(levels []model.DepthLevel) []float64 {
	out := make([]float64, len(levels))
	for i, l := range levels {
		out[i] = l.Quantity
	}
	return out
}

// Analyze returns bid and ask quantities untouched, plus histograms over a
// shared set of bin edges so both sides are directly comparable.
func Analyze(snapshot model.DepthSnapshot, bins int) model.DepthDistribution {
	if bins <= 0 {
		bins = DefaultBins
	}

	bids := Quantities(snapshot.Bids)
	asks := Quantities(snapshot.Asks)
	edges := sharedEdges(bids, asks, bins)

	return model.DepthDistribution{
		BidQuantities: bids,
		AskQuantities: asks,
		BidHistogram:  histogram(bids, edges),
		AskHistogram:  histogram(asks, edges),
		Bids:          summarize(bids),
		Asks:          summarize(asks),
	}
}

// sharedEdges spans the combined range of both sides. A degenerate range is
// widened by half a unit each way.
func sharedEdges(bids, asks []float64, bins int) []float64 {
	all := make([]float64, 0, len(bids)+len(asks))
	all = append(all, bids...)
	all = append(all, asks...)
	if len(all) == 0 {
		return nil
	}

	lo, hi := floats.Min(all), floats.Max(all)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return floats.Span(make([]float64, bins+1), lo, hi)
}

func histogram(values []float64, edges []float64) model.Histogram {
	if len(edges) < 2 {
		return model.Histogram{}
	}

	counts := make([]int, len(edges)-1)
	if len(values) > 0 {
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		// stat.Histogram treats the last divider as exclusive; nudge it so
		// the maximum lands in the last bin.
		dividers := append([]float64(nil), edges...)
		dividers[len(dividers)-1] = math.Nextafter(dividers[len(dividers)-1], math.Inf(1))

		for i, c := range stat.Histogram(nil, dividers, sorted, nil) {
			counts[i] = int(c)
		}
	}

	return model.Histogram{
		Edges:  append([]float64(nil), edges...),
		Counts: counts,
	}
}

func summarize(values []float64) model.SideSummary {
	if len(values) == 0 {
		return model.SideSummary{}
	}
	total := floats.Sum(values)
	return model.SideSummary{
		Levels: len(values),
		Total:  total,
		Mean:   total / float64(len(values)),
		Max:    floats.Max(values),
	}
}
