// Package outlier flags points that sit too many standard deviations from
// the mean of their series.
package outlier

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Alias1177/pairscan/internal/model"
)

// DefaultThreshold is the classic three sigma cut-off
const DefaultThreshold = 3.0

// Score returns |x - mean| / stddev for every defined point, using the
// sample standard deviation of the defined points only. The whole result is
// undefined when fewer than two points are defined or the series is constant.
func Score(series []model.NullFloat) []model.NullFloat {
	scores := make([]model.NullFloat, len(series))

	defined := model.Defined(series)
	if len(defined) < 2 || constant(defined) {
		return scores
	}

	mean, std := stat.MeanStdDev(defined, nil)
	if std == 0 || math.IsNaN(std) {
		return scores
	}

	for i, v := range series {
		if !v.Valid {
			continue
		}
		scores[i] = model.Some(math.Abs(v.Value-mean) / std)
	}
	return scores
}

// constant is checked on the raw values: a floating point mean of identical
// values can leave a tiny nonzero deviation.
func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Detect returns an event for every point whose z-score is strictly greater
// than k. A non-positive k falls back to DefaultThreshold.
func Detect(metric string, timestamps []time.Time, series []model.NullFloat, k float64) []model.OutlierEvent {
	if k <= 0 {
		k = DefaultThreshold
	}

	var events []model.OutlierEvent
	for i, z := range Score(series) {
		if !z.Valid || z.Value <= k {
			continue
		}

		event := model.OutlierEvent{
			Index:  i,
			Metric: metric,
			Value:  series[i].Value,
			ZScore: z.Value,
		}
		if i < len(timestamps) {
			event.Timestamp = timestamps[i]
		}
		events = append(events, event)
	}
	return events
}
