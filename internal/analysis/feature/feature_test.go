package feature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/pairscan/internal/model"
)

func TestPctChange(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []model.NullFloat
	}{
		{
			name:   "empty",
			values: nil,
			want:   []model.NullFloat{},
		},
		{
			name:   "single value",
			values: []float64{5},
			want:   []model.NullFloat{{}},
		},
		{
			name:   "rising and falling",
			values: []float64{100, 110, 99},
			want:   []model.NullFloat{{}, model.Some(0.1), model.Some(-0.1)},
		},
		{
			name:   "zero predecessor is undefined",
			values: []float64{10, 0, 5, 10},
			want:   []model.NullFloat{{}, model.Some(-1), {}, model.Some(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PctChange(tt.values)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Valid, got[i].Valid, "index %d", i)
				assert.InDelta(t, tt.want[i].Value, got[i].Value, 1e-9, "index %d", i)
			}
		})
	}
}

func TestPctChangeMatchesDefinition(t *testing.T) {
	values := []float64{3.5, 7.25, 1e-3, 400, 12, 12, -4, 8}
	got := PctChange(values)

	require.Len(t, got, len(values))
	assert.False(t, got[0].Valid)
	for i := 1; i < len(values); i++ {
		require.True(t, got[i].Valid)
		assert.InDelta(t, (values[i]-values[i-1])/values[i-1], got[i].Value, 1e-9)
	}
}

func TestPctChangeDoesNotModifyInput(t *testing.T) {
	values := []float64{1, 2, 4}
	PctChange(values)
	assert.Equal(t, []float64{1, 2, 4}, values)
}

func TestDerive(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []model.Candle{
		{OpenTime: start, Close: 100, Volume: 10},
		{OpenTime: start.Add(time.Hour), Close: 100, Volume: 10},
		{OpenTime: start.Add(2 * time.Hour), Close: 115, Volume: 16},
	}

	s := Derive(candles)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, start.Add(2*time.Hour), s.Timestamps[2])
	assert.False(t, s.PriceChange[0].Valid)
	assert.False(t, s.VolumeChange[0].Valid)
	assert.Equal(t, model.Some(0), s.PriceChange[1])
	assert.InDelta(t, 0.15, s.PriceChange[2].Value, 1e-9)
	assert.InDelta(t, 0.6, s.VolumeChange[2].Value, 1e-9)
}

func TestTradeFrequency(t *testing.T) {
	t0 := time.UnixMilli(1_000).UTC()
	t1 := time.UnixMilli(2_000).UTC()
	trades := []model.Trade{
		{ID: 1, Time: t1},
		{ID: 2, Time: t0},
		{ID: 3, Time: t1},
		{ID: 4, Time: t1},
	}

	freq := TradeFrequency(trades)

	assert.Equal(t, []int{3, 1, 3, 3}, freq.PerTrade)
	assert.Equal(t, []model.FrequencyBucket{
		{Time: t0, Count: 1},
		{Time: t1, Count: 3},
	}, freq.Buckets)

	times, series := BucketSeries(freq.Buckets)
	assert.Equal(t, []time.Time{t0, t1}, times)
	assert.Equal(t, []model.NullFloat{model.Some(1), model.Some(3)}, series)
}
