package correlation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/pairscan/internal/model"
)

func col(name string, values ...float64) Column {
	out := make([]model.NullFloat, len(values))
	for i, v := range values {
		out[i] = model.Some(v)
	}
	return Column{Name: name, Values: out}
}

func TestPearson(t *testing.T) {
	a := col("a", 1, 2, 3, 4, 5).Values
	b := col("b", 2, 4, 6, 8, 10).Values
	c := col("c", 5, 4, 3, 2, 1).Values

	assert.InDelta(t, 1.0, Pearson(a, b).Value, 1e-12)
	assert.InDelta(t, -1.0, Pearson(a, c).Value, 1e-12)
}

func TestPearsonPairwiseExclusion(t *testing.T) {
	a := []model.NullFloat{{}, model.Some(1), model.Some(2), model.Some(3), model.Some(100)}
	b := []model.NullFloat{model.Some(9), model.Some(1), model.Some(2), model.Some(3), {}}

	r := Pearson(a, b)
	require.True(t, r.Valid)
	assert.InDelta(t, 1.0, r.Value, 1e-12)
}

func TestPearsonUndefined(t *testing.T) {
	tests := []struct {
		name string
		a, b []model.NullFloat
	}{
		{"no rows", nil, nil},
		{"one overlapping row", []model.NullFloat{model.Some(1), {}}, []model.NullFloat{model.Some(2), model.Some(3)}},
		{"constant side", col("a", 1, 1, 1).Values, col("b", 1, 2, 3).Values},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Pearson(tt.a, tt.b).Valid)
		})
	}
}

func TestAnalyzeMatrixIsSymmetricWithUnitDiagonal(t *testing.T) {
	columns := []Column{
		col("x", 1, 2, 3, 4, 5, 6),
		col("y", 2, 1, 4, 3, 6, 5),
		col("z", 9, 3, 7, 1, 8, 2),
		col("flat", 4, 4, 4, 4, 4, 4),
	}

	res := Analyze(columns, DefaultThreshold)
	m := res.Matrix

	require.Equal(t, []string{"x", "y", "z", "flat"}, m.Columns)
	for i := range m.Columns {
		for j := range m.Columns {
			assert.Equal(t, m.Cells[i][j], m.Cells[j][i], "cell %d,%d", i, j)
		}
	}
	for i, name := range []string{"x", "y", "z"} {
		assert.Equal(t, model.Some(1), m.Cells[i][i], name)
	}

	flat, ok := m.Get("flat", "flat")
	require.True(t, ok)
	assert.False(t, flat.Valid)
	xf, _ := m.Get("x", "flat")
	assert.False(t, xf.Valid)

	_, ok = m.Get("x", "missing")
	assert.False(t, ok)
}

func TestAnalyzeStrongPairs(t *testing.T) {
	columns := []Column{
		col("x", 1, 2, 3, 4, 5, 6),
		col("y", 2, 1, 4, 3, 6, 5),
		col("inv", 6, 5, 4, 3, 2, 1),
		col("noise", 1, 5, 2, 2, 5, 1),
	}

	res := Analyze(columns, 0.7)

	var names [][2]string
	for _, p := range res.Strong {
		assert.NotEqual(t, p.A, p.B)
		names = append(names, [2]string{p.A, p.B})
	}
	assert.ElementsMatch(t, [][2]string{{"x", "y"}, {"x", "inv"}, {"y", "inv"}}, names)

	for _, p := range res.Strong {
		if p.A == "x" && p.B == "inv" {
			assert.InDelta(t, -1.0, p.Coefficient, 1e-12)
		}
	}
}

func TestCandleTable(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []model.Candle{
		{OpenTime: start, Open: 1, Close: 2, Volume: 3, TradeCount: 4},
		{OpenTime: start.Add(time.Hour), Open: 2, Close: 3, Volume: 6, TradeCount: 8},
	}
	derived := model.DerivedSeries{
		Timestamps:   []time.Time{start, start.Add(time.Hour)},
		VolumeChange: []model.NullFloat{{}, model.Some(1)},
		PriceChange:  []model.NullFloat{{}, model.Some(0.5)},
	}

	table := CandleTable(candles, derived)

	require.Len(t, table, 11)
	assert.Equal(t, "open", table[0].Name)
	assert.Equal(t, "trade_count", table[6].Name)
	assert.Equal(t, model.Some(8), table[6].Values[1])
	assert.Equal(t, model.MetricPriceChange, table[10].Name)
	assert.False(t, table[10].Values[0].Valid)
}
