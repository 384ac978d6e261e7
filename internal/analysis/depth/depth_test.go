package depth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/pairscan/internal/model"
)

func TestAnalyzeKeepsBookOrder(t *testing.T) {
	snapshot := model.DepthSnapshot{
		Bids: []model.DepthLevel{{Price: 100, Quantity: 5}, {Price: 99, Quantity: 3}},
		Asks: []model.DepthLevel{{Price: 101, Quantity: 2}, {Price: 102, Quantity: 8}},
	}

	dist := Analyze(snapshot, DefaultBins)

	assert.Equal(t, []float64{5, 3}, dist.BidQuantities)
	assert.Equal(t, []float64{2, 8}, dist.AskQuantities)
	assert.Equal(t, model.SideSummary{Levels: 2, Total: 8, Mean: 4, Max: 5}, dist.Bids)
	assert.Equal(t, model.SideSummary{Levels: 2, Total: 10, Mean: 5, Max: 8}, dist.Asks)
}

func TestAnalyzeHistogramsShareEdges(t *testing.T) {
	snapshot := model.DepthSnapshot{
		Bids: []model.DepthLevel{{Quantity: 0}, {Quantity: 1}, {Quantity: 1.5}, {Quantity: 4}},
		Asks: []model.DepthLevel{{Quantity: 2}, {Quantity: 3.9}},
	}

	dist := Analyze(snapshot, 4)

	require.Len(t, dist.BidHistogram.Edges, 5)
	assert.Equal(t, dist.BidHistogram.Edges, dist.AskHistogram.Edges)
	assert.InDeltaSlice(t, []float64{0, 1, 2, 3, 4}, dist.BidHistogram.Edges, 1e-12)
	assert.Equal(t, []int{1, 2, 0, 1}, dist.BidHistogram.Counts)
	assert.Equal(t, []int{0, 0, 1, 1}, dist.AskHistogram.Counts)
}

func TestAnalyzeDegenerateRange(t *testing.T) {
	snapshot := model.DepthSnapshot{
		Bids: []model.DepthLevel{{Quantity: 2}, {Quantity: 2}},
	}

	dist := Analyze(snapshot, 2)

	assert.InDeltaSlice(t, []float64{1.5, 2, 2.5}, dist.BidHistogram.Edges, 1e-12)
	assert.Equal(t, []int{0, 2}, dist.BidHistogram.Counts)
	assert.Equal(t, []int{0, 0}, dist.AskHistogram.Counts)
	assert.Empty(t, dist.AskQuantities)
	assert.Equal(t, model.SideSummary{}, dist.Asks)
}

func TestAnalyzeEmptyBook(t *testing.T) {
	dist := Analyze(model.DepthSnapshot{}, 0)

	assert.Empty(t, dist.BidQuantities)
	assert.Empty(t, dist.AskQuantities)
	assert.Nil(t, dist.BidHistogram.Edges)
	assert.Nil(t, dist.AskHistogram.Counts)
}
