package model

// Histogram is a fixed-bin count over a value range. Edges has len(Counts)+1
// entries; the last bin is closed on the right.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// SideSummary aggregates the quantities of one book side
type SideSummary struct {
	Levels int     `json:"levels"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	Max    float64 `json:"max"`
}

// DepthDistribution is the bid versus ask quantity view of one snapshot
type DepthDistribution struct {
	BidQuantities []float64   `json:"bid_quantities"`
	AskQuantities []float64   `json:"ask_quantities"`
	BidHistogram  Histogram   `json:"bid_histogram"`
	AskHistogram  Histogram   `json:"ask_histogram"`
	Bids          SideSummary `json:"bids"`
	Asks          SideSummary `json:"asks"`
}
