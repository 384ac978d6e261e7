package model

// CorrelationMatrix is a symmetric columns x columns matrix of Pearson
// coefficients. Cells with too little data are undefined.
type CorrelationMatrix struct {
	Columns []string      `json:"columns"`
	Cells   [][]NullFloat `json:"cells"`
}

// NewCorrelationMatrix allocates an all-undefined matrix for the given columns
func NewCorrelationMatrix(columns []string) CorrelationMatrix {
	cells := make([][]NullFloat, len(columns))
	for i := range cells {
		cells[i] = make([]NullFloat, len(columns))
	}
	return CorrelationMatrix{
		Columns: append([]string(nil), columns...),
		Cells:   cells,
	}
}

// Index returns the position of a column or -1
func (m CorrelationMatrix) Index(column string) int {
	for i, c := range m.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Get returns the coefficient for a column pair
func (m CorrelationMatrix) Get(a, b string) (NullFloat, bool) {
	i, j := m.Index(a), m.Index(b)
	if i < 0 || j < 0 {
		return NullFloat{}, false
	}
	return m.Cells[i][j], true
}
