package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Alias1177/pairscan/internal/model"
)

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// nf renders an undefined value as an empty cell
func nf(x model.NullFloat) string {
	if !x.Valid {
		return ""
	}
	return f(x.Value)
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes the cleaned candles with their change series and
// pump-and-dump flag, one row per candle
func WriteSeriesCSV(w io.Writer, r *model.Report) error {
	rows := make([][]string, len(r.Candles))
	for i, c := range r.Candles {
		var volume, price model.NullFloat
		if i < r.Series.Len() {
			volume, price = r.Series.VolumeChange[i], r.Series.PriceChange[i]
		}
		flagged := i < len(r.PumpDumpFlags) && r.PumpDumpFlags[i]
		rows[i] = []string{
			ts(c.OpenTime),
			f(c.Open), f(c.High), f(c.Low), f(c.Close), f(c.Volume),
			strconv.FormatInt(c.TradeCount, 10),
			nf(volume), nf(price),
			strconv.FormatBool(flagged),
		}
	}

	return writeAll(w, []string{
		"open_time", "open", "high", "low", "close", "volume", "trade_count",
		model.MetricVolumeChange, model.MetricPriceChange, "pump_dump",
	}, rows)
}

// WriteOutliersCSV writes every outlier event
func WriteOutliersCSV(w io.Writer, r *model.Report) error {
	rows := make([][]string, len(r.Outliers))
	for i, o := range r.Outliers {
		rows[i] = []string{o.Metric, strconv.Itoa(o.Index), ts(o.Timestamp), f(o.Value), f(o.ZScore)}
	}
	return writeAll(w, []string{"metric", "index", "timestamp", "value", "z_score"}, rows)
}

// WriteCorrelationCSV writes the matrix with a leading column of row names
func WriteCorrelationCSV(w io.Writer, r *model.Report) error {
	m := r.Correlation
	rows := make([][]string, len(m.Columns))
	for i, name := range m.Columns {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, name)
		for _, cell := range m.Cells[i] {
			row = append(row, nf(cell))
		}
		rows[i] = row
	}
	return writeAll(w, append([]string{""}, m.Columns...), rows)
}

// WriteDepthCSV writes every book level quantity tagged by side, in book order
func WriteDepthCSV(w io.Writer, r *model.Report) error {
	d := r.Depth
	rows := make([][]string, 0, len(d.BidQuantities)+len(d.AskQuantities))
	for i, q := range d.BidQuantities {
		rows = append(rows, []string{"bid", strconv.Itoa(i), f(q)})
	}
	for i, q := range d.AskQuantities {
		rows = append(rows, []string{"ask", strconv.Itoa(i), f(q)})
	}
	return writeAll(w, []string{"side", "level", "quantity"}, rows)
}

// WritePumpDumpsCSV writes the flagged pump-and-dump candles
func WritePumpDumpsCSV(w io.Writer, r *model.Report) error {
	rows := make([][]string, len(r.PumpDumps))
	for i, e := range r.PumpDumps {
		rows[i] = []string{strconv.Itoa(e.Index), ts(e.Timestamp), f(e.PriceChange), f(e.VolumeChange)}
	}
	return writeAll(w, []string{"index", "timestamp", model.MetricPriceChange, model.MetricVolumeChange}, rows)
}
