// Package report renders analysis results for people and for downstream
// charting: an indented JSON document, per-view CSV files and a console
// summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/pairscan/internal/model"
)

// WriteJSON encodes the full report
func WriteJSON(w io.Writer, r *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Export writes the JSON report and every CSV view into dir, one file each,
// named after the symbol and run id. It returns the written paths.
func Export(dir string, r *model.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	prefix := fmt.Sprintf("%s_%s", strings.ToLower(r.Symbol), r.RunID)
	if r.Symbol == "" {
		prefix = r.RunID
	}

	outputs := []struct {
		name  string
		write func(io.Writer, *model.Report) error
	}{
		{"report.json", WriteJSON},
		{"series.csv", WriteSeriesCSV},
		{"outliers.csv", WriteOutliersCSV},
		{"correlation.csv", WriteCorrelationCSV},
		{"depth.csv", WriteDepthCSV},
		{"pump_dumps.csv", WritePumpDumpsCSV},
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		path := filepath.Join(dir, prefix+"_"+o.name)
		if err := writeFile(path, r, o.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	log.Info().Str("dir", dir).Int("files", len(paths)).Str("run_id", r.RunID).Msg("Report exported")
	return paths, nil
}

func writeFile(path string, r *model.Report, write func(io.Writer, *model.Report) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(file, r); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
