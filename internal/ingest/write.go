package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/JonMunkholm/planilha/internal/core"
)

// WriteCSV writes t as comma-separated text with a header row. Every value
// is written as its original text; empty cells become empty fields.
// Column names must be unique.
func WriteCSV(w io.Writer, t *core.Table) error {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c] {
			return fmt.Errorf("write csv: duplicate column %q", c)
		}
		seen[c] = true
	}

	if t.NumRows() == 0 {
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		cw.Flush()
		return cw.Error()
	}

	records := make([][]string, 0, t.NumRows()+1)
	records = append(records, t.Columns)
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.String()
		}
		records = append(records, rec)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
