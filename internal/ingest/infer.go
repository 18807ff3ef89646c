package ingest

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/JonMunkholm/planilha/internal/core"
)

// inferCells converts raw strings into typed cells. Empty strings become
// Empty cells. A column is numeric when gota's type detection types it as
// int or float, i.e. every non-missing value is a plain number; its cells
// become Number cells that keep their text. Everything else is Text.
func inferCells(columns []string, rows [][]string) [][]core.Cell {
	numeric := numericColumns(columns, rows)

	out := make([][]core.Cell, len(rows))
	for r, row := range rows {
		cells := make([]core.Cell, len(columns))
		for c, v := range row {
			switch {
			case v == "":
				cells[c] = core.Empty()
			case numeric[c]:
				cells[c] = core.NumberFromText(v)
			default:
				cells[c] = core.Text(v)
			}
		}
		out[r] = cells
	}
	return out
}

func numericColumns(columns []string, rows [][]string) []bool {
	numeric := make([]bool, len(columns))
	if len(rows) == 0 {
		return numeric
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, columns)
	records = append(records, rows...)

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return numeric
	}

	for i, t := range df.Types() {
		if i < len(numeric) {
			numeric[i] = t == series.Int || t == series.Float
		}
	}
	return numeric
}
