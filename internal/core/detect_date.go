package core

import (
	"context"
)

// DateDetector flags dates once a column starts mixing date formats.
//
// The first format seen in the column is accepted. From the row where a
// second distinct format first appears, every parsed date is flagged and a
// dd/mm/yyyy rewrite is suggested. Earlier rows are never flagged
// retroactively, and cells that fail to parse are skipped.
type DateDetector struct{}

// Name implements Detector.
func (DateDetector) Name() string { return "date" }

// datedRow is a row whose cell parsed as a date.
type datedRow struct {
	row   int
	value string
	match DateMatch
}

// Detect implements Detector.
func (d DateDetector) Detect(ctx context.Context, col ColumnData) []Issue {
	total := col.nonEmpty()
	matches := 0
	for _, v := range col.Values {
		if !v.IsEmpty() && HasDateShape(v.String()) {
			matches++
		}
	}
	if !meetsDensity(matches, total) {
		return nil
	}

	// Pass 1: parse every date-shaped cell and record its format label.
	var dated []datedRow
	eachCell(ctx, d.Name(), col, func(row int, v Cell) {
		s := v.String()
		if m, ok := ParseDate(s); ok {
			dated = append(dated, datedRow{row: row, value: s, match: m})
		}
	})

	// Pass 2: flag rows from the point a second format appears.
	var issues []Issue
	seen := make(map[string]bool)
	for _, r := range dated {
		seen[r.match.Label] = true
		if len(seen) < 2 {
			continue
		}
		issues = append(issues, col.issue(r.row, r.value, IssueDateFormat,
			"Formato de data inconsistente: "+r.value, suggest(r.match.BR())))
	}
	return issues
}
