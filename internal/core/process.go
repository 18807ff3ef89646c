package core

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/planilha/internal/logging"
)

// Result is the outcome of one detection pass over a table.
type Result struct {
	AnalysisID       string   `json:"analysis_id"`
	Data             []Record `json:"data"`
	Columns          []string `json:"columns"`
	Issues           []Issue  `json:"issues"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
}

// Summary counts the result's issues by type.
func (r *Result) Summary() map[IssueType]int {
	counts := make(map[IssueType]int)
	for _, is := range r.Issues {
		counts[is.IssueType]++
	}
	return counts
}

// Process runs the default detectors over every column of t.
func Process(ctx context.Context, t *Table) *Result {
	return ProcessWith(ctx, t, DefaultDetectors())
}

// ProcessWith runs detectors over every column of t, in column order. Within
// a column, issues appear in detector order. The table is returned unchanged
// alongside the merged issue list.
func ProcessWith(ctx context.Context, t *Table, detectors []Detector) *Result {
	start := time.Now()
	res := &Result{
		AnalysisID: uuid.NewString(),
		Data:       t.Records(),
		Columns:    t.Columns,
		Issues:     []Issue{},
	}

	logger := logging.WithFields(ctx, "analysis_id", res.AnalysisID)
	for idx, name := range t.Columns {
		col := ColumnData{Index: idx, Name: name, Values: t.Column(idx)}
		for _, d := range detectors {
			found := d.Detect(ctx, col)
			if len(found) > 0 {
				logger.Debug("column issues",
					"column", name,
					"detector", d.Name(),
					"issues", len(found),
				)
			}
			res.Issues = append(res.Issues, found...)
		}
	}

	res.ProcessingTimeMs = time.Since(start).Milliseconds()
	logger.Info("analysis completed",
		"rows", t.NumRows(),
		"columns", len(t.Columns),
		"issues", len(res.Issues),
		"duration_ms", res.ProcessingTimeMs,
	)
	return res
}
