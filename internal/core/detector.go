package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/planilha/internal/logging"
)

// DensityThresholdPercent is the minimum share of non-empty cells that must
// match a detector's pattern before the detector judges the column.
const DensityThresholdPercent = 30

// Detector inspects one column and reports every cell that deviates from the
// convention it infers for that column. Detectors never mutate the values
// they are given.
type Detector interface {
	Name() string
	Detect(ctx context.Context, col ColumnData) []Issue
}

// DefaultDetectors returns the detectors run by Process, in the order their
// issues are reported within a column.
func DefaultDetectors() []Detector {
	return []Detector{
		DateDetector{},
		DocumentDetector{},
		TextCaseDetector{},
		NumberDetector{},
	}
}

// meetsDensity reports whether matches is at least the threshold share of
// total. An empty column never qualifies.
func meetsDensity(matches, total int) bool {
	return total > 0 && matches*100 >= DensityThresholdPercent*total
}

// eachCell calls fn for every non-empty cell in row order. A panic raised
// while inspecting one cell is logged and that cell is skipped; the rest of
// the column is still inspected.
func eachCell(ctx context.Context, detector string, col ColumnData, fn func(row int, v Cell)) {
	for row, v := range col.Values {
		if v.IsEmpty() {
			continue
		}
		inspectCell(ctx, detector, col, row, v, fn)
	}
}

func inspectCell(ctx context.Context, detector string, col ColumnData, row int, v Cell, fn func(int, Cell)) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Debug("cell skipped",
				"detector", detector,
				"column", col.Name,
				"row", row,
				"error", fmt.Sprint(r),
			)
		}
	}()
	fn(row, v)
}
