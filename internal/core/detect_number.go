package core

import (
	"context"
)

const numberFormatDescription = `Formato numérico inconsistente. Normalizando para padrão BR (milhar "." e decimal ",").`

// NumberDetector flags every cell containing a digit whose Brazilian
// canonical form (see ToBR) differs from the original text.
type NumberDetector struct{}

// Name implements Detector.
func (NumberDetector) Name() string { return "number" }

// Detect implements Detector.
func (d NumberDetector) Detect(ctx context.Context, col ColumnData) []Issue {
	var issues []Issue
	eachCell(ctx, d.Name(), col, func(row int, v Cell) {
		s := v.String()
		if !HasDigit(s) {
			return
		}
		if canonical := ToBR(s); canonical != s {
			issues = append(issues, col.issue(row, s, IssueNumberFormat,
				numberFormatDescription, suggest(canonical)))
		}
	})
	return issues
}
