package core

import (
	"context"
	"regexp"
)

var (
	cpfPattern  = regexp.MustCompile(`^(\d{3}\.?\d{3}\.?\d{3}-?\d{2}|\d{11})$`)
	cnpjPattern = regexp.MustCompile(`^(\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}|\d{14})$`)
)

// DocumentDetector flags CPF and CNPJ numbers that fail their check digits or
// that are not written in the canonical mask.
type DocumentDetector struct{}

// Name implements Detector.
func (DocumentDetector) Name() string { return "document" }

// Detect implements Detector.
func (d DocumentDetector) Detect(ctx context.Context, col ColumnData) []Issue {
	total := col.nonEmpty()
	matches := 0
	for _, v := range col.Values {
		if v.IsEmpty() {
			continue
		}
		if s := v.String(); cpfPattern.MatchString(s) || cnpjPattern.MatchString(s) {
			matches++
		}
	}
	if !meetsDensity(matches, total) {
		return nil
	}

	var issues []Issue
	eachCell(ctx, d.Name(), col, func(row int, v Cell) {
		s := v.String()
		switch {
		case cpfPattern.MatchString(s):
			digits := ExtractDigits(s)
			if !ValidCPF(digits) {
				issues = append(issues, col.issue(row, s, IssueInvalidCPF,
					"CPF inválido: "+s, nil))
			} else if masked := FormatCPF(digits); s != masked {
				issues = append(issues, col.issue(row, s, IssueCPFFormat,
					"Formatação de CPF inconsistente: "+s, suggest(masked)))
			}

		case cnpjPattern.MatchString(s):
			digits := ExtractDigits(s)
			if !ValidCNPJ(digits) {
				issues = append(issues, col.issue(row, s, IssueInvalidCNPJ,
					"CNPJ inválido: "+s, nil))
			} else if masked := FormatCNPJ(digits); s != masked {
				issues = append(issues, col.issue(row, s, IssueCNPJFormat,
					"Formatação de CNPJ inconsistente: "+s, suggest(masked)))
			}
		}
	})
	return issues
}
