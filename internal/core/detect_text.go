package core

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseStyle is a letter-casing convention.
type CaseStyle string

const (
	CaseUpper CaseStyle = "UPPERCASE"
	CaseLower CaseStyle = "lowercase"
	CaseTitle CaseStyle = "Title Case"
	CaseMixed CaseStyle = "mixed"
)

var caseDescriptions = map[CaseStyle]string{
	CaseUpper: "Texto não está em maiúsculas como o padrão da coluna",
	CaseLower: "Texto não está em minúsculas como o padrão da coluna",
	CaseTitle: "Texto não está em formato título como o padrão da coluna",
}

// caser bundles the case transforms for one goroutine. cases.Caser values
// are stateful and must not be shared.
type caser struct {
	upper, lower, title cases.Caser
}

func newCaser() caser {
	return caser{
		upper: cases.Upper(language.BrazilianPortuguese),
		lower: cases.Lower(language.BrazilianPortuguese),
		title: cases.Title(language.BrazilianPortuguese),
	}
}

// classify returns the single style s belongs to. Upper and lower require at
// least one cased letter.
func (c caser) classify(s string) CaseStyle {
	upper, lower := c.upper.String(s), c.lower.String(s)
	switch {
	case s == upper && s != lower:
		return CaseUpper
	case s == lower && s != upper:
		return CaseLower
	case s == c.title.String(s):
		return CaseTitle
	default:
		return CaseMixed
	}
}

// conforms reports whether s already follows style.
func (c caser) conforms(style CaseStyle, s string) bool {
	switch style {
	case CaseUpper:
		return s == c.upper.String(s) && s != c.lower.String(s)
	case CaseLower:
		return s == c.lower.String(s) && s != c.upper.String(s)
	case CaseTitle:
		return s == c.title.String(s)
	}
	return false
}

// apply transforms s into style.
func (c caser) apply(style CaseStyle, s string) string {
	switch style {
	case CaseUpper:
		return c.upper.String(s)
	case CaseLower:
		return c.lower.String(s)
	case CaseTitle:
		return c.title.String(s)
	}
	return s
}

// TitleCase returns s with the first letter of every word upper-cased and the
// rest lower-cased.
func TitleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// TextCaseDetector flags free text that does not follow the column's
// predominant letter casing.
type TextCaseDetector struct{}

// Name implements Detector.
func (TextCaseDetector) Name() string { return "text_case" }

// Detect implements Detector.
func (d TextCaseDetector) Detect(ctx context.Context, col ColumnData) []Issue {
	total := col.nonEmpty()
	textual := 0
	for _, v := range col.Values {
		if v.IsText() && !IsAllDigits(v.String()) {
			textual++
		}
	}
	if !meetsDensity(textual, total) {
		return nil
	}

	c := newCaser()
	counts := make(map[CaseStyle]int)
	classified := 0
	for _, v := range col.Values {
		if v.IsText() {
			counts[c.classify(v.String())]++
			classified++
		}
	}
	if classified == 0 {
		return nil
	}

	predominant := CaseMixed
	for _, style := range []CaseStyle{CaseUpper, CaseLower, CaseTitle} {
		if counts[style]*2 > classified {
			predominant = style
			break
		}
	}
	if predominant == CaseMixed {
		return nil
	}

	var issues []Issue
	eachCell(ctx, d.Name(), col, func(row int, v Cell) {
		if !v.IsText() {
			return
		}
		s := v.String()
		if c.conforms(predominant, s) {
			return
		}
		fixed := c.apply(predominant, s)
		if fixed == s {
			return
		}
		issues = append(issues, col.issue(row, s, IssueTextCase,
			caseDescriptions[predominant], suggest(fixed)))
	})
	return issues
}
