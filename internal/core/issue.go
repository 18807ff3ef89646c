package core

// IssueType identifies the kind of anomaly a detector found.
type IssueType string

const (
	IssueDateFormat   IssueType = "date_format"
	IssueInvalidCPF   IssueType = "invalid_cpf"
	IssueCPFFormat    IssueType = "cpf_format"
	IssueInvalidCNPJ  IssueType = "invalid_cnpj"
	IssueCNPJFormat   IssueType = "cnpj_format"
	IssueNumberFormat IssueType = "number_format"
	IssueTextCase     IssueType = "text_case"
)

// Issue describes one detected anomaly in one cell.
// SuggestedValue is nil when no safe automatic repair exists.
type Issue struct {
	Row            int       `json:"row"`
	Column         int       `json:"column"`
	ColumnName     string    `json:"column_name"`
	Value          string    `json:"value"`
	IssueType      IssueType `json:"issue_type"`
	Description    string    `json:"description"`
	SuggestedValue *string   `json:"suggested_value"`
}

// HasSuggestion reports whether the issue carries a replacement value.
func (i Issue) HasSuggestion() bool { return i.SuggestedValue != nil }

// Correction returns the directive that would apply this issue's suggestion.
// ok is false when the issue has no suggestion.
func (i Issue) Correction() (c Correction, ok bool) {
	if i.SuggestedValue == nil {
		return Correction{}, false
	}
	col := i.Column
	name := i.ColumnName
	return Correction{
		Row:            i.Row,
		Column:         &col,
		ColumnName:     &name,
		SuggestedValue: Text(*i.SuggestedValue),
	}, true
}

// ColumnData is the per-column input handed to every detector.
type ColumnData struct {
	Index  int
	Name   string
	Values []Cell
}

// issue builds an Issue located at row in this column.
func (c ColumnData) issue(row int, value string, typ IssueType, desc string, suggested *string) Issue {
	return Issue{
		Row:            row,
		Column:         c.Index,
		ColumnName:     c.Name,
		Value:          value,
		IssueType:      typ,
		Description:    desc,
		SuggestedValue: suggested,
	}
}

// nonEmpty counts the column's non-empty cells.
func (c ColumnData) nonEmpty() int {
	n := 0
	for _, v := range c.Values {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

func suggest(s string) *string { return &s }
