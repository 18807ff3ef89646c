package core

// FieldType represents the kind of data an export field holds.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
	FieldNumeric
	FieldDocument
)

// FieldSpec defines one canonical column of an export schema.
type FieldSpec struct {
	Name       string              // Canonical column name, lower-case
	Synonyms   []string            // Alternative headers accepted for this field
	Type       FieldType           // Expected data type
	Required   bool                // Filled with empty values when absent from the input
	Normalizer func(string) string // Optional transformation applied to non-empty values
}

// SchemaInfo contains display information about an export schema.
type SchemaInfo struct {
	Key     string   `json:"key"`     // Unique identifier: "vendas"
	Label   string   `json:"label"`   // Display name: "Vendas"
	Columns []string `json:"columns"` // Canonical column names, in output order
}

// RowView gives schema hooks access to one row by canonical column name.
type RowView interface {
	Get(name string) string
	Set(name, value string)
}

// KeepRowFunc decides whether a normalized row is kept in the export.
type KeepRowFunc func(row RowView) bool

// DeriveFunc fills derived values (e.g. totals) into a normalized row.
// It reports whether it changed anything.
type DeriveFunc func(row RowView) bool

// ExportSchema contains everything needed to normalize a table for export.
type ExportSchema struct {
	Info       SchemaInfo
	FieldSpecs []FieldSpec
	Derive     DeriveFunc  // Optional
	KeepRow    KeepRowFunc // Optional; nil keeps every row
}

// HeaderIndex maps canonical field names to their position in the input table.
type HeaderIndex map[string]int
