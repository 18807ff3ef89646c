package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/planilha/internal/logging"
)

// InvalidMarker replaces document numbers that fail revalidation on export.
const InvalidMarker = "INVÁLIDO"

// ExportReport summarizes what NormalizeForExport changed.
type ExportReport struct {
	Schema         string   `json:"schema"`
	InputRows      int      `json:"input_rows"`
	OutputRows     int      `json:"output_rows"`
	DroppedRows    []int    `json:"dropped_rows"`
	MissingColumns []string `json:"missing_columns"`
	DerivedRows    int      `json:"derived_rows"`
}

// exportRow implements RowView over the canonical values of one row.
type exportRow struct {
	values map[string]string
}

func (r *exportRow) Get(name string) string { return r.values[name] }
func (r *exportRow) Set(name, value string) { r.values[name] = value }

// NormalizeForExport rewrites every row of t according to schema, regardless
// of detected issues. Headers are aliased onto the schema's canonical names,
// missing required columns are filled with empty values, every field is run
// through its normalizer and the schema's derive and keep-row hooks decide
// the final content. Input columns the schema does not know are appended
// after the canonical ones under their lower-cased names, suffixed ".1",
// ".2", ... when that name is already taken. t is not modified.
func NormalizeForExport(ctx context.Context, t *Table, schema ExportSchema) (*Table, *ExportReport, error) {
	if len(schema.FieldSpecs) == 0 {
		return nil, nil, fmt.Errorf("schema %q has no fields", schema.Info.Key)
	}

	idx, missing := ResolveHeaders(t.Columns, schema.FieldSpecs)
	report := &ExportReport{
		Schema:         schema.Info.Key,
		InputRows:      t.NumRows(),
		DroppedRows:    []int{},
		MissingColumns: missing,
	}
	if report.MissingColumns == nil {
		report.MissingColumns = []string{}
	}

	// Output layout: known fields (present or required), then extras.
	var fields []FieldSpec
	for _, spec := range schema.FieldSpecs {
		if _, ok := idx[spec.Name]; ok || spec.Required {
			fields = append(fields, spec)
		}
	}
	mapped := make(map[int]bool, len(idx))
	for _, pos := range idx {
		mapped[pos] = true
	}
	var extras []int
	columns := make([]string, 0, len(fields)+len(t.Columns))
	used := make(map[string]bool, len(fields)+len(t.Columns))
	for _, spec := range fields {
		columns = append(columns, spec.Name)
		used[spec.Name] = true
	}
	next := make(map[string]int)
	for i, name := range t.Columns {
		if mapped[i] {
			continue
		}
		extras = append(extras, i)
		base := strings.ToLower(strings.TrimSpace(name))
		name = base
		for used[name] {
			next[base]++
			name = fmt.Sprintf("%s.%d", base, next[base])
		}
		used[name] = true
		columns = append(columns, name)
	}

	out := &Table{Columns: columns, Rows: make([][]Cell, 0, t.NumRows())}
	for r, row := range t.Rows {
		view := &exportRow{values: make(map[string]string, len(fields))}
		for _, spec := range fields {
			value := ""
			if pos, ok := idx[spec.Name]; ok {
				value = strings.TrimSpace(row[pos].String())
			}
			if value != "" && spec.Normalizer != nil {
				value = spec.Normalizer(value)
			}
			view.values[spec.Name] = value
		}

		if schema.Derive != nil && schema.Derive(view) {
			report.DerivedRows++
		}
		if schema.KeepRow != nil && !schema.KeepRow(view) {
			report.DroppedRows = append(report.DroppedRows, r)
			continue
		}

		cells := make([]Cell, 0, len(columns))
		for _, spec := range fields {
			cells = append(cells, Text(view.values[spec.Name]))
		}
		for _, pos := range extras {
			cells = append(cells, row[pos])
		}
		out.Rows = append(out.Rows, cells)
	}
	report.OutputRows = out.NumRows()

	logging.FromContext(ctx).Info("export normalized",
		"schema", schema.Info.Key,
		"input_rows", report.InputRows,
		"output_rows", report.OutputRows,
		"dropped", len(report.DroppedRows),
		"missing_columns", strings.Join(report.MissingColumns, ","),
		"derived", report.DerivedRows,
	)
	return out, report, nil
}

// NormalizeForExportByKey looks the schema up in the registry and normalizes t.
func NormalizeForExportByKey(ctx context.Context, t *Table, key string) (*Table, *ExportReport, error) {
	schema, ok := Get(key)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownSchema, key)
	}
	return NormalizeForExport(ctx, t, schema)
}
