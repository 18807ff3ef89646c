package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestHeaderKey(t *testing.T) {
	tests := map[string]string{
		"Preço_Unitário":   "preco unitario",
		"  PRECO-UNITARIO": "preco unitario",
		"preco   unitario": "preco unitario",
		`="Data"`:          "data",
		"CPF/CNPJ":         "cpf/cnpj",
		"":                 "",
	}
	for input, want := range tests {
		if got := HeaderKey(input); got != want {
			t.Errorf("HeaderKey(%q) = %q, want %q", input, got, want)
		}
	}
}

var testSpecs = []FieldSpec{
	{Name: "produto", Synonyms: []string{"item"}, Required: true},
	{Name: "preco_unitario", Synonyms: []string{"preco"}, Type: FieldNumeric, Required: true},
	{Name: "obs", Synonyms: []string{"observacao"}},
	{Name: "categoria", Required: true},
}

func TestResolveHeaders(t *testing.T) {
	idx, missing := ResolveHeaders([]string{"Item", "Preço Unitário", "Produto", "Observação"}, testSpecs)

	want := HeaderIndex{"produto": 0, "preco_unitario": 1, "obs": 3}
	if len(idx) != len(want) {
		t.Fatalf("idx = %v, want %v", idx, want)
	}
	for k, v := range want {
		if idx[k] != v {
			t.Errorf("idx[%s] = %d, want %d", k, idx[k], v)
		}
	}
	if len(missing) != 1 || missing[0] != "categoria" {
		t.Errorf("missing = %v, want [categoria]", missing)
	}
}

func TestResolveHeaders_ColumnClaimedOnce(t *testing.T) {
	specs := []FieldSpec{
		{Name: "valor_total", Synonyms: []string{"valor"}},
		{Name: "valor_unitario", Synonyms: []string{"valor"}},
	}
	idx, _ := ResolveHeaders([]string{"Valor", "Valor"}, specs)
	if idx["valor_total"] != 0 || idx["valor_unitario"] != 1 {
		t.Errorf("idx = %v", idx)
	}
}

func testSchema() ExportSchema {
	return ExportSchema{
		Info: SchemaInfo{Key: "teste", Label: "Teste"},
		FieldSpecs: []FieldSpec{
			{Name: "produto", Synonyms: []string{"item"}, Required: true, Normalizer: strings.ToUpper},
			{Name: "qtd", Required: true},
			{Name: "nota", Required: false},
			{Name: "total", Required: true},
		},
		Derive: func(row RowView) bool {
			if row.Get("total") != "" {
				return false
			}
			row.Set("total", row.Get("qtd")+"0")
			return true
		},
		KeepRow: func(row RowView) bool { return row.Get("produto") != "" },
	}
}

func TestNormalizeForExport(t *testing.T) {
	in := &Table{
		Columns: []string{"Item", "Qtd", "Loja"},
		Rows: [][]Cell{
			{Text(" camisa "), NumberFromText("2"), Text("Centro")},
			{Empty(), NumberFromText("1"), Text("Sul")},
			{Text("meia"), NumberFromText("3"), Empty()},
		},
	}
	before := in.Clone()

	out, report, err := NormalizeForExport(context.Background(), in, testSchema())
	if err != nil {
		t.Fatalf("NormalizeForExport: %v", err)
	}

	if got := strings.Join(out.Columns, ","); got != "produto,qtd,total,loja" {
		t.Errorf("columns = %s", got)
	}
	want := [][]string{
		{"CAMISA", "2", "20", "Centro"},
		{"MEIA", "3", "30", ""},
	}
	if len(out.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(out.Rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if got := out.Rows[i][j].String(); got != want[i][j] {
				t.Errorf("cell (%d,%d) = %q, want %q", i, j, got, want[i][j])
			}
		}
	}

	if report.InputRows != 3 || report.OutputRows != 2 || report.DerivedRows != 3 {
		t.Errorf("report = %+v", report)
	}
	if len(report.DroppedRows) != 1 || report.DroppedRows[0] != 1 {
		t.Errorf("dropped = %v", report.DroppedRows)
	}
	if len(report.MissingColumns) != 1 || report.MissingColumns[0] != "total" {
		t.Errorf("missing = %v", report.MissingColumns)
	}

	if in.Rows[0][0] != before.Rows[0][0] || in.Columns[0] != "Item" {
		t.Error("input table was modified")
	}
}

func TestNormalizeForExport_ExtraColumnNamesUnique(t *testing.T) {
	in := &Table{
		Columns: []string{"Produto", "produto", "Loja", "LOJA", "Qtd"},
		Rows: [][]Cell{
			{Text("meia"), Text("x"), Text("a"), Text("b"), NumberFromText("1")},
		},
	}

	out, _, err := NormalizeForExport(context.Background(), in, testSchema())
	if err != nil {
		t.Fatalf("NormalizeForExport: %v", err)
	}

	want := "produto,qtd,total,produto.1,loja,loja.1"
	if got := strings.Join(out.Columns, ","); got != want {
		t.Errorf("columns = %s, want %s", got, want)
	}
	if got := out.Rows[0][3].String(); got != "x" {
		t.Errorf("produto.1 = %q, want x", got)
	}
}

func TestNormalizeForExport_NoFields(t *testing.T) {
	_, _, err := NormalizeForExport(context.Background(), &Table{}, ExportSchema{Info: SchemaInfo{Key: "vazio"}})
	if err == nil {
		t.Fatal("expected error for schema without fields")
	}
}

func TestNormalizeForExportByKey(t *testing.T) {
	_, _, err := NormalizeForExportByKey(context.Background(), &Table{}, "nao_existe")
	if !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("err = %v, want ErrUnknownSchema", err)
	}

	if _, ok := Get("teste_registro"); !ok {
		Register(ExportSchema{
			Info:       SchemaInfo{Key: "teste_registro"},
			FieldSpecs: []FieldSpec{{Name: "a", Required: true}},
		})
	}
	schema, ok := Get("teste_registro")
	if !ok || len(schema.Info.Columns) != 1 || schema.Info.Columns[0] != "a" {
		t.Fatalf("registered schema = %+v", schema)
	}

	out, _, err := NormalizeForExportByKey(context.Background(), &Table{Columns: []string{"A"}, Rows: [][]Cell{{Text("x")}}}, "teste_registro")
	if err != nil {
		t.Fatal(err)
	}
	if out.Columns[0] != "a" || out.Rows[0][0].String() != "x" {
		t.Errorf("out = %+v", out)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	if _, ok := Get("teste_dup"); !ok {
		Register(ExportSchema{Info: SchemaInfo{Key: "teste_dup"}, FieldSpecs: []FieldSpec{{Name: "a"}}})
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate key")
		}
	}()
	Register(ExportSchema{Info: SchemaInfo{Key: "teste_dup"}})
}
