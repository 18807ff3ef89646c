package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/planilha/internal/core"
	"github.com/JonMunkholm/planilha/internal/ingest"
)

const sampleInput = "Produto;CPF;Qtd;Preço;Total\n" +
	"camisa polo;52998224725;2;10,50;0\n" +
	"CALÇA;529.982.247-25;1;99,90;99,90\n" +
	"Meia;111.111.111-11;3;5;15\n"

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	out, _, err := runCLI(t, sampleInput, "analyze", "--format", "json", "-")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var res core.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(res.Columns) != 5 {
		t.Errorf("columns = %v", res.Columns)
	}

	var sawFormat, sawInvalid bool
	for _, is := range res.Issues {
		if is.ColumnName != "CPF" {
			continue
		}
		switch is.IssueType {
		case core.IssueCPFFormat:
			sawFormat = is.Row == 0
		case core.IssueInvalidCPF:
			sawInvalid = is.Row == 2 && is.SuggestedValue == nil
		}
	}
	if !sawFormat || !sawInvalid {
		t.Errorf("missing CPF issues in %+v", res.Issues)
	}
}

func TestAnalyzeTable(t *testing.T) {
	out, _, err := runCLI(t, sampleInput, "analyze", "--format", "table", "-")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"3 linhas", "cpf_format", "529.982.247-25", "invalid_cpf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeTableLimit(t *testing.T) {
	out, _, err := runCLI(t, sampleInput, "analyze", "--format", "table", "--limit", "1", "-")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "... mais") {
		t.Errorf("expected truncation notice:\n%s", out)
	}
}

func TestExportFix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	_, stderr, err := runCLI(t, sampleInput, "export", "--fix", "-o", path, "-")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(stderr, "vendas: 3 de 3 linhas exportadas") {
		t.Errorf("stderr = %q", stderr)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	table, err := ingest.Parse("out.csv", f)
	if err != nil {
		t.Fatalf("re-read export: %v", err)
	}

	wantCols := "data_venda,produto,categoria,vendedor,documento,quantidade,preco_unitario,valor_total"
	if got := strings.Join(table.Columns, ","); got != wantCols {
		t.Errorf("columns = %s", got)
	}

	docs := table.Column(table.ColumnIndex("documento"))
	if docs[0].String() != "529.982.247-25" || docs[2].String() != core.InvalidMarker {
		t.Errorf("documento = %v", docs)
	}
	totals := table.Column(table.ColumnIndex("valor_total"))
	if totals[0].String() != "21,00" {
		t.Errorf("recomputed total = %q, want 21,00", totals[0].String())
	}
	products := table.Column(table.ColumnIndex("produto"))
	if products[0].String() != "Camisa Polo" || products[1].String() != "Calça" {
		t.Errorf("produto = %v", products)
	}
}

func TestExportFixKeepsDates(t *testing.T) {
	input := "Data;Produto;CPF;Qtd;Preço\n" +
		"01/02/2023;camisa;52998224725;2;10,50\n" +
		"2023-03-04;calça;11144477735;1;5\n"

	out, _, err := runCLI(t, input, "export", "--fix", "-")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	table, err := ingest.Parse("out.csv", strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-read export: %v\n%s", err, out)
	}

	tests := []struct {
		column string
		want   []string
	}{
		{"data_venda", []string{"01/02/2023", "04/03/2023"}},
		{"documento", []string{"529.982.247-25", "111.444.777-35"}},
		{"produto", []string{"Camisa", "Calça"}},
	}
	for _, tt := range tests {
		cells := table.Column(table.ColumnIndex(tt.column))
		if len(cells) != len(tt.want) {
			t.Fatalf("%s = %v, want %v", tt.column, cells, tt.want)
		}
		for i, want := range tt.want {
			if got := cells[i].String(); got != want {
				t.Errorf("%s[%d] = %q, want %q", tt.column, i, got, want)
			}
		}
	}
}

func TestSuggestedCorrections(t *testing.T) {
	s := func(v string) *string { return &v }
	issues := []core.Issue{
		{Row: 1, Column: 0, ColumnName: "Data", Value: "2023-03-04", IssueType: core.IssueDateFormat, SuggestedValue: s("04/03/2023")},
		{Row: 0, Column: 0, ColumnName: "Data", Value: "01/02/2023", IssueType: core.IssueNumberFormat, SuggestedValue: s("1.022.023")},
		{Row: 1, Column: 0, ColumnName: "Data", Value: "2023-03-04", IssueType: core.IssueNumberFormat, SuggestedValue: s("20.230.304")},
		{Row: 0, Column: 1, ColumnName: "CPF", Value: "111.111.111-11", IssueType: core.IssueInvalidCPF},
		{Row: 0, Column: 1, ColumnName: "CPF", Value: "111.111.111-11", IssueType: core.IssueNumberFormat, SuggestedValue: s("11.111.111.111")},
		{Row: 0, Column: 2, ColumnName: "Valor", Value: "1234.5", IssueType: core.IssueNumberFormat, SuggestedValue: s("1.234,5")},
		{Row: 0, Column: 3, ColumnName: "Obs", Value: "entregue 10/01/2024", IssueType: core.IssueNumberFormat, SuggestedValue: s("10.012.024")},
	}

	got := suggestedCorrections(issues)
	want := []struct {
		row   int
		name  string
		value string
	}{
		{1, "Data", "04/03/2023"},
		{0, "Valor", "1.234,5"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d corrections, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Row != w.row || *got[i].ColumnName != w.name || got[i].SuggestedValue.String() != w.value {
			t.Errorf("correction %d = row %d %s %q, want row %d %s %q",
				i, got[i].Row, *got[i].ColumnName, got[i].SuggestedValue.String(), w.row, w.name, w.value)
		}
	}
}

func TestExportStdout(t *testing.T) {
	out, _, err := runCLI(t, "produto,total\nmeia,5\n", "export", "-")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "data_venda,produto,") {
		t.Errorf("csv = %q", out)
	}
}

func TestExportDuplicateExtraHeaders(t *testing.T) {
	out, _, err := runCLI(t, "Produto;produto;Loja;LOJA\nMeia;x;a;b\n", "export", "-")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	header, _, _ := strings.Cut(out, "\n")
	want := "data_venda,produto,categoria,vendedor,documento,quantidade,preco_unitario,valor_total,produto.1,loja,loja.1"
	if header != want {
		t.Errorf("header = %q, want %q", header, want)
	}
}

func TestExportUnknownSchema(t *testing.T) {
	_, _, err := runCLI(t, sampleInput, "export", "--schema", "pedidos", "-")
	if !errors.Is(err, core.ErrUnknownSchema) {
		t.Fatalf("err = %v, want ErrUnknownSchema", err)
	}
	if text := errorText(err); !strings.Contains(text, "SCH001") {
		t.Errorf("errorText = %q", text)
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"user facing", fmt.Errorf("export: %w", core.ErrInvalidRowIndex), []string{"Código: COR003", "(export: invalid row index"}},
		{"unknown", errors.New("disk on fire"), []string{"disk on fire"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorText(tt.err)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("errorText() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestSchemas(t *testing.T) {
	out, _, err := runCLI(t, "", "schemas")
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	if !strings.Contains(out, "vendas") {
		t.Errorf("output = %s", out)
	}

	out, _, err = runCLI(t, "", "schemas", "--json", "vendas")
	if err != nil {
		t.Fatalf("schemas vendas: %v", err)
	}
	var fields []core.FieldDescription
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		t.Fatal(err)
	}
	if len(fields) != 8 || fields[4].Name != "documento" || fields[4].Type != "document" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "analyze", filepath.Join(t.TempDir(), "nada.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAnalyzeUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notas.txt")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, "", "analyze", path)
	if !errors.Is(err, ingest.ErrUnsupportedFileFormat) {
		t.Fatalf("err = %v", err)
	}
}
