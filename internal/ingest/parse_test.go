package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/planilha/internal/core"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune
	}{
		{name: "comma", text: "a,b,c\n1,2,3\n", want: ','},
		{name: "semicolon", text: "a;b;c\n1;2;3\n", want: ';'},
		{name: "semicolon with decimal commas", text: "produto;preco\nA;1,50\nB;2,75\n", want: ';'},
		{name: "comma inside quotes ignored", text: "a;b\n\"x,y\";2\n", want: ';'},
		{name: "single column", text: "nome\nAna\n", want: ','},
		{name: "both consistent tie prefers comma", text: "a;b,c\n1;2,3\n", want: ','},
		{name: "inconclusive semicolon majority", text: "a;b;c,d\n1;2\n", want: ';'},
		{name: "blank", text: "\n\n", want: ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffDelimiter(tt.text); got != tt.want {
				t.Errorf("SniffDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMangleHeaders(t *testing.T) {
	got := MangleHeaders([]string{"a", "", "a", "b", "a", " "})
	want := []string{"a", "Unnamed: 1", "a.1", "b", "a.2", "Unnamed: 5"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("MangleHeaders() = %v, want %v", got, want)
	}
}

func TestParseText(t *testing.T) {
	tbl, err := ParseText("Produto;Quantidade;Preço\ncamisa;10;1,50\n\ncalça;x;2,00\nsobra;1;2;3\nmeia;5\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}

	if got := strings.Join(tbl.Columns, "|"); got != "Produto|Quantidade|Preço" {
		t.Fatalf("Columns = %q", got)
	}
	// blank line and over-long row dropped
	if tbl.NumRows() != 3 {
		t.Fatalf("NumRows = %d, want 3", tbl.NumRows())
	}
	if got := tbl.Rows[2][2]; !got.IsEmpty() {
		t.Errorf("short row not padded with Empty: %#v", got)
	}
	// "x" keeps the quantity column textual
	if got := tbl.Rows[0][1]; got.Kind != core.CellText || got.Raw != "10" {
		t.Errorf("quantity cell = %#v, want Text 10", got)
	}
	if got := tbl.Rows[1][0].Raw; got != "calça" {
		t.Errorf("product = %q", got)
	}
}

func TestParseText_NumericInference(t *testing.T) {
	tbl, err := ParseText("id,valor,nome\n1,10.5,Ana\n2,,Bia\n3,7,\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}

	if c := tbl.Rows[0][0]; c.Kind != core.CellNumber || c.Num != 1 {
		t.Errorf("id = %#v, want Number 1", c)
	}
	if c := tbl.Rows[0][1]; c.Kind != core.CellNumber || c.Raw != "10.5" {
		t.Errorf("valor = %#v, want Number 10.5", c)
	}
	if c := tbl.Rows[1][1]; !c.IsEmpty() {
		t.Errorf("missing valor = %#v, want Empty", c)
	}
	if c := tbl.Rows[0][2]; c.Kind != core.CellText {
		t.Errorf("nome = %#v, want Text", c)
	}
	if c := tbl.Rows[2][2]; !c.IsEmpty() {
		t.Errorf("missing nome = %#v, want Empty", c)
	}
}

func TestParseText_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n \n"} {
		if _, err := ParseText(in); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ParseText(%q) err = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestParse_CSV(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("nome,cidade\nJoão,São Paulo\n")...)
	tbl, err := Parse("vendas.CSV", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Columns[0] != "nome" {
		t.Errorf("BOM not stripped: %q", tbl.Columns[0])
	}
	if got := tbl.Rows[0][1].Raw; got != "São Paulo" {
		t.Errorf("cidade = %q", got)
	}
}

func TestParse_Latin1(t *testing.T) {
	// "nome\nJosé\n" in ISO-8859-1
	data := []byte{'n', 'o', 'm', 'e', '\n', 'J', 'o', 's', 0xE9, '\n'}
	tbl, err := Parse("legado.csv", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tbl.Rows[0][0].Raw; got != "José" {
		t.Errorf("decoded = %q, want José", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     error
	}{
		{name: "unsupported extension", filename: "dados.pdf", data: []byte("x"), want: ErrUnsupportedFileFormat},
		{name: "no extension", filename: "dados", data: []byte("x"), want: ErrUnsupportedFileFormat},
		{name: "empty csv", filename: "dados.csv", data: nil, want: ErrEmptyInput},
		{name: "bom only", filename: "dados.csv", data: []byte{0xEF, 0xBB, 0xBF}, want: ErrEmptyInput},
		{name: "corrupt workbook", filename: "dados.xlsx", data: []byte("not a zip"), want: ErrParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.filename, bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Data", "Produto", "Qtd"},
		{"01/02/2024", "camisa", 3},
		{"2024-02-05", "calça", 1, "extra"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	tbl, err := Parse("planilha.xlsx", buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := strings.Join(tbl.Columns, "|"); got != "Data|Produto|Qtd|Unnamed: 3" {
		t.Errorf("Columns = %q", got)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", tbl.NumRows())
	}
	if c := tbl.Rows[0][2]; c.Kind != core.CellNumber || c.Num != 3 {
		t.Errorf("Qtd = %#v, want Number 3", c)
	}
	if c := tbl.Rows[0][3]; !c.IsEmpty() {
		t.Errorf("padding = %#v, want Empty", c)
	}
}

func TestWriteCSV(t *testing.T) {
	tbl, err := core.NewTable([]string{"produto", "obs"}, [][]core.Cell{
		{core.Text("Camisa"), core.Empty()},
		{core.Text("NA"), core.Text("a, b")},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "produto,obs\nCamisa,\nNA,\"a, b\"\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	tbl, _ := core.NewTable([]string{"a", "b"}, nil)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != "a,b\n" {
		t.Errorf("WriteCSV() = %q", buf.String())
	}
}

func TestWriteCSV_DuplicateColumns(t *testing.T) {
	tbl, err := core.NewTable([]string{"loja", "loja"}, [][]core.Cell{{core.Text("a"), core.Text("b")}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err == nil {
		t.Fatalf("expected error, wrote %q", buf.String())
	}
}
