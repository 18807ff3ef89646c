// Package ingest converts between files and core tables: it parses CSV,
// XLSX and pasted text, and writes tables back out as CSV.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/planilha/internal/core"
)

var (
	// ErrUnsupportedFileFormat is returned for extensions other than .csv,
	// .xlsx and .xls.
	ErrUnsupportedFileFormat = errors.New("unsupported file format")

	// ErrEmptyInput is returned when there is no header row to read.
	ErrEmptyInput = errors.New("empty input")

	// ErrParseFailure wraps errors from the CSV and workbook readers.
	ErrParseFailure = errors.New("parse failure")
)

// sniffLines is how many non-blank lines SniffDelimiter samples.
const sniffLines = 10

// Parse reads a whole upload and dispatches on the file extension.
func Parse(filename string, r io.Reader) (*core.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".xlsx", ".xls":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileFormat, filename)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrParseFailure, filename, err)
	}
	if len(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))) == 0 {
		return nil, ErrEmptyInput
	}

	if ext == ".csv" {
		text, err := Decode(data)
		if err != nil {
			return nil, err
		}
		return parseDelimited(text)
	}
	return parseWorkbook(data)
}

// ParseText reads pasted delimited text.
func ParseText(s string) (*core.Table, error) {
	return parseDelimited(strings.TrimPrefix(s, "\ufeff"))
}

func parseDelimited(text string) (*core.Table, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = SniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			// Malformed line: skip it like a row with too many fields.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		records = append(records, record)
	}

	return buildTable(records, false)
}

func parseWorkbook(data []byte) (*core.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrParseFailure, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", ErrParseFailure, sheets[0], err)
	}
	return buildTable(rows, true)
}

// buildTable takes the first non-blank record as the header. With widen,
// rows longer than the header add unnamed columns (a worksheet has no
// malformed lines); otherwise they are skipped. Short rows are padded.
func buildTable(records [][]string, widen bool) (*core.Table, error) {
	start := -1
	for i, rec := range records {
		if !blankRecord(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrEmptyInput
	}

	header := records[start]
	body := make([][]string, 0, len(records)-start-1)
	for _, rec := range records[start+1:] {
		if blankRecord(rec) {
			continue
		}
		if len(rec) > len(header) {
			if !widen {
				continue
			}
			header = append(header, make([]string, len(rec)-len(header))...)
		}
		body = append(body, rec)
	}

	columns := MangleHeaders(header)
	for i, rec := range body {
		if len(rec) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, rec)
			body[i] = padded
		}
	}

	return core.NewTable(columns, inferCells(columns, body))
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// MangleHeaders names blank headers "Unnamed: N" (N is the position) and
// makes duplicates unique as name, name.1, name.2 and so on.
func MangleHeaders(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	next := make(map[string]int)

	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			next[h]++
			name = fmt.Sprintf("%s.%d", h, next[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// SniffDelimiter picks ';' or ',' for text. A delimiter is consistent when it
// occurs the same, non-zero number of times on each of the first sampled
// lines. If exactly one delimiter is consistent it wins; otherwise ';' is
// chosen only when the first line has strictly more of them than ','.
func SniffDelimiter(text string) rune {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == sniffLines {
			break
		}
	}
	if len(lines) == 0 {
		return ','
	}

	commaOK := consistent(lines, ',')
	semiOK := consistent(lines, ';')
	switch {
	case semiOK && !commaOK:
		return ';'
	case commaOK && !semiOK:
		return ','
	}

	if countUnquoted(lines[0], ';') > countUnquoted(lines[0], ',') {
		return ';'
	}
	return ','
}

func consistent(lines []string, d rune) bool {
	want := countUnquoted(lines[0], d)
	if want == 0 {
		return false
	}
	for _, line := range lines[1:] {
		if countUnquoted(line, d) != want {
			return false
		}
	}
	return true
}

// countUnquoted counts d outside double-quoted spans.
func countUnquoted(line string, d rune) int {
	n := 0
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == d && !quoted:
			n++
		}
	}
	return n
}
