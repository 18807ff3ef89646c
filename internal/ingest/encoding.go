package ingest

// encoding.go turns uploaded bytes into text. Spreadsheets exported on
// Windows often start with a UTF-8 BOM or are not UTF-8 at all; the latter
// are read as ISO-8859-1, which maps every byte to a rune and so never fails.

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode strips a leading UTF-8 BOM and returns data as a UTF-8 string,
// falling back to ISO-8859-1 when data is not valid UTF-8.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decode latin-1: %v", ErrParseFailure, err)
	}
	return string(out), nil
}
