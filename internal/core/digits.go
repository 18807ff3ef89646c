package core

// digits.go holds the low-level helpers shared by the detectors and the
// export pipeline: digit extraction, the CPF/CNPJ check-digit validators and
// their canonical masks, and decomposition of loosely formatted numbers.
//
// Everything here is a pure function; no state is shared between calls.

import (
	"strings"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ExtractDigits returns only the ASCII digits of s, in order.
func ExtractDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ValidCPF reports whether digits is an 11-digit CPF with correct check digits.
func ValidCPF(digits string) bool {
	if !isDigitString(digits, cpfLength) || allSameDigit(digits) {
		return false
	}

	for i := 9; i < 11; i++ {
		sum := 0
		for k := 0; k < i; k++ {
			sum += digitAt(digits, k) * (i + 1 - k)
		}
		r := (sum * 10) % 11
		if r == 10 {
			r = 0
		}
		if r != digitAt(digits, i) {
			return false
		}
	}
	return true
}

// ValidCNPJ reports whether digits is a 14-digit CNPJ with correct check digits.
func ValidCNPJ(digits string) bool {
	if !isDigitString(digits, cnpjLength) || allSameDigit(digits) {
		return false
	}

	for pos, weights := range [][]int{cnpjWeights1, cnpjWeights2} {
		sum := 0
		for k, w := range weights {
			sum += digitAt(digits, k) * w
		}
		r := sum % 11
		want := 0
		if r >= 2 {
			want = 11 - r
		}
		if want != digitAt(digits, 12+pos) {
			return false
		}
	}
	return true
}

// FormatCPF masks 11 digits as xxx.xxx.xxx-xx. Other input is returned as-is.
func FormatCPF(digits string) string {
	if len(digits) != cpfLength {
		return digits
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// FormatCNPJ masks 14 digits as xx.xxx.xxx/xxxx-xx. Other input is returned as-is.
func FormatCNPJ(digits string) string {
	if len(digits) != cnpjLength {
		return digits
	}
	return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
}

// NumberParts is a number split into sign, integer digits and decimal digits.
type NumberParts struct {
	Sign    string // "", "+" or "-"
	Integer string // digits only, may be empty or carry leading zeros
	Decimal string // digits only; empty when there is no decimal part
}

// SplitNumber decomposes a loosely formatted number.
//
// Separator policy: when both '.' and ',' appear, the later one is the decimal
// separator. When only one of them appears it is a decimal separator if the
// last segment has 1 or 2 digits, otherwise every occurrence is a thousands
// separator.
func SplitNumber(s string) NumberParts {
	s = strings.TrimSpace(s)
	var parts NumberParts
	if s != "" && (s[0] == '+' || s[0] == '-') {
		parts.Sign, s = s[:1], s[1:]
	}
	s = strings.Join(strings.Fields(s), "")

	thousand, decimal := detectSeparators(s)
	integer := s
	var fraction string
	hasFraction := false
	if decimal != 0 {
		idx := strings.LastIndexByte(s, decimal)
		integer, fraction = s[:idx], s[idx+1:]
		hasFraction = true
	}
	if thousand != 0 {
		integer = strings.ReplaceAll(integer, string(thousand), "")
	}

	parts.Integer = ExtractDigits(integer)
	if hasFraction {
		parts.Decimal = ExtractDigits(fraction)
	}
	return parts
}

// detectSeparators returns the thousands and decimal separators of s; a zero
// byte means "none".
func detectSeparators(s string) (thousand, decimal byte) {
	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndexByte(s, ',') > strings.LastIndexByte(s, '.') {
			return '.', ','
		}
		return ',', '.'
	case hasComma:
		if isShortDigitSegment(s[strings.LastIndexByte(s, ',')+1:]) {
			return '.', ','
		}
		return ',', 0
	case hasDot:
		if isShortDigitSegment(s[strings.LastIndexByte(s, '.')+1:]) {
			return ',', '.'
		}
		return '.', 0
	}
	return 0, 0
}

// isShortDigitSegment reports whether seg is 1 or 2 digits.
func isShortDigitSegment(seg string) bool {
	return (len(seg) == 1 || len(seg) == 2) && isDigitString(seg, len(seg))
}

// FormatThousandsBR groups integer digits with '.' every three digits from the
// right. Leading zeros are stripped and an empty result becomes "0".
func FormatThousandsBR(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}

	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ToBR rewrites a number in Brazilian convention: '.' for thousands and ','
// for decimals. ToBR is idempotent on its own output for ordinary inputs.
func ToBR(s string) string {
	p := SplitNumber(s)
	out := p.Sign + FormatThousandsBR(p.Integer)
	if p.Decimal != "" {
		out += "," + p.Decimal
	}
	return out
}

// HasDigit reports whether s contains at least one ASCII digit.
func HasDigit(s string) bool {
	return strings.IndexAny(s, "0123456789") >= 0
}

// isDigitString reports whether s is exactly n ASCII digits.
func isDigitString(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsAllDigits reports whether s is non-empty and made only of ASCII digits.
func IsAllDigits(s string) bool {
	return s != "" && isDigitString(s, len(s))
}

func allSameDigit(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

func digitAt(s string, i int) int {
	return int(s[i] - '0')
}
