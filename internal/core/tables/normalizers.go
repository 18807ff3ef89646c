package tables

import (
	"strings"

	"github.com/JonMunkholm/planilha/internal/core"
)

// NormalizeTitle title-cases free text ("CAMISA polo" -> "Camisa Polo").
func NormalizeTitle(s string) string {
	return core.TitleCase(strings.TrimSpace(s))
}

// NormalizeDocument revalidates a CPF or CNPJ. A valid number comes back
// masked; anything else, including a well-shaped number with a wrong check
// digit, becomes core.InvalidMarker. There is no partial repair.
func NormalizeDocument(s string) string {
	digits := core.ExtractDigits(s)
	switch {
	case len(digits) == 11 && core.ValidCPF(digits):
		return core.FormatCPF(digits)
	case len(digits) == 14 && core.ValidCNPJ(digits):
		return core.FormatCNPJ(digits)
	default:
		return core.InvalidMarker
	}
}

// NormalizeNumber rewrites a number in Brazilian punctuation. Values without
// digits are returned unchanged.
func NormalizeNumber(s string) string {
	if !core.HasDigit(s) {
		return s
	}
	return core.ToBR(s)
}

// NormalizeDate rewrites a parseable date as dd/mm/yyyy and leaves anything
// else untouched.
func NormalizeDate(s string) string {
	if m, ok := core.ParseDate(s); ok {
		return m.BR()
	}
	return s
}

// RecomputeTotal sets total = quantity * unit price, rounded to 2 decimals,
// whenever the supplied total is missing, unparseable or not positive.
func RecomputeTotal(qtyField, priceField, totalField string) core.DeriveFunc {
	return func(row core.RowView) bool {
		if total, ok := core.ParseBRNumber(row.Get(totalField)); ok && total > 0 {
			return false
		}
		qty, okQty := core.ParseBRNumber(row.Get(qtyField))
		price, okPrice := core.ParseBRNumber(row.Get(priceField))
		if !okQty || !okPrice {
			return false
		}
		row.Set(totalField, core.FormatBRFixed(qty*price, 2))
		return true
	}
}

// RequireField keeps only rows where field is non-empty after trimming.
func RequireField(field string) core.KeepRowFunc {
	return func(row core.RowView) bool {
		return strings.TrimSpace(row.Get(field)) != ""
	}
}
