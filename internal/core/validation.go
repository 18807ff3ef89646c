package core

// validation.go maps free-form input headers onto an export schema.
//
// Headers are compared by a folded key: lower-cased, accents removed, '_'
// and '-' treated as spaces and repeated spaces collapsed. That lets
// "Preço_Unitário", "preco unitario" and "PRECO-UNITARIO" all land on the same
// field. The first input column that matches a field claims it.

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// HeaderKey folds a header into its comparison key.
func HeaderKey(h string) string {
	h = CleanCell(h)
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripAccents, h); err == nil {
		h = folded
	}
	h = strings.ToLower(h)
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// ResolveHeaders maps each field of specs to the first input column whose
// folded header equals the field name or one of its synonyms. It returns the
// mapping and the names of required fields that were not found.
func ResolveHeaders(headers []string, specs []FieldSpec) (HeaderIndex, []string) {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = HeaderKey(h)
	}

	idx := make(HeaderIndex, len(specs))
	claimed := make(map[int]bool)
	var missing []string

	for _, spec := range specs {
		accepted := map[string]bool{HeaderKey(spec.Name): true}
		for _, syn := range spec.Synonyms {
			accepted[HeaderKey(syn)] = true
		}

		found := false
		for i, k := range keys {
			if !claimed[i] && accepted[k] {
				idx[spec.Name] = i
				claimed[i] = true
				found = true
				break
			}
		}
		if !found && spec.Required {
			missing = append(missing, spec.Name)
		}
	}

	return idx, missing
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldDocument:
		return "document"
	default:
		return "value"
	}
}

// String implements fmt.Stringer.
func (ft FieldType) String() string { return fieldTypeName(ft) }
