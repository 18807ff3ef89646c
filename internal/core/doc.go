// Package core holds the column-wise issue detection, correction and export
// logic for tabular sales data. It has no transport dependencies and is
// shared by the HTTP server and the CLI.
//
// # Data model
//
// A [Table] is an ordered list of column names and rectangular rows of
// [Cell] values. A cell is Empty, Text or Number; numbers keep the text they
// were read from so that suggestions compare against what the user typed.
//
// # Detection
//
// [Process] runs every [Detector] over every column and returns a [Result]
// with a flat list of [Issue] records. The default detectors, in order:
//
//   - [DateDetector]: columns where at least 30% of non-empty cells look like
//     dates; once a second distinct date layout appears, every parsed row
//     from there on is flagged with a dd/mm/yyyy suggestion.
//   - [DocumentDetector]: CPF and CNPJ cells, checked with the modulo-11
//     check digits and compared against the masked form.
//   - [TextCaseDetector]: text columns whose predominant casing (more than
//     half of the cells) is upper, lower or title case.
//   - [NumberDetector]: every cell with a digit whose Brazilian form
//     (thousands ".", decimal ",") differs from the original.
//
// Detectors never fail: a cell that cannot be inspected is skipped.
//
// # Corrections
//
// [ApplyCorrections] writes caller-approved values back into a table. All
// directives are resolved before anything is written.
//
// # Export
//
// [NormalizeForExport] rewrites a table against a registered [ExportSchema]
// regardless of detected issues. Schemas are registered at init time by the
// tables subpackage:
//
//	core.Register(core.ExportSchema{
//	    Info:       core.SchemaInfo{Key: "vendas", Label: "Vendas"},
//	    FieldSpecs: []core.FieldSpec{{Name: "produto", Normalizer: NormalizeTitle}},
//	    KeepRow:    RequireField("produto"),
//	})
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Codes:
//
//   - FILE001-FILE005: input errors (format, empty, parse, size, missing)
//   - COR001-COR004: correction errors (column, mapping, row, body)
//   - SCH001: unknown export schema
//   - RATE001, UPL002, UPL004, UPL005: capacity and cancellation
package core
