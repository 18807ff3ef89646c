// Package tables registers the export schemas with the core registry.
// Import it for side effects wherever schemas are looked up:
//
//	import _ "github.com/JonMunkholm/planilha/internal/core/tables"
package tables
