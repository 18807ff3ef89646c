// Command planilha analyzes and normalizes sales spreadsheets from the
// command line, using the same engine as the HTTP server.
//
//	planilha analyze vendas.csv
//	planilha analyze --json vendas.xlsx > issues.json
//	planilha export --fix -o vendas_corrigidas.csv vendas.csv
//	planilha schemas vendas
//
// A path of "-" reads pasted text from stdin.
package main
