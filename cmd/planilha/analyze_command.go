package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/planilha/internal/core"
)

const (
	formatAuto  = "auto"
	formatTable = "table"
	formatJSON  = "json"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var format string
	var limit int

	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "List formatting issues found in a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(cmd, args[0])
			if err != nil {
				return err
			}

			res, err := ctx.service.Analyze(ctx.requestContext(cmd), table)
			if err != nil {
				return err
			}

			switch resolveFormat(cmd, format) {
			case formatJSON:
				return writeJSON(cmd, res)
			default:
				printAnalysis(cmd, table, res, limit)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", formatAuto, "Output format (auto, table, json)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of issues listed in table output (0 for all)")
	return cmd
}

// resolveFormat turns "auto" into table output on a terminal and JSON
// everywhere else.
func resolveFormat(cmd *cobra.Command, format string) string {
	if format != formatAuto {
		return format
	}
	if isTerminal(cmd.OutOrStdout()) {
		return formatTable
	}
	return formatJSON
}

func printAnalysis(cmd *cobra.Command, table *core.Table, res *core.Result, limit int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Análise %s: %d linhas, %d colunas, %d problemas\n",
		res.AnalysisID, table.NumRows(), len(table.Columns), len(res.Issues))
	if len(res.Issues) == 0 {
		return
	}

	summary := res.Summary()
	types := make([]string, 0, len(summary))
	for typ := range summary {
		types = append(types, string(typ))
	}
	sort.Strings(types)
	summaryRows := make([][]string, 0, len(types))
	for _, typ := range types {
		summaryRows = append(summaryRows, []string{typ, strconv.Itoa(summary[core.IssueType(typ)])})
	}
	fmt.Fprintln(out, renderTable([]string{"Tipo", "Ocorrências"}, summaryRows, []columnAlignment{alignLeft, alignRight}))

	issues := res.Issues
	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}
	rows := make([][]string, 0, len(issues))
	for _, is := range issues {
		suggestion := "-"
		if is.SuggestedValue != nil {
			suggestion = *is.SuggestedValue
		}
		rows = append(rows, []string{
			strconv.Itoa(is.Row),
			is.ColumnName,
			string(is.IssueType),
			is.Value,
			suggestion,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Linha", "Coluna", "Tipo", "Valor", "Sugestão"},
		rows,
		[]columnAlignment{alignRight},
	))
	if hidden := len(res.Issues) - len(issues); hidden > 0 {
		fmt.Fprintf(out, "... mais %d problemas (use --limit 0 ou --format json)\n", hidden)
	}
}
