package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/planilha/internal/core"
	"github.com/JonMunkholm/planilha/internal/ingest"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string
	var schema string
	var fix bool

	cmd := &cobra.Command{
		Use:   "export <file|->",
		Short: "Normalize a spreadsheet to an export schema and write it as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(cmd, args[0])
			if err != nil {
				return err
			}
			reqCtx := ctx.requestContext(cmd)

			if fix {
				res, err := ctx.service.Analyze(reqCtx, table)
				if err != nil {
					return err
				}
				table, err = ctx.service.ApplyCorrections(reqCtx, table, suggestedCorrections(res.Issues), nil)
				if err != nil {
					return err
				}
			}

			out, report, err := ctx.service.Export(reqCtx, table, schema)
			if err != nil {
				return err
			}

			if output == "" || output == stdinPath {
				if err := ingest.WriteCSV(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else if err := writeCSVFile(output, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d de %d linhas exportadas", report.Schema, report.OutputRows, report.InputRows)
			if n := len(report.DroppedRows); n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), ", %d descartadas", n)
			}
			fmt.Fprintln(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV path (default stdout)")
	cmd.Flags().StringVar(&schema, "schema", "vendas", "Export schema key")
	cmd.Flags().BoolVar(&fix, "fix", false, "Apply suggested corrections before exporting")
	return cmd
}

type cellKey struct{ row, column int }

// suggestedCorrections turns issues into corrections addressed by column
// name, at most one per cell. The first issue reported for a cell decides
// it, even when it has no suggestion. Number-format fixes are left out of
// columns another detector claimed and of date-shaped values, since grouping
// their digits would destroy them.
func suggestedCorrections(issues []core.Issue) []core.Correction {
	claimed := make(map[int]bool)
	for _, is := range issues {
		if is.IssueType != core.IssueNumberFormat {
			claimed[is.Column] = true
		}
	}

	seen := make(map[cellKey]bool, len(issues))
	corrections := make([]core.Correction, 0, len(issues))
	for _, is := range issues {
		key := cellKey{is.Row, is.Column}
		if seen[key] {
			continue
		}
		seen[key] = true

		if is.IssueType == core.IssueNumberFormat && (claimed[is.Column] || core.HasDateShape(is.Value)) {
			continue
		}
		if c, ok := is.Correction(); ok {
			corrections = append(corrections, c)
		}
	}
	return corrections
}

func writeCSVFile(path string, t *core.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := ingest.WriteCSV(w, t); err != nil {
		return err
	}
	return w.Flush()
}
