package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSchemasCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schemas [key]",
		Short: "List export schemas or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				infos := ctx.service.ListSchemas()
				if asJSON {
					return writeJSON(cmd, infos)
				}
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{info.Key, info.Label, strings.Join(info.Columns, ", ")})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Chave", "Nome", "Colunas"}, rows, nil))
				return nil
			}

			fields, err := ctx.service.DescribeSchema(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, fields)
			}
			rows := make([][]string, 0, len(fields))
			for _, f := range fields {
				required := "não"
				if f.Required {
					required = "sim"
				}
				rows = append(rows, []string{f.Name, f.Type, required, strings.Join(f.Synonyms, ", ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Campo", "Tipo", "Obrigatório", "Sinônimos"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
