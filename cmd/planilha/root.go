package main

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/planilha/internal/core"
	_ "github.com/JonMunkholm/planilha/internal/core/tables" // Register export schemas
)

func newRootCommand() *cobra.Command {
	var logLevel string
	var logFormat string

	ctx := newCommandContext(&logLevel, &logFormat)

	rootCmd := &cobra.Command{
		Use:           "planilha",
		Short:         "Detect and fix formatting issues in sales spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newSchemasCommand(ctx))

	return rootCmd
}

// commandContext carries state shared by every subcommand.
type commandContext struct {
	logLevel  *string
	logFormat *string
	service   *core.Service
}

func newCommandContext(logLevel, logFormat *string) *commandContext {
	return &commandContext{
		logLevel:  logLevel,
		logFormat: logFormat,
		service:   core.NewService(),
	}
}
