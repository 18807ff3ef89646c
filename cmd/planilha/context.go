package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/planilha/internal/core"
	"github.com/JonMunkholm/planilha/internal/ingest"
	"github.com/JonMunkholm/planilha/internal/logging"
)

// stdinPath selects pasted text on stdin instead of a file.
const stdinPath = "-"

// requestContext returns the command context with a logger writing to the
// command's stderr, so stdout stays free for data.
func (c *commandContext) requestContext(cmd *cobra.Command) context.Context {
	logger := logging.New(cmd.ErrOrStderr(), *c.logLevel, *c.logFormat)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logger)
}

// readTable loads the table at path, or pasted text from the command's stdin
// when path is "-".
func readTable(cmd *cobra.Command, path string) (*core.Table, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return ingest.ParseText(string(data))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := ingest.Parse(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
