package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/planilha/internal/core"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, errorText(err))
		}
		os.Exit(1)
	}
}

// errorText prefers the user-facing message for known errors.
func errorText(err error) string {
	if !core.IsUserFacing(err) {
		return err.Error()
	}
	ue := core.NewUserError(err)
	return fmt.Sprintf("%s\n(%v)", ue.Display(), ue.Technical)
}
