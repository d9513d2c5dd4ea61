package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/tesserac/internal/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive tesserac REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl.New(Version).Start(os.Stdout)
			return nil
		},
	}
}
