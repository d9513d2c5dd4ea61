package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// watchPollInterval is how often the file's mtime is checked. Plain
// os.Stat polling, not a filesystem-watch library (see DESIGN.md).
const watchPollInterval = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var dumpTokens, dumpAST bool

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Watch a file and re-run it whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFile(args[0], dumpTokens, dumpAST)
		},
	}
	cmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream on each run")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST on each run")
	return cmd
}

func watchFile(path string, dumpTokens, dumpAST bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	lastMod := info.ModTime()

	fmt.Printf("%s Watching %s for changes (Ctrl+C to stop)\n", cyan("watch"), path)
	runFile(path, dumpTokens, dumpAST)

	for {
		time.Sleep(watchPollInterval)
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}
		if !info.ModTime().After(lastMod) {
			continue
		}
		lastMod = info.ModTime()
		fmt.Printf("\n%s %s changed, re-running\n", yellow("→"), path)
		runFile(path, dumpTokens, dumpAST)
	}
}
