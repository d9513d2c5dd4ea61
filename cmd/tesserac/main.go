// Command tesserac is the driver for the tesserac language (spec.md
// §6): it lexes, parses, and interprets `.tess` source files, and
// exposes a handful of debug subcommands (token/AST dumps, a file
// watcher, forced module-interface regeneration) and an interactive
// REPL.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version info, set by ldflags during build.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Exit codes per spec.md §6.
const (
	exitSuccess      = 0
	exitCompileError = 1
	exitRuntimeError = 2
)

func main() {
	root := &cobra.Command{
		Use:   "tesserac",
		Short: "The tesserac language compiler front-end and interpreter",
		Long:  bold("tesserac") + " " + Version + "\nA small statically-typed imperative language.",
	}
	root.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newTokensCmd(),
		newASTCmd(),
		newWatchCmd(),
		newBuildIfaceCmd(),
		newReplCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(exitCompileError)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("tesserac %s\n", bold(Version))
			if Commit != "unknown" {
				fmt.Printf("Commit: %s\n", Commit)
			}
			if BuildTime != "unknown" {
				fmt.Printf("Built:  %s\n", BuildTime)
			}
			return nil
		},
	}
}
