package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/tesserac/internal/ast"
	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/interp"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

func newRunCmd() *cobra.Command {
	var dumpTokens, dumpAST bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a tesserac source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := runFile(args[0], dumpTokens, dumpAST)
			if code != exitSuccess {
				os.Exit(code)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream before running")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before running")
	return cmd
}

// runFile lexes, parses, and interprets path, returning the process
// exit code spec.md §6 assigns: 0 success, 1 compile error, 2 runtime
// error.
func runFile(path string, dumpTokens, dumpAST bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), path, err)
		return exitCompileError
	}

	if dumpTokens {
		if err := printTokens(string(src), path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return exitCompileError
		}
	}

	registry := typeregistry.New()
	lex := lexer.New(string(src), path)
	file, errs := parser.Parse(lex, registry, path)
	if len(errs) > 0 {
		printCompileErrors(string(src), errs)
		return exitCompileError
	}

	if dumpAST {
		fmt.Println(ast.Print(file.Node))
	}

	it := interp.New(registry)
	result, err := it.Run(file.Node)
	if err != nil {
		printRuntimeError(string(src), err)
		return exitRuntimeError
	}

	if result != nil && result.Type() != "void" {
		fmt.Println(result.String())
	}
	return exitSuccess
}

func printCompileErrors(src string, errs []error) {
	for _, e := range errs {
		if rep, ok := terrors.AsReport(e); ok {
			fmt.Fprintf(os.Stderr, "%s %s\n", red("Error"), rep.Caret(src))
			continue
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error"), e)
	}
}

func printRuntimeError(src string, err error) {
	if rep, ok := terrors.AsReport(err); ok {
		fmt.Fprintf(os.Stderr, "%s %s\n", red("Runtime error"), rep.Caret(src))
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", red("Runtime error"), err)
}
