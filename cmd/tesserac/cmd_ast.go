package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Dump the parsed AST as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			registry := typeregistry.New()
			lex := lexer.New(string(src), args[0])
			file, errs := parser.Parse(lex, registry, args[0])
			if len(errs) > 0 {
				printCompileErrors(string(src), errs)
				os.Exit(exitCompileError)
			}
			fmt.Println(ast.Print(file.Node))
			return nil
		},
	}
}
