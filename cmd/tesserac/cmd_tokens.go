package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/tesserac/internal/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream for a tesserac source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return printTokens(string(src), args[0])
		},
	}
}

// printTokens lexes src and prints one line per token, stopping after
// EOF. A lexical error is reported and returned; whatever tokens
// preceded it have already been printed.
func printTokens(src, file string) error {
	lex := lexer.New(src, file)
	for {
		tok, err := lex.NextToken()
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %-20q %s\n", tok.Kind, tok.Lexeme, tok.Position())
		if tok.Kind == lexer.EOF {
			return nil
		}
	}
}
