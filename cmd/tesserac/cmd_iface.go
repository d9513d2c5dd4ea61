package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/module"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

func newBuildIfaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build-iface <file>",
		Short: "Force-regenerate the cached module interface for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildIface(args[0])
		},
	}
}

func buildIface(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return err
	}

	lex := lexer.New(string(src), abs)
	deps, errs := parser.ParseDependencies(lex, abs)
	if len(errs) > 0 {
		printCompileErrors(string(src), errs)
		os.Exit(exitCompileError)
	}

	registry := typeregistry.New()
	lex = lexer.New(string(src), abs)
	file, errs := parser.Parse(lex, registry, abs)
	if len(errs) > 0 {
		printCompileErrors(string(src), errs)
		os.Exit(exitCompileError)
	}

	iface := module.BuildInterface(deps, file.Node)

	resolver := module.NewResolver()
	cacheDir := resolver.CacheDir(filepath.Dir(abs))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	cachePath := filepath.Join(cacheDir, module.CacheFileName(abs))

	if err := iface.Save(cachePath, registry); err != nil {
		return err
	}
	fmt.Printf("%s Wrote module interface to %s\n", green("✓"), cachePath)
	return nil
}
