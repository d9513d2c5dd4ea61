// Package repl implements the interactive read-eval-print loop (spec.md
// §6): each line is lexed, parsed and interpreted against one
// persistent Environment/Registry pair, so declarations made on one
// line are visible on the next.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/interp"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// historyFileName is where line history persists across sessions.
const historyFileName = ".tesserac_history"

// REPL holds the state shared across lines: one Type Registry and one
// Interpreter, so a variable or function declared on one line stays
// visible on the next (spec.md §6's "the REPL behaves as though every
// line were appended to one growing source file").
type REPL struct {
	version string

	registry *typeregistry.Registry
	interp   *interp.Interpreter

	history []string
}

// New builds a REPL with a fresh Type Registry and Interpreter.
func New(version string) *REPL {
	if version == "" {
		version = "dev"
	}
	registry := typeregistry.New()
	return &REPL{
		version:  version,
		registry: registry,
		interp:   interp.New(registry),
	}
}

// Start runs the interactive loop against in/out until EOF or :quit.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyPath := filepath.Join(os.TempDir(), historyFileName)
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(l string) (c []string) {
		if !strings.HasPrefix(l, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":reset", ":clear"} {
			if strings.HasPrefix(cmd, l) {
				c = append(c, cmd)
			}
		}
		return c
	})

	fmt.Fprintf(out, "%s %s\n", bold("tesserac"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("tess> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if r.handleCommand(input, out) {
				break
			}
			continue
		}

		r.evalLine(input, out)
	}

	if f, err := os.Create(historyPath); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// evalLine lexes, parses and interprets one line against the REPL's
// persistent Registry/Interpreter, printing either the resulting value
// or a formatted diagnostic.
func (r *REPL) evalLine(input string, out io.Writer) {
	lex := lexer.New(input, "<repl>")
	file, errs := parser.Parse(lex, r.registry, "<repl>")
	if len(errs) > 0 {
		for _, e := range errs {
			printDiagnostic(out, e)
		}
		return
	}

	v, err := r.interp.Run(file.Node)
	if err != nil {
		printDiagnostic(out, err)
		return
	}
	if v != nil && v.Type() != "void" {
		fmt.Fprintf(out, "%s : %s = %s\n", cyan("result"), yellow(v.Type()), green(v.String()))
	}
}

func printDiagnostic(out io.Writer, err error) {
	if rep, ok := terrors.AsReport(err); ok {
		fmt.Fprintf(out, "%s [%s] %s\n", red("Error"), rep.Code, rep.Message)
		return
	}
	fmt.Fprintf(out, "%s %v\n", red("Error"), err)
}
