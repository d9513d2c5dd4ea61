package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/sunholo/tesserac/internal/interp"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// handleCommand dispatches a `:`-prefixed REPL command, returning true
// when the session should exit.
func (r *REPL) handleCommand(input string, out io.Writer) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case ":help", ":h":
		fmt.Fprintln(out, "REPL commands:")
		fmt.Fprintln(out, "  :help, :h     Show this help")
		fmt.Fprintln(out, "  :quit, :q     Exit the REPL")
		fmt.Fprintln(out, "  :reset        Clear all declarations and start fresh")
		fmt.Fprintln(out, "  :clear        Clear the screen")
		return false

	case ":quit", ":q", ":exit":
		fmt.Fprintln(out, green("Goodbye!"))
		return true

	case ":reset":
		r.registry = typeregistry.New()
		r.interp = interp.New(r.registry)
		fmt.Fprintln(out, dim("Session reset."))
		return false

	case ":clear":
		fmt.Fprint(out, "\033[H\033[2J")
		return false

	default:
		fmt.Fprintf(out, "Unknown command: %s\n", parts[0])
		fmt.Fprintln(out, dim("Type :help for help"))
		return false
	}
}
