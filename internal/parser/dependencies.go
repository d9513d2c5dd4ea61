package parser

import "github.com/sunholo/tesserac/internal/lexer"

// ParseDependencies implements spec.md §4.4's fast pre-pass:
// parse_dependencies(tokens) → [dependency-name]. It scans for
// top-level `import "name";` statements without building an AST or
// touching the Scope Chain or Type Registry, so the module loader can
// discover a file's dependency edges before committing to a full parse
// (and before any of the dependency's own types exist to resolve
// against).
func ParseDependencies(lex *lexer.Lexer, file string) ([]string, []error) {
	var deps []string
	var errs []error

	tok, err := lex.NextToken()
	for {
		if err != nil {
			errs = append(errs, err)
			tok, err = lex.NextToken()
			continue
		}
		if tok.Kind == lexer.EOF {
			break
		}
		if tok.Kind == lexer.IMPORT {
			nameTok, nerr := lex.NextToken()
			if nerr != nil {
				errs = append(errs, nerr)
			} else if nameTok.Kind == lexer.STRING {
				deps = append(deps, nameTok.Lexeme)
			}
		}
		tok, err = lex.NextToken()
	}

	return deps, errs
}
