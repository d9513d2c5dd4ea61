package errors

import (
	"strings"
	"testing"
)

func TestErrorCodeTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		phase    string
		category string
	}{
		{"LEX001", LEX001, "lexer", "literal"},
		{"LEX005", LEX005, "lexer", "operator"},

		{"SYN001", SYN001, "parser", "syntax"},
		{"SYN006", SYN006, "parser", "syntax"},

		{"SEM001", SEM001, "semantic", "scope"},
		{"SEM005", SEM005, "semantic", "overload"},
		{"SEM007", SEM007, "semantic", "type"},

		{"MOD001", MOD001, "module", "resolution"},
		{"MOD003", MOD003, "module", "dependency"},

		{"RT001", RT001, "runtime", "bounds"},
		{"RT003", RT003, "runtime", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, exists := GetErrorInfo(tt.code)
			if !exists {
				t.Errorf("error code %s not found in registry", tt.code)
				return
			}

			if info.Code != tt.code {
				t.Errorf("code mismatch: got %s, want %s", info.Code, tt.code)
			}

			if info.Phase != tt.phase {
				t.Errorf("phase mismatch for %s: got %s, want %s", tt.code, info.Phase, tt.phase)
			}

			if info.Category != tt.category {
				t.Errorf("category mismatch for %s: got %s, want %s", tt.code, info.Category, tt.category)
			}
		})
	}
}

func TestErrorTypeCheckers(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		isLex      bool
		isSyntax   bool
		isSemantic bool
		isModule   bool
		isRuntime  bool
	}{
		{"Lexical error", LEX001, true, false, false, false, false},
		{"Syntax error", SYN001, false, true, false, false, false},
		{"Semantic error", SEM001, false, false, true, false, false},
		{"Module error", MOD001, false, false, false, true, false},
		{"Runtime error", RT001, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLexError(tt.code); got != tt.isLex {
				t.Errorf("IsLexError(%s) = %v, want %v", tt.code, got, tt.isLex)
			}
			if got := IsSyntaxError(tt.code); got != tt.isSyntax {
				t.Errorf("IsSyntaxError(%s) = %v, want %v", tt.code, got, tt.isSyntax)
			}
			if got := IsSemanticError(tt.code); got != tt.isSemantic {
				t.Errorf("IsSemanticError(%s) = %v, want %v", tt.code, got, tt.isSemantic)
			}
			if got := IsModuleError(tt.code); got != tt.isModule {
				t.Errorf("IsModuleError(%s) = %v, want %v", tt.code, got, tt.isModule)
			}
			if got := IsRuntimeError(tt.code); got != tt.isRuntime {
				t.Errorf("IsRuntimeError(%s) = %v, want %v", tt.code, got, tt.isRuntime)
			}
		})
	}
}

func TestAllErrorCodesInRegistry(t *testing.T) {
	allCodes := []string{
		LEX001, LEX002, LEX003, LEX004, LEX005,
		SYN001, SYN002, SYN003, SYN004, SYN005, SYN006,
		SEM001, SEM002, SEM003, SEM004, SEM005, SEM006, SEM007,
		MOD001, MOD002, MOD003, MOD004,
		RT001, RT002, RT003,
	}

	for _, code := range allCodes {
		t.Run(code, func(t *testing.T) {
			_, exists := GetErrorInfo(code)
			if !exists {
				t.Errorf("error code %s is defined but not in registry", code)
			}
		})
	}

	if len(ErrorRegistry) != len(allCodes) {
		t.Errorf("registry has %d codes, expected exactly %d", len(ErrorRegistry), len(allCodes))
	}
}

func TestErrorInfoConsistency(t *testing.T) {
	validPhases := map[string]bool{
		"lexer": true, "parser": true, "semantic": true,
		"module": true, "runtime": true,
	}
	validPrefixes := map[string]bool{
		"LEX": true, "SYN": true, "SEM": true, "MOD": true, "RT": true,
	}

	for code, info := range ErrorRegistry {
		if info.Code != code {
			t.Errorf("code mismatch in registry: key=%s, info.Code=%s", code, info.Code)
		}

		prefix := strings.TrimRight(code, "0123456789")
		if !validPrefixes[prefix] || len(code)-len(prefix) != 3 {
			t.Errorf("invalid code format: %s", code)
		}

		if !validPhases[info.Phase] {
			t.Errorf("invalid phase for %s: %s", code, info.Phase)
		}

		if info.Description == "" {
			t.Errorf("empty description for %s", code)
		}
	}
}
