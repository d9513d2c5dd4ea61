package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sunholo/tesserac/internal/ast"
)

// Fix is a suggested remediation attached to a Report, e.g. "did you mean
// '}'?" for an UnmatchedBrace.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured error type for Tesserac. Every
// error builder in the lexer, parser, type registry, module loader and
// interpreter returns a *Report (wrapped as an error via WrapReport), so
// a caller can recover structured fields instead of parsing a message.
type Report struct {
	Schema  string         `json:"schema"`         // Always "tesserac.error/v1"
	Code    string         `json:"code"`           // Error code (LEX001, SYN002, ...)
	Phase   string         `json:"phase"`          // "lexer", "parser", "semantic", "module", "runtime"
	Message string         `json:"message"`        // Human-readable message
	Span    *ast.Span      `json:"span,omitempty"` // Source location
	Data    map[string]any `json:"data,omitempty"` // Structured data (sorted keys via json.Marshal)
	Fix     *Fix           `json:"fix,omitempty"`  // Suggested fix, if any
}

// ReportError wraps a Report as an error so structured reports survive
// errors.As() unwrapping through ordinary Go error-handling code.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error. Call sites return
// errors.WrapReport(report) to preserve structure through the error
// interface.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report for the given code/phase at a single point (no
// highlight range beyond the token itself).
func New(code, phase, message string, at ast.Pos) *Report {
	return &Report{
		Schema:  "tesserac.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    &ast.Span{Start: at, End: at},
		Data:    map[string]any{},
	}
}

// NewSpan builds a Report highlighting a range, e.g. an UnmatchedBrace
// that names both the erroneous token and the line the brace opened on.
func NewSpan(code, phase, message string, span ast.Span) *Report {
	return &Report{
		Schema:  "tesserac.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    &span,
		Data:    map[string]any{},
	}
}

// WithFix attaches a suggested remediation.
func (r *Report) WithFix(suggestion string, confidence float64) *Report {
	r.Fix = &Fix{Suggestion: suggestion, Confidence: confidence}
	return r
}

// WithData attaches a structured key/value pair.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// ToJSON converts a Report to JSON (sorted keys via encoding/json's map
// ordering, deterministic across runs).
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Caret renders the classic `^^^` source-excerpt diagnostic: the
// offending line from src, followed by a line of spaces and carets
// spanning the Report's Span. Implements the "render caret diagnostics"
// duty of the Source+Diagnostics facility (spec.md §4.1/§7).
func (r *Report) Caret(src string) string {
	if r.Span == nil {
		return r.Message
	}
	lines := strings.Split(src, "\n")
	lineNo := r.Span.Start.Line
	if lineNo < 1 || lineNo > len(lines) {
		return fmt.Sprintf("%s: %s", r.Span.Start, r.Message)
	}
	line := lines[lineNo-1]

	width := r.Span.End.Column - r.Span.Start.Column
	if width < 1 {
		width = 1
	}
	col := r.Span.Start.Column
	if col < 1 {
		col = 1
	}
	pad := strings.Repeat(" ", col-1)
	carets := strings.Repeat("^", width)

	return fmt.Sprintf("%s: %s\n%s\n%s%s", r.Span.Start, r.Message, line, pad, carets)
}

// NewGeneric wraps an arbitrary Go error as a generic Report, used when a
// lower layer (e.g. os.Open failing inside the module loader) returns a
// plain error that still needs to flow through the structured path.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  "tesserac.error/v1",
		Code:    "GEN000",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
