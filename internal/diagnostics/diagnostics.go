// Package diagnostics implements the error taxonomy described in §7:
// lexical, preprocessor, and parser diagnostics, collected rather than
// raised, and interleaved with the token stream in source order (§5).
//
// Grounded on the teacher's internal/diagnostics/diagnostics.go: a closed
// ErrorCode enum per phase, a message-template table, and a
// *Diagnostic implementing error. Diagnostics here carry a source.Span
// instead of a token.Token since spans survive across include frames.
package diagnostics

import (
	"fmt"

	"github.com/hlsl-lang/frontend/internal/source"
)

// Phase identifies which pipeline stage raised a diagnostic.
type Phase string

const (
	PhaseLexer        Phase = "lexer"
	PhasePreprocessor Phase = "preprocessor"
	PhaseParser       Phase = "parser"
)

// Severity classifies how serious a diagnostic is (§6, "Diagnostic
// record").
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a closed taxonomy code, grouped by phase per §7.
type Code string

const (
	// Lexical (L*)
	LInvalidChar       Code = "L001" // invalid character
	LUnterminatedStr   Code = "L002" // unterminated string literal
	LUnterminatedBlock Code = "L003" // unterminated block comment
	LBadNumberInt      Code = "L004" // malformed int literal
	LBadNumberUint     Code = "L005" // malformed uint literal
	LBadNumberFloat    Code = "L006" // malformed float literal
	LBadNumberDouble   Code = "L007" // malformed double literal
	LInvalidToken      Code = "L008" // generic invalid token

	// Preprocessor (P*)
	PUnknownDirective   Code = "P001"
	PMalformedDirective Code = "P002"
	PIfExprError        Code = "P003"
	PUnbalancedCond     Code = "P004"
	PIncludeFailed      Code = "P005"
	PIncludeDepth       Code = "P006"
	PErrorDirective     Code = "P007" // #error raised by source
	PRedefinedMacro     Code = "P008"
	PDuplicateElse      Code = "P009"
	PUndefinedInIf      Code = "P010" // undefined identifier in #if, treated as 0

	// Parser (S*)
	SUnexpectedToken Code = "S001"
	SExpectedGotX    Code = "S002"
	SDuplicateType   Code = "S003" // duplicate declaration of a type name within a scope
	SReservedKeyword Code = "S004" // reserved-keyword-used (gated builtin not yet open)
	SInvalidNumber   Code = "S005"
)

var templates = map[Code]string{
	LInvalidChar:       "invalid character: %q",
	LUnterminatedStr:   "unterminated string literal",
	LUnterminatedBlock: "unterminated block comment",
	LBadNumberInt:      "malformed integer literal: %q",
	LBadNumberUint:     "malformed unsigned integer literal: %q",
	LBadNumberFloat:    "malformed float literal: %q",
	LBadNumberDouble:   "malformed double literal: %q",
	LInvalidToken:      "invalid token: %q",

	PUnknownDirective:   "unknown preprocessor directive '%s'",
	PMalformedDirective: "malformed '%s' directive: %s",
	PIfExprError:        "invalid constant expression in #if: %s",
	PUnbalancedCond:     "unbalanced conditional: %s",
	PIncludeFailed:      "cannot resolve include %q: %s",
	PIncludeDepth:       "include depth exceeded (limit %d)",
	PErrorDirective:     "#error: %s",
	PRedefinedMacro:     "macro '%s' redefined incompatibly",
	PDuplicateElse:      "#else after #else in the same conditional group",
	PUndefinedInIf:      "'%s' is not defined, evaluates to 0",

	SUnexpectedToken: "unexpected token %q",
	SExpectedGotX:    "expected %s, got %q",
	SDuplicateType:   "'%s' is already declared as a type name in this scope",
	SReservedKeyword: "'%s' is reserved but not enabled by the active version or extension set",
	SInvalidNumber:   "invalid numeric literal %q: %s",
}

// Diagnostic is one collected error, warning, or note.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Phase    Phase
	Span     source.Span
	Args     []interface{}

	// IncludeChain records the nested #include spans leading to Span's
	// buffer, outermost first, for diagnostics that cross file
	// boundaries (§6, "Diagnostic record").
	IncludeChain []source.Span
}

func (d *Diagnostic) Error() string {
	tmpl, ok := templates[d.Code]
	msg := ""
	if ok {
		msg = fmt.Sprintf(tmpl, d.Args...)
	} else {
		msg = fmt.Sprintf("unknown diagnostic code %s", d.Code)
	}
	return fmt.Sprintf("[%s] %s: %d:%d: %s", d.Phase, d.Severity, d.Span.Start.Line, d.Span.Start.Column, msg)
}

func newDiag(sev Severity, phase Phase, code Code, span source.Span, args ...interface{}) *Diagnostic {
	return &Diagnostic{Severity: sev, Code: code, Phase: phase, Span: span, Args: args}
}

// Error builds an error-severity diagnostic.
func Error(phase Phase, code Code, span source.Span, args ...interface{}) *Diagnostic {
	return newDiag(SeverityError, phase, code, span, args...)
}

// Warning builds a warning-severity diagnostic.
func Warning(phase Phase, code Code, span source.Span, args ...interface{}) *Diagnostic {
	return newDiag(SeverityWarning, phase, code, span, args...)
}

// Note builds a note-severity diagnostic.
func Note(phase Phase, code Code, span source.Span, args ...interface{}) *Diagnostic {
	return newDiag(SeverityNote, phase, code, span, args...)
}

// Bag accumulates diagnostics in source order, shared across pipeline
// stages (the parse context's "diagnostics accumulator", DATA MODEL).
type Bag struct {
	items []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) All() []*Diagnostic { return b.items }

// HasErrors reports whether any error-severity diagnostic was collected.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
