// Package token defines the raw token alphabet the character-level lexer
// produces (DATA MODEL, "Raw token") and the RawToken value itself.
//
// Grounded on the teacher's internal/token/token.go TokenType-string-const
// pattern, narrowed to the closed ~50-element raw alphabet the spec calls
// for: the parser-facing distinctions (keyword vs identifier vs builtin
// type name) are deliberately NOT made here — that's the classifier's job
// (internal/classifier), applied after the preprocessor, using feedback
// from the parse context. The raw lexer only ever emits the kinds below.
package token

import (
	"fmt"

	"github.com/hlsl-lang/frontend/internal/source"
)

// Kind is the closed raw-token alphabet. Pure character-level
// classification only: no keyword/type-name resolution happens here.
type Kind int

const (
	Invalid Kind = iota

	EOF
	Error // malformed input; Span covers the offending character run

	Whitespace
	Newline
	LineComment  // // ...
	BlockComment // /* ... */

	IdentOrKeyword // [A-Za-z_][A-Za-z0-9_]*
	Digits         // uninterpreted numeric run; literal-suffix interpretation is the classifier's job
	StringTarget   // "..." — also doubles as #include "..."
	AngleTarget    // <...> — only meaningful right after #include

	Hash // # at the start of a logical line (candidate directive marker)

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	ColonColon
	Dot
	Ellipsis
	Question

	// Operators
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	PlusPlus
	MinusMinus
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	Bang
	Lt
	Gt
	Le
	Ge
	EqEq
	NotEq
	AmpAmp
	PipePipe
)

var kindNames = map[Kind]string{
	Invalid:        "INVALID",
	EOF:            "EOF",
	Error:          "ERROR",
	Whitespace:     "WHITESPACE",
	Newline:        "NEWLINE",
	LineComment:    "LINE_COMMENT",
	BlockComment:   "BLOCK_COMMENT",
	IdentOrKeyword: "IDENT_OR_KEYWORD",
	Digits:         "DIGITS",
	StringTarget:   "STRING",
	AngleTarget:    "ANGLE_TARGET",
	Hash:           "#",
	LParen:         "(",
	RParen:         ")",
	LBrace:         "{",
	RBrace:         "}",
	LBracket:       "[",
	RBracket:       "]",
	Comma:          ",",
	Semicolon:      ";",
	Colon:          ":",
	ColonColon:     "::",
	Dot:            ".",
	Ellipsis:       "...",
	Question:       "?",
	Assign:         "=",
	Plus:           "+",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Percent:        "%",
	PlusPlus:       "++",
	MinusMinus:     "--",
	PlusAssign:     "+=",
	MinusAssign:    "-=",
	StarAssign:     "*=",
	SlashAssign:    "/=",
	PercentAssign:  "%=",
	Amp:            "&",
	Pipe:           "|",
	Caret:          "^",
	Tilde:          "~",
	Shl:            "<<",
	Shr:            ">>",
	AmpAssign:      "&=",
	PipeAssign:     "|=",
	CaretAssign:    "^=",
	ShlAssign:      "<<=",
	ShrAssign:      ">>=",
	Bang:           "!",
	Lt:             "<",
	Gt:             ">",
	Le:             "<=",
	Ge:             ">=",
	EqEq:           "==",
	NotEq:          "!=",
	AmpAmp:         "&&",
	PipePipe:       "||",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTrivia reports whether tokens of this kind are whitespace/comments,
// classifiable separately per DATA MODEL ("Parser token").
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, LineComment, BlockComment:
		return true
	default:
		return false
	}
}

// RawToken is a (kind, span) pair plus the literal text the lexer saw.
// Text is retained uninterpreted: numeric runs keep their raw digits, and
// string/angle targets keep their raw (unescaped) contents so the
// preprocessor can hand them to #include resolution verbatim.
type RawToken struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t RawToken) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Kind, t.Text, t.Span.Start.Line, t.Span.Start.Column)
}
