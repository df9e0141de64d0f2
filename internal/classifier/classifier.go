// Package classifier implements the contextual token classifier that
// sits between the preprocessor and the parser (§4.4): it resolves
// keywords, gates builtin type names on the active version/extension
// state, distinguishes user type names from plain identifiers via the
// parse context, and parses numeric literals.
//
// The classifier is a pure function of (raw token, parse context
// snapshot, preprocessor version/extension state) — it never mutates
// the parse context (§4.4, "The classifier never modifies the parse
// context"). Only the parser calls parsectx.Context.DeclareTypeName.
package classifier

import (
	"strconv"
	"strings"

	"github.com/hlsl-lang/frontend/internal/atom"
	"github.com/hlsl-lang/frontend/internal/config"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/extensions"
	"github.com/hlsl-lang/frontend/internal/parsectx"
	"github.com/hlsl-lang/frontend/internal/source"
	"github.com/hlsl-lang/frontend/internal/token"
)

// Kind is the closed parser-token variant set (DATA MODEL, "Parser
// token").
type Kind int

const (
	Invalid Kind = iota
	EOF
	Error

	Keyword
	BuiltinTypeName
	UserTypeName
	Identifier
	Reserved // matches a builtin spelling but not yet gated open (§4.4 step 4)

	IntLiteral
	UintLiteral
	FloatLiteral
	DoubleLiteral
	BoolLiteral

	Operator
	Punct

	Trivia // whitespace/comment, separately classifiable (§3)
)

// Gating describes which version or extension opened a builtin type
// name, for downstream diagnostics (§4.4, "gating state").
type Gating struct {
	ByVersion   bool
	MinVersion  uint16
	ByExtension bool
	Extension   string
}

// NumericValue holds the parsed value of a numeric literal, tagged by
// which of the four numeric Kinds produced it.
type NumericValue struct {
	Int    int64
	Uint   uint64
	Float  float32
	Double float64
}

// Token is one classified parser-facing token.
type Token struct {
	Kind Kind
	Span source.Span
	Text string // keyword/identifier/type-name spelling, or operator/punct symbol

	Atom atom.Atom // valid for Keyword/BuiltinTypeName/UserTypeName/Identifier/Reserved

	Numeric   NumericValue
	RawKind   token.Kind // underlying raw operator/punct kind, for Operator/Punct tokens
	Gating    Gating
	Diag      *diagnostics.Diagnostic // set when Kind == Error
}

// VersionExtensionState is the slice of preprocessor state the
// classifier consults to gate builtin type names (§4.4).
type VersionExtensionState struct {
	Version uint16
	Enabled []string // names of currently-enabled extensions
}

// Classifier converts preprocessed raw tokens into parser tokens.
type Classifier struct {
	tables *atom.Tables
	exts   *extensions.Registry
}

// New creates a classifier backed by tables and the given extension
// registry (extensions.Empty for an HLSL-only test configuration).
func New(tables *atom.Tables, exts *extensions.Registry) *Classifier {
	return &Classifier{tables: tables, exts: exts}
}

// Classify converts one preprocessed raw token into a parser token,
// consulting ctx (read-only) and state for gating (§4.4 steps 1-5).
func (c *Classifier) Classify(rt token.RawToken, ctx *parsectx.Context, state VersionExtensionState) Token {
	if rt.Kind.IsTrivia() {
		return Token{Kind: Trivia, Span: rt.Span, Text: rt.Text}
	}
	if rt.Kind == token.EOF {
		return Token{Kind: EOF, Span: rt.Span}
	}
	if rt.Kind == token.Error {
		d := diagnostics.Error(diagnostics.PhaseParser, diagnostics.LInvalidToken, rt.Span, rt.Text)
		return Token{Kind: Error, Span: rt.Span, Text: rt.Text, Diag: d}
	}

	if rt.Kind == token.Digits {
		return c.classifyNumber(rt)
	}

	if rt.Kind == token.IdentOrKeyword {
		return c.classifyIdent(rt, ctx, state)
	}

	if opKind, text, ok := operatorSymbol(rt.Kind); ok {
		return Token{Kind: Operator, Span: rt.Span, Text: text, RawKind: opKind}
	}
	if puncText, ok := punctSymbol(rt.Kind); ok {
		return Token{Kind: Punct, Span: rt.Span, Text: puncText, RawKind: rt.Kind}
	}

	// StringTarget/AngleTarget only ever appear to the classifier if the
	// preprocessor failed to consume them as an include target; treat
	// that as a plain string token for the parser (e.g. a string
	// literal expression), not an error.
	if rt.Kind == token.StringTarget {
		return Token{Kind: Punct, Span: rt.Span, Text: rt.Text, RawKind: rt.Kind}
	}

	d := diagnostics.Error(diagnostics.PhaseParser, diagnostics.LInvalidToken, rt.Span, rt.Text)
	return Token{Kind: Error, Span: rt.Span, Text: rt.Text, Diag: d}
}

func (c *Classifier) classifyIdent(rt token.RawToken, ctx *parsectx.Context, state VersionExtensionState) Token {
	text := rt.Text

	// Step 3: keyword table, including true/false.
	if config.IsKeyword(text) {
		if text == "true" || text == "false" {
			a := c.tables.Keywords.Intern(text)
			return Token{
				Kind: BoolLiteral, Span: rt.Span, Text: text, Atom: a,
				Numeric: NumericValue{Int: boolToInt(text == "true")},
			}
		}
		a := c.tables.Keywords.Intern(text)
		return Token{Kind: Keyword, Span: rt.Span, Text: text, Atom: a}
	}

	// Step 4: builtin type-name table, gated by version or extension.
	if info := config.GetTypeInfo(text); info != nil {
		a := c.tables.TypeNames.Intern(text)
		if info.MinVersion == 0 || state.Version >= info.MinVersion {
			return Token{
				Kind: BuiltinTypeName, Span: rt.Span, Text: text, Atom: a,
				Gating: Gating{ByVersion: true, MinVersion: info.MinVersion},
			}
		}
		if extName, ok := c.extensionGating(text, state); ok {
			return Token{
				Kind: BuiltinTypeName, Span: rt.Span, Text: text, Atom: a,
				Gating: Gating{ByExtension: true, Extension: extName},
			}
		}
		d := diagnostics.Error(diagnostics.PhaseParser, diagnostics.SReservedKeyword, rt.Span, text)
		return Token{Kind: Reserved, Span: rt.Span, Text: text, Atom: a, Diag: d}
	}

	// Step 5: parse context lookup.
	a := c.tables.TypeNames.Intern(text)
	if ctx != nil && ctx.IsTypeName(a) {
		return Token{Kind: UserTypeName, Span: rt.Span, Text: text, Atom: a}
	}
	return Token{Kind: Identifier, Span: rt.Span, Text: text, Atom: a}
}

func (c *Classifier) extensionGating(typeName string, state VersionExtensionState) (string, bool) {
	if c.exts == nil {
		return "", false
	}
	for _, enabled := range state.Enabled {
		spec, ok := c.exts.Get(enabled)
		if !ok {
			continue
		}
		for _, tn := range extensions.TypeNamesOf(spec) {
			if tn == typeName {
				return enabled, true
			}
		}
	}
	return "", false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// classifyNumber implements §4.4 step 2 and the injective parse laws of
// §8: hex/octal/decimal integer forms, u/U unsigned suffix, f/F float
// suffix, lf/LF double suffix, e/E exponent, decimal point.
func (c *Classifier) classifyNumber(rt token.RawToken) Token {
	text := rt.Text
	lower := strings.ToLower(text)

	if strings.HasPrefix(lower, "0x") {
		return c.classifyIntLike(rt)
	}

	isFloatDouble := strings.ContainsAny(text, ".") ||
		strings.ContainsAny(lower, "e") ||
		strings.HasSuffix(lower, "f") || strings.HasSuffix(lower, "lf")

	if isFloatDouble {
		return c.classifyFloatLike(rt)
	}
	return c.classifyIntLike(rt)
}

func (c *Classifier) classifyIntLike(rt token.RawToken) Token {
	text := rt.Text
	unsigned := false
	body := text
	if strings.HasSuffix(body, "u") || strings.HasSuffix(body, "U") {
		unsigned = true
		body = body[:len(body)-1]
	}

	base := 10
	digits := body
	switch {
	case strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X"):
		base = 16
		digits = body[2:]
	case len(body) > 1 && body[0] == '0':
		base = 8
		digits = body[1:]
	}

	if unsigned {
		v, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			d := diagnostics.Error(diagnostics.PhaseParser, diagnostics.LBadNumberUint, rt.Span, text)
			return Token{Kind: Error, Span: rt.Span, Text: text, Diag: d}
		}
		return Token{Kind: UintLiteral, Span: rt.Span, Text: text, Numeric: NumericValue{Uint: v}}
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		d := diagnostics.Error(diagnostics.PhaseParser, diagnostics.LBadNumberInt, rt.Span, text)
		return Token{Kind: Error, Span: rt.Span, Text: text, Diag: d}
	}
	return Token{Kind: IntLiteral, Span: rt.Span, Text: text, Numeric: NumericValue{Int: v}}
}

func (c *Classifier) classifyFloatLike(rt token.RawToken) Token {
	text := rt.Text
	lower := strings.ToLower(text)

	isDouble := strings.HasSuffix(lower, "lf")
	isFloatSuffixed := !isDouble && strings.HasSuffix(lower, "f")

	body := text
	if isDouble {
		body = body[:len(body)-2]
	} else if isFloatSuffixed {
		body = body[:len(body)-1]
	}

	if isDouble {
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			d := diagnostics.Error(diagnostics.PhaseParser, diagnostics.LBadNumberDouble, rt.Span, text)
			return Token{Kind: Error, Span: rt.Span, Text: text, Diag: d}
		}
		return Token{Kind: DoubleLiteral, Span: rt.Span, Text: text, Numeric: NumericValue{Double: v}}
	}

	v, err := strconv.ParseFloat(body, 32)
	if err != nil {
		d := diagnostics.Error(diagnostics.PhaseParser, diagnostics.LBadNumberFloat, rt.Span, text)
		return Token{Kind: Error, Span: rt.Span, Text: text, Diag: d}
	}
	return Token{Kind: FloatLiteral, Span: rt.Span, Text: text, Numeric: NumericValue{Float: float32(v)}}
}

// operatorSymbol maps a raw operator Kind to its (kind, symbol), if rt is
// one of the raw operator kinds.
func operatorSymbol(k token.Kind) (token.Kind, string, bool) {
	switch k {
	case token.Assign, token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.PlusPlus, token.MinusMinus,
		token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign,
		token.Amp, token.Pipe, token.Caret, token.Tilde,
		token.Shl, token.Shr,
		token.AmpAssign, token.PipeAssign, token.CaretAssign, token.ShlAssign, token.ShrAssign,
		token.Bang, token.Lt, token.Gt, token.Le, token.Ge, token.EqEq, token.NotEq,
		token.AmpAmp, token.PipePipe:
		return k, k.String(), true
	}
	return token.Invalid, "", false
}

func punctSymbol(k token.Kind) (string, bool) {
	switch k {
	case token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.Comma, token.Semicolon, token.Colon, token.ColonColon, token.Dot, token.Ellipsis, token.Question:
		return k.String(), true
	}
	return "", false
}
