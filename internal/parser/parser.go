// Package parser implements the recursive-descent parser producing the
// source-mapped AST (§4.6, §3). It consumes a pipeline.TokenStream of
// already-classified tokens, feeding declared type names back into the
// shared parsectx.Context as it reduces type-declaring productions
// (§4.5) — the one place in this front end information flows from
// parser back to classifier, and only ever in that direction.
//
// Grounded on the teacher's hand-written recursive-descent parser
// shape (one method per grammar production, a cursor over the token
// stream, synchronize-on-error recovery) generalized from the teacher's
// expression grammar to HLSL's full declaration/statement/expression
// grammar, with operator precedence driven by internal/config's table
// instead of hand-nested precedence methods.
package parser

import (
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/atom"
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/parsectx"
	"github.com/hlsl-lang/frontend/internal/pipeline"
	"github.com/hlsl-lang/frontend/internal/source"
)

// Parser holds the cursor over one translation unit's classified token
// stream plus the shared parse context it feeds back into.
type Parser struct {
	stream pipeline.TokenStream
	ctx    *parsectx.Context
	diags  *diagnostics.Bag
	tables *atom.Tables

	// pendingGT holds the second '>' synthesized when a '>>' operator
	// token had to be split to close a nested generic-style template
	// argument list (Texture2D<Foo<Bar>>, §4.6's angle-bracket bridging
	// over the raw Shr token).
	pendingGT *classifier.Token
}

// New creates a Parser over stream, sharing ctx (the parse context) and
// diags (the diagnostics accumulator) with the rest of the pipeline.
func New(stream pipeline.TokenStream, ctx *parsectx.Context, diags *diagnostics.Bag, tables *atom.Tables) *Parser {
	return &Parser{stream: stream, ctx: ctx, diags: diags, tables: tables}
}

// ParseTranslationUnit parses the entire token stream as a sequence of
// external declarations (§3, "translation-unit").
func (p *Parser) ParseTranslationUnit() *ast.TranslationUnit {
	startTok := p.cur()
	var decls []ast.ExternalDecl
	for p.cur().Kind != classifier.EOF {
		d := p.parseExternalDecl()
		if d != nil {
			decls = append(decls, d)
		}
	}
	endTok := p.cur()
	return &ast.TranslationUnit{
		Base:  ast.NewBase(startTok, source.Union(startTok.Span, endTok.Span)),
		Decls: decls,
	}
}

// --- cursor -----------------------------------------------------------

func (p *Parser) cur() classifier.Token {
	if p.pendingGT != nil {
		return *p.pendingGT
	}
	toks := p.stream.Peek(1)
	if len(toks) == 0 {
		return classifier.Token{Kind: classifier.EOF}
	}
	return toks[0]
}

func (p *Parser) peekAt(n int) classifier.Token {
	if p.pendingGT != nil {
		if n == 1 {
			return *p.pendingGT
		}
		n--
	}
	toks := p.stream.Peek(n)
	if len(toks) < n {
		return classifier.Token{Kind: classifier.EOF}
	}
	return toks[n-1]
}

func (p *Parser) advance() classifier.Token {
	if p.pendingGT != nil {
		t := *p.pendingGT
		p.pendingGT = nil
		return t
	}
	return p.stream.Next()
}

// closeAngle consumes a closing '>' for a generic-style template
// argument list, splitting a '>>' operator token into two '>' tokens
// when one nested level's close immediately abuts the outer one.
func (p *Parser) closeAngle() classifier.Token {
	if t, ok := p.eatOperator(">"); ok {
		return t
	}
	if p.atOperator(">>") {
		raw := p.advance()
		half := classifier.Token{Kind: classifier.Operator, Text: ">", Span: raw.Span, RawKind: raw.RawKind}
		p.pendingGT = &half
		return classifier.Token{Kind: classifier.Operator, Text: ">", Span: raw.Span, RawKind: raw.RawKind}
	}
	t := p.cur()
	p.diag(diagnostics.Error(diagnostics.PhaseParser, diagnostics.SExpectedGotX, t.Span, ">", t.Text))
	return t
}

func (p *Parser) atKeyword(kw string) bool {
	t := p.cur()
	return t.Kind == classifier.Keyword && t.Text == kw
}

func (p *Parser) atPunct(sym string) bool {
	t := p.cur()
	return t.Kind == classifier.Punct && t.Text == sym
}

func (p *Parser) atOperator(sym string) bool {
	t := p.cur()
	return t.Kind == classifier.Operator && t.Text == sym
}

func (p *Parser) atIdentText(text string) bool {
	t := p.cur()
	return t.Kind == classifier.Identifier && t.Text == text
}

func (p *Parser) eatKeyword(kw string) (classifier.Token, bool) {
	if p.atKeyword(kw) {
		return p.advance(), true
	}
	return classifier.Token{}, false
}

func (p *Parser) eatPunct(sym string) (classifier.Token, bool) {
	if p.atPunct(sym) {
		return p.advance(), true
	}
	return classifier.Token{}, false
}

func (p *Parser) eatOperator(sym string) (classifier.Token, bool) {
	if p.atOperator(sym) {
		return p.advance(), true
	}
	return classifier.Token{}, false
}

// expectPunct consumes sym, or reports a diagnostic and returns the
// unexpected token without consuming it.
func (p *Parser) expectPunct(sym string) classifier.Token {
	if t, ok := p.eatPunct(sym); ok {
		return t
	}
	t := p.cur()
	p.diag(diagnostics.Error(diagnostics.PhaseParser, diagnostics.SExpectedGotX, t.Span, sym, t.Text))
	return t
}

func (p *Parser) expectIdentifierLike() classifier.Token {
	t := p.cur()
	if t.Kind == classifier.Identifier || t.Kind == classifier.UserTypeName {
		return p.advance()
	}
	p.diag(diagnostics.Error(diagnostics.PhaseParser, diagnostics.SExpectedGotX, t.Span, "identifier", t.Text))
	return t
}

func (p *Parser) diag(d *diagnostics.Diagnostic) { p.diags.Add(d) }

// synchronize skips tokens until a statement/declaration boundary (';',
// '}', or EOF) to recover after a parse error (§4.6, "error recovery
// synchronizes to the next statement or declaration boundary").
func (p *Parser) synchronize() {
	for {
		t := p.cur()
		if t.Kind == classifier.EOF {
			return
		}
		if t.Kind == classifier.Punct && (t.Text == ";" || t.Text == "}") {
			p.advance()
			return
		}
		p.advance()
	}
}

func identExpr(t classifier.Token) *ast.Identifier {
	return &ast.Identifier{Base: ast.NewBase(t, t.Span), Name: t.Text}
}
