package parser

import (
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/source"
)

// parseStmt dispatches on the current token to the appropriate
// statement production (§3, "statement").
func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.atPunct("{"):
		return p.parseCompoundStmt()
	case p.atKeyword("if"):
		return p.parseIfStmt()
	case p.atKeyword("for"):
		return p.parseForStmt()
	case p.atKeyword("while"):
		return p.parseWhileStmt()
	case p.atKeyword("do"):
		return p.parseDoWhileStmt()
	case p.atKeyword("switch"):
		return p.parseSwitchStmt()
	case p.atKeyword("return"):
		return p.parseReturnStmt()
	case p.atKeyword("break"):
		t := p.advance()
		p.expectPunct(";")
		return &ast.BreakStmt{Base: ast.NewBase(t, t.Span)}
	case p.atKeyword("continue"):
		t := p.advance()
		p.expectPunct(";")
		return &ast.ContinueStmt{Base: ast.NewBase(t, t.Span)}
	case p.atKeyword("discard"):
		t := p.advance()
		p.expectPunct(";")
		return &ast.DiscardStmt{Base: ast.NewBase(t, t.Span)}
	case p.atPunct(";"):
		t := p.advance()
		return &ast.ExprStmt{Base: ast.NewBase(t, t.Span)}
	}

	if p.startsVarDecl() {
		return p.parseLocalVarDecl()
	}

	startTok := p.cur()
	expr := p.parseExpr()
	p.expectPunct(";")
	return &ast.ExprStmt{Base: ast.NewBase(startTok, source.Union(startTok.Span, expr.Span())), Expr: expr}
}

// startsVarDecl reports whether the current position begins a local
// variable declaration rather than an expression statement: a qualifier
// keyword, or a type specifier (§4.6, the declaration/expression
// disambiguation resolved directly off classifier Kind, no backtracking).
func (p *Parser) startsVarDecl() bool {
	t := p.cur()
	if t.Kind == classifier.Keyword && (modifierStorageKeywords[t.Text] || interpolationKeywords[t.Text] || t.Text == "row_major" || t.Text == "column_major") {
		return true
	}
	if t.Kind == classifier.Identifier && t.Text == "layout" {
		return true
	}
	return p.isTypeStart()
}

// parseCompoundStmt parses a `{ ... }` block, pushing and popping a
// parse-context scope so block-local typedefs/structs don't leak (§4.5).
func (p *Parser) parseCompoundStmt() *ast.CompoundStmt {
	lbrace := p.expectPunct("{")
	p.ctx.PushScope()
	defer p.ctx.PopScope()

	var stmts []ast.Stmt
	for !p.atPunct("}") && p.cur().Kind != classifier.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	rbrace := p.expectPunct("}")
	return &ast.CompoundStmt{
		Base:  ast.NewBase(lbrace, source.Union(lbrace.Span, rbrace.Span)),
		Stmts: stmts,
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	startTok := p.advance() // 'if'
	p.expectPunct("(")
	cond := p.parseExpr()
	p.expectPunct(")")
	then := p.parseStmt()
	var elseStmt ast.Stmt
	endSpan := then.Span()
	if _, ok := p.eatKeyword("else"); ok {
		elseStmt = p.parseStmt()
		endSpan = elseStmt.Span()
	}
	return &ast.IfStmt{
		Base: ast.NewBase(startTok, source.Union(startTok.Span, endSpan)),
		Cond: cond,
		Then: then,
		Else: elseStmt,
	}
}

func (p *Parser) parseForStmt() ast.Stmt {
	startTok := p.advance() // 'for'
	p.expectPunct("(")
	p.ctx.PushScope()
	defer p.ctx.PopScope()

	var init ast.Stmt
	if !p.atPunct(";") {
		if p.startsVarDecl() {
			init = p.parseLocalVarDeclNoSemi()
			p.expectPunct(";")
		} else {
			e := p.parseExpr()
			init = &ast.ExprStmt{Base: ast.NewBase(p.cur(), e.Span()), Expr: e}
			p.expectPunct(";")
		}
	} else {
		p.advance()
	}

	var cond ast.Expr
	if !p.atPunct(";") {
		cond = p.parseExpr()
	}
	p.expectPunct(";")

	var post ast.Expr
	if !p.atPunct(")") {
		post = p.parseExpr()
	}
	p.expectPunct(")")

	body := p.parseStmt()
	return &ast.ForStmt{
		Base: ast.NewBase(startTok, source.Union(startTok.Span, body.Span())),
		Init: init,
		Cond: cond,
		Post: post,
		Body: body,
	}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	startTok := p.advance() // 'while'
	p.expectPunct("(")
	cond := p.parseExpr()
	p.expectPunct(")")
	body := p.parseStmt()
	return &ast.WhileStmt{
		Base: ast.NewBase(startTok, source.Union(startTok.Span, body.Span())),
		Cond: cond,
		Body: body,
	}
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	startTok := p.advance() // 'do'
	body := p.parseStmt()
	p.expectKeyword("while")
	p.expectPunct("(")
	cond := p.parseExpr()
	rparen := p.expectPunct(")")
	semi := p.expectPunct(";")
	_ = rparen
	return &ast.DoWhileStmt{
		Base: ast.NewBase(startTok, source.Union(startTok.Span, semi.Span)),
		Body: body,
		Cond: cond,
	}
}

func (p *Parser) expectKeyword(kw string) classifier.Token {
	if t, ok := p.eatKeyword(kw); ok {
		return t
	}
	return p.expectPunct(kw) // reuses the "expected X got Y" diagnostic shape
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	startTok := p.advance() // 'switch'
	p.expectPunct("(")
	cond := p.parseExpr()
	p.expectPunct(")")
	p.expectPunct("{")
	p.ctx.PushScope()
	defer p.ctx.PopScope()

	var cases []*ast.CaseClause
	for !p.atPunct("}") && p.cur().Kind != classifier.EOF {
		cases = append(cases, p.parseCaseClause())
	}
	endTok := p.expectPunct("}")
	return &ast.SwitchStmt{
		Base:  ast.NewBase(startTok, source.Union(startTok.Span, endTok.Span)),
		Cond:  cond,
		Cases: cases,
	}
}

func (p *Parser) parseCaseClause() *ast.CaseClause {
	var startTok classifier.Token
	var value ast.Expr
	isDefault := false
	if t, ok := p.eatKeyword("case"); ok {
		startTok = t
		value = p.parseExpr()
	} else {
		startTok, _ = p.eatKeyword("default")
		isDefault = true
	}
	p.expectPunct(":")

	var stmts []ast.Stmt
	for !p.atKeyword("case") && !p.atKeyword("default") && !p.atPunct("}") && p.cur().Kind != classifier.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	endSpan := startTok.Span
	if len(stmts) > 0 {
		endSpan = stmts[len(stmts)-1].Span()
	}
	return &ast.CaseClause{
		Base:      ast.NewBase(startTok, source.Union(startTok.Span, endSpan)),
		Value:     value,
		IsDefault: isDefault,
		Stmts:     stmts,
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	startTok := p.advance() // 'return'
	var value ast.Expr
	if !p.atPunct(";") {
		value = p.parseExpr()
	}
	semi := p.expectPunct(";")
	return &ast.ReturnStmt{
		Base:  ast.NewBase(startTok, source.Union(startTok.Span, semi.Span)),
		Value: value,
	}
}
