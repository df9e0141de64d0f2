package parser

import (
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/config"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/source"
)

// parseExpr parses a full comma-sequenced expression (§3, "expression:
// comma"), the top of the expression grammar.
func (p *Parser) parseExpr() ast.Expr {
	first := p.parseAssignmentExpr()
	if !p.atPunct(",") {
		return first
	}
	exprs := []ast.Expr{first}
	for {
		if _, ok := p.eatPunct(","); !ok {
			break
		}
		exprs = append(exprs, p.parseAssignmentExpr())
	}
	return &ast.CommaExpr{
		Base:  ast.NewBase(p.cur(), source.Union(first.Span(), exprs[len(exprs)-1].Span())),
		Exprs: exprs,
	}
}

// parseAssignmentExpr parses a right-associative assignment expression,
// desugaring compound-assignment operators per OperatorInfo.IsAssign
// (§3, "expression: assignment", §4.6 operator table).
func (p *Parser) parseAssignmentExpr() ast.Expr {
	left := p.parseTernaryExpr()

	t := p.cur()
	if t.Kind == classifier.Operator {
		if info := config.GetOperatorInfo(t.Text); info != nil && info.IsAssign {
			opTok := p.advance()
			value := p.parseAssignmentExpr()
			return &ast.AssignExpr{
				Base:   ast.NewBase(opTok, source.Union(left.Span(), value.Span())),
				Op:     opTok.Text,
				Target: left,
				Value:  value,
			}
		}
	}
	return left
}

// parseTernaryExpr parses `cond ? then : else` (§3, "expression:
// conditional").
func (p *Parser) parseTernaryExpr() ast.Expr {
	cond := p.parseBinaryExpr(config.PrecLogicOr)
	if _, ok := p.eatPunct("?"); !ok {
		return cond
	}
	then := p.parseAssignmentExpr()
	p.expectPunct(":")
	elseExpr := p.parseAssignmentExpr()
	return &ast.TernaryExpr{
		Base: ast.NewBase(p.cur(), source.Union(cond.Span(), elseExpr.Span())),
		Cond: cond,
		Then: then,
		Else: elseExpr,
	}
}

// parseBinaryExpr implements precedence climbing over config.AllOperators
// (§4.6, "operator precedence resolution") starting at minPrec.
func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	left := p.parseUnaryExpr()

	for {
		t := p.cur()
		var sym string
		switch t.Kind {
		case classifier.Operator:
			sym = t.Text
		default:
			return left
		}
		info := config.GetOperatorInfo(sym)
		if info == nil || info.IsAssign || info.Precedence < minPrec || info.Precedence == config.PrecNone {
			return left
		}
		if sym == "," {
			return left
		}
		opTok := p.advance()
		nextMin := info.Precedence + 1
		if info.Assoc == config.AssocRight {
			nextMin = info.Precedence
		}
		right := p.parseBinaryExpr(nextMin)
		left = &ast.BinaryExpr{
			Base:  ast.NewBase(opTok, source.Union(left.Span(), right.Span())),
			Op:    sym,
			Left:  left,
			Right: right,
		}
	}
}

var prefixUnaryOps = map[string]bool{"!": true, "-": true, "+": true, "~": true, "++": true, "--": true}

// parseUnaryExpr parses prefix unary operators and parenthesized casts
// `(T)expr`, told apart from a parenthesized expression by requiring the
// token after '(' to start a type and the token after it to be ')' (§3,
// "expression: unary"; §4.6 cast disambiguation uses classifier output
// directly, no backtracking).
func (p *Parser) parseUnaryExpr() ast.Expr {
	t := p.cur()
	if t.Kind == classifier.Operator && prefixUnaryOps[t.Text] {
		opTok := p.advance()
		operand := p.parseUnaryExpr()
		return &ast.UnaryExpr{
			Base: ast.NewBase(opTok, source.Union(opTok.Span, operand.Span())),
			Op:   opTok.Text,
			Expr: operand,
		}
	}

	if p.atPunct("(") && p.isTypeStartAt(1) && p.peekAtPunct(")", 1) {
		lparen := p.advance()
		typeSpec := p.parseTypeSpec()
		rparen := p.expectPunct(")")
		_ = rparen
		operand := p.parseUnaryExpr()
		return &ast.UnaryExpr{
			Base: ast.NewBase(lparen, source.Union(lparen.Span, operand.Span())),
			Op:   "(cast)",
			Cast: typeSpec,
			Expr: operand,
		}
	}

	return p.parsePostfixExpr()
}

// isTypeStartAt reports whether the token offset tokens ahead of '(' (at
// relative position offset+1) begins a type specifier, used for the
// single-token-of-lookahead cast/paren-expr disambiguation.
func (p *Parser) isTypeStartAt(offset int) bool {
	t := p.peekAt(offset + 1)
	if t.Kind == classifier.BuiltinTypeName || t.Kind == classifier.UserTypeName {
		return true
	}
	if t.Kind == classifier.Keyword && t.Text == "void" {
		return true
	}
	return false
}

// peekAtPunct reports whether the token following the type name at
// offset+2 is ')', confirming a cast rather than a parenthesized
// expression that merely starts with a type-like identifier (e.g.
// `(float3)x` vs a call whose first arg is a type-named variable —
// the latter cannot occur since type names are never valid standalone
// expressions in this grammar).
func (p *Parser) peekAtPunct(sym string, offset int) bool {
	t := p.peekAt(offset + 2)
	return t.Kind == classifier.Punct && t.Text == sym
}

// parsePostfixExpr parses postfix ++/--, call, member/swizzle, and
// subscript chains (§3, "expression: postfix").
func (p *Parser) parsePostfixExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	for {
		switch {
		case p.atPunct("("):
			expr = p.parseCallTail(expr)
		case p.atPunct("."):
			dot := p.advance()
			member := p.expectIdentifierLike()
			expr = &ast.MemberExpr{
				Base:   ast.NewBase(dot, source.Union(expr.Span(), member.Span)),
				Target: expr,
				Member: member.Text,
			}
		case p.atPunct("["):
			lbrack := p.advance()
			index := p.parseExpr()
			rbrack := p.expectPunct("]")
			expr = &ast.SubscriptExpr{
				Base:   ast.NewBase(lbrack, source.Union(expr.Span(), rbrack.Span)),
				Target: expr,
				Index:  index,
			}
		case p.atOperator("++") || p.atOperator("--"):
			opTok := p.advance()
			expr = &ast.PostfixExpr{
				Base: ast.NewBase(opTok, source.Union(expr.Span(), opTok.Span)),
				Op:   opTok.Text,
				Expr: expr,
			}
		default:
			return expr
		}
	}
}

// parseCallTail parses `( args )` applied to callee, distinguishing a
// plain call from a builtin-type constructor call (§3, "expression:
// function call").
func (p *Parser) parseCallTail(callee ast.Expr) ast.Expr {
	lparen := p.advance()
	var args []ast.Expr
	for !p.atPunct(")") && p.cur().Kind != classifier.EOF {
		args = append(args, p.parseAssignmentExpr())
		if _, ok := p.eatPunct(","); !ok {
			break
		}
	}
	rparen := p.expectPunct(")")
	call := &ast.CallExpr{
		Base:   ast.NewBase(lparen, source.Union(callee.Span(), rparen.Span)),
		Callee: callee,
		Args:   args,
	}
	if id, ok := callee.(*ast.Identifier); ok {
		if info := config.GetTypeInfo(id.Name); info != nil {
			call.Type = builtinTypeSpecFromName(id)
		}
	}
	return call
}

// builtinTypeSpecFromName resynthesizes a TypeSpec for a constructor
// call whose callee was read as a plain identifier expression (builtin
// type names classify as BuiltinTypeName tokens, but the primary
// expression grammar always starts from parsePrimaryExpr's identifier
// case when followed by '(' since constructor calls and ordinary calls
// share the same surface syntax).
func builtinTypeSpecFromName(id *ast.Identifier) ast.TypeSpec {
	info := config.GetTypeInfo(id.Name)
	switch info.Category {
	case "vector":
		base, size := splitVectorName(id.Name)
		return &ast.VectorType{Base: id.Base, Name: id.Name, BaseName: base, Size: size}
	case "matrix":
		base, rows, cols := splitMatrixName(id.Name)
		return &ast.MatrixType{Base: id.Base, Name: id.Name, BaseName: base, Rows: rows, Cols: cols}
	default:
		return &ast.ScalarType{Base: id.Base, Name: id.Name}
	}
}

// parsePrimaryExpr parses identifiers, literals, parenthesized
// expressions, and brace initializer lists (§3, "expression: primary").
func (p *Parser) parsePrimaryExpr() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case classifier.Identifier, classifier.BuiltinTypeName, classifier.UserTypeName, classifier.Keyword:
		if t.Kind == classifier.Keyword && t.Text != "this" {
			break
		}
		p.advance()
		return &ast.Identifier{Base: ast.NewBase(t, t.Span), Name: t.Text}
	case classifier.IntLiteral:
		p.advance()
		return &ast.IntLiteral{Base: ast.NewBase(t, t.Span), Value: t.Numeric.Int}
	case classifier.UintLiteral:
		p.advance()
		return &ast.UintLiteral{Base: ast.NewBase(t, t.Span), Value: t.Numeric.Uint}
	case classifier.FloatLiteral:
		p.advance()
		return &ast.FloatLiteral{Base: ast.NewBase(t, t.Span), Value: t.Numeric.Float}
	case classifier.DoubleLiteral:
		p.advance()
		return &ast.DoubleLiteral{Base: ast.NewBase(t, t.Span), Value: t.Numeric.Double}
	case classifier.BoolLiteral:
		p.advance()
		return &ast.BoolLiteral{Base: ast.NewBase(t, t.Span), Value: t.Text == "true"}
	}

	if p.atPunct("(") {
		p.advance()
		inner := p.parseExpr()
		p.expectPunct(")")
		return inner
	}
	if p.atPunct("{") {
		return p.parseInitList()
	}

	p.diag(diagnostics.Error(diagnostics.PhaseParser, diagnostics.SUnexpectedToken, t.Span, t.Text))
	p.advance()
	return &ast.Identifier{Base: ast.NewBase(t, t.Span), Name: t.Text}
}

// parseInitList parses a brace initializer list with optional member
// designators (§3, "expression: initializer list").
func (p *Parser) parseInitList() ast.Expr {
	lbrace := p.advance()
	var elements []ast.Expr
	var designators []string
	for !p.atPunct("}") && p.cur().Kind != classifier.EOF {
		designator := ""
		if _, ok := p.eatPunct("."); ok {
			nameTok := p.expectIdentifierLike()
			designator = nameTok.Text
			p.expectPunct("=")
		}
		var el ast.Expr
		if p.atPunct("{") {
			el = p.parseInitList()
		} else {
			el = p.parseAssignmentExpr()
		}
		elements = append(elements, el)
		designators = append(designators, designator)
		if _, ok := p.eatPunct(","); !ok {
			break
		}
	}
	rbrace := p.expectPunct("}")
	return &ast.InitListExpr{
		Base:        ast.NewBase(lbrace, source.Union(lbrace.Span, rbrace.Span)),
		Elements:    elements,
		Designators: designators,
	}
}
