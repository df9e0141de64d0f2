package parser

import (
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/source"
)

// parseExternalDecl parses one top-level declaration or function
// definition (§3, "external declaration"). Returns nil at EOF.
func (p *Parser) parseExternalDecl() ast.ExternalDecl {
	if p.cur().Kind == classifier.EOF {
		return nil
	}
	startTok := p.cur()

	if p.atKeyword("typedef") {
		return p.parseTypedefDecl()
	}
	if p.atKeyword("cbuffer") || p.atKeyword("tbuffer") {
		return p.parseCBufferDecl()
	}
	if p.atIdentText("precision") {
		return p.parsePrecisionDecl()
	}

	qualifiers := p.parseQualifiers()

	if p.atKeyword("struct") {
		sd := p.parseStructDecl()
		if _, ok := p.eatPunct(";"); ok {
			return sd
		}
		return p.finishDeclAfterType(startTok, qualifiers, sd)
	}

	if qualifiers != nil && p.cur().Kind == classifier.Identifier && p.peekAt(2).Kind == classifier.Punct && p.peekAt(2).Text == "{" {
		return p.parseInterfaceBlockDecl(startTok, qualifiers)
	}

	if !p.isTypeStart() {
		t := p.cur()
		p.diag(diagnostics.Error(diagnostics.PhaseParser, diagnostics.SExpectedGotX, t.Span, "a declaration", t.Text))
		p.synchronize()
		return nil
	}

	typeSpec := p.parseTypeSpec()
	return p.finishDeclAfterType(startTok, qualifiers, typeSpec)
}

func (p *Parser) finishDeclAfterType(startTok classifier.Token, qualifiers *ast.QualifierSet, typeSpec ast.TypeSpec) ast.ExternalDecl {
	depth, starSpan, hasStars := p.parsePointerStars()
	nameTok := p.expectIdentifierLike()
	if !hasStars && p.atPunct("(") {
		return p.parseFunctionDefTail(startTok, qualifiers, typeSpec, nameTok)
	}
	first := p.parseDeclaratorRest(nameTok)
	p.applyPointerDepth(first, depth, starSpan, hasStars)
	return p.parseVarDeclTail(startTok, qualifiers, typeSpec, first)
}

// parsePointerStars consumes zero or more '*' tokens preceding a
// declarator name, HLSL's pointer-style declaration syntax (§3, "A * b;"
// parses as a pointer-style variable declaration when A is a declared
// type name). startSpan is the span of the first '*' consumed, valid
// only when any is true.
func (p *Parser) parsePointerStars() (depth int, startSpan source.Span, any bool) {
	for p.atOperator("*") {
		t := p.advance()
		if depth == 0 {
			startSpan = t.Span
		}
		depth++
	}
	return depth, startSpan, depth > 0
}

func (p *Parser) applyPointerDepth(d *ast.Declarator, depth int, starSpan source.Span, hasStars bool) {
	d.PointerDepth = depth
	if hasStars {
		d.Sp = source.Union(starSpan, d.Sp)
	}
}

// parseVarDeclTail parses the comma-separated declarator list and
// trailing ';' shared by top-level, struct-field, and cbuffer-field
// variable declarations (§3, "declaration: variable"). first is the
// already-parsed first declarator (its leading '*'s, if any, already
// consumed by the caller, since a pointer marker precedes the name).
func (p *Parser) parseVarDeclTail(startTok classifier.Token, qualifiers *ast.QualifierSet, typeSpec ast.TypeSpec, first *ast.Declarator) *ast.VarDecl {
	names := []*ast.Declarator{first}
	for {
		if _, ok := p.eatPunct(","); !ok {
			break
		}
		names = append(names, p.parseDeclarator())
	}
	semi := p.expectPunct(";")
	return &ast.VarDecl{
		Base:       ast.NewBase(startTok, source.Union(startTok.Span, semi.Span)),
		Qualifiers: qualifiers,
		Type:       typeSpec,
		Names:      names,
	}
}

// parseDeclarator parses one full declarator: an optional run of '*'
// pointer markers, the name, and everything parseDeclaratorRest handles
// (§3, "declarator"). Used wherever a declarator doesn't need its name
// token inspected before the rest is parsed (comma-continuations, local
// declarations, struct/cbuffer fields).
func (p *Parser) parseDeclarator() *ast.Declarator {
	depth, starSpan, hasStars := p.parsePointerStars()
	nameTok := p.expectIdentifierLike()
	d := p.parseDeclaratorRest(nameTok)
	p.applyPointerDepth(d, depth, starSpan, hasStars)
	return d
}

// parseDeclaratorRest parses everything following a declarator's name:
// array dimensions, a `: semantic` / `: register(...)` / `: packoffset(...)`
// suffix, and an optional initializer (§3, "declarator").
func (p *Parser) parseDeclaratorRest(nameTok classifier.Token) *ast.Declarator {
	d := &ast.Declarator{Base: ast.NewBase(nameTok, nameTok.Span), Name: identExpr(nameTok)}

	for p.atPunct("[") {
		p.advance()
		var dim ast.Expr
		if !p.atPunct("]") {
			dim = p.parseAssignmentExpr()
		}
		rbrack := p.expectPunct("]")
		d.ArrayDims = append(d.ArrayDims, dim)
		d.Sp = source.Union(d.Sp, rbrack.Span)
	}

	if _, ok := p.eatPunct(":"); ok {
		switch {
		case p.atKeyword("register"):
			d.Register = p.parseRegisterAnnotation()
			d.Sp = source.Union(d.Sp, d.Register.Span())
		case p.atKeyword("packoffset"):
			p.advance()
			p.expectPunct("(")
			tok := p.expectIdentifierLike()
			d.Packoffset = tok.Text
			rp := p.expectPunct(")")
			d.Sp = source.Union(d.Sp, rp.Span)
		default:
			tok := p.expectIdentifierLike()
			d.Semantic = tok.Text
			d.Sp = source.Union(d.Sp, tok.Span)
		}
	}

	if _, ok := p.eatOperator("="); ok {
		d.Init = p.parseAssignmentExpr()
		d.Sp = source.Union(d.Sp, d.Init.Span())
	}

	return d
}

// parseLocalVarDecl parses a block-scoped variable declaration including
// its trailing ';' (§3, "statement: declaration").
func (p *Parser) parseLocalVarDecl() ast.Stmt {
	startTok := p.cur()
	qualifiers := p.parseQualifiers()
	typeSpec := p.parseTypeSpec()
	first := p.parseDeclarator()
	return p.parseVarDeclTail(startTok, qualifiers, typeSpec, first)
}

// parseLocalVarDeclNoSemi parses a `for`-init variable declaration
// without consuming its trailing ';' (the caller owns that, to share the
// same spot with a plain expression-statement init).
func (p *Parser) parseLocalVarDeclNoSemi() ast.Stmt {
	startTok := p.cur()
	qualifiers := p.parseQualifiers()
	typeSpec := p.parseTypeSpec()

	names := []*ast.Declarator{p.parseDeclarator()}
	for {
		if _, ok := p.eatPunct(","); !ok {
			break
		}
		names = append(names, p.parseDeclarator())
	}
	return &ast.VarDecl{
		Base:       ast.NewBase(startTok, source.Union(startTok.Span, names[len(names)-1].Span())),
		Qualifiers: qualifiers,
		Type:       typeSpec,
		Names:      names,
	}
}

// parseStructDecl parses `struct [Tag] { fields... }` (§3, "declaration:
// struct"). The tag, if present, is declared into the enclosing scope
// once the struct's own field scope is popped (§4.5).
func (p *Parser) parseStructDecl() *ast.StructDecl {
	startTok := p.advance() // 'struct'
	var name *ast.Identifier
	if p.cur().Kind == classifier.Identifier || p.cur().Kind == classifier.UserTypeName {
		name = identExpr(p.advance())
	}

	p.expectPunct("{")
	p.ctx.PushScope()
	var fields []*ast.VarDecl
	for !p.atPunct("}") && p.cur().Kind != classifier.EOF {
		fields = append(fields, p.parseStructField())
	}
	p.ctx.PopScope()
	endTok := p.expectPunct("}")

	if name != nil {
		p.ctx.DeclareTypeName(p.ctx.Tables().TypeNames.Intern(name.Name))
	}

	return &ast.StructDecl{
		Base:   ast.NewBase(startTok, source.Union(startTok.Span, endTok.Span)),
		Name:   name,
		Fields: fields,
	}
}

func (p *Parser) parseStructField() *ast.VarDecl {
	startTok := p.cur()
	qualifiers := p.parseQualifiers()
	typeSpec := p.parseTypeSpec()
	first := p.parseDeclarator()
	return p.parseVarDeclTail(startTok, qualifiers, typeSpec, first)
}

// parseCBufferDecl parses `cbuffer Name [: register(b0)] { fields... }`,
// and its `tbuffer` sibling (§3, "declaration: cbuffer").
func (p *Parser) parseCBufferDecl() *ast.CBufferDecl {
	startTok := p.advance() // 'cbuffer' or 'tbuffer'
	isTBuffer := startTok.Text == "tbuffer"
	name := identExpr(p.expectIdentifierLike())

	var reg *ast.RegisterAnnotation
	if _, ok := p.eatPunct(":"); ok {
		reg = p.parseRegisterAnnotation()
	}

	p.expectPunct("{")
	p.ctx.PushScope()
	var fields []*ast.VarDecl
	for !p.atPunct("}") && p.cur().Kind != classifier.EOF {
		fields = append(fields, p.parseStructField())
	}
	p.ctx.PopScope()
	endTok := p.expectPunct("}")
	p.eatPunct(";") // trailing ';' is optional and tolerated

	p.ctx.DeclareTypeName(p.ctx.Tables().TypeNames.Intern(name.Name))

	return &ast.CBufferDecl{
		Base:      ast.NewBase(startTok, source.Union(startTok.Span, endTok.Span)),
		Name:      name,
		IsTBuffer: isTBuffer,
		Register:  reg,
		Fields:    fields,
	}
}

// parseTypedefDecl parses `typedef <type> Name;`, declaring Name as a
// type in the current scope (§4.5, "typedef").
func (p *Parser) parseTypedefDecl() *ast.TypedefDecl {
	startTok := p.advance() // 'typedef'
	p.parseQualifiers()     // e.g. `typedef const float3 Vec3;`, qualifiers discarded here
	underlying := p.parseTypeSpec()
	nameTok := p.expectIdentifierLike()

	for p.atPunct("[") {
		p.advance()
		if !p.atPunct("]") {
			p.parseAssignmentExpr()
		}
		p.expectPunct("]")
	}

	semi := p.expectPunct(";")
	p.ctx.DeclareTypeName(p.ctx.Tables().TypeNames.Intern(nameTok.Text))

	return &ast.TypedefDecl{
		Base:       ast.NewBase(startTok, source.Union(startTok.Span, semi.Span)),
		Underlying: underlying,
		Name:       identExpr(nameTok),
	}
}

// parsePrecisionDecl parses `precision <qualifier> <type>;`. `precision`
// is not a closed keyword, so it is recognized as a contextual
// identifier the way `layout` is (§3, "declaration: precision").
func (p *Parser) parsePrecisionDecl() *ast.PrecisionDecl {
	startTok := p.advance() // 'precision'
	qualTok := p.expectIdentifierLike()
	typeSpec := p.parseTypeSpec()
	semi := p.expectPunct(";")
	return &ast.PrecisionDecl{
		Base:      ast.NewBase(startTok, source.Union(startTok.Span, semi.Span)),
		Qualifier: qualTok.Text,
		Type:      typeSpec,
	}
}

// parseInterfaceBlockDecl parses a GLSL-style named interface block:
// qualifiers, a block name, a braced field list, and an optional
// instance name with array dimensions (§3, "declaration: interface
// block", SUPPLEMENTED FEATURES).
func (p *Parser) parseInterfaceBlockDecl(startTok classifier.Token, qualifiers *ast.QualifierSet) *ast.InterfaceBlockDecl {
	name := identExpr(p.advance()) // block name

	p.expectPunct("{")
	p.ctx.PushScope()
	var fields []*ast.VarDecl
	for !p.atPunct("}") && p.cur().Kind != classifier.EOF {
		fields = append(fields, p.parseStructField())
	}
	p.ctx.PopScope()
	endTok := p.expectPunct("}")

	var instance *ast.Identifier
	var dims []ast.Expr
	if p.cur().Kind == classifier.Identifier {
		instance = identExpr(p.advance())
		for p.atPunct("[") {
			p.advance()
			var dim ast.Expr
			if !p.atPunct("]") {
				dim = p.parseAssignmentExpr()
			}
			p.expectPunct("]")
			dims = append(dims, dim)
		}
	}

	semi := p.expectPunct(";")
	return &ast.InterfaceBlockDecl{
		Base:         ast.NewBase(startTok, source.Union(startTok.Span, semi.Span)),
		Qualifiers:   qualifiers,
		Name:         name,
		Fields:       fields,
		InstanceName: instance,
		ArrayDims:    dims,
	}
}

// parseFunctionDefTail parses a function's parameter list, optional
// trailing semantic, and body or forward-declaration semicolon (§3,
// "declaration: function").
func (p *Parser) parseFunctionDefTail(startTok classifier.Token, qualifiers *ast.QualifierSet, retType ast.TypeSpec, nameTok classifier.Token) *ast.FunctionDef {
	p.expectPunct("(")
	var params []*ast.Param
	for !p.atPunct(")") && p.cur().Kind != classifier.EOF {
		params = append(params, p.parseParam())
		if _, ok := p.eatPunct(","); !ok {
			break
		}
	}
	p.expectPunct(")")

	semantic := ""
	if _, ok := p.eatPunct(":"); ok {
		semantic = p.expectIdentifierLike().Text
	}

	var body *ast.CompoundStmt
	endSpan := nameTok.Span
	if p.atPunct("{") {
		body = p.parseCompoundStmt()
		endSpan = body.Span()
	} else {
		semi := p.expectPunct(";")
		endSpan = semi.Span
	}

	return &ast.FunctionDef{
		Base:       ast.NewBase(startTok, source.Union(startTok.Span, endSpan)),
		Qualifiers: qualifiers,
		ReturnType: retType,
		Name:       identExpr(nameTok),
		Params:     params,
		Semantic:   semantic,
		Body:       body,
	}
}

func (p *Parser) parseParam() *ast.Param {
	startTok := p.cur()
	qualifiers := p.parseQualifiers()
	typeSpec := p.parseTypeSpec()

	var name *ast.Identifier
	if p.cur().Kind == classifier.Identifier || p.cur().Kind == classifier.UserTypeName {
		name = identExpr(p.advance())
	}

	semantic := ""
	if _, ok := p.eatPunct(":"); ok {
		semantic = p.expectIdentifierLike().Text
	}

	var def ast.Expr
	if _, ok := p.eatOperator("="); ok {
		def = p.parseAssignmentExpr()
	}

	endSpan := typeSpec.Span()
	if name != nil {
		endSpan = name.Span()
	}
	if def != nil {
		endSpan = def.Span()
	}

	return &ast.Param{
		Base:       ast.NewBase(startTok, source.Union(startTok.Span, endSpan)),
		Qualifiers: qualifiers,
		Type:       typeSpec,
		Name:       name,
		Semantic:   semantic,
		Default:    def,
	}
}
