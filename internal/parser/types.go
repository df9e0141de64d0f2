package parser

import (
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/config"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/source"
)

var modifierStorageKeywords = map[string]bool{
	"const": true, "static": true, "uniform": true, "extern": true,
	"shared": true, "groupshared": true, "volatile": true, "inline": true,
	"export": true, "precise": true, "in": true, "out": true, "inout": true,
}

var interpolationKeywords = map[string]bool{
	"linear": true, "centroid": true, "noperspective": true,
	"sample": true, "nointerpolation": true,
}

// isTypeStart reports whether the current token can begin a type
// specifier (§4.6, the declaration/expression-statement disambiguation
// the parser performs using classifier output directly: BuiltinTypeName
// and UserTypeName are already resolved, so no backtracking is needed).
func (p *Parser) isTypeStart() bool {
	t := p.cur()
	if t.Kind == classifier.BuiltinTypeName || t.Kind == classifier.UserTypeName {
		return true
	}
	if t.Kind == classifier.Keyword && (t.Text == "void" || t.Text == "struct") {
		return true
	}
	return false
}

// parseQualifiers consumes a run of storage/interpolation/matrix-packing
// modifier keywords and layout(...) qualifiers preceding a type (§3,
// "qualifier set"). Returns nil if none were present.
func (p *Parser) parseQualifiers() *ast.QualifierSet {
	startTok := p.cur()
	q := &ast.QualifierSet{}
	found := false

	for {
		t := p.cur()
		if t.Kind == classifier.Keyword && modifierStorageKeywords[t.Text] {
			q.Storage = append(q.Storage, t.Text)
			p.advance()
			found = true
			continue
		}
		if t.Kind == classifier.Keyword && interpolationKeywords[t.Text] {
			q.Interpolation = append(q.Interpolation, t.Text)
			p.advance()
			found = true
			continue
		}
		if t.Kind == classifier.Keyword && t.Text == "row_major" {
			q.RowMajor = true
			p.advance()
			found = true
			continue
		}
		if t.Kind == classifier.Keyword && t.Text == "column_major" {
			q.ColumnMajor = true
			p.advance()
			found = true
			continue
		}
		if t.Kind == classifier.Identifier && t.Text == "layout" && p.peekAt(2).Text == "(" {
			q.Layout = append(q.Layout, p.parseLayoutQualifiers()...)
			found = true
			continue
		}
		break
	}

	if !found {
		return nil
	}
	endTok := p.cur()
	q.Base = ast.NewBase(startTok, source.Union(startTok.Span, endTok.Span))
	return q
}

// parseLayoutQualifiers parses `layout ( id [= expr] (, id [= expr])* )`.
func (p *Parser) parseLayoutQualifiers() []ast.LayoutQualifier {
	p.advance() // 'layout'
	p.expectPunct("(")
	var out []ast.LayoutQualifier
	for !p.atPunct(")") && p.cur().Kind != classifier.EOF {
		nameTok := p.expectIdentifierLike()
		lq := ast.LayoutQualifier{Name: nameTok.Text}
		if _, ok := p.eatOperator("="); ok {
			lq.Value = p.parseAssignmentExpr()
		}
		out = append(out, lq)
		if _, ok := p.eatPunct(","); !ok {
			break
		}
	}
	p.expectPunct(")")
	return out
}

// parseTypeSpec parses a type specifier: a builtin scalar/vector/matrix/
// object type, a user-declared type name, `void`, or an inline struct
// definition (§3, "type specifier").
func (p *Parser) parseTypeSpec() ast.TypeSpec {
	t := p.cur()

	if t.Kind == classifier.Keyword && t.Text == "void" {
		p.advance()
		return &ast.VoidType{Base: ast.NewBase(t, t.Span)}
	}
	if t.Kind == classifier.Keyword && t.Text == "struct" {
		return p.parseStructDecl()
	}
	if t.Kind == classifier.UserTypeName {
		p.advance()
		return &ast.NamedType{Base: ast.NewBase(t, t.Span), Name: t.Text}
	}
	if t.Kind == classifier.BuiltinTypeName {
		return p.parseBuiltinTypeSpec()
	}

	p.diag(diagnostics.Error(diagnostics.PhaseParser, diagnostics.SExpectedGotX, t.Span, "a type", t.Text))
	p.advance()
	return &ast.NamedType{Base: ast.NewBase(t, t.Span), Name: t.Text}
}

func (p *Parser) parseBuiltinTypeSpec() ast.TypeSpec {
	t := p.advance()
	info := config.GetTypeInfo(t.Text)
	if info == nil {
		return &ast.NamedType{Base: ast.NewBase(t, t.Span), Name: t.Text}
	}

	switch info.Category {
	case "vector":
		base, size := splitVectorName(t.Text)
		return &ast.VectorType{BaseName: base, Size: size, Name: t.Text, Base: ast.NewBase(t, t.Span)}
	case "matrix":
		base, rows, cols := splitMatrixName(t.Text)
		return &ast.MatrixType{BaseName: base, Rows: rows, Cols: cols, Name: t.Text, Base: ast.NewBase(t, t.Span)}
	case "sampler", "texture", "buffer", "object":
		obj := &ast.ObjectType{Base: ast.NewBase(t, t.Span), Name: t.Text}
		if _, ok := p.eatOperator("<"); ok {
			obj.Element = p.parseTypeSpec()
			// Patch-family templates (InputPatch<T, N>) carry a trailing
			// integer count; parsed and discarded since it's a semantic
			// (not syntactic) constraint outside this front end's scope.
			if _, ok := p.eatPunct(","); ok {
				p.parseAssignmentExpr()
			}
			p.closeAngle()
			obj.Sp = source.Union(obj.Sp, p.cur().Span)
		}
		return obj
	default:
		return &ast.ScalarType{Base: ast.NewBase(t, t.Span), Name: t.Text}
	}
}

func splitVectorName(name string) (base string, size int) {
	n := len(name)
	if n == 0 {
		return name, 0
	}
	return name[:n-1], int(name[n-1] - '0')
}

func splitMatrixName(name string) (base string, rows, cols int) {
	n := len(name)
	if n < 3 {
		return name, 0, 0
	}
	return name[:n-3], int(name[n-3] - '0'), int(name[n-1] - '0')
}

// parseRegisterAnnotation parses `register(b0[, space1])` (§9).
func (p *Parser) parseRegisterAnnotation() *ast.RegisterAnnotation {
	startTok, _ := p.eatKeyword("register")
	p.expectPunct("(")
	slotTok := p.expectIdentifierLike()
	reg := &ast.RegisterAnnotation{Slot: slotTok.Text}
	if _, ok := p.eatPunct(","); ok {
		spaceTok := p.expectIdentifierLike()
		reg.Space = spaceTok.Text
	}
	endTok := p.expectPunct(")")
	reg.Base = ast.NewBase(startTok, source.Union(startTok.Span, endTok.Span))
	return reg
}
