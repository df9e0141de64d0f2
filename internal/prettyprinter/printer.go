// Package prettyprinter renders a parsed translation unit back to HLSL
// source text.
//
// Grounded on the teacher's CodePrinter (bytes.Buffer plus an indent
// counter, an ast.Visitor implementation building text as it walks):
// the column/line-width-aware pipe-chain layout was specific to the
// teacher's own expression grammar and is dropped, but the core idea —
// an ast.Visitor sharing one buffer/indent style across the whole
// node set — carries over directly. The teacher's second printer,
// TreePrinter, dumped a debug tree of its own AST; that AST no longer
// exists here, so it has no equivalent in this package (see DESIGN.md).
package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/config"
)

// SourcePrinter renders a TranslationUnit back to HLSL-like source text.
// It is not guaranteed to byte-match the original input (whitespace and
// comments are not part of the AST); it is intended for debugging and
// for tooling that needs a canonical textual form of a parsed tree.
type SourcePrinter struct {
	buf    bytes.Buffer
	indent int
}

// NewSourcePrinter creates an empty SourcePrinter.
func NewSourcePrinter() *SourcePrinter { return &SourcePrinter{} }

// String returns everything written so far.
func (p *SourcePrinter) String() string { return p.buf.String() }

func (p *SourcePrinter) write(s string) { p.buf.WriteString(s) }

func (p *SourcePrinter) writeIndent() { p.buf.WriteString(strings.Repeat("    ", p.indent)) }

func (p *SourcePrinter) writeQualifiers(q *ast.QualifierSet) {
	if q == nil {
		return
	}
	for _, s := range q.Storage {
		p.write(s + " ")
	}
	for _, s := range q.Interpolation {
		p.write(s + " ")
	}
	if q.RowMajor {
		p.write("row_major ")
	}
	if q.ColumnMajor {
		p.write("column_major ")
	}
	for _, l := range q.Layout {
		p.write("layout(" + l.Name)
		if l.Value != nil {
			p.write("=")
			l.Value.Accept(p)
		}
		p.write(") ")
	}
}

func (p *SourcePrinter) writeType(t ast.TypeSpec) {
	if t == nil {
		return
	}
	t.Accept(p)
}

func (p *SourcePrinter) writeDeclarator(d *ast.Declarator) {
	for i := 0; i < d.PointerDepth; i++ {
		p.write("*")
	}
	p.write(d.Name.Name)
	for _, dim := range d.ArrayDims {
		p.write("[")
		if dim != nil {
			dim.Accept(p)
		}
		p.write("]")
	}
	if d.Register != nil {
		p.write(" : register(" + d.Register.Slot)
		if d.Register.Space != "" {
			p.write(", " + d.Register.Space)
		}
		p.write(")")
	} else if d.Packoffset != "" {
		p.write(" : packoffset(" + d.Packoffset + ")")
	} else if d.Semantic != "" {
		p.write(" : " + d.Semantic)
	}
	if d.Init != nil {
		p.write(" = ")
		d.Init.Accept(p)
	}
}

func (p *SourcePrinter) VisitTranslationUnit(n *ast.TranslationUnit) {
	for i, d := range n.Decls {
		if i > 0 {
			p.write("\n")
		}
		d.Accept(p)
	}
}

func (p *SourcePrinter) VisitFunctionDef(n *ast.FunctionDef) {
	p.writeIndent()
	p.writeQualifiers(n.Qualifiers)
	p.writeType(n.ReturnType)
	p.write(" " + n.Name.Name + "(")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		param.Accept(p)
	}
	p.write(")")
	if n.Semantic != "" {
		p.write(" : " + n.Semantic)
	}
	if n.Body != nil {
		p.write(" ")
		n.Body.Accept(p)
	} else {
		p.write(";\n")
	}
}

func (p *SourcePrinter) VisitParam(n *ast.Param) {
	p.writeQualifiers(n.Qualifiers)
	p.writeType(n.Type)
	if n.Name != nil {
		p.write(" " + n.Name.Name)
	}
	if n.Semantic != "" {
		p.write(" : " + n.Semantic)
	}
	if n.Default != nil {
		p.write(" = ")
		n.Default.Accept(p)
	}
}

func (p *SourcePrinter) VisitPreprocessorPassthrough(n *ast.PreprocessorPassthrough) {
	p.writeIndent()
	p.write("#" + n.Directive + " " + n.Text + "\n")
}

func (p *SourcePrinter) VisitVarDecl(n *ast.VarDecl) {
	p.writeIndent()
	p.writeQualifiers(n.Qualifiers)
	p.writeType(n.Type)
	p.write(" ")
	for i, d := range n.Names {
		if i > 0 {
			p.write(", ")
		}
		p.writeDeclarator(d)
	}
	p.write(";\n")
}

func (p *SourcePrinter) VisitDeclarator(n *ast.Declarator) { p.writeDeclarator(n) }

func (p *SourcePrinter) VisitRegisterAnnotation(n *ast.RegisterAnnotation) {
	p.write("register(" + n.Slot)
	if n.Space != "" {
		p.write(", " + n.Space)
	}
	p.write(")")
}

func (p *SourcePrinter) VisitStructDecl(n *ast.StructDecl) {
	p.writeIndent()
	p.write("struct")
	if n.Name != nil {
		p.write(" " + n.Name.Name)
	}
	p.write(" {\n")
	p.indent++
	for _, f := range n.Fields {
		f.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("};\n")
}

func (p *SourcePrinter) VisitCBufferDecl(n *ast.CBufferDecl) {
	p.writeIndent()
	if n.IsTBuffer {
		p.write("tbuffer ")
	} else {
		p.write("cbuffer ")
	}
	p.write(n.Name.Name)
	if n.Register != nil {
		p.write(" : ")
		n.Register.Accept(p)
	}
	p.write(" {\n")
	p.indent++
	for _, f := range n.Fields {
		f.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *SourcePrinter) VisitTypedefDecl(n *ast.TypedefDecl) {
	p.writeIndent()
	p.write("typedef ")
	p.writeType(n.Underlying)
	p.write(" " + n.Name.Name + ";\n")
}

func (p *SourcePrinter) VisitPrecisionDecl(n *ast.PrecisionDecl) {
	p.writeIndent()
	p.write("precision " + n.Qualifier + " ")
	p.writeType(n.Type)
	p.write(";\n")
}

func (p *SourcePrinter) VisitInterfaceBlockDecl(n *ast.InterfaceBlockDecl) {
	p.writeIndent()
	p.writeQualifiers(n.Qualifiers)
	p.write(n.Name.Name + " {\n")
	p.indent++
	for _, f := range n.Fields {
		f.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
	if n.InstanceName != nil {
		p.write(" " + n.InstanceName.Name)
		for range n.ArrayDims {
			p.write("[]")
		}
	}
	p.write(";\n")
}

func (p *SourcePrinter) VisitScalarType(n *ast.ScalarType) { p.write(n.Name) }
func (p *SourcePrinter) VisitVectorType(n *ast.VectorType) { p.write(n.Name) }
func (p *SourcePrinter) VisitMatrixType(n *ast.MatrixType) { p.write(n.Name) }
func (p *SourcePrinter) VisitObjectType(n *ast.ObjectType) {
	p.write(n.Name)
	if n.Element != nil {
		p.write("<")
		n.Element.Accept(p)
		p.write(">")
	}
}
func (p *SourcePrinter) VisitNamedType(n *ast.NamedType) { p.write(n.Name) }
func (p *SourcePrinter) VisitVoidType(n *ast.VoidType)   { p.write("void") }
func (p *SourcePrinter) VisitQualifierSet(n *ast.QualifierSet) { p.writeQualifiers(n) }

func (p *SourcePrinter) VisitCompoundStmt(n *ast.CompoundStmt) {
	p.write("{\n")
	p.indent++
	for _, s := range n.Stmts {
		s.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *SourcePrinter) VisitExprStmt(n *ast.ExprStmt) {
	p.writeIndent()
	if n.Expr != nil {
		n.Expr.Accept(p)
	}
	p.write(";\n")
}

func (p *SourcePrinter) VisitIfStmt(n *ast.IfStmt) {
	p.writeIndent()
	p.write("if (")
	n.Cond.Accept(p)
	p.write(") ")
	p.printBody(n.Then)
	if n.Else != nil {
		p.writeIndent()
		p.write("else ")
		p.printBody(n.Else)
	}
}

// printBody prints a statement as a control-flow body: a compound
// statement keeps its own brace formatting, anything else is indented
// on its own line.
func (p *SourcePrinter) printBody(s ast.Stmt) {
	if cs, ok := s.(*ast.CompoundStmt); ok {
		cs.Accept(p)
		return
	}
	p.write("\n")
	p.indent++
	s.Accept(p)
	p.indent--
}

func (p *SourcePrinter) VisitForStmt(n *ast.ForStmt) {
	p.writeIndent()
	p.write("for (")
	if n.Init != nil {
		p.suppressIndentOnce(n.Init)
	}
	p.write("; ")
	if n.Cond != nil {
		n.Cond.Accept(p)
	}
	p.write("; ")
	if n.Post != nil {
		n.Post.Accept(p)
	}
	p.write(") ")
	p.printBody(n.Body)
}

// suppressIndentOnce prints a for-loop's init clause (a VarDecl or
// ExprStmt) without its usual leading indent/trailing newline+';'; both
// node kinds always write one via their own Visit method, so it is
// stripped back out here rather than threading an inline flag through
// every statement visitor.
func (p *SourcePrinter) suppressIndentOnce(s ast.Stmt) {
	before := p.buf.Len()
	s.Accept(p)
	text := p.buf.String()[before:]
	text = strings.TrimRight(text, "\n")
	text = strings.TrimSuffix(text, ";")
	text = strings.TrimPrefix(text, strings.Repeat("    ", p.indent))
	p.buf.Truncate(before)
	p.write(text)
}

func (p *SourcePrinter) VisitWhileStmt(n *ast.WhileStmt) {
	p.writeIndent()
	p.write("while (")
	n.Cond.Accept(p)
	p.write(") ")
	p.printBody(n.Body)
}

func (p *SourcePrinter) VisitDoWhileStmt(n *ast.DoWhileStmt) {
	p.writeIndent()
	p.write("do ")
	p.printBody(n.Body)
	p.writeIndent()
	p.write("while (")
	n.Cond.Accept(p)
	p.write(");\n")
}

func (p *SourcePrinter) VisitSwitchStmt(n *ast.SwitchStmt) {
	p.writeIndent()
	p.write("switch (")
	n.Cond.Accept(p)
	p.write(") {\n")
	p.indent++
	for _, c := range n.Cases {
		c.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *SourcePrinter) VisitCaseClause(n *ast.CaseClause) {
	p.writeIndent()
	if n.IsDefault {
		p.write("default:\n")
	} else {
		p.write("case ")
		n.Value.Accept(p)
		p.write(":\n")
	}
	p.indent++
	for _, s := range n.Stmts {
		s.Accept(p)
	}
	p.indent--
}

func (p *SourcePrinter) VisitReturnStmt(n *ast.ReturnStmt) {
	p.writeIndent()
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		n.Value.Accept(p)
	}
	p.write(";\n")
}

func (p *SourcePrinter) VisitBreakStmt(n *ast.BreakStmt)       { p.writeIndent(); p.write("break;\n") }
func (p *SourcePrinter) VisitContinueStmt(n *ast.ContinueStmt) { p.writeIndent(); p.write("continue;\n") }
func (p *SourcePrinter) VisitDiscardStmt(n *ast.DiscardStmt)   { p.writeIndent(); p.write("discard;\n") }

func (p *SourcePrinter) VisitIdentifier(n *ast.Identifier)       { p.write(n.Name) }
func (p *SourcePrinter) VisitIntLiteral(n *ast.IntLiteral)       { p.write(fmt.Sprintf("%d", n.Value)) }
func (p *SourcePrinter) VisitUintLiteral(n *ast.UintLiteral)     { p.write(fmt.Sprintf("%du", n.Value)) }
func (p *SourcePrinter) VisitFloatLiteral(n *ast.FloatLiteral)   { p.write(fmt.Sprintf("%gf", n.Value)) }
func (p *SourcePrinter) VisitDoubleLiteral(n *ast.DoubleLiteral) { p.write(fmt.Sprintf("%g", n.Value)) }
func (p *SourcePrinter) VisitBoolLiteral(n *ast.BoolLiteral) {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}
func (p *SourcePrinter) VisitStringLiteral(n *ast.StringLiteral) { p.write(fmt.Sprintf("%q", n.Value)) }

func (p *SourcePrinter) VisitUnaryExpr(n *ast.UnaryExpr) {
	if n.Op == "(cast)" {
		p.write("(")
		n.Cast.Accept(p)
		p.write(")")
		n.Expr.Accept(p)
		return
	}
	p.write(n.Op)
	n.Expr.Accept(p)
}

func (p *SourcePrinter) VisitPostfixExpr(n *ast.PostfixExpr) {
	n.Expr.Accept(p)
	p.write(n.Op)
}

// exprPrecedence estimates the binding power of expr's outermost
// operator for parenthesization, using the shared operator table so the
// printer and parser never disagree on precedence (§4.6).
func exprPrecedence(e ast.Expr) int {
	switch v := e.(type) {
	case *ast.BinaryExpr:
		if info := config.GetOperatorInfo(v.Op); info != nil {
			return info.Precedence
		}
	case *ast.AssignExpr:
		return config.PrecAssign
	case *ast.TernaryExpr:
		return config.PrecTernary
	case *ast.CommaExpr:
		return config.PrecComma
	case *ast.UnaryExpr:
		return config.PrecUnary
	case *ast.PostfixExpr:
		return config.PrecPostfix
	}
	return config.PrecPostfix + 1 // primary expressions never need parens
}

func (p *SourcePrinter) printMaybeParen(e ast.Expr, parentPrec int) {
	needParens := exprPrecedence(e) < parentPrec
	if needParens {
		p.write("(")
	}
	e.Accept(p)
	if needParens {
		p.write(")")
	}
}

func (p *SourcePrinter) VisitBinaryExpr(n *ast.BinaryExpr) {
	info := config.GetOperatorInfo(n.Op)
	prec := config.PrecNone
	if info != nil {
		prec = info.Precedence
	}
	p.printMaybeParen(n.Left, prec)
	p.write(" " + n.Op + " ")
	p.printMaybeParen(n.Right, prec+1)
}

func (p *SourcePrinter) VisitAssignExpr(n *ast.AssignExpr) {
	n.Target.Accept(p)
	p.write(" " + n.Op + " ")
	n.Value.Accept(p)
}

func (p *SourcePrinter) VisitTernaryExpr(n *ast.TernaryExpr) {
	n.Cond.Accept(p)
	p.write(" ? ")
	n.Then.Accept(p)
	p.write(" : ")
	n.Else.Accept(p)
}

func (p *SourcePrinter) VisitCommaExpr(n *ast.CommaExpr) {
	for i, e := range n.Exprs {
		if i > 0 {
			p.write(", ")
		}
		e.Accept(p)
	}
}

func (p *SourcePrinter) VisitCallExpr(n *ast.CallExpr) {
	n.Callee.Accept(p)
	p.write("(")
	for i, a := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		a.Accept(p)
	}
	p.write(")")
}

func (p *SourcePrinter) VisitMemberExpr(n *ast.MemberExpr) {
	n.Target.Accept(p)
	p.write("." + n.Member)
}

func (p *SourcePrinter) VisitSubscriptExpr(n *ast.SubscriptExpr) {
	n.Target.Accept(p)
	p.write("[")
	n.Index.Accept(p)
	p.write("]")
}

func (p *SourcePrinter) VisitInitListExpr(n *ast.InitListExpr) {
	p.write("{ ")
	for i, e := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		if n.Designators[i] != "" {
			p.write("." + n.Designators[i] + " = ")
		}
		e.Accept(p)
	}
	p.write(" }")
}

// Print renders unit as HLSL source text.
func Print(unit *ast.TranslationUnit) string {
	p := NewSourcePrinter()
	unit.Accept(p)
	return p.String()
}
