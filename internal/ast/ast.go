// Package ast defines the source-mapped syntax tree the parser builds
// (§3, "AST"). Every node is purely syntactic — there is no semantic
// evaluation, stage-qualifier validation, or type checking here (Non-goals).
//
// Grounded on the teacher's internal/ast/ast.go sum-of-products node set:
// a Node base interface with TokenLiteral/Accept, Statement/Expression
// marker interfaces, and one struct per production. The teacher's source
// calls v.VisitX(x) throughout but never defines Visitor anywhere in the
// retrieved pack — a gap in the retrieval filtering, not a deliberate
// omission — so Visitor is (re)defined here, shaped the same way.
package ast

import (
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/source"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	Span() source.Span
	Accept(v Visitor)
}

// Decl is a Node appearing at translation-unit or block-declaration
// scope.
type Decl interface {
	Node
	declNode()
}

// Stmt is a Node that represents a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a Node that represents an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeSpec is a Node that represents a type specifier.
type TypeSpec interface {
	Node
	typeSpecNode()
}

// Base carries the primary token and span every concrete node embeds.
type Base struct {
	Tok classifier.Token
	Sp  source.Span
}

func (b Base) TokenLiteral() string { return b.Tok.Text }
func (b Base) Span() source.Span    { return b.Sp }

// ===========================================================================
// Translation unit
// ===========================================================================

// TranslationUnit is the root node: an ordered sequence of external
// declarations (§3, "translation-unit").
type TranslationUnit struct {
	Base
	Decls []ExternalDecl
}

func (n *TranslationUnit) Accept(v Visitor) { v.VisitTranslationUnit(n) }

// ExternalDecl is a Node appearing directly in a TranslationUnit: a
// function definition, a declaration, or a preprocessor passthrough
// (§3, "external declaration").
type ExternalDecl interface {
	Node
	externalDeclNode()
}

// FunctionDef is a function definition with a body.
type FunctionDef struct {
	Base
	Qualifiers *QualifierSet
	ReturnType TypeSpec
	Name       *Identifier
	Params     []*Param
	Semantic   string // optional ": SV_Target"-style trailing semantic
	Body       *CompoundStmt
}

func (n *FunctionDef) Accept(v Visitor)    { v.VisitFunctionDef(n) }
func (n *FunctionDef) externalDeclNode()   {}
func (n *FunctionDef) declNode()           {}

// Param is one function parameter.
type Param struct {
	Base
	Qualifiers *QualifierSet
	Type       TypeSpec
	Name       *Identifier // nil for unnamed parameters
	Semantic   string
	Default    Expr // nil if absent
}

func (n *Param) Accept(v Visitor) { v.VisitParam(n) }

// PreprocessorPassthrough wraps a directive carried into the AST verbatim
// rather than acted on (§3). The parser never constructs it: the
// preprocessor consumes every directive line.
type PreprocessorPassthrough struct {
	Base
	Directive string
	Text      string
}

func (n *PreprocessorPassthrough) Accept(v Visitor)  { v.VisitPreprocessorPassthrough(n) }
func (n *PreprocessorPassthrough) externalDeclNode() {}
func (n *PreprocessorPassthrough) declNode()         {}

// ===========================================================================
// Declarations
// ===========================================================================

// VarDecl declares one or more variables sharing a type and qualifier
// set (§3, "declaration: variable").
type VarDecl struct {
	Base
	Qualifiers *QualifierSet
	Type       TypeSpec
	Names      []*Declarator
}

func (n *VarDecl) Accept(v Visitor)  { v.VisitVarDecl(n) }
func (n *VarDecl) declNode()         {}
func (n *VarDecl) stmtNode()         {}
func (n *VarDecl) externalDeclNode() {}

// Declarator is one name within a VarDecl: its array dimensions,
// optional register/packoffset annotation, and initializer.
type Declarator struct {
	Base
	PointerDepth int // number of leading '*' before Name, 0 if not a pointer declarator
	Name         *Identifier
	ArrayDims    []Expr // nil entries mark an unsized dimension ([])
	Semantic     string // e.g. "SV_Position", empty if absent
	Register     *RegisterAnnotation
	Packoffset   string
	Init         Expr // nil if absent
}

func (n *Declarator) Accept(v Visitor) { v.VisitDeclarator(n) }

// RegisterAnnotation is a parsed register(...) qualifier (§9, "register(...)").
type RegisterAnnotation struct {
	Base
	Slot  string // e.g. "b0", "t3"
	Space string // optional "space1"
}

func (n *RegisterAnnotation) Accept(v Visitor) { v.VisitRegisterAnnotation(n) }

// StructDecl declares a struct type, optionally tagged; type-declaring
// productions like this call parsectx.Context.DeclareTypeName when the
// tag is present (§4.5).
type StructDecl struct {
	Base
	Name   *Identifier // nil for an anonymous struct used inline
	Fields []*VarDecl
}

func (n *StructDecl) Accept(v Visitor)  { v.VisitStructDecl(n) }
func (n *StructDecl) declNode()         {}
func (n *StructDecl) externalDeclNode() {}
func (n *StructDecl) typeSpecNode()     {}

// CBufferDecl declares a constant buffer or texture buffer block
// (§3, "declaration: cbuffer"; `tbuffer` reuses the same node, IsTBuffer
// distinguishes it).
type CBufferDecl struct {
	Base
	Name      *Identifier
	IsTBuffer bool
	Register  *RegisterAnnotation
	Fields    []*VarDecl
}

func (n *CBufferDecl) Accept(v Visitor)  { v.VisitCBufferDecl(n) }
func (n *CBufferDecl) declNode()         {}
func (n *CBufferDecl) externalDeclNode() {}

// TypedefDecl introduces a type alias; the new name is declared into the
// parse context as a type name on reduction (§4.5).
type TypedefDecl struct {
	Base
	Underlying TypeSpec
	Name       *Identifier
}

func (n *TypedefDecl) Accept(v Visitor)  { v.VisitTypedefDecl(n) }
func (n *TypedefDecl) declNode()         {}
func (n *TypedefDecl) externalDeclNode() {}

// PrecisionDecl is a `precision <qualifier> <type>;` declaration
// (§3, "declaration: precision").
type PrecisionDecl struct {
	Base
	Qualifier string
	Type      TypeSpec
}

func (n *PrecisionDecl) Accept(v Visitor)  { v.VisitPrecisionDecl(n) }
func (n *PrecisionDecl) declNode()         {}
func (n *PrecisionDecl) externalDeclNode() {}

// InterfaceBlockDecl declares a GLSL-style named interface block
// (in/out/uniform block with an instance name) (§3, "declaration:
// interface block").
type InterfaceBlockDecl struct {
	Base
	Qualifiers   *QualifierSet
	Name         *Identifier
	Fields       []*VarDecl
	InstanceName *Identifier // optional trailing instance name
	ArrayDims    []Expr
}

func (n *InterfaceBlockDecl) Accept(v Visitor)  { v.VisitInterfaceBlockDecl(n) }
func (n *InterfaceBlockDecl) declNode()         {}
func (n *InterfaceBlockDecl) externalDeclNode() {}

// ===========================================================================
// Type specifiers
// ===========================================================================

// ScalarType is a builtin scalar type name (bool, int, float, ...).
type ScalarType struct {
	Base
	Name string
}

func (n *ScalarType) Accept(v Visitor) { v.VisitScalarType(n) }
func (n *ScalarType) typeSpecNode()    {}

// VectorType is a builtin vector type name (float3, int2, ...).
type VectorType struct {
	Base
	Name     string
	BaseName string
	Size     int
}

func (n *VectorType) Accept(v Visitor) { v.VisitVectorType(n) }
func (n *VectorType) typeSpecNode()    {}

// MatrixType is a builtin matrix type name (float4x4, ...).
type MatrixType struct {
	Base
	Name     string
	BaseName string
	Rows     int
	Cols     int
}

func (n *MatrixType) Accept(v Visitor) { v.VisitMatrixType(n) }
func (n *MatrixType) typeSpecNode()    {}

// ObjectType is a sampler/texture/buffer-family builtin, optionally
// parameterized by an element type (Texture2D<float4>,
// StructuredBuffer<T>, ...).
type ObjectType struct {
	Base
	Name    string
	Element TypeSpec // nil if unparameterized
}

func (n *ObjectType) Accept(v Visitor) { v.VisitObjectType(n) }
func (n *ObjectType) typeSpecNode()    {}

// NamedType is a user-declared type name resolved via the parse context
// (struct tag, cbuffer tag, or typedef name) (§4.4, "user-type-name").
type NamedType struct {
	Base
	Name string
}

func (n *NamedType) Accept(v Visitor) { v.VisitNamedType(n) }
func (n *NamedType) typeSpecNode()    {}

// VoidType is the `void` return/parameter type.
type VoidType struct {
	Base
}

func (n *VoidType) Accept(v Visitor) { v.VisitVoidType(n) }
func (n *VoidType) typeSpecNode()    {}

// ===========================================================================
// Qualifiers
// ===========================================================================

// QualifierSet collects the storage/interpolation/precision/layout
// qualifiers attached to a declaration or parameter (§3, "qualifier set").
type QualifierSet struct {
	Base
	Storage       []string // const, static, uniform, extern, groupshared, in, out, inout, ...
	Interpolation []string // linear, centroid, noperspective, sample, nointerpolation
	Precision     string   // min16float-style precision, empty if absent
	RowMajor      bool
	ColumnMajor   bool
	Layout        []LayoutQualifier
}

func (n *QualifierSet) Accept(v Visitor) { v.VisitQualifierSet(n) }

// Has reports whether storage qualifier name is present.
func (q *QualifierSet) Has(name string) bool {
	if q == nil {
		return false
	}
	for _, s := range q.Storage {
		if s == name {
			return true
		}
	}
	return false
}

// LayoutQualifier is one `layout(id = value)` entry.
type LayoutQualifier struct {
	Name  string
	Value Expr // nil for a bare flag like `layout(push_constant)`
}

// ===========================================================================
// Statements
// ===========================================================================

// CompoundStmt is a `{ ... }` block (§3, "statement: compound"). The
// parser pushes a parse-context scope on entry and pops it on exit
// (§4.5).
type CompoundStmt struct {
	Base
	Stmts []Stmt
}

func (n *CompoundStmt) Accept(v Visitor) { v.VisitCompoundStmt(n) }
func (n *CompoundStmt) stmtNode()        {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Base
	Expr Expr // nil for a bare ';'
}

func (n *ExprStmt) Accept(v Visitor) { v.VisitExprStmt(n) }
func (n *ExprStmt) stmtNode()        {}

// IfStmt is a selection statement (§3, "statement: selection").
type IfStmt struct {
	Base
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

func (n *IfStmt) Accept(v Visitor) { v.VisitIfStmt(n) }
func (n *IfStmt) stmtNode()        {}

// ForStmt is a C-style for loop (§3, "statement: iteration").
type ForStmt struct {
	Base
	Init Stmt // VarDecl or ExprStmt, nil if absent
	Cond Expr // nil if absent
	Post Expr // nil if absent
	Body Stmt
}

func (n *ForStmt) Accept(v Visitor) { v.VisitForStmt(n) }
func (n *ForStmt) stmtNode()        {}

// WhileStmt is a `while (cond) body` loop.
type WhileStmt struct {
	Base
	Cond Expr
	Body Stmt
}

func (n *WhileStmt) Accept(v Visitor) { v.VisitWhileStmt(n) }
func (n *WhileStmt) stmtNode()        {}

// DoWhileStmt is a `do body while (cond);` loop.
type DoWhileStmt struct {
	Base
	Body Stmt
	Cond Expr
}

func (n *DoWhileStmt) Accept(v Visitor) { v.VisitDoWhileStmt(n) }
func (n *DoWhileStmt) stmtNode()        {}

// SwitchStmt is a switch statement (§3, "statement: switch").
type SwitchStmt struct {
	Base
	Cond  Expr
	Cases []*CaseClause
}

func (n *SwitchStmt) Accept(v Visitor) { v.VisitSwitchStmt(n) }
func (n *SwitchStmt) stmtNode()        {}

// CaseClause is one `case expr:` or `default:` arm.
type CaseClause struct {
	Base
	Value    Expr // nil for default
	IsDefault bool
	Stmts    []Stmt
}

func (n *CaseClause) Accept(v Visitor) { v.VisitCaseClause(n) }

// ReturnStmt, BreakStmt, ContinueStmt, DiscardStmt are jump statements
// (§3, "statement: jump").
type ReturnStmt struct {
	Base
	Value Expr // nil for a bare `return;`
}

func (n *ReturnStmt) Accept(v Visitor) { v.VisitReturnStmt(n) }
func (n *ReturnStmt) stmtNode()        {}

type BreakStmt struct{ Base }

func (n *BreakStmt) Accept(v Visitor) { v.VisitBreakStmt(n) }
func (n *BreakStmt) stmtNode()        {}

type ContinueStmt struct{ Base }

func (n *ContinueStmt) Accept(v Visitor) { v.VisitContinueStmt(n) }
func (n *ContinueStmt) stmtNode()        {}

// DiscardStmt is the fragment-shader `discard;` statement.
type DiscardStmt struct{ Base }

func (n *DiscardStmt) Accept(v Visitor) { v.VisitDiscardStmt(n) }
func (n *DiscardStmt) stmtNode()        {}

// ===========================================================================
// Expressions
// ===========================================================================

// Identifier is a plain identifier reference.
type Identifier struct {
	Base
	Name string
}

func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }
func (n *Identifier) exprNode()        {}

// IntLiteral, UintLiteral, FloatLiteral, DoubleLiteral, BoolLiteral are
// the numeric/boolean literal leaves (§3, "literal").
type IntLiteral struct {
	Base
	Value int64
}

func (n *IntLiteral) Accept(v Visitor) { v.VisitIntLiteral(n) }
func (n *IntLiteral) exprNode()        {}

type UintLiteral struct {
	Base
	Value uint64
}

func (n *UintLiteral) Accept(v Visitor) { v.VisitUintLiteral(n) }
func (n *UintLiteral) exprNode()        {}

type FloatLiteral struct {
	Base
	Value float32
}

func (n *FloatLiteral) Accept(v Visitor) { v.VisitFloatLiteral(n) }
func (n *FloatLiteral) exprNode()        {}

type DoubleLiteral struct {
	Base
	Value float64
}

func (n *DoubleLiteral) Accept(v Visitor) { v.VisitDoubleLiteral(n) }
func (n *DoubleLiteral) exprNode()        {}

type BoolLiteral struct {
	Base
	Value bool
}

func (n *BoolLiteral) Accept(v Visitor) { v.VisitBoolLiteral(n) }
func (n *BoolLiteral) exprNode()        {}

// StringLiteral is a quoted string expression.
type StringLiteral struct {
	Base
	Value string
}

func (n *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(n) }
func (n *StringLiteral) exprNode()        {}

// UnaryExpr is a prefix unary operator expression (§3, "expression:
// unary"): ! - + ~ ++ -- (prefix), or a parenthesized cast `(T)expr`.
type UnaryExpr struct {
	Base
	Op   string
	Cast TypeSpec // non-nil when Op == "(cast)"
	Expr Expr
}

func (n *UnaryExpr) Accept(v Visitor) { v.VisitUnaryExpr(n) }
func (n *UnaryExpr) exprNode()        {}

// PostfixExpr is a postfix ++ / -- (§3, "expression: postfix").
type PostfixExpr struct {
	Base
	Op   string
	Expr Expr
}

func (n *PostfixExpr) Accept(v Visitor) { v.VisitPostfixExpr(n) }
func (n *PostfixExpr) exprNode()        {}

// BinaryExpr is a binary operator expression resolved under the
// operator-precedence table (§4.6, §3 "expression: binary with
// precedence").
type BinaryExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Accept(v Visitor) { v.VisitBinaryExpr(n) }
func (n *BinaryExpr) exprNode()        {}

// AssignExpr is an assignment expression, including compound forms
// (+=, -=, ...) (§3, "expression: assignment").
type AssignExpr struct {
	Base
	Op     string
	Target Expr
	Value  Expr
}

func (n *AssignExpr) Accept(v Visitor) { v.VisitAssignExpr(n) }
func (n *AssignExpr) exprNode()        {}

// TernaryExpr is the `cond ? then : else` conditional expression.
type TernaryExpr struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (n *TernaryExpr) Accept(v Visitor) { v.VisitTernaryExpr(n) }
func (n *TernaryExpr) exprNode()        {}

// CommaExpr is a `a, b, c` comma-sequenced expression (§3, "expression: comma").
type CommaExpr struct {
	Base
	Exprs []Expr
}

func (n *CommaExpr) Accept(v Visitor) { v.VisitCommaExpr(n) }
func (n *CommaExpr) exprNode()        {}

// CallExpr is a function call or constructor/cast call (§3, "expression:
// function call"); Callee is an Identifier (when it names a builtin type,
// as in float3(...), Type is set too) or a member/subscript expression for
// method-style built-ins.
type CallExpr struct {
	Base
	Callee Expr
	Type   TypeSpec // non-nil for a type-constructor call like float3(...)
	Args   []Expr
}

func (n *CallExpr) Accept(v Visitor) { v.VisitCallExpr(n) }
func (n *CallExpr) exprNode()        {}

// MemberExpr is a `.field`/`.swizzle`/`.method(...)` access (§3,
// "expression: member").
type MemberExpr struct {
	Base
	Target Expr
	Member string
}

func (n *MemberExpr) Accept(v Visitor) { v.VisitMemberExpr(n) }
func (n *MemberExpr) exprNode()        {}

// SubscriptExpr is an `a[i]` index expression (§3, "expression: subscript").
type SubscriptExpr struct {
	Base
	Target Expr
	Index  Expr
}

func (n *SubscriptExpr) Accept(v Visitor) { v.VisitSubscriptExpr(n) }
func (n *SubscriptExpr) exprNode()        {}

// InitListExpr is a brace initializer list, with optional designators
// for member-designated initialization (§3, "expression: initializer
// list").
type InitListExpr struct {
	Base
	Elements   []Expr
	Designators []string // parallel to Elements; empty string when positional
}

func (n *InitListExpr) Accept(v Visitor) { v.VisitInitListExpr(n) }
func (n *InitListExpr) exprNode()        {}

// NewBase constructs the embeddable Base shared by every node, given its
// primary classified token and full span.
func NewBase(tok classifier.Token, span source.Span) Base {
	return Base{Tok: tok, Sp: span}
}
