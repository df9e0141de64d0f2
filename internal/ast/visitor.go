package ast

// Visitor is implemented by consumers that walk the tree (the
// prettyprinter, future codegen callers outside this module's scope).
// Referenced throughout the node set's Accept methods in the teacher's
// own style, one Visit method per concrete node type.
type Visitor interface {
	VisitTranslationUnit(n *TranslationUnit)
	VisitFunctionDef(n *FunctionDef)
	VisitParam(n *Param)
	VisitPreprocessorPassthrough(n *PreprocessorPassthrough)

	VisitVarDecl(n *VarDecl)
	VisitDeclarator(n *Declarator)
	VisitRegisterAnnotation(n *RegisterAnnotation)
	VisitStructDecl(n *StructDecl)
	VisitCBufferDecl(n *CBufferDecl)
	VisitTypedefDecl(n *TypedefDecl)
	VisitPrecisionDecl(n *PrecisionDecl)
	VisitInterfaceBlockDecl(n *InterfaceBlockDecl)

	VisitScalarType(n *ScalarType)
	VisitVectorType(n *VectorType)
	VisitMatrixType(n *MatrixType)
	VisitObjectType(n *ObjectType)
	VisitNamedType(n *NamedType)
	VisitVoidType(n *VoidType)

	VisitQualifierSet(n *QualifierSet)

	VisitCompoundStmt(n *CompoundStmt)
	VisitExprStmt(n *ExprStmt)
	VisitIfStmt(n *IfStmt)
	VisitForStmt(n *ForStmt)
	VisitWhileStmt(n *WhileStmt)
	VisitDoWhileStmt(n *DoWhileStmt)
	VisitSwitchStmt(n *SwitchStmt)
	VisitCaseClause(n *CaseClause)
	VisitReturnStmt(n *ReturnStmt)
	VisitBreakStmt(n *BreakStmt)
	VisitContinueStmt(n *ContinueStmt)
	VisitDiscardStmt(n *DiscardStmt)

	VisitIdentifier(n *Identifier)
	VisitIntLiteral(n *IntLiteral)
	VisitUintLiteral(n *UintLiteral)
	VisitFloatLiteral(n *FloatLiteral)
	VisitDoubleLiteral(n *DoubleLiteral)
	VisitBoolLiteral(n *BoolLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitUnaryExpr(n *UnaryExpr)
	VisitPostfixExpr(n *PostfixExpr)
	VisitBinaryExpr(n *BinaryExpr)
	VisitAssignExpr(n *AssignExpr)
	VisitTernaryExpr(n *TernaryExpr)
	VisitCommaExpr(n *CommaExpr)
	VisitCallExpr(n *CallExpr)
	VisitMemberExpr(n *MemberExpr)
	VisitSubscriptExpr(n *SubscriptExpr)
	VisitInitListExpr(n *InitListExpr)
}

// BaseVisitor is an embeddable no-op Visitor implementation, grounded on
// the teacher's pattern of providing a default walker consumers override
// selectively. Nothing in this module embeds it; the prettyprinter's
// SourcePrinter implements every Visitor method itself.
type BaseVisitor struct{}

func (BaseVisitor) VisitTranslationUnit(n *TranslationUnit)                 {}
func (BaseVisitor) VisitFunctionDef(n *FunctionDef)                         {}
func (BaseVisitor) VisitParam(n *Param)                                     {}
func (BaseVisitor) VisitPreprocessorPassthrough(n *PreprocessorPassthrough) {}
func (BaseVisitor) VisitVarDecl(n *VarDecl)                                 {}
func (BaseVisitor) VisitDeclarator(n *Declarator)                           {}
func (BaseVisitor) VisitRegisterAnnotation(n *RegisterAnnotation)           {}
func (BaseVisitor) VisitStructDecl(n *StructDecl)                          {}
func (BaseVisitor) VisitCBufferDecl(n *CBufferDecl)                        {}
func (BaseVisitor) VisitTypedefDecl(n *TypedefDecl)                        {}
func (BaseVisitor) VisitPrecisionDecl(n *PrecisionDecl)                    {}
func (BaseVisitor) VisitInterfaceBlockDecl(n *InterfaceBlockDecl)          {}
func (BaseVisitor) VisitScalarType(n *ScalarType)                         {}
func (BaseVisitor) VisitVectorType(n *VectorType)                         {}
func (BaseVisitor) VisitMatrixType(n *MatrixType)                         {}
func (BaseVisitor) VisitObjectType(n *ObjectType)                         {}
func (BaseVisitor) VisitNamedType(n *NamedType)                           {}
func (BaseVisitor) VisitVoidType(n *VoidType)                             {}
func (BaseVisitor) VisitQualifierSet(n *QualifierSet)                     {}
func (BaseVisitor) VisitCompoundStmt(n *CompoundStmt)                     {}
func (BaseVisitor) VisitExprStmt(n *ExprStmt)                             {}
func (BaseVisitor) VisitIfStmt(n *IfStmt)                                 {}
func (BaseVisitor) VisitForStmt(n *ForStmt)                               {}
func (BaseVisitor) VisitWhileStmt(n *WhileStmt)                           {}
func (BaseVisitor) VisitDoWhileStmt(n *DoWhileStmt)                       {}
func (BaseVisitor) VisitSwitchStmt(n *SwitchStmt)                         {}
func (BaseVisitor) VisitCaseClause(n *CaseClause)                         {}
func (BaseVisitor) VisitReturnStmt(n *ReturnStmt)                         {}
func (BaseVisitor) VisitBreakStmt(n *BreakStmt)                           {}
func (BaseVisitor) VisitContinueStmt(n *ContinueStmt)                     {}
func (BaseVisitor) VisitDiscardStmt(n *DiscardStmt)                       {}
func (BaseVisitor) VisitIdentifier(n *Identifier)                         {}
func (BaseVisitor) VisitIntLiteral(n *IntLiteral)                         {}
func (BaseVisitor) VisitUintLiteral(n *UintLiteral)                       {}
func (BaseVisitor) VisitFloatLiteral(n *FloatLiteral)                     {}
func (BaseVisitor) VisitDoubleLiteral(n *DoubleLiteral)                   {}
func (BaseVisitor) VisitBoolLiteral(n *BoolLiteral)                       {}
func (BaseVisitor) VisitStringLiteral(n *StringLiteral)                   {}
func (BaseVisitor) VisitUnaryExpr(n *UnaryExpr)                           {}
func (BaseVisitor) VisitPostfixExpr(n *PostfixExpr)                       {}
func (BaseVisitor) VisitBinaryExpr(n *BinaryExpr)                         {}
func (BaseVisitor) VisitAssignExpr(n *AssignExpr)                         {}
func (BaseVisitor) VisitTernaryExpr(n *TernaryExpr)                       {}
func (BaseVisitor) VisitCommaExpr(n *CommaExpr)                           {}
func (BaseVisitor) VisitCallExpr(n *CallExpr)                             {}
func (BaseVisitor) VisitMemberExpr(n *MemberExpr)                         {}
func (BaseVisitor) VisitSubscriptExpr(n *SubscriptExpr)                   {}
func (BaseVisitor) VisitInitListExpr(n *InitListExpr)                     {}
