package parser_test

import (
	"testing"

	"github.com/hlsl-lang/frontend"
	"github.com/hlsl-lang/frontend/internal/ast"
)

func parseOK(t *testing.T, name, src string) *ast.TranslationUnit {
	t.Helper()
	result := hlsl.ParseTranslationUnit(name, src, hlsl.Options{})
	for _, d := range result.Diagnostics {
		t.Fatalf("unexpected diagnostic parsing %q: %s", name, d.Error())
	}
	return result.TranslationUnit
}

func findFuncBody(t *testing.T, unit *ast.TranslationUnit, name string) *ast.CompoundStmt {
	t.Helper()
	for _, d := range unit.Decls {
		if fn, ok := d.(*ast.FunctionDef); ok && fn.Name.Name == name {
			return fn.Body
		}
	}
	t.Fatalf("no function named %q found", name)
	return nil
}

// §8 scenario 6 / "Round-trip laws": "A * b;" parses as a pointer-style
// variable declaration when A is a declared type name.
func TestPointerDeclaratorOnDeclaredTypeName(t *testing.T) {
	unit := parseOK(t, "pointer_decl.hlsl", `
		struct A {};

		void main() {
			A* b;
		}
	`)

	body := findFuncBody(t, unit, "main")
	if len(body.Stmts) != 1 {
		t.Fatalf("expected exactly one statement in main's body, got %d", len(body.Stmts))
	}

	decl, ok := body.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("A* b; should parse as a *ast.VarDecl, got %T", body.Stmts[0])
	}
	if len(decl.Names) != 1 {
		t.Fatalf("expected one declarator, got %d", len(decl.Names))
	}
	if decl.Names[0].PointerDepth != 1 {
		t.Errorf("PointerDepth = %d, want 1", decl.Names[0].PointerDepth)
	}
	if decl.Names[0].Name.Name != "b" {
		t.Errorf("declarator name = %q, want %q", decl.Names[0].Name.Name, "b")
	}
}

// The same "TYPE * name;" spelling must multiply when the left-hand
// identifier was never declared as a type name — the disambiguation is
// driven purely by classifier.Kind, never a backtracking guess.
func TestStarIsMultiplicationWhenLeftIsNotATypeName(t *testing.T) {
	unit := parseOK(t, "mul_expr.hlsl", `
		void main() {
			int A;
			int b;
			A * b;
		}
	`)

	body := findFuncBody(t, unit, "main")
	if len(body.Stmts) != 3 {
		t.Fatalf("expected three statements (two declarations, one expression statement), got %d", len(body.Stmts))
	}

	exprStmt, ok := body.Stmts[2].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("A * b; should parse as a *ast.ExprStmt, got %T", body.Stmts[2])
	}
	if _, ok := exprStmt.Expr.(*ast.BinaryExpr); !ok {
		t.Fatalf("A * b; should parse as a *ast.BinaryExpr, got %T", exprStmt.Expr)
	}
}

// A pointer declarator in a comma-separated list only applies to the
// declarator it directly precedes.
func TestPointerDeclaratorAppliesOnlyToItsOwnName(t *testing.T) {
	unit := parseOK(t, "pointer_decl_list.hlsl", `
		struct A {};

		void main() {
			A *p, q;
		}
	`)

	body := findFuncBody(t, unit, "main")
	decl, ok := body.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", body.Stmts[0])
	}
	if len(decl.Names) != 2 {
		t.Fatalf("expected two declarators, got %d", len(decl.Names))
	}
	if decl.Names[0].PointerDepth != 1 {
		t.Errorf("p's PointerDepth = %d, want 1", decl.Names[0].PointerDepth)
	}
	if decl.Names[1].PointerDepth != 0 {
		t.Errorf("q's PointerDepth = %d, want 0", decl.Names[1].PointerDepth)
	}
}
