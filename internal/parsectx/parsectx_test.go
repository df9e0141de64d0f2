package parsectx_test

import (
	"testing"

	"github.com/hlsl-lang/frontend/internal/atom"
	"github.com/hlsl-lang/frontend/internal/parsectx"
)

func TestIsTypeNameFollowsScopeChain(t *testing.T) {
	tables := atom.Default()
	ctx := parsectx.New(tables)

	foo := tables.TypeNames.Intern("Foo")
	if ctx.IsTypeName(foo) {
		t.Fatal("Foo should not be a type name before it is declared")
	}

	ctx.DeclareTypeName(foo)
	if !ctx.IsTypeName(foo) {
		t.Fatal("Foo should be a type name once declared in the outer scope")
	}

	ctx.PushScope()
	if !ctx.IsTypeName(foo) {
		t.Fatal("a nested scope must still see a type name declared in an enclosing scope")
	}

	bar := tables.TypeNames.Intern("Bar")
	ctx.DeclareTypeName(bar)
	if !ctx.IsTypeName(bar) {
		t.Fatal("Bar should be visible in the scope it was declared in")
	}
	if !ctx.IsTypeNameDeclaredInCurrentScope(bar) {
		t.Fatal("Bar should be reported as declared in the current (innermost) scope")
	}
	if ctx.IsTypeNameDeclaredInCurrentScope(foo) {
		t.Fatal("Foo was declared in the outer scope, not the current one")
	}

	ctx.PopScope()
	if ctx.IsTypeName(bar) {
		t.Fatal("Bar was declared in the popped scope and must not leak into the outer one")
	}
	if !ctx.IsTypeName(foo) {
		t.Fatal("Foo, declared in the outer scope, must still be visible after popping back to it")
	}
}

func TestPopScopeOnOutermostIsANoOp(t *testing.T) {
	tables := atom.Default()
	ctx := parsectx.New(tables)

	foo := tables.TypeNames.Intern("Foo")
	ctx.DeclareTypeName(foo)

	// Popping past the outermost scope must not panic and must not lose
	// the outermost scope's declarations (error recovery may unwind past
	// an unmatched brace).
	ctx.PopScope()
	ctx.PopScope()

	if !ctx.IsTypeName(foo) {
		t.Fatal("popping the outermost scope must be a no-op, not drop its declarations")
	}
}
