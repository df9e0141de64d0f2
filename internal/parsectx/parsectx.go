// Package parsectx implements the parse context the spec's classifier and
// parser share: the scoped type-name table that makes the "is this
// identifier a type name?" feedback loop possible (§4.5, DESIGN NOTES
// "Context-sensitive lexing").
//
// Grounded on the teacher's internal/symbols.SymbolTable outer-pointer
// scope chain, narrowed to exactly the one fact the classifier needs —
// type-name membership — since this front-end does no type checking.
package parsectx

import "github.com/hlsl-lang/frontend/internal/atom"

// Context is the mutable, per-translation-unit state threaded between
// parser and classifier. The parser is the only writer; the classifier
// only reads (§4.5, "one-way feedback: parser -> context -> classifier").
type Context struct {
	tables *atom.Tables
	scope  *scope

	// TargetVulkan selects the Vulkan-target extension/type-name policy
	// (SUPPLEMENTED FEATURES) instead of the plain-HLSL default.
	TargetVulkan bool

	// Version is the active #version number, defaulting per Options
	// (DefaultVersion) until a #version directive sets it.
	Version uint16
}

type scope struct {
	outer     *scope
	typeNames map[atom.Atom]bool
}

// New creates a context with a single, outermost scope.
func New(tables *atom.Tables) *Context {
	return &Context{tables: tables, scope: &scope{typeNames: make(map[atom.Atom]bool)}}
}

// PushScope opens a new nested scope (entering a compound statement or
// struct/cbuffer body), whose type-name lookups fall back to the
// enclosing scope when not shadowed (§4.5).
func (c *Context) PushScope() {
	c.scope = &scope{outer: c.scope, typeNames: make(map[atom.Atom]bool)}
}

// PopScope closes the innermost scope. Popping the outermost scope is a
// caller error and is a no-op rather than a panic, since parser error
// recovery may unwind past an unmatched brace.
func (c *Context) PopScope() {
	if c.scope.outer != nil {
		c.scope = c.scope.outer
	}
}

// DeclareTypeName records name (already interned) as a user type name in
// the current scope. Called by the parser on struct/cbuffer/typedef-like
// reductions (§4.5).
func (c *Context) DeclareTypeName(name atom.Atom) {
	c.scope.typeNames[name] = true
}

// IsTypeName reports whether name resolves to a user-declared type name
// anywhere in the active scope chain. The classifier calls this; it never
// calls DeclareTypeName or PushScope/PopScope itself.
func (c *Context) IsTypeName(name atom.Atom) bool {
	for s := c.scope; s != nil; s = s.outer {
		if s.typeNames[name] {
			return true
		}
	}
	return false
}

// IsTypeNameDeclaredInCurrentScope reports whether name was declared in
// exactly the innermost scope, the check the parser uses to diagnose a
// duplicate type declaration (§7, SDuplicateType) without flagging
// ordinary shadowing of an outer type name.
func (c *Context) IsTypeNameDeclaredInCurrentScope(name atom.Atom) bool {
	return c.scope.typeNames[name]
}

// Tables exposes the shared atom interners this context was built over.
func (c *Context) Tables() *atom.Tables { return c.tables }
