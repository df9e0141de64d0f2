package pipeline

import (
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/atom"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/parsectx"
)

// Context holds the data threaded between the preprocessor, classifier,
// and parser stages of one translation unit (DATA MODEL, "Lifecycles" —
// parse context is per-translation-unit; the atom interners are
// process-long and shared via Tables).
//
// Grounded on the teacher's pipeline.PipelineContext, narrowed to this
// front-end's scope: no SymbolTable or TypeMap, since this module does
// no semantic evaluation (Non-goals).
type Context struct {
	SourceName string
	Tables     *atom.Tables

	Stream TokenStream
	Parse  *parsectx.Context

	AST   *ast.TranslationUnit
	Diags *diagnostics.Bag
}

// NewContext creates an initialized Context sharing the given atom
// tables (typically atom.Default(), or a fresh atom.NewTables() for test
// isolation).
func NewContext(sourceName string, tables *atom.Tables) *Context {
	return &Context{
		SourceName: sourceName,
		Tables:     tables,
		Parse:      parsectx.New(tables),
		Diags:      &diagnostics.Bag{},
	}
}
