package pipeline

import (
	"github.com/hlsl-lang/frontend/internal/classifier"
)

// Processor is any pipeline stage that processes a Context and returns
// a (possibly the same, mutated) Context. Grounded on the teacher's
// pipeline.Processor.
type Processor interface {
	Process(ctx *Context) *Context
}

// TokenStream is the pull-based contract the parser consumes: it never
// sees raw or preprocessed tokens directly, only classifier.Token values
// already resolved against the parse context (§5, "synchronous lazy
// pull pipeline").
type TokenStream interface {
	// Next consumes and returns the next classified token.
	Next() classifier.Token

	// Peek returns up to n classified tokens without consuming them. If
	// fewer than n remain, it returns all remaining tokens (possibly
	// ending in an EOF token).
	Peek(n int) []classifier.Token
}
