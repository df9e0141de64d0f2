// Package source holds the span and source-buffer primitives every token
// and AST node in this module carries back to original source coordinates.
package source

import "github.com/google/uuid"

// ID identifies a logical source buffer: the root translation unit or one
// frame of the include stack. A fresh ID is minted per buffer so spans
// survive across files without ambiguity even when two included files
// share a path (re-included under different macro states, for instance).
type ID uuid.UUID

func newID() ID {
	return ID(uuid.New())
}

// Buffer is one logical source: the root file/string handed to
// ParseTranslationUnit, or the text pulled in by a single #include.
type Buffer struct {
	ID   ID
	Name string // path or synthetic name ("<string>", "<command-line>")
	Text string

	// IncludedFrom is the span of the #include directive that pulled this
	// buffer in, or nil for the root buffer.
	IncludedFrom *Span
}

// NewBuffer allocates a fresh source buffer with its own identity.
func NewBuffer(name, text string) *Buffer {
	return &Buffer{ID: newID(), Name: name, Text: text}
}

// Pos is a byte offset into a single Buffer, paired with the line/column a
// human expects to see reported.
type Pos struct {
	Offset int
	Line   int // 1-based
	Column int // 1-based
}

// Span is a contiguous region of a single source Buffer. Every raw token,
// preprocessed token, parser token, and AST node carries one.
//
// Spans survive macro expansion by recording the invocation site rather
// than the definition site (DATA MODEL, "Source span"); the definition
// site is kept separately as an ExpandedFrom chain for diagnostics.
type Span struct {
	Buffer ID
	Start  Pos
	End    Pos

	// ExpandedFrom, when non-nil, points to the span this token had before
	// macro expansion moved it to the invocation site: its spelling in the
	// macro body, or in an argument of the invocation. It is a chain: each
	// link's ExpandedFrom may itself be set for nested expansion.
	ExpandedFrom *Span
}

// Union returns the smallest span covering both a and b. Both must refer
// to the same Buffer; callers (the parser, building AST node spans from
// their constituent tokens) are expected to uphold that invariant since a
// single production never mixes buffers.
func Union(a, b Span) Span {
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}

// Text returns the substring of buf covered by s, ignoring any
// ExpandedFrom chain — i.e. the literal bytes at the invocation site.
func (s Span) Text(buf *Buffer) string {
	if buf == nil || s.Start.Offset < 0 || s.End.Offset > len(buf.Text) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return buf.Text[s.Start.Offset:s.End.Offset]
}
