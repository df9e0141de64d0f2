package preprocessor

import (
	"github.com/hlsl-lang/frontend/internal/source"
	"github.com/hlsl-lang/frontend/internal/token"
)

// Macro is one #define binding (DATA MODEL, "Macro definition"): a name,
// an optional parameter list distinguishing object-like from
// function-like macros, the replacement token sequence, and the
// definition span kept around for diagnostics and #undef bookkeeping.
type Macro struct {
	Name        string
	Params      []string // nil for an object-like macro
	Variadic    bool     // trailing ... parameter (__VA_ARGS__)
	IsFunction  bool
	Body        []token.RawToken
	DefinedAt   source.Span
}

// sameDefinition reports whether two macro definitions are
// "compatible" in the C sense: identical parameter lists and identical
// replacement token spelling, ignoring spans. Redefining a macro
// incompatibly is a diagnostic (§7, PRedefinedMacro); redefining it
// identically is silently accepted.
func sameDefinition(a, b *Macro) bool {
	if a.IsFunction != b.IsFunction || a.Variadic != b.Variadic {
		return false
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	if len(a.Body) != len(b.Body) {
		return false
	}
	for i := range a.Body {
		if a.Body[i].Kind != b.Body[i].Kind || a.Body[i].Text != b.Body[i].Text {
			return false
		}
	}
	return true
}

// Table is the mutable #define/#undef macro table for one translation
// unit (including the frames pulled in by #include, which share this
// table per C scoping rules, §4.2 "Includes are scoped syntactically").
type Table struct {
	byName map[string]*Macro
}

// NewTable creates an empty macro table. Options.InitialMacros (-D-style
// command-line defines) are installed into it by New, not here.
func NewTable() *Table {
	return &Table{byName: make(map[string]*Macro)}
}

// Define installs m and returns the previous definition of the same name
// (nil if there was none); incompatible reports whether that previous
// definition differs from m (the caller turns that into a PRedefinedMacro
// diagnostic).
func (t *Table) Define(m *Macro) (prev *Macro, incompatible bool) {
	if old, ok := t.byName[m.Name]; ok {
		if !sameDefinition(old, m) {
			t.byName[m.Name] = m
			return old, true
		}
		return old, false
	}
	t.byName[m.Name] = m
	return nil, false
}

// Undef removes name's definition, if any.
func (t *Table) Undef(name string) {
	delete(t.byName, name)
}

// Lookup returns name's active definition.
func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// IsDefined reports whether name currently has an active definition,
// the predicate `defined(X)` in #if expressions consults.
func (t *Table) IsDefined(name string) bool {
	_, ok := t.byName[name]
	return ok
}
