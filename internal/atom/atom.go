// Package atom implements the deduplicated string interner used for the
// three closed identifier pools the front-end cares about: extension
// names, keywords, and builtin type names. Equality and hashing on an
// Atom are O(1) pointer/int comparisons; Display recovers the original
// text.
//
// The interners are process-long, lazily initialized, and safe under
// concurrent Intern calls (DESIGN NOTES, "String interning") — static
// initializers for the keyword and builtin-type tables may run under a
// parallel test harness, and concurrent translation units share these
// pools per §5.
package atom

import "sync"

// Pool is one of the three disjoint interning domains.
type Pool int

const (
	PoolExtension Pool = iota
	PoolKeyword
	PoolTypeName
)

// Atom is an interned handle. The zero Atom is not valid; Interner.Intern
// never returns it for non-empty text.
type Atom struct {
	pool Pool
	id   uint32
}

// Pool reports which disjoint domain this atom was interned in.
func (a Atom) Pool() Pool { return a.pool }

// IsZero reports whether a is the zero value (never produced by Intern).
func (a Atom) IsZero() bool { return a.pool == 0 && a.id == 0 }

// Interner deduplicates strings within a single Pool.
type Interner struct {
	pool Pool

	mu      sync.RWMutex
	byText  map[string]uint32
	byAtom  []string
}

// NewInterner creates an empty interner for the given pool.
func NewInterner(pool Pool) *Interner {
	return &Interner{
		pool:   pool,
		byText: make(map[string]uint32),
	}
}

// Intern returns the Atom for text, creating it on first use. Safe for
// concurrent use.
func (in *Interner) Intern(text string) Atom {
	in.mu.RLock()
	if id, ok := in.byText[text]; ok {
		in.mu.RUnlock()
		return Atom{pool: in.pool, id: id}
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	// Re-check under the write lock: another goroutine may have interned
	// the same text while we waited.
	if id, ok := in.byText[text]; ok {
		return Atom{pool: in.pool, id: id}
	}
	id := uint32(len(in.byAtom)) + 1 // reserve 0 so the zero Atom stays invalid
	in.byAtom = append(in.byAtom, text)
	in.byText[text] = id
	return Atom{pool: in.pool, id: id}
}

// Lookup returns the Atom for text without creating it.
func (in *Interner) Lookup(text string) (Atom, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.byText[text]
	if !ok {
		return Atom{}, false
	}
	return Atom{pool: in.pool, id: id}, true
}

// Text recovers the original string for a, the display form mentioned in
// DATA MODEL. Returns "" if a was not interned by this Interner (including
// the zero Atom).
func (in *Interner) Text(a Atom) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if a.pool != in.pool || a.id == 0 || int(a.id) > len(in.byAtom) {
		return ""
	}
	return in.byAtom[a.id-1]
}

// Len reports how many distinct strings have been interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byAtom)
}

// Tables bundles the three process-wide interners the classifier and
// extension registry consult. Construct once via NewTables and share it;
// each Interner is independently concurrency-safe.
type Tables struct {
	Extensions *Interner
	Keywords   *Interner
	TypeNames  *Interner
}

// NewTables allocates the three disjoint pools.
func NewTables() *Tables {
	return &Tables{
		Extensions: NewInterner(PoolExtension),
		Keywords:   NewInterner(PoolKeyword),
		TypeNames:  NewInterner(PoolTypeName),
	}
}

var (
	defaultOnce  sync.Once
	defaultTabls *Tables
)

// Default returns the process-wide lazily-initialized Tables instance
// (§5, "initialization is once-only, lazy on first use").
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTabls = NewTables()
	})
	return defaultTabls
}
