// Package resolvers implements concrete preprocessor.IncludeResolver
// backends: an in-memory map for tests and embedders with no filesystem,
// a filesystem resolver grounded on the teacher's module loader search
// path, and a SQLite-backed caching wrapper in front of either.
package resolvers

import (
	"fmt"

	"github.com/hlsl-lang/frontend/internal/utils"
)

// Memory is an IncludeResolver backed by an in-memory name-to-text map,
// for tests and for embedders that have no filesystem to resolve
// against (§4.2, "pluggable resolver abstraction").
type Memory struct {
	files map[string]string
}

// NewMemory builds a Memory resolver over files, keyed by the exact
// target text a #include would name.
func NewMemory(files map[string]string) *Memory {
	m := make(map[string]string, len(files))
	for k, v := range files {
		m[k] = v
	}
	return &Memory{files: m}
}

// Resolve looks target up directly for angle-bracket includes, and
// relative to current's directory for quoted includes, falling back to
// a direct lookup if the joined path isn't present (§4.2, "quoted
// includes search relative to the including file first").
func (m *Memory) Resolve(current, target string, quoted bool) (string, string, error) {
	if quoted {
		joined := utils.ResolveIncludePath(utils.DirOf(current), target, true)
		if text, ok := m.files[joined]; ok {
			return joined, text, nil
		}
	}
	if text, ok := m.files[target]; ok {
		return target, text, nil
	}
	return "", "", fmt.Errorf("no such file %q in memory resolver", target)
}

// Put adds or replaces one file's contents.
func (m *Memory) Put(name, text string) {
	m.files[name] = text
}
