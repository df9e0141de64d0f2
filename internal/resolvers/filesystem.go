package resolvers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hlsl-lang/frontend/internal/utils"
)

// Filesystem is an IncludeResolver backed by the host filesystem: quoted
// includes resolve relative to the including file's directory first,
// then fall back through SearchPaths in order; angle-bracket includes
// only ever search SearchPaths (§4.2, "pluggable resolver abstraction").
//
// Grounded on the teacher's module loader's directory-stack search, one
// search root at a time, first match wins.
type Filesystem struct {
	SearchPaths []string
}

// NewFilesystem builds a Filesystem resolver with the given ordered
// search roots.
func NewFilesystem(searchPaths ...string) *Filesystem {
	return &Filesystem{SearchPaths: searchPaths}
}

func (f *Filesystem) Resolve(current, target string, quoted bool) (string, string, error) {
	target = utils.NormalizeSlashes(target)

	if quoted {
		candidate := utils.ResolveIncludePath(utils.DirOf(current), target, true)
		if text, ok := readFile(candidate); ok {
			return filepath.Clean(candidate), text, nil
		}
	}

	for _, root := range f.SearchPaths {
		candidate := filepath.Join(root, target)
		if text, ok := readFile(candidate); ok {
			return filepath.Clean(candidate), text, nil
		}
	}

	return "", "", fmt.Errorf("include target %q not found relative to %q or in search paths", target, current)
}

func readFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
