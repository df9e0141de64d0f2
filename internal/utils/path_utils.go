// Package utils holds small path-manipulation helpers shared by the
// filesystem and in-memory include resolvers (internal/resolvers).
package utils

import (
	"path/filepath"
	"strings"
)

// ResolveIncludePath resolves a quoted #include target ("target") relative
// to the directory of the file containing the directive; an angled target
// (<target>) is left untouched for the resolver's search-path list to
// handle (§4.2, "quoted includes resolve relative to the current file").
func ResolveIncludePath(currentDir, target string, quoted bool) string {
	if !quoted {
		return target
	}
	if currentDir == "" || currentDir == "." {
		return target
	}
	return filepath.Join(currentDir, target)
}

// DirOf returns the directory portion of a resolved include handle, the
// base directory a nested #include within that file resolves against.
func DirOf(path string) string {
	return filepath.Dir(path)
}

// BaseName strips any directory components, for diagnostics that name a
// file without its full resolved path.
func BaseName(path string) string {
	return filepath.Base(path)
}

// NormalizeSlashes rewrites backslash separators to forward slashes, since
// #include targets are written with forward slashes regardless of host OS
// (§4.2) while filepath.Join on Windows would otherwise produce mixed
// separators in resolver cache keys.
func NormalizeSlashes(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
