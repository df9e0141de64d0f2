// Command hlslfront is a thin driver over the hlsl package: it reads one
// or more shader source files, runs them through ParseTranslationUnit,
// and reports diagnostics. It exists to exercise the library end to
// end, not as a production shader compiler front end.
//
// Grounded on the teacher's cmd/funxy/main.go argument-walking and
// per-file reporting loop, trimmed to this package's much smaller
// surface (no modules, no backends, no test runner).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hlsl-lang/frontend"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/resolvers"
)

// sourceExtensions lists the file suffixes treated as shader sources
// when a directory is passed instead of a file.
var sourceExtensions = []string{".hlsl", ".fx", ".vsh", ".psh", ".hlsli"}

func isSourceFile(name string) bool {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && isSourceFile(entry.Name()) {
				files = append(files, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return files, nil
}

func hasVulkanFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-vulkan" || arg == "--vulkan" {
			return true
		}
	}
	return false
}

func runFile(path string, vulkan bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %s\n", path, err)
		return false
	}

	dir := filepath.Dir(path)
	resolver := resolvers.NewFilesystem(dir)

	result := hlsl.ParseTranslationUnit(path, string(data), hlsl.Options{
		Resolver: resolver,
		Vulkan:   vulkan,
	})

	fmt.Printf("%s: %s, %d declarations\n", path, humanize.Bytes(uint64(len(data))), len(result.TranslationUnit.Decls))

	hasErrors := false
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s\n", d.Error())
		if d.Severity == diagnostics.SeverityError {
			hasErrors = true
		}
	}
	return !hasErrors
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [-vulkan] <file-or-dir>...\n", os.Args[0])
		os.Exit(1)
	}

	vulkan := hasVulkanFlag(os.Args[1:])
	files, err := collectFiles(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no source files found")
		os.Exit(1)
	}

	ok := true
	for _, f := range files {
		if !runFile(f, vulkan) {
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}
