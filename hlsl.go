// Package hlsl is the library surface of the front end: it wires the
// lexer, preprocessor, classifier, and parser stages into a small
// exported API over one translation unit at a time (§5, §6).
//
// Grounded on the teacher's cmd/funxy/main.go, which performs the same
// lex-then-parse wiring inline in main; here it is lifted out into an
// importable API so embedders never need to reach into internal/.
package hlsl

import (
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/atom"
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/config"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/extensions"
	"github.com/hlsl-lang/frontend/internal/parsectx"
	"github.com/hlsl-lang/frontend/internal/parser"
	"github.com/hlsl-lang/frontend/internal/pipeline"
	"github.com/hlsl-lang/frontend/internal/preprocessor"
	"github.com/hlsl-lang/frontend/internal/source"
)

// Options configures one Parse/ParseTranslationUnit/Preprocess call
// (DATA MODEL, "Options").
type Options struct {
	// Resolver handles #include targets. Defaults to preprocessor.NoIncludes{}
	// when nil, rejecting every #include.
	Resolver preprocessor.IncludeResolver

	// InitialMacros seeds the macro table before preprocessing begins,
	// as command-line '-D' defines would (§4.2). Each value is always
	// treated as an object-like macro's replacement text.
	InitialMacros map[string]string

	// DefaultVersion is the #version assumed until a #version directive
	// appears in source. Defaults to config.DefaultVersion.
	DefaultVersion uint16

	// Vulkan selects the Vulkan-target extension/type-name policy
	// (SUPPLEMENTED FEATURES) instead of the plain-HLSL default.
	Vulkan bool

	// Tables overrides the process-wide atom interners, for test
	// isolation between translation units that must not share type-name
	// state. Defaults to atom.Default().
	Tables *atom.Tables
}

// Result bundles everything one front-end run produced: the parsed
// tree (nil if parsing never ran, e.g. Preprocess-only calls), the
// collected diagnostics, and the final preprocessor version/extension
// state for callers that want to report it alongside the AST.
type Result struct {
	TranslationUnit *ast.TranslationUnit
	Diagnostics     []*diagnostics.Diagnostic
	Version         uint16
	Extensions      []string
}

func (o Options) resolver() preprocessor.IncludeResolver {
	if o.Resolver != nil {
		return o.Resolver
	}
	return preprocessor.NoIncludes{}
}

func (o Options) tables() *atom.Tables {
	if o.Tables != nil {
		return o.Tables
	}
	return atom.Default()
}

func (o Options) defaultVersion() uint16 {
	if o.DefaultVersion != 0 {
		return o.DefaultVersion
	}
	return config.DefaultVersion
}

// buildPipeline wires a source buffer through preprocessor, classifier,
// and parse-context construction, returning the shared pieces Parse and
// Preprocess both need.
func buildPipeline(buf *source.Buffer, opts Options, diags *diagnostics.Bag) (*preprocessor.Preprocessor, *classifier.Classifier, *parsectx.Context) {
	tables := opts.tables()
	exts := extensions.New(tables)
	if !opts.Vulkan {
		exts = extensions.Empty(tables)
	}

	pp := preprocessor.New(buf, preprocessor.Options{
		Resolver:       opts.resolver(),
		InitialMacros:  opts.InitialMacros,
		DefaultVersion: opts.defaultVersion(),
	}, diags)

	cls := classifier.New(tables, exts)
	ctx := parsectx.New(tables)
	ctx.TargetVulkan = opts.Vulkan
	ctx.Version = opts.defaultVersion()

	return pp, cls, ctx
}

// ParseTranslationUnit preprocesses and parses source text (with the
// synthetic name sourceName, used for diagnostics and as the #include
// base for any root-relative quoted includes), returning the resulting
// AST plus every diagnostic collected along the way (§5, "Lifecycles").
func ParseTranslationUnit(sourceName, text string, opts Options) *Result {
	buf := source.NewBuffer(sourceName, text)
	diags := &diagnostics.Bag{}

	pp, cls, ctx := buildPipeline(buf, opts, diags)
	stream := pipeline.NewClassifyingStream(pp, cls, ctx)
	p := parser.New(stream, ctx, diags, opts.tables())
	unit := p.ParseTranslationUnit()

	return &Result{
		TranslationUnit: unit,
		Diagnostics:     diags.All(),
		Version:         pp.Version(),
		Extensions:      pp.EnabledExtensions(),
	}
}

// Parse is an alias for ParseTranslationUnit kept for callers that think
// in terms of "parsing a shader" rather than "a translation unit"; both
// names describe the same one entry point (§5).
func Parse(sourceName, text string, opts Options) *Result {
	return ParseTranslationUnit(sourceName, text, opts)
}

// Preprocess runs only the preprocessor and classifier stages,
// returning the flat token sequence without building an AST — for
// tooling that wants macro-expanded, classified tokens without paying
// for a full parse (e.g. a syntax highlighter or a macro-expansion
// dump).
func Preprocess(sourceName, text string, opts Options) ([]classifier.Token, []*diagnostics.Diagnostic) {
	buf := source.NewBuffer(sourceName, text)
	diags := &diagnostics.Bag{}

	pp, cls, ctx := buildPipeline(buf, opts, diags)
	stream := pipeline.NewClassifyingStream(pp, cls, ctx)

	var toks []classifier.Token
	for {
		t := stream.Next()
		toks = append(toks, t)
		if t.Kind == classifier.EOF {
			break
		}
	}
	return toks, diags.All()
}
