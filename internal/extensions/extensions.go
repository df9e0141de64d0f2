// Package extensions is the SINGLE SOURCE OF TRUTH for #extension names
// and the builtin type names each one gates (§4.3, "Extension spec").
//
// Grounded on the teacher's config/operators.go table-of-structs style,
// and on original_source/lang-pp's extension table for the concrete
// vocabulary: a closed, static list read by the classifier to decide
// whether a builtin type name is currently in scope. The preprocessor
// records #extension names without consulting it.
package extensions

import "github.com/hlsl-lang/frontend/internal/atom"

// Spec is one extension: its name and the builtin type names it makes
// available once enabled (DATA MODEL, "Extension spec").
type Spec struct {
	Name      string
	TypeNames []string
}

// builtinSpecs is the canonical table other code and docs should read
// from. HLSL has no native #extension vocabulary of its own (that is a
// GLSL/Vulkan-target concept); these entries exist so a translation unit
// compiled with -fvulkan-target can use '#extension GL_EXT_...' to gate
// SPIR-V-oriented type names the way original_source/lang-pp does.
var builtinSpecs = []Spec{
	{
		Name:      "GL_EXT_samplerless_texture_functions",
		TypeNames: []string{"itexture2D", "utexture2D", "itexture3D", "utexture3D"},
	},
	{
		Name:      "GL_EXT_nonuniform_qualifier",
		TypeNames: nil,
	},
	{
		Name:      "GL_EXT_ray_tracing",
		TypeNames: []string{"rayQueryEXT", "accelerationStructureEXT"},
	},
	{
		Name:      "GL_ARB_shader_viewport_layer_array",
		TypeNames: nil,
	},
	{
		Name:      "GL_GOOGLE_include_directive",
		TypeNames: nil,
	},
}

// Registry is a queryable, immutable set of extension specs, keyed
// through atom.Interner so repeated lookups by name are O(1) pointer
// comparisons once interned (§4.3).
type Registry struct {
	tables *atom.Tables
	byName map[atom.Atom]*Spec
	all    []*Spec
}

// New builds a registry over the builtin extension table, interning
// names and type names into tables.
func New(tables *atom.Tables) *Registry {
	r := &Registry{tables: tables, byName: make(map[atom.Atom]*Spec)}
	for i := range builtinSpecs {
		spec := builtinSpecs[i]
		a := tables.Extensions.Intern(spec.Name)
		r.byName[a] = &spec
		r.all = append(r.all, &spec)
		for _, tn := range spec.TypeNames {
			tables.TypeNames.Intern(tn)
		}
	}
	return r
}

// Empty returns a registry with no extensions, for tests that want an
// HLSL-only, extension-free classifier (§4.3, "Tests may substitute an
// empty registry").
func Empty(tables *atom.Tables) *Registry {
	return &Registry{tables: tables, byName: make(map[atom.Atom]*Spec)}
}

// Get looks up an extension spec by name.
func (r *Registry) Get(name string) (*Spec, bool) {
	a, ok := r.tables.Extensions.Lookup(name)
	if !ok {
		return nil, false
	}
	spec, ok := r.byName[a]
	return spec, ok
}

// All returns every registered extension spec, in table order.
func (r *Registry) All() []*Spec {
	return r.all
}

// TypeNamesOf returns the builtin type names spec makes available.
func TypeNamesOf(spec *Spec) []string {
	if spec == nil {
		return nil
	}
	return spec.TypeNames
}
