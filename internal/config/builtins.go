package config

// Builtins Configuration
//
// This is the SINGLE SOURCE OF TRUTH for builtin type names and the
// version/extension gate that opens each one (§4.4 step 4, "Builtin type
// name"). HLSL-native vocabulary has MinVersion 0 (always open); the
// GL-family compatibility entries retained for cross-compiler sources
// (DESIGN NOTES, "HLSL-specific vs GLSL-inherited vocabulary") are gated
// behind either a MinVersion or an extension from internal/extensions.

// TypeInfo documents one builtin type name and the condition under which
// the classifier's gate opens for it.
type TypeInfo struct {
	Name string

	// MinVersion is the lowest #version the name is available from
	// without an extension. 0 means always available. ExtensionOnly
	// means no #version opens it at all — only an enabled extension
	// does (internal/classifier falls through to its extension check
	// whenever state.Version can never satisfy MinVersion).
	MinVersion uint16

	Category string // scalar, vector, matrix, sampler, texture, buffer, object
}

// ExtensionOnly marks a TypeInfo that no #version ever opens; the
// classifier's version check always fails for it, so gating falls
// through to the extension table in internal/extensions (§4.3/§4.4).
const ExtensionOnly uint16 = 0xffff

// extensionOnlyNames lists builtin type names that internal/extensions
// gates behind an extension instead of a #version (GL_EXT_ray_tracing,
// GL_EXT_samplerless_texture_functions). Kept in sync with the TypeNames
// entries in internal/extensions/extensions.go's builtinSpecs table so
// config.GetTypeInfo recognizes them and the classifier's extension-gate
// branch is reachable.
var extensionOnlyNames = []struct {
	name     string
	category string
}{
	{"itexture2D", "texture"},
	{"utexture2D", "texture"},
	{"itexture3D", "texture"},
	{"utexture3D", "texture"},
	{"rayQueryEXT", "object"},
	{"accelerationStructureEXT", "object"},
}

var scalarNames = []string{"bool", "int", "uint", "dword", "half", "float", "double", "string",
	"min16float", "min10float", "min16int", "min12int", "min16uint"}

var vectorBases = []string{"bool", "int", "uint", "half", "float", "double", "min16float", "min16int", "min16uint"}

var samplerObjectNames = []string{
	"sampler", "sampler1D", "sampler2D", "sampler3D", "samplerCUBE", "sampler_state",
	"SamplerState", "SamplerComparisonState",
}

var textureObjectNames = []string{
	"Texture1D", "Texture1DArray",
	"Texture2D", "Texture2DArray", "Texture2DMS", "Texture2DMSArray",
	"Texture3D", "TextureCube", "TextureCubeArray",
}

var bufferObjectNames = []string{
	"Buffer", "StructuredBuffer", "RWStructuredBuffer",
	"AppendStructuredBuffer", "ConsumeStructuredBuffer",
	"ByteAddressBuffer", "RWByteAddressBuffer",
	"RWBuffer", "RWTexture1D", "RWTexture1DArray", "RWTexture2D", "RWTexture2DArray", "RWTexture3D",
	"ConstantBuffer",
}

var streamObjectNames = []string{"InputPatch", "OutputPatch", "PointStream", "LineStream", "TriangleStream"}

// BuiltinTypes is the canonical table, assembled once at package init
// from the name lists above plus the generated vector/matrix spellings
// (float2..float4, float2x2..float4x4, and their sibling bases).
var BuiltinTypes = buildBuiltinTypes()

func buildBuiltinTypes() []TypeInfo {
	var out []TypeInfo
	for _, n := range scalarNames {
		out = append(out, TypeInfo{Name: n, Category: "scalar"})
	}
	for _, base := range vectorBases {
		for n := 1; n <= 4; n++ {
			out = append(out, TypeInfo{Name: vectorName(base, n), Category: "vector"})
		}
	}
	for _, base := range vectorBases {
		for r := 1; r <= 4; r++ {
			for c := 1; c <= 4; c++ {
				out = append(out, TypeInfo{Name: matrixName(base, r, c), Category: "matrix"})
			}
		}
	}
	for _, n := range samplerObjectNames {
		out = append(out, TypeInfo{Name: n, Category: "sampler"})
	}
	for _, n := range textureObjectNames {
		out = append(out, TypeInfo{Name: n, Category: "texture"})
	}
	for _, n := range bufferObjectNames {
		out = append(out, TypeInfo{Name: n, Category: "buffer"})
	}
	for _, n := range streamObjectNames {
		out = append(out, TypeInfo{Name: n, Category: "object"})
	}
	for _, e := range extensionOnlyNames {
		out = append(out, TypeInfo{Name: e.name, MinVersion: ExtensionOnly, Category: e.category})
	}
	return out
}

func vectorName(base string, n int) string {
	return base + string(rune('0'+n))
}

func matrixName(base string, r, c int) string {
	return base + string(rune('0'+r)) + "x" + string(rune('0'+c))
}

// GetTypeInfo returns type info by name, or nil if name is not a builtin
// type name in any category.
func GetTypeInfo(name string) *TypeInfo {
	for i := range BuiltinTypes {
		if BuiltinTypes[i].Name == name {
			return &BuiltinTypes[i]
		}
	}
	return nil
}
