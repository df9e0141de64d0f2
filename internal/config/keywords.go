package config

// Keywords Configuration
//
// This is the SINGLE SOURCE OF TRUTH for the closed HLSL keyword set the
// classifier resolves ident-or-keyword tokens against (§4.4 step 3).
// Keywords are always reserved regardless of version/extension state —
// unlike builtin type names, there is no gating here.

// KeywordInfo documents one reserved word.
type KeywordInfo struct {
	Text     string
	Category string // control-flow, declaration, modifier, literal
}

// Keywords is the canonical keyword table.
var Keywords = []KeywordInfo{
	// Control flow
	{Text: "if", Category: "control-flow"},
	{Text: "else", Category: "control-flow"},
	{Text: "for", Category: "control-flow"},
	{Text: "while", Category: "control-flow"},
	{Text: "do", Category: "control-flow"},
	{Text: "switch", Category: "control-flow"},
	{Text: "case", Category: "control-flow"},
	{Text: "default", Category: "control-flow"},
	{Text: "break", Category: "control-flow"},
	{Text: "continue", Category: "control-flow"},
	{Text: "return", Category: "control-flow"},
	{Text: "discard", Category: "control-flow"},

	// Declarations
	{Text: "struct", Category: "declaration"},
	{Text: "cbuffer", Category: "declaration"},
	{Text: "tbuffer", Category: "declaration"},
	{Text: "typedef", Category: "declaration"},
	{Text: "interface", Category: "declaration"},
	{Text: "class", Category: "declaration"},
	{Text: "namespace", Category: "declaration"},
	{Text: "technique", Category: "declaration"},
	{Text: "pass", Category: "declaration"},

	// Storage / parameter modifiers
	{Text: "const", Category: "modifier"},
	{Text: "static", Category: "modifier"},
	{Text: "uniform", Category: "modifier"},
	{Text: "extern", Category: "modifier"},
	{Text: "shared", Category: "modifier"},
	{Text: "groupshared", Category: "modifier"},
	{Text: "volatile", Category: "modifier"},
	{Text: "inline", Category: "modifier"},
	{Text: "export", Category: "modifier"},
	{Text: "precise", Category: "modifier"},
	{Text: "in", Category: "modifier"},
	{Text: "out", Category: "modifier"},
	{Text: "inout", Category: "modifier"},

	// Interpolation modifiers
	{Text: "linear", Category: "modifier"},
	{Text: "centroid", Category: "modifier"},
	{Text: "noperspective", Category: "modifier"},
	{Text: "sample", Category: "modifier"},
	{Text: "nointerpolation", Category: "modifier"},

	// Matrix packing
	{Text: "row_major", Category: "modifier"},
	{Text: "column_major", Category: "modifier"},

	// Misc reserved
	{Text: "void", Category: "declaration"},
	{Text: "register", Category: "declaration"},
	{Text: "packoffset", Category: "declaration"},
	{Text: "compile", Category: "declaration"},
	{Text: "this", Category: "modifier"},

	// Boolean literals (§4.4 step 3, "including boolean literals")
	{Text: "true", Category: "literal"},
	{Text: "false", Category: "literal"},
}

// IsKeyword reports whether text is in the closed keyword set.
func IsKeyword(text string) bool {
	for _, k := range Keywords {
		if k.Text == text {
			return true
		}
	}
	return false
}
