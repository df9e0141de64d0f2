package classifier_test

import (
	"testing"

	"github.com/hlsl-lang/frontend/internal/atom"
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/extensions"
	"github.com/hlsl-lang/frontend/internal/parsectx"
	"github.com/hlsl-lang/frontend/internal/token"
)

func classifyText(t *testing.T, c *classifier.Classifier, ctx *parsectx.Context, state classifier.VersionExtensionState, kind token.Kind, text string) classifier.Token {
	t.Helper()
	return c.Classify(token.RawToken{Kind: kind, Text: text}, ctx, state)
}

// Five numeric-literal round-trip laws: each suffixed spelling must
// classify as the Kind its suffix names, with the parsed value
// recoverable from the token (§8, "Round-trip laws").
func TestNumericLiteralRoundTripLaws(t *testing.T) {
	tables := atom.Default()
	c := classifier.New(tables, extensions.Empty(tables))
	ctx := parsectx.New(tables)
	state := classifier.VersionExtensionState{}

	cases := []struct {
		text  string
		want  classifier.Kind
		value classifier.NumericValue
	}{
		{"0u", classifier.UintLiteral, classifier.NumericValue{Uint: 0}},
		{"0xffffffffU", classifier.UintLiteral, classifier.NumericValue{Uint: 0xFFFFFFFF}},
		{"1.03e-34F", classifier.FloatLiteral, classifier.NumericValue{Float: float32(1.03e-34)}},
		{"0.035lf", classifier.DoubleLiteral, classifier.NumericValue{Double: 0.035}},
		{"012", classifier.IntLiteral, classifier.NumericValue{Int: 0o12}},
	}

	for _, tc := range cases {
		tok := classifyText(t, c, ctx, state, token.Digits, tc.text)
		if tok.Kind != tc.want {
			t.Errorf("classify(%q): Kind = %v, want %v (diag: %v)", tc.text, tok.Kind, tc.want, tok.Diag)
		}
		if tok.Text != tc.text {
			t.Errorf("classify(%q): Text = %q, want original spelling preserved", tc.text, tok.Text)
		}
		if tok.Numeric != tc.value {
			t.Errorf("classify(%q): Numeric = %+v, want %+v", tc.text, tok.Numeric, tc.value)
		}
	}
}

func TestOctalLiteralValue(t *testing.T) {
	tables := atom.Default()
	c := classifier.New(tables, extensions.Empty(tables))
	ctx := parsectx.New(tables)

	tok := classifyText(t, c, ctx, classifier.VersionExtensionState{}, token.Digits, "012")
	if tok.Numeric.Int != 10 {
		t.Errorf("012 (octal) should parse to decimal 10, got %d", tok.Numeric.Int)
	}
}

// The classifier's is_type_name feedback loop (§4.5): an identifier
// classifies as a plain Identifier until the parser declares it as a type
// name, and as UserTypeName after that.
func TestUserTypeNameFollowsParseContext(t *testing.T) {
	tables := atom.Default()
	c := classifier.New(tables, extensions.Empty(tables))
	ctx := parsectx.New(tables)
	state := classifier.VersionExtensionState{}

	before := classifyText(t, c, ctx, state, token.IdentOrKeyword, "MyType")
	if before.Kind != classifier.Identifier {
		t.Fatalf("undeclared MyType should classify as Identifier, got %v", before.Kind)
	}

	ctx.DeclareTypeName(before.Atom)
	after := classifyText(t, c, ctx, state, token.IdentOrKeyword, "MyType")
	if after.Kind != classifier.UserTypeName {
		t.Fatalf("declared MyType should classify as UserTypeName, got %v", after.Kind)
	}
}

// Builtin vocabulary with MinVersion 0 is always open, regardless of
// extension state.
func TestBuiltinTypeNameAlwaysOpenByDefault(t *testing.T) {
	tables := atom.Default()
	c := classifier.New(tables, extensions.Empty(tables))
	ctx := parsectx.New(tables)

	tok := classifyText(t, c, ctx, classifier.VersionExtensionState{}, token.IdentOrKeyword, "float4")
	if tok.Kind != classifier.BuiltinTypeName {
		t.Fatalf("float4 should classify as BuiltinTypeName, got %v", tok.Kind)
	}
	if !tok.Gating.ByVersion {
		t.Error("float4 should report ByVersion gating")
	}
}

// Extension-gated type names (GL_EXT_ray_tracing's rayQueryEXT) must be
// Reserved until the gating extension is enabled, and BuiltinTypeName
// once it is — otherwise the extension table is dead code.
func TestExtensionGatedTypeNameReservedUntilEnabled(t *testing.T) {
	tables := atom.Default()
	exts := extensions.New(tables)
	c := classifier.New(tables, exts)
	ctx := parsectx.New(tables)

	closed := classifyText(t, c, ctx, classifier.VersionExtensionState{}, token.IdentOrKeyword, "rayQueryEXT")
	if closed.Kind != classifier.Reserved {
		t.Fatalf("rayQueryEXT without GL_EXT_ray_tracing enabled should classify as Reserved, got %v (diag: %v)", closed.Kind, closed.Diag)
	}
	if closed.Diag == nil {
		t.Error("a Reserved classification should carry a diagnostic")
	}

	open := classifyText(t, c, ctx, classifier.VersionExtensionState{Enabled: []string{"GL_EXT_ray_tracing"}}, token.IdentOrKeyword, "rayQueryEXT")
	if open.Kind != classifier.BuiltinTypeName {
		t.Fatalf("rayQueryEXT with GL_EXT_ray_tracing enabled should classify as BuiltinTypeName, got %v", open.Kind)
	}
	if !open.Gating.ByExtension || open.Gating.Extension != "GL_EXT_ray_tracing" {
		t.Errorf("Gating = %+v, want ByExtension via GL_EXT_ray_tracing", open.Gating)
	}
}
