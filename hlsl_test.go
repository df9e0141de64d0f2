package hlsl_test

import (
	"strings"
	"testing"

	"github.com/hlsl-lang/frontend"
	"github.com/hlsl-lang/frontend/internal/ast"
	"github.com/hlsl-lang/frontend/internal/prettyprinter"
	"github.com/hlsl-lang/frontend/internal/resolvers"
)

func TestParseTranslationUnit(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty_vertex_shader", `
			struct VSInput {
				float3 position : POSITION;
				float2 uv : TEXCOORD0;
			};

			struct VSOutput {
				float4 position : SV_Position;
				float2 uv : TEXCOORD0;
			};

			VSOutput main(VSInput input) {
				VSOutput output;
				output.position = float4(input.position, 1.0);
				output.uv = input.uv;
				return output;
			}
		`},
		{"cbuffer_and_control_flow", `
			cbuffer PerFrame : register(b0) {
				float4x4 viewProj;
				float3 lightDir;
			};

			float4 main(float3 n : NORMAL) : SV_Target {
				float ndotl = dot(normalize(n), lightDir);
				if (ndotl < 0.0) {
					ndotl = 0.0;
				}
				for (int i = 0; i < 4; i++) {
					ndotl = ndotl * 1.0;
				}
				return float4(ndotl, ndotl, ndotl, 1.0);
			}
		`},
		{"texture_sampling", `
			Texture2D diffuseTex : register(t0);
			SamplerState samp : register(s0);

			float4 main(float2 uv : TEXCOORD0) : SV_Target {
				return diffuseTex.Sample(samp, uv);
			}
		`},
		{"typedef_and_struct_buffer", `
			typedef float3 Position;

			struct Particle {
				Position pos;
				float life;
			};

			StructuredBuffer<Particle> particles : register(t0);

			float4 main(uint id : SV_VertexID) : SV_Position {
				Particle p = particles[id];
				return float4(p.pos, 1.0);
			}
		`},
		{"ternary_and_casts", `
			float4 main(float4 c : COLOR) : SV_Target {
				float gray = (float)(c.r + c.g + c.b) / 3.0;
				return gray > 0.5 ? c : float4(0, 0, 0, 1);
			}
		`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := hlsl.ParseTranslationUnit(tc.name+".hlsl", tc.input, hlsl.Options{})

			var errs []string
			for _, d := range result.Diagnostics {
				errs = append(errs, d.Error())
			}
			if len(errs) > 0 {
				t.Fatalf("unexpected diagnostics:\n%s", strings.Join(errs, "\n"))
			}

			if result.TranslationUnit == nil {
				t.Fatal("expected a non-nil translation unit")
			}
			if len(result.TranslationUnit.Decls) == 0 {
				t.Fatal("expected at least one top-level declaration")
			}
		})
	}
}

func TestParseTranslationUnitWithInclude(t *testing.T) {
	mem := resolvers.NewMemory(map[string]string{
		"common.hlsli": `
			float3 applyGamma(float3 c) {
				return pow(c, 1.0 / 2.2);
			}
		`,
	})

	src := `
		#include "common.hlsli"

		float4 main(float3 c : COLOR) : SV_Target {
			return float4(applyGamma(c), 1.0);
		}
	`

	result := hlsl.ParseTranslationUnit("main.hlsl", src, hlsl.Options{Resolver: mem})

	for _, d := range result.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d.Error())
	}
	if result.TranslationUnit == nil {
		t.Fatal("expected a non-nil translation unit")
	}
	if len(result.TranslationUnit.Decls) != 2 {
		t.Fatalf("expected 2 declarations (included function + main), got %d", len(result.TranslationUnit.Decls))
	}
}

func TestPreprocessExpandsMacros(t *testing.T) {
	src := `
		#define SQUARE(x) ((x) * (x))
		float area = SQUARE(side);
	`

	toks, diags := hlsl.Preprocess("macro.hlsl", src, hlsl.Options{})
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d.Error())
	}

	var texts []string
	for _, tok := range toks {
		if tok.Text != "" {
			texts = append(texts, tok.Text)
		}
	}
	joined := strings.Join(texts, " ")
	if !strings.Contains(joined, "side") {
		t.Fatalf("expected macro expansion to surface the argument token, got: %s", joined)
	}
	if strings.Contains(joined, "SQUARE") {
		t.Fatalf("macro name should not survive expansion, got: %s", joined)
	}
}

func TestParseTranslationUnitUnknownIncludeReportsDiagnostic(t *testing.T) {
	src := `#include "missing.hlsli"` + "\n" + `float4 main() : SV_Target { return float4(0,0,0,0); }`

	result := hlsl.ParseTranslationUnit("bad_include.hlsl", src, hlsl.Options{})
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for an unresolvable #include")
	}
}

// §8, "every node's span stays within the bounds of the source buffer it
// came from": a handful of representative node kinds, spot-checked rather
// than exhaustively walked, since a parent span is always the Union of its
// children's (declarations.go, parseVarDeclTail et al.), so an out-of-range
// leaf span would already surface at its enclosing declaration.
func TestSpansStayWithinSourceRange(t *testing.T) {
	src := `
		struct Light {
			float3 color;
			float intensity;
		};

		cbuffer PerFrame : register(b0) {
			float4x4 viewProj;
		};

		float4 main(float3 n : NORMAL) : SV_Target {
			float ndotl = dot(n, n);
			if (ndotl < 0.0) {
				ndotl = 0.0;
			}
			return float4(ndotl, ndotl, ndotl, 1.0);
		}
	`
	result := hlsl.ParseTranslationUnit("span_check.hlsl", src, hlsl.Options{})
	for _, d := range result.Diagnostics {
		t.Fatalf("unexpected diagnostic: %s", d.Error())
	}

	bound := len(src)
	checkSpan := func(n ast.Node) {
		t.Helper()
		sp := n.Span()
		if sp.Start.Offset < 0 || sp.End.Offset > bound || sp.Start.Offset > sp.End.Offset {
			t.Errorf("span out of range for %T: [%d,%d) not within [0,%d]", n, sp.Start.Offset, sp.End.Offset, bound)
		}
	}

	checkSpan(result.TranslationUnit)
	for _, d := range result.TranslationUnit.Decls {
		checkSpan(d)
		switch decl := d.(type) {
		case *ast.FunctionDef:
			checkSpan(decl.Body)
			for _, stmt := range decl.Body.Stmts {
				checkSpan(stmt)
			}
		case *ast.StructDecl:
			for _, field := range decl.Fields {
				checkSpan(field)
				for _, name := range field.Names {
					checkSpan(name)
				}
			}
		case *ast.CBufferDecl:
			for _, field := range decl.Fields {
				checkSpan(field)
				for _, name := range field.Names {
					checkSpan(name)
				}
			}
		}
	}
}

// §8, "a round trip through the printer carries no preprocessor
// directive": the printer only ever walks the parsed AST, which has
// already had every #define/#include/#version/#extension directive fully
// consumed by the preprocessor stage, so none can appear in printed output
// even when the original source was full of them.
func TestRoundTripOutputIsDirectiveFree(t *testing.T) {
	mem := resolvers.NewMemory(map[string]string{
		"common.hlsli": `float3 TINT = float3(1.0, 1.0, 1.0);`,
	})

	src := `
		#version 450
		#define SCALE 2.0
		#include "common.hlsli"

		float4 main(float3 c : COLOR) : SV_Target {
			return float4(c * SCALE * TINT, 1.0);
		}
	`

	result := hlsl.ParseTranslationUnit("directives.hlsl", src, hlsl.Options{Resolver: mem})
	for _, d := range result.Diagnostics {
		t.Fatalf("unexpected diagnostic: %s", d.Error())
	}

	out := prettyprinter.Print(result.TranslationUnit)
	for _, directive := range []string{"#version", "#define", "#include", "#extension", "SCALE"} {
		if strings.Contains(out, directive) {
			t.Errorf("printed output should be directive-free, found %q in:\n%s", directive, out)
		}
	}
	if !strings.Contains(out, "2f") {
		t.Errorf("expected the macro-expanded literal to survive into the printed output:\n%s", out)
	}
}
