package prettyprinter_test

import (
	"strings"
	"testing"

	"github.com/hlsl-lang/frontend"
	"github.com/hlsl-lang/frontend/internal/prettyprinter"
)

func TestPrintRoundTripsThroughParser(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string // substrings the rendered output must contain
	}{
		{
			name: "function_with_control_flow",
			input: `
				float4 main(float3 n : NORMAL) : SV_Target {
					float ndotl = dot(n, n);
					if (ndotl < 0.0) {
						ndotl = 0.0;
					}
					return float4(ndotl, ndotl, ndotl, 1.0);
				}
			`,
			want: []string{"float4 main", "if (", "return float4("},
		},
		{
			name: "struct_and_cbuffer",
			input: `
				struct Light {
					float3 color;
					float intensity;
				};

				cbuffer PerFrame : register(b0) {
					float4x4 viewProj;
				};
			`,
			want: []string{"struct Light", "float3 color", "cbuffer PerFrame", "float4x4 viewProj"},
		},
		{
			name: "ternary_and_cast",
			input: `
				float4 main(float4 c : COLOR) : SV_Target {
					float gray = (float)(c.r + c.g + c.b) / 3.0;
					return gray > 0.5 ? c : float4(0, 0, 0, 1);
				}
			`,
			want: []string{"?", ":", "(float)"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := hlsl.ParseTranslationUnit(tc.name+".hlsl", tc.input, hlsl.Options{})
			for _, d := range result.Diagnostics {
				t.Fatalf("unexpected diagnostic: %s", d.Error())
			}

			out := prettyprinter.Print(result.TranslationUnit)
			if out == "" {
				t.Fatal("expected non-empty rendered output")
			}
			for _, substr := range tc.want {
				if !strings.Contains(out, substr) {
					t.Errorf("rendered output missing %q:\n%s", substr, out)
				}
			}
		})
	}
}

func TestSourcePrinterStringAccumulates(t *testing.T) {
	result := hlsl.ParseTranslationUnit("empty.hlsl", `
		float4 main() : SV_Target { return float4(0,0,0,1); }
	`, hlsl.Options{})
	for _, d := range result.Diagnostics {
		t.Fatalf("unexpected diagnostic: %s", d.Error())
	}

	p := prettyprinter.NewSourcePrinter()
	result.TranslationUnit.Accept(p)
	if p.String() == "" {
		t.Fatal("expected SourcePrinter.String() to return rendered text")
	}
}
