package preprocessor

import (
	"strings"

	"github.com/hlsl-lang/frontend/internal/token"
)

// substitute builds the replacement token sequence for one macro
// invocation: m.Body with parameters replaced (by their expanded
// argument tokens, ordinarily, or their raw argument tokens when the
// parameter is the operand of # or ##), stringizing (#) and
// token-pasting (##) applied (§4.2). For an object-like macro, rawArgs
// and expandedArgs are both nil and only literal ## pasting between body
// tokens can occur.
func substitute(m *Macro, rawArgs, expandedArgs [][]token.RawToken) []token.RawToken {
	body := m.Body
	var out []token.RawToken

	i := 0
	for i < len(body) {
		t := body[i]

		if t.Kind == token.Hash && t.Text == "#" && m.IsFunction && i+1 < len(body) {
			if idx, isVar, ok := paramIndex(body[i+1].Text, m); ok {
				raw := paramRaw(idx, isVar, m, rawArgs)
				out = append(out, token.RawToken{
					Kind: token.StringTarget,
					Text: stringizeArg(raw),
					Span: t.Span,
				})
				i += 2
				continue
			}
		}

		if t.Kind == token.Hash && t.Text == "##" {
			i++
			if i >= len(body) {
				break
			}
			right := pasteOperand(body[i], m, rawArgs)
			i++
			if len(out) == 0 {
				out = append(out, right...)
				continue
			}
			if len(right) == 0 {
				continue
			}
			left := out[len(out)-1]
			pasted := pasteTokens(left, right[0])
			out[len(out)-1] = pasted
			out = append(out, right[1:]...)
			continue
		}

		if idx, isVar, ok := paramIndex(t.Text, m); ok && t.Kind == token.IdentOrKeyword {
			if i+1 < len(body) && body[i+1].Kind == token.Hash && body[i+1].Text == "##" {
				out = append(out, paramRaw(idx, isVar, m, rawArgs)...)
				i++
				continue
			}
			out = append(out, paramExpanded(idx, isVar, m, expandedArgs)...)
			i++
			continue
		}

		out = append(out, t)
		i++
	}
	return out
}

// pasteOperand returns the unexpanded (raw) token sequence for the
// right-hand operand of ##: a parameter substitutes to its raw argument
// tokens; anything else passes through literally (§4.2, operands of ##
// are not macro-expanded).
func pasteOperand(t token.RawToken, m *Macro, rawArgs [][]token.RawToken) []token.RawToken {
	if t.Kind == token.IdentOrKeyword {
		if idx, isVar, ok := paramIndex(t.Text, m); ok {
			return paramRaw(idx, isVar, m, rawArgs)
		}
	}
	return []token.RawToken{t}
}

func paramIndex(name string, m *Macro) (idx int, isVariadic bool, ok bool) {
	if m.Variadic && name == "__VA_ARGS__" {
		return -1, true, true
	}
	for i, p := range m.Params {
		if p == name {
			return i, false, true
		}
	}
	return 0, false, false
}

func paramRaw(idx int, isVariadic bool, m *Macro, rawArgs [][]token.RawToken) []token.RawToken {
	if rawArgs == nil {
		return nil
	}
	if isVariadic {
		return joinVariadic(rawArgs, len(m.Params))
	}
	if idx < 0 || idx >= len(rawArgs) {
		return nil
	}
	return rawArgs[idx]
}

func paramExpanded(idx int, isVariadic bool, m *Macro, expandedArgs [][]token.RawToken) []token.RawToken {
	if expandedArgs == nil {
		return nil
	}
	if isVariadic {
		return joinVariadic(expandedArgs, len(m.Params))
	}
	if idx < 0 || idx >= len(expandedArgs) {
		return nil
	}
	return expandedArgs[idx]
}

// joinVariadic concatenates the trailing arguments beyond the named
// parameter list with comma separators, the __VA_ARGS__ expansion.
func joinVariadic(args [][]token.RawToken, nparams int) []token.RawToken {
	var out []token.RawToken
	for i := nparams; i < len(args); i++ {
		if i > nparams {
			out = append(out, token.RawToken{Kind: token.Comma, Text: ","})
		}
		out = append(out, args[i]...)
	}
	return out
}

// stringizeArg implements the # operator: the argument's raw spelling,
// tokens separated by a single space, wrapped in double quotes with
// embedded backslashes and quotes escaped (§4.2, "stringizing").
func stringizeArg(toks []token.RawToken) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i, t := range toks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for _, r := range t.Text {
			if r == '"' || r == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// pasteTokens implements ## between two already-determined operand
// tokens: concatenate their spelling and re-classify the result's raw
// kind from its first character.
func pasteTokens(a, b token.RawToken) token.RawToken {
	text := a.Text + b.Text
	return token.RawToken{Kind: classifyPastedKind(text), Text: text, Span: a.Span}
}

func classifyPastedKind(text string) token.Kind {
	if text == "" {
		return token.Error
	}
	c := text[0]
	switch {
	case c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
		return token.IdentOrKeyword
	case '0' <= c && c <= '9':
		return token.Digits
	default:
		return token.Error
	}
}
