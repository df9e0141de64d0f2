package preprocessor

import (
	"strconv"
	"strings"

	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/source"
	"github.com/hlsl-lang/frontend/internal/token"
)

// condEval evaluates a #if/#elif constant expression over signed
// 64-bit integers (§4.2, "The constant-expression evaluator supports
// integer arithmetic, comparison, bitwise, logical, and ternary
// operators"). defined(X) is recognized before macro expansion runs on
// the line (handled by the caller); this evaluator only sees the
// resulting token list.
type condEval struct {
	toks []token.RawToken
	pos  int
	pp   *Preprocessor
	span source.Span
}

func (p *Preprocessor) evalConstExpr(toks []token.RawToken, span source.Span) int64 {
	e := &condEval{toks: toks, pp: p, span: span}
	if len(toks) == 0 {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PIfExprError, span, "empty expression"))
		return 0
	}
	v := e.parseTernary()
	return v
}

func (e *condEval) cur() token.RawToken {
	if e.pos >= len(e.toks) {
		return token.RawToken{Kind: token.EOF}
	}
	return e.toks[e.pos]
}

func (e *condEval) advance() token.RawToken {
	t := e.cur()
	if e.pos < len(e.toks) {
		e.pos++
	}
	return t
}

func (e *condEval) parseTernary() int64 {
	cond := e.parseLogicOr()
	if e.cur().Kind == token.Question {
		e.advance()
		then := e.parseTernary()
		if e.cur().Kind == token.Colon {
			e.advance()
		}
		els := e.parseTernary()
		if cond != 0 {
			return then
		}
		return els
	}
	return cond
}

func (e *condEval) parseLogicOr() int64 {
	v := e.parseLogicAnd()
	for e.cur().Kind == token.PipePipe {
		e.advance()
		r := e.parseLogicAnd()
		v = boolToI64(v != 0 || r != 0)
	}
	return v
}

func (e *condEval) parseLogicAnd() int64 {
	v := e.parseBitOr()
	for e.cur().Kind == token.AmpAmp {
		e.advance()
		r := e.parseBitOr()
		v = boolToI64(v != 0 && r != 0)
	}
	return v
}

func (e *condEval) parseBitOr() int64 {
	v := e.parseBitXor()
	for e.cur().Kind == token.Pipe {
		e.advance()
		v |= e.parseBitXor()
	}
	return v
}

func (e *condEval) parseBitXor() int64 {
	v := e.parseBitAnd()
	for e.cur().Kind == token.Caret {
		e.advance()
		v ^= e.parseBitAnd()
	}
	return v
}

func (e *condEval) parseBitAnd() int64 {
	v := e.parseEquality()
	for e.cur().Kind == token.Amp {
		e.advance()
		v &= e.parseEquality()
	}
	return v
}

func (e *condEval) parseEquality() int64 {
	v := e.parseRelational()
	for {
		switch e.cur().Kind {
		case token.EqEq:
			e.advance()
			v = boolToI64(v == e.parseRelational())
		case token.NotEq:
			e.advance()
			v = boolToI64(v != e.parseRelational())
		default:
			return v
		}
	}
}

func (e *condEval) parseRelational() int64 {
	v := e.parseShift()
	for {
		switch e.cur().Kind {
		case token.Lt:
			e.advance()
			v = boolToI64(v < e.parseShift())
		case token.Gt:
			e.advance()
			v = boolToI64(v > e.parseShift())
		case token.Le:
			e.advance()
			v = boolToI64(v <= e.parseShift())
		case token.Ge:
			e.advance()
			v = boolToI64(v >= e.parseShift())
		default:
			return v
		}
	}
}

func (e *condEval) parseShift() int64 {
	v := e.parseAdditive()
	for {
		switch e.cur().Kind {
		case token.Shl:
			e.advance()
			v <<= uint(e.parseAdditive())
		case token.Shr:
			e.advance()
			v >>= uint(e.parseAdditive())
		default:
			return v
		}
	}
}

func (e *condEval) parseAdditive() int64 {
	v := e.parseMultiplicative()
	for {
		switch e.cur().Kind {
		case token.Plus:
			e.advance()
			v += e.parseMultiplicative()
		case token.Minus:
			e.advance()
			v -= e.parseMultiplicative()
		default:
			return v
		}
	}
}

func (e *condEval) parseMultiplicative() int64 {
	v := e.parseUnary()
	for {
		switch e.cur().Kind {
		case token.Star:
			e.advance()
			v *= e.parseUnary()
		case token.Slash:
			e.advance()
			d := e.parseUnary()
			if d == 0 {
				e.pp.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PIfExprError, e.span, "division by zero"))
				return 0
			}
			v /= d
		case token.Percent:
			e.advance()
			d := e.parseUnary()
			if d == 0 {
				e.pp.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PIfExprError, e.span, "division by zero"))
				return 0
			}
			v %= d
		default:
			return v
		}
	}
}

func (e *condEval) parseUnary() int64 {
	switch e.cur().Kind {
	case token.Bang:
		e.advance()
		return boolToI64(e.parseUnary() == 0)
	case token.Minus:
		e.advance()
		return -e.parseUnary()
	case token.Plus:
		e.advance()
		return e.parseUnary()
	case token.Tilde:
		e.advance()
		return ^e.parseUnary()
	default:
		return e.parsePrimary()
	}
}

func (e *condEval) parsePrimary() int64 {
	t := e.cur()
	switch t.Kind {
	case token.LParen:
		e.advance()
		v := e.parseTernary()
		if e.cur().Kind == token.RParen {
			e.advance()
		}
		return v
	case token.Digits:
		e.advance()
		return parseIntConstant(t.Text)
	case token.IdentOrKeyword:
		e.advance()
		if t.Text == "true" {
			return 1
		}
		if t.Text == "false" {
			return 0
		}
		if m, ok := e.pp.macros.Lookup(t.Text); ok && !m.IsFunction {
			expanded := e.pp.expandBodyOnce(m)
			return e.pp.evalConstExpr(expanded, t.Span)
		}
		e.pp.diag(diagnostics.Warning(diagnostics.PhasePreprocessor, diagnostics.PUndefinedInIf, t.Span, t.Text))
		return 0
	default:
		e.pp.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PIfExprError, e.span, "unexpected token in constant expression"))
		e.advance()
		return 0
	}
}

func boolToI64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func parseIntConstant(text string) int64 {
	s := strings.TrimRight(text, "uUlL")
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		base = 8
		s = s[1:]
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		uv, uerr := strconv.ParseUint(s, base, 64)
		if uerr == nil {
			return int64(uv)
		}
		return 0
	}
	return v
}
