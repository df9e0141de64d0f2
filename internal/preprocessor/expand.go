package preprocessor

import (
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/source"
	"github.com/hlsl-lang/frontend/internal/token"
)

// pendItem is one entry of an expander's re-injection queue: either a
// real token awaiting emission, or an end-of-expansion marker that
// clears a macro name from the currently-expanding set once the
// re-scan passes it.
type pendItem struct {
	tok     token.RawToken
	isEnd   bool
	endName string
}

// expander is the macro re-scanning engine (§4.2, "Macro expansion").
// It is deliberately generic over its token source so the same engine
// drives both the top-level preprocessed stream (source = the
// directive-handling frame stack) and macro-argument pre-expansion
// (source = a finite argument token list) — both are "pull raw tokens,
// re-inject replacement tokens ahead of them" instances of one engine.
//
// Self-reference is blocked via a currently-expanding set shared with
// the owning Preprocessor (DESIGN NOTES, "Macro expansion cycles")
// rather than Dave Prosser's full per-token hide-set lattice: simpler to
// implement correctly, and sufficient to guarantee termination and block
// direct and indirect recursive self-expansion, which is the invariant
// the spec requires.
type expander struct {
	source    func() token.RawToken // returns a Kind==EOF token.RawToken when exhausted
	pending   []pendItem
	macros    *Table
	expanding map[string]bool
	diag      func(*diagnostics.Diagnostic)
}

func newExpander(source func() token.RawToken, macros *Table, expanding map[string]bool, diag func(*diagnostics.Diagnostic)) *expander {
	return &expander{source: source, macros: macros, expanding: expanding, diag: diag}
}

// pull returns the next raw token with no macro semantics applied: from
// the re-injection queue if non-empty (clearing any end markers it
// passes), else straight from the underlying source.
func (e *expander) pull() token.RawToken {
	for len(e.pending) > 0 {
		item := e.pending[0]
		e.pending = e.pending[1:]
		if item.isEnd {
			delete(e.expanding, item.endName)
			continue
		}
		return item.tok
	}
	return e.source()
}

// peek returns the next raw token pull would return, without consuming
// it.
func (e *expander) peek() token.RawToken {
	for _, item := range e.pending {
		if !item.isEnd {
			return item.tok
		}
	}
	t := e.source()
	e.pending = append(e.pending, pendItem{tok: t})
	return t
}

// pushExpansion marks name as currently expanding and re-injects toks
// ahead of whatever is already pending, followed by an end marker that
// un-marks name once the re-scan has passed all of toks. Each re-injected
// token takes site (the invocation's macro-name span) as its span, and
// keeps the span it had before as its ExpandedFrom link.
func (e *expander) pushExpansion(name string, site source.Span, toks []token.RawToken) {
	e.expanding[name] = true
	items := make([]pendItem, 0, len(toks)+1)
	for _, t := range toks {
		spelled := t.Span
		t.Span = site
		t.Span.ExpandedFrom = &spelled
		items = append(items, pendItem{tok: t})
	}
	items = append(items, pendItem{isEnd: true, endName: name})
	e.pending = append(items, e.pending...)
}

// Next pulls and fully macro-expands the next token: if it names an
// active, not-currently-expanding macro it recursively expands in place
// and loops; otherwise it returns the token as-is.
func (e *expander) Next() token.RawToken {
	for {
		t := e.pull()
		if t.Kind == token.EOF {
			return t
		}
		if t.Kind != token.IdentOrKeyword {
			return t
		}
		name := t.Text
		if e.expanding[name] {
			return t
		}
		m, ok := e.macros.Lookup(name)
		if !ok {
			return t
		}
		if !m.IsFunction {
			body := substitute(m, nil, nil)
			e.pushExpansion(m.Name, t.Span, body)
			continue
		}
		la := e.peek()
		if la.Kind != token.LParen {
			return t
		}
		e.pull() // consume '('
		rawArgs, ok := e.collectArgs(m)
		if !ok {
			continue
		}
		expandedArgs := make([][]token.RawToken, len(rawArgs))
		for i, a := range rawArgs {
			expandedArgs[i] = e.expandArgList(a)
		}
		body := substitute(m, rawArgs, expandedArgs)
		e.pushExpansion(m.Name, t.Span, body)
		continue
	}
}

// ExpandAll drains a finite-source expander completely, used for
// macro-argument pre-expansion (§4.2's ordinary rule: arguments are
// macro-expanded before substitution, except where adjacent to # or ##).
func (e *expander) ExpandAll() []token.RawToken {
	var out []token.RawToken
	for {
		t := e.Next()
		if t.Kind == token.EOF {
			return out
		}
		out = append(out, t)
	}
}

func (e *expander) expandArgList(toks []token.RawToken) []token.RawToken {
	pos := 0
	sub := newExpander(func() token.RawToken {
		if pos >= len(toks) {
			return token.RawToken{Kind: token.EOF}
		}
		t := toks[pos]
		pos++
		return t
	}, e.macros, e.expanding, e.diag)
	return sub.ExpandAll()
}

// collectArgs reads the comma-separated, paren-balanced argument lists
// for a function-like macro invocation, having already consumed the
// opening '(' (§4.2, "argument lists are comma-separated balanced-paren
// token lists").
func (e *expander) collectArgs(m *Macro) ([][]token.RawToken, bool) {
	var args [][]token.RawToken
	cur := []token.RawToken{}
	depth := 1
	nparams := len(m.Params)

	for {
		t := e.pull()
		if t.Kind == token.EOF {
			e.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective,
				t.Span, m.Name, "unterminated macro argument list"))
			return nil, false
		}
		if t.Kind == token.LParen {
			depth++
			cur = append(cur, t)
			continue
		}
		if t.Kind == token.RParen {
			depth--
			if depth == 0 {
				args = append(args, cur)
				break
			}
			cur = append(cur, t)
			continue
		}
		if t.Kind == token.Comma && depth == 1 {
			args = append(args, cur)
			cur = []token.RawToken{}
			continue
		}
		cur = append(cur, t)
	}

	if nparams == 0 && len(args) == 1 && len(args[0]) == 0 {
		args = nil
	}
	return args, true
}
