// Package preprocessor implements the C-style macro/conditional text
// preprocessor described in §4.2: object-like and function-like macro
// expansion, #if/#ifdef/#ifndef/#elif/#else/#endif conditional inclusion,
// #include via a pluggable resolver, #line, #error, #pragma, #version,
// and #extension. It runs entirely on the raw token stream the lexer
// produces, before classification (§4.4) or parsing ever see a token.
package preprocessor

import (
	"strings"

	"github.com/hlsl-lang/frontend/internal/config"
	"github.com/hlsl-lang/frontend/internal/diagnostics"
	"github.com/hlsl-lang/frontend/internal/source"
	"github.com/hlsl-lang/frontend/internal/token"
)

// Options configures one run of the preprocessor over a root buffer.
type Options struct {
	Resolver       IncludeResolver   // defaults to NoIncludes{}
	InitialMacros  map[string]string // -D-style command-line defines, name -> replacement text ("" means "1")
	DefaultVersion uint16            // defaults to config.DefaultVersion
}

// Preprocessor drives the include stack, macro table, and conditional
// state for one translation unit (DATA MODEL, "Preprocessor state").
type Preprocessor struct {
	macros     *Table
	expanding  map[string]bool
	frames     []*frame
	resolver   IncludeResolver
	diags      *diagnostics.Bag
	version    uint16
	extensions map[string]string // extension name -> behavior (enable/require/warn)
	pragmaOnce map[string]bool
	exp        *expander
}

// New creates a Preprocessor over the root buffer buf.
func New(buf *source.Buffer, opts Options, diags *diagnostics.Bag) *Preprocessor {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = NoIncludes{}
	}
	version := opts.DefaultVersion
	if version == 0 {
		version = config.DefaultVersion
	}
	p := &Preprocessor{
		macros:     NewTable(),
		expanding:  make(map[string]bool),
		resolver:   resolver,
		diags:      diags,
		version:    version,
		extensions: make(map[string]string),
		pragmaOnce: make(map[string]bool),
		frames:     []*frame{newFrame(buf)},
	}
	for name, text := range opts.InitialMacros {
		p.defineFromCommandLine(name, text)
	}
	p.exp = newExpander(p.rawNext, p.macros, p.expanding, p.diag)
	return p
}

// Version returns the active #version at the point preprocessing
// finished (or Options.DefaultVersion if none appeared).
func (p *Preprocessor) Version() uint16 { return p.version }

// EnabledExtensions returns the names of every extension named in a
// non-"disable" #extension directive that ran, the set the classifier
// gates builtin type names against (§4.4).
func (p *Preprocessor) EnabledExtensions() []string {
	out := make([]string, 0, len(p.extensions))
	for name := range p.extensions {
		out = append(out, name)
	}
	return out
}

// Run drains the entire preprocessed, macro-expanded token stream.
func (p *Preprocessor) Run() []token.RawToken {
	var out []token.RawToken
	for {
		t := p.exp.Next()
		if t.Kind == token.EOF {
			return out
		}
		out = append(out, t)
	}
}

// Next returns the next preprocessed, macro-expanded token, for callers
// (the classifier-facing pipeline stage) that want to pull one at a
// time rather than draining the whole translation unit up front.
func (p *Preprocessor) Next() token.RawToken { return p.exp.Next() }

func (p *Preprocessor) curFrame() *frame { return p.frames[len(p.frames)-1] }

func (p *Preprocessor) diag(d *diagnostics.Diagnostic) { p.diags.Add(d) }

// rawNext is the filtered, directive-free, active-region-only token
// source the macro expander pulls from (§4.2: directives are consumed
// here and never themselves reach expansion or the parser).
func (p *Preprocessor) rawNext() token.RawToken {
	for {
		if len(p.frames) == 0 {
			return token.RawToken{Kind: token.EOF}
		}
		f := p.curFrame()
		t := f.nextRaw()

		switch t.Kind {
		case token.EOF:
			if f.conds.depth() != 0 {
				p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PUnbalancedCond, t.Span, "unterminated conditional at end of file"))
			}
			p.frames = p.frames[:len(p.frames)-1]
			if len(p.frames) == 0 {
				return t
			}
			continue
		case token.Whitespace, token.Newline, token.LineComment, token.BlockComment:
			continue
		case token.Hash:
			if !f.lastAtLineStart {
				if f.conds.active() {
					return t
				}
				continue
			}
			p.handleDirective(t)
			continue
		default:
			if !f.conds.active() {
				continue
			}
			return t
		}
	}
}

// readRestOfLine collects every token (trivia included, for adjacency
// decisions like function-like macro parameter lists) up to the next
// Newline, which it consumes; at EOF it pushes the EOF back so the
// caller's frame-exhaustion handling still runs.
func (p *Preprocessor) readRestOfLine() []token.RawToken {
	f := p.curFrame()
	var out []token.RawToken
	for {
		t := f.nextRaw()
		if t.Kind == token.Newline {
			return out
		}
		if t.Kind == token.EOF {
			f.pushBack(t)
			return out
		}
		out = append(out, t)
	}
}

func (p *Preprocessor) discardRestOfLine() { p.readRestOfLine() }

// handleDirective dispatches on the directive name immediately following
// a line-start '#' (§4.2, the closed directive set).
func (p *Preprocessor) handleDirective(hash token.RawToken) {
	f := p.curFrame()

	var nameTok token.RawToken
	for {
		t := f.nextRaw()
		if t.Kind == token.Whitespace || t.Kind == token.LineComment || t.Kind == token.BlockComment {
			continue
		}
		nameTok = t
		break
	}
	if nameTok.Kind == token.Newline || nameTok.Kind == token.EOF {
		if nameTok.Kind == token.EOF {
			f.pushBack(nameTok)
		}
		return // a bare '#' on its own line is a legal null directive
	}
	if nameTok.Kind != token.IdentOrKeyword {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective, hash.Span, "?", "expected a directive name after '#'"))
		p.discardRestOfLine()
		return
	}

	name := nameTok.Text
	active := f.conds.active()

	switch name {
	case "define":
		rest := p.readRestOfLine()
		if active {
			p.handleDefine(rest, hash.Span)
		}
	case "undef":
		rest := p.readRestOfLine()
		if active {
			p.handleUndef(rest, hash.Span)
		}
	case "include":
		if !active {
			p.discardRestOfLine()
			return
		}
		p.handleInclude(hash.Span)
	case "if":
		p.handleIf(hash.Span)
	case "ifdef":
		p.handleIfdef(hash.Span, false)
	case "ifndef":
		p.handleIfdef(hash.Span, true)
	case "elif":
		p.handleElif(hash.Span)
	case "else":
		p.discardRestOfLine()
		p.handleElse(hash.Span)
	case "endif":
		p.discardRestOfLine()
		p.handleEndif(hash.Span)
	case "line":
		rest := p.readRestOfLine()
		if active {
			p.handleLine(rest, hash.Span)
		}
	case "error":
		rest := p.readRestOfLine()
		if active {
			p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PErrorDirective, hash.Span, joinTokenText(rest)))
		}
	case "pragma":
		rest := p.readRestOfLine()
		if active {
			p.handlePragma(rest)
		}
	case "version":
		rest := p.readRestOfLine()
		if active {
			p.handleVersion(rest, hash.Span)
		}
	case "extension":
		rest := p.readRestOfLine()
		if active {
			p.handleExtension(rest, hash.Span)
		}
	default:
		p.discardRestOfLine()
		if active {
			p.diag(diagnostics.Warning(diagnostics.PhasePreprocessor, diagnostics.PUnknownDirective, hash.Span, name))
		}
	}
}

// --- #define / #undef -------------------------------------------------

func (p *Preprocessor) handleDefine(lineToks []token.RawToken, span source.Span) {
	idx := skipWs(lineToks, 0)
	if idx >= len(lineToks) || lineToks[idx].Kind != token.IdentOrKeyword {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective, span, "define", "expected a macro name"))
		return
	}
	name := lineToks[idx].Text
	nameEnd := lineToks[idx].Span.End.Offset
	idx++

	var params []string
	variadic := false
	isFunction := false

	if idx < len(lineToks) && lineToks[idx].Kind == token.LParen && lineToks[idx].Span.Start.Offset == nameEnd {
		isFunction = true
		idx++
		for {
			idx = skipWs(lineToks, idx)
			if idx >= len(lineToks) {
				break
			}
			if lineToks[idx].Kind == token.RParen {
				idx++
				break
			}
			if lineToks[idx].Kind == token.Ellipsis {
				variadic = true
				idx++
				idx = skipWs(lineToks, idx)
				if idx < len(lineToks) && lineToks[idx].Kind == token.RParen {
					idx++
				}
				break
			}
			if lineToks[idx].Kind == token.IdentOrKeyword {
				params = append(params, lineToks[idx].Text)
				idx++
				idx = skipWs(lineToks, idx)
				if idx < len(lineToks) && lineToks[idx].Kind == token.Comma {
					idx++
					continue
				}
				continue
			}
			idx++ // malformed parameter list token; skip rather than loop forever
		}
	}

	idx = skipWs(lineToks, idx)
	var body []token.RawToken
	for _, t := range lineToks[idx:] {
		if t.Kind.IsTrivia() {
			continue
		}
		body = append(body, t)
	}
	body = mergeHashHash(body)

	m := &Macro{Name: name, Params: params, Variadic: variadic, IsFunction: isFunction, Body: body, DefinedAt: span}
	if _, incompatible := p.macros.Define(m); incompatible {
		p.diag(diagnostics.Warning(diagnostics.PhasePreprocessor, diagnostics.PRedefinedMacro, span, name))
	}
}

func (p *Preprocessor) handleUndef(lineToks []token.RawToken, span source.Span) {
	idx := skipWs(lineToks, 0)
	if idx >= len(lineToks) || lineToks[idx].Kind != token.IdentOrKeyword {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective, span, "undef", "expected a macro name"))
		return
	}
	p.macros.Undef(lineToks[idx].Text)
}

// defineFromCommandLine installs a -D-style initial macro by lexing
// "name text" (or just "name" if text is empty, defined to "1") as a
// synthetic source line. The inserted space means a command-line define
// is always object-like — function-like macros aren't expressible via
// Options.InitialMacros, a deliberate simplification over a full
// command-line-define mini-grammar.
func (p *Preprocessor) defineFromCommandLine(name, text string) {
	if strings.TrimSpace(text) == "" {
		text = "1"
	}
	buf := source.NewBuffer("<command-line>", name+" "+text)
	f := newFrame(buf)
	var toks []token.RawToken
	for {
		t := f.nextRaw()
		if t.Kind == token.EOF {
			break
		}
		toks = append(toks, t)
	}
	span := source.Span{Buffer: buf.ID}
	p.handleDefine(toks, span)
}

// mergeHashHash collapses two adjacent single-'#' Hash tokens in a
// macro body into one synthetic Hash token spelled "##", the
// token-pasting operator (§4.2) — the raw lexer only ever emits a
// single '#' per character, so this is the one place that operator gets
// assembled.
func mergeHashHash(toks []token.RawToken) []token.RawToken {
	var out []token.RawToken
	i := 0
	for i < len(toks) {
		if toks[i].Kind == token.Hash && toks[i].Text == "#" &&
			i+1 < len(toks) && toks[i+1].Kind == token.Hash && toks[i+1].Text == "#" {
			out = append(out, token.RawToken{
				Kind: token.Hash,
				Text: "##",
				Span: source.Union(toks[i].Span, toks[i+1].Span),
			})
			i += 2
			continue
		}
		out = append(out, toks[i])
		i++
	}
	return out
}

func skipWs(toks []token.RawToken, i int) int {
	for i < len(toks) && toks[i].Kind.IsTrivia() {
		i++
	}
	return i
}

func joinTokenText(toks []token.RawToken) string {
	var sb strings.Builder
	first := true
	for _, t := range toks {
		if t.Kind.IsTrivia() {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
		first = false
	}
	return sb.String()
}

// --- #include -----------------------------------------------------------

func (p *Preprocessor) handleInclude(span source.Span) {
	f := p.curFrame()
	t := f.nextIncludeTarget()
	if t.Kind != token.StringTarget && t.Kind != token.AngleTarget {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective, span, "include", "expected a header name"))
		p.discardRestOfLine()
		return
	}
	quoted := t.Kind == token.StringTarget
	target := stripIncludeDelims(t.Text)
	p.discardRestOfLine()

	if len(p.frames) >= config.IncludeDepthLimit {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PIncludeDepth, t.Span, config.IncludeDepthLimit))
		return
	}

	handle, text, err := p.resolver.Resolve(f.buf.Name, target, quoted)
	if err != nil {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PIncludeFailed, t.Span, target, err.Error()))
		return
	}
	for _, fr := range p.frames {
		if fr.buf.Name == handle {
			p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PIncludeFailed, t.Span, target, "include cycle"))
			return
		}
	}
	if p.pragmaOnce[handle] {
		return
	}

	nb := source.NewBuffer(handle, text)
	sp := t.Span
	nb.IncludedFrom = &sp
	p.frames = append(p.frames, newFrame(nb))
}

func stripIncludeDelims(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// --- conditionals ---------------------------------------------------------

func (p *Preprocessor) handleIf(span source.Span) {
	f := p.curFrame()
	parentActive := f.conds.active()
	lineToks := p.readRestOfLine()
	if !parentActive {
		f.conds.push(false, span)
		return
	}
	cond := p.evalDirectiveCond(lineToks, span)
	f.conds.push(cond, span)
}

func (p *Preprocessor) handleIfdef(span source.Span, negate bool) {
	f := p.curFrame()
	parentActive := f.conds.active()
	rest := p.readRestOfLine()
	idx := skipWs(rest, 0)
	name := ""
	if idx < len(rest) {
		name = rest[idx].Text
	}
	if !parentActive {
		f.conds.push(false, span)
		return
	}
	defined := p.macros.IsDefined(name)
	if negate {
		defined = !defined
	}
	f.conds.push(defined, span)
}

func (p *Preprocessor) handleElif(span source.Span) {
	f := p.curFrame()
	g := f.conds.top()
	lineToks := p.readRestOfLine()
	if g == nil {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PUnbalancedCond, span, "#elif without matching #if"))
		return
	}
	if g.takenBranchYet || !f.conds.parentActiveExcludingTop() {
		f.conds.enterElif(false)
		return
	}
	cond := p.evalDirectiveCond(lineToks, span)
	f.conds.enterElif(cond)
}

func (p *Preprocessor) handleElse(span source.Span) {
	f := p.curFrame()
	g := f.conds.top()
	if g == nil {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PUnbalancedCond, span, "#else without matching #if"))
		return
	}
	if g.hasElseBeenSeen {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PDuplicateElse, span))
		return
	}
	g.hasElseBeenSeen = true
	f.conds.enterElse()
}

func (p *Preprocessor) handleEndif(span source.Span) {
	f := p.curFrame()
	if f.conds.depth() == 0 {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PUnbalancedCond, span, "#endif without matching #if"))
		return
	}
	f.conds.pop()
}

// evalDirectiveCond resolves defined(...) (which must see raw,
// unexpanded identifiers), macro-expands what remains, and evaluates the
// resulting constant expression (§4.2, "#if"/"#elif").
func (p *Preprocessor) evalDirectiveCond(lineToks []token.RawToken, span source.Span) bool {
	resolved := p.resolveDefined(lineToks)
	expanded := p.expandLineTokens(resolved)
	return p.evalConstExpr(expanded, span) != 0
}

func (p *Preprocessor) resolveDefined(toks []token.RawToken) []token.RawToken {
	var out []token.RawToken
	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.Kind.IsTrivia() {
			i++
			continue
		}
		if t.Kind == token.IdentOrKeyword && t.Text == "defined" {
			j := skipWs(toks, i+1)
			if j < len(toks) && toks[j].Kind == token.LParen {
				j = skipWs(toks, j+1)
				name := ""
				if j < len(toks) && toks[j].Kind == token.IdentOrKeyword {
					name = toks[j].Text
					j++
				}
				j = skipWs(toks, j)
				if j < len(toks) && toks[j].Kind == token.RParen {
					j++
				}
				out = append(out, boolDigit(p.macros.IsDefined(name), t.Span))
				i = j
				continue
			}
			if j < len(toks) && toks[j].Kind == token.IdentOrKeyword {
				out = append(out, boolDigit(p.macros.IsDefined(toks[j].Text), t.Span))
				i = j + 1
				continue
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

func boolDigit(b bool, span source.Span) token.RawToken {
	text := "0"
	if b {
		text = "1"
	}
	return token.RawToken{Kind: token.Digits, Text: text, Span: span}
}

// expandLineTokens fully macro-expands a finite token slice (a
// directive's argument line) sharing this Preprocessor's macro table and
// currently-expanding set.
func (p *Preprocessor) expandLineTokens(toks []token.RawToken) []token.RawToken {
	var filtered []token.RawToken
	for _, t := range toks {
		if t.Kind.IsTrivia() {
			continue
		}
		filtered = append(filtered, t)
	}
	pos := 0
	sub := newExpander(func() token.RawToken {
		if pos >= len(filtered) {
			return token.RawToken{Kind: token.EOF}
		}
		t := filtered[pos]
		pos++
		return t
	}, p.macros, p.expanding, p.diag)
	return sub.ExpandAll()
}

// expandBodyOnce expands an object-like macro's body in isolation, used
// by the constant-expression evaluator when a bare identifier in a #if
// turns out to name one (eval.go's parsePrimary).
func (p *Preprocessor) expandBodyOnce(m *Macro) []token.RawToken {
	return p.expandLineTokens(m.Body)
}

// --- #line / #pragma / #version / #extension -----------------------------

// handleLine accepts and validates #line syntax without remapping
// subsequent spans: spans in this module key off a Buffer's own
// identity and physical byte offsets rather than a mutable logical
// line/file overlay, so #line has no effect beyond being recognized
// (recorded as an explicit simplification, not an oversight).
func (p *Preprocessor) handleLine(lineToks []token.RawToken, span source.Span) {
	idx := skipWs(lineToks, 0)
	if idx >= len(lineToks) || lineToks[idx].Kind != token.Digits {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective, span, "line", "expected a line number"))
	}
}

func (p *Preprocessor) handlePragma(lineToks []token.RawToken) {
	idx := skipWs(lineToks, 0)
	if idx < len(lineToks) && lineToks[idx].Kind == token.IdentOrKeyword && lineToks[idx].Text == "once" {
		p.pragmaOnce[p.curFrame().buf.Name] = true
	}
	// other pragmas (pack, message, and vendor-specific ones) are
	// recognized but have no semantic effect at this layer.
}

func (p *Preprocessor) handleVersion(lineToks []token.RawToken, span source.Span) {
	idx := skipWs(lineToks, 0)
	if idx >= len(lineToks) || lineToks[idx].Kind != token.Digits {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective, span, "version", "expected a version number"))
		return
	}
	p.version = uint16(parseIntConstant(lineToks[idx].Text))
}

func (p *Preprocessor) handleExtension(lineToks []token.RawToken, span source.Span) {
	idx := skipWs(lineToks, 0)
	if idx >= len(lineToks) || lineToks[idx].Kind != token.IdentOrKeyword {
		p.diag(diagnostics.Error(diagnostics.PhasePreprocessor, diagnostics.PMalformedDirective, span, "extension", "expected an extension name"))
		return
	}
	name := lineToks[idx].Text
	idx = skipWs(lineToks, idx+1)
	behavior := "enable"
	if idx < len(lineToks) && lineToks[idx].Kind == token.Colon {
		idx = skipWs(lineToks, idx+1)
		if idx < len(lineToks) && lineToks[idx].Kind == token.IdentOrKeyword {
			behavior = lineToks[idx].Text
		}
	}
	if behavior == "disable" {
		delete(p.extensions, name)
		return
	}
	p.extensions[name] = behavior
}
