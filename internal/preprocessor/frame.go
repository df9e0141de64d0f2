package preprocessor

import (
	"github.com/hlsl-lang/frontend/internal/lexer"
	"github.com/hlsl-lang/frontend/internal/source"
	"github.com/hlsl-lang/frontend/internal/token"
)

// frame is one entry of the include stack: a lexer over a single source
// buffer, plus that buffer's own conditional-group stack (§4.2,
// "pushes a new source frame onto the include stack; at EOF of that
// frame it pops").
type frame struct {
	buf   *source.Buffer
	lex   *lexer.Lexer
	conds condStack

	// pending holds a raw token already read from lex but not yet
	// consumed, used when peeking across directive recognition.
	pending     *token.RawToken
	atLineStart bool

	// lastAtLineStart records whether the most recently returned token
	// (from nextRaw) was itself preceded on its logical line by nothing
	// but whitespace — the line-start state as of BEFORE that token,
	// since atLineStart is updated to reflect the state AFTER it in the
	// same call.
	lastAtLineStart bool
}

func newFrame(buf *source.Buffer) *frame {
	return &frame{buf: buf, lex: lexer.New(buf), atLineStart: true}
}

// nextRaw returns the next raw token from this frame only, tracking
// logical line-start for directive recognition (§4.2, "preceded on its
// logical line by nothing but whitespace").
func (f *frame) nextRaw() token.RawToken {
	if f.pending != nil {
		t := *f.pending
		f.pending = nil
		return t
	}
	wasAtLineStart := f.atLineStart
	t := f.lex.NextToken()
	switch t.Kind {
	case token.Newline:
		f.atLineStart = true
	case token.Whitespace, token.LineComment, token.BlockComment:
		// line-start carries through trivia
	default:
		f.atLineStart = false
	}
	f.lastAtLineStart = wasAtLineStart
	return t
}

func (f *frame) pushBack(t token.RawToken) {
	f.pending = &t
}

// nextIncludeTarget lexes a #include target, choosing header-name lexing
// (<...>) over the ordinary operator grammar when the next significant
// character is '<' (§4.2, §9) — must only be called immediately after
// consuming the `include` directive name.
func (f *frame) nextIncludeTarget() token.RawToken {
	if f.lex.Ch() == ' ' || f.lex.Ch() == '\t' || f.lex.Ch() == '\r' {
		f.lex.NextToken() // drains the whitespace run
	}
	if f.lex.Ch() == '<' {
		return f.lex.NextHeaderName()
	}
	return f.lex.NextToken()
}
