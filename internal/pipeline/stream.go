package pipeline

import (
	"github.com/hlsl-lang/frontend/internal/classifier"
	"github.com/hlsl-lang/frontend/internal/parsectx"
	"github.com/hlsl-lang/frontend/internal/preprocessor"
)

// classifyingStream is the concrete TokenStream the front-end wires up
// for real parsing: it pulls preprocessed raw tokens one at a time and
// classifies each against the shared parse context, never materializing
// more of the translation unit than the parser's lookahead demands (§5,
// "synchronous lazy pull pipeline").
type classifyingStream struct {
	pp    *preprocessor.Preprocessor
	cls   *classifier.Classifier
	parse *parsectx.Context
	buf   []classifier.Token
}

// NewClassifyingStream builds the TokenStream implementation gluing the
// preprocessor and classifier stages together over a single parse
// context.
func NewClassifyingStream(pp *preprocessor.Preprocessor, cls *classifier.Classifier, parse *parsectx.Context) TokenStream {
	return &classifyingStream{pp: pp, cls: cls, parse: parse}
}

func (s *classifyingStream) fill(n int) {
	for len(s.buf) < n {
		if len(s.buf) > 0 && s.buf[len(s.buf)-1].Kind == classifier.EOF {
			return
		}
		rt := s.pp.Next()
		state := classifier.VersionExtensionState{
			Version: s.pp.Version(),
			Enabled: s.pp.EnabledExtensions(),
		}
		tok := s.cls.Classify(rt, s.parse, state)
		if tok.Kind == classifier.Trivia {
			continue
		}
		s.buf = append(s.buf, tok)
	}
}

func (s *classifyingStream) Next() classifier.Token {
	s.fill(1)
	if len(s.buf) == 0 {
		return classifier.Token{Kind: classifier.EOF}
	}
	t := s.buf[0]
	if t.Kind != classifier.EOF {
		s.buf = s.buf[1:]
	}
	return t
}

func (s *classifyingStream) Peek(n int) []classifier.Token {
	s.fill(n)
	out := n
	if out > len(s.buf) {
		out = len(s.buf)
	}
	result := make([]classifier.Token, out)
	copy(result, s.buf[:out])
	return result
}
