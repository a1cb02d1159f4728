package lang

import (
	"log/slog"
	"strings"
)

// Lexer splits a source region into tokens using an ordered pattern set.
// A Lexer holds no state besides its input, so it may be copied and reused
// on extracted sub-regions freely.
type Lexer struct {
	source string
	set    patternSet
}

// NewLexer returns a Lexer over source trying patterns in order.
// Tokens of custom pattern sets are never cached.
func NewLexer(source string, patterns ...Pattern) Lexer {
	return Lexer{source: source, set: patternSet{patterns: patterns}}
}

// NewBlockLexer returns a Lexer for block-level Markdown.
func NewBlockLexer(source string) Lexer {
	return Lexer{source: source, set: blockPatterns}
}

// NewInlineLexer returns a Lexer for inline Markdown.
func NewInlineLexer(source string) Lexer {
	return Lexer{source: source, set: inlinePatterns}
}

// NewListItemLexer returns a Lexer that splits a list body into items.
func NewListItemLexer(source string) Lexer {
	return Lexer{source: source, set: listItemPatterns}
}

// NewExpressionLexer returns a Lexer that splits text into literal runs
// and function calls. With allowBlockCalls, a call standing alone on its
// line takes the indented lines below it as its body.
func NewExpressionLexer(source string, allowBlockCalls bool) Lexer {
	if allowBlockCalls {
		return Lexer{source: source, set: blockExpressionPatterns}
	}

	return Lexer{source: source, set: expressionPatterns}
}

// Source returns the lexer's input.
func (l Lexer) Source() string { return l.source }

// WithSource returns a copy of l over a different input.
func (l Lexer) WithSource(source string) Lexer {
	l.source = source

	return l
}

// Tokenize returns the tokens covering the entire input in source order.
// It fails with [ErrNoPatternMatch] if no pattern matches at some position.
func (l Lexer) Tokenize() ([]Token, error) {
	if l.set.name == "" {
		return l.tokenize()
	}

	return cachedTokens(l.set.name, l.source, l.tokenize)
}

func (l Lexer) tokenize() ([]Token, error) {
	var (
		tokens []Token
		pos    = Position{Line: 1, Column: 1}
	)

	for pos.Offset < len(l.source) {
		tok, ok := l.next(pos)
		if !ok {
			return nil, ErrNoPatternMatch.With(
				slog.String("lexer", l.set.name),
				slog.String("pos", pos.String()),
				slog.String("near", excerpt(l.source[pos.Offset:], 24)),
			)
		}

		tokens = append(tokens, tok)
		pos = advance(pos, tok.Text)
	}

	return tokens, nil
}

func (l Lexer) next(pos Position) (Token, bool) {
	for _, p := range l.set.patterns {
		n, groups := p.Match(l.source, pos.Offset)
		if n <= 0 {
			continue
		}

		return Token{
			Kind:   p.Kind,
			Text:   l.source[pos.Offset : pos.Offset+n],
			Groups: groups,
			Pos:    pos,
		}, true
	}

	return Token{}, false
}

func advance(pos Position, text string) Position {
	pos.Offset += len(text)

	if n := strings.Count(text, "\n"); n > 0 {
		pos.Line += n
		pos.Column = len(text) - strings.LastIndexByte(text, '\n')
	} else {
		pos.Column += len(text)
	}

	return pos
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "…"
}
