package lang

import (
	"log/slog"
	"regexp"
	"strings"
)

// BlockParser converts tokens into nodes, re-lexing nested regions such as
// list items and block quotes. It records link definitions, math usage and
// function calls in its context as it goes.
type BlockParser struct {
	ctx *Context
}

// NewBlockParser returns a parser that records into c.
func NewBlockParser(c *Context) BlockParser { return BlockParser{ctx: c} }

var (
	codeIndent    = regexp.MustCompile(`(?m)^(?: {1,4}|\t)`)
	quoteMarker   = regexp.MustCompile(`(?m)^ *>[ \t]?`)
	listMarker    = regexp.MustCompile(`\A {0,3}(?:[-*+]|\d{1,9}[.)])`)
	headingCloser = regexp.MustCompile(`[ \t]#+[ \t]*\z`)
)

// Parse converts tokens to nodes in order. Adjacent plain text is merged.
func (p BlockParser) Parse(tokens []Token) ([]Node, error) {
	nodes := make([]Node, 0, len(tokens))

	for _, t := range tokens {
		n, err := p.node(t)
		if err != nil {
			return nil, err
		}

		nodes = appendMerged(nodes, n)
	}

	return nodes, nil
}

// ParseSource lexes source with lexer l's patterns and parses the tokens.
func (p BlockParser) ParseSource(l Lexer, source string) ([]Node, error) {
	tokens, err := l.WithSource(source).Tokenize()
	if err != nil {
		return nil, err
	}

	return p.Parse(tokens)
}

func appendMerged(nodes []Node, n Node) []Node {
	if n == nil {
		return nodes
	}

	if text, ok := n.(*PlainText); ok && len(nodes) > 0 {
		if prev, ok := nodes[len(nodes)-1].(*PlainText); ok {
			nodes[len(nodes)-1] = &PlainText{Text: prev.Text + text.Text}

			return nodes
		}
	}

	return append(nodes, n)
}

func (p BlockParser) node(t Token) (Node, error) {
	switch t.Kind {
	case TokenNewline:
		return &Newline{}, nil

	case TokenBlockCode:
		return &Code{Content: strings.TrimSpace(codeIndent.ReplaceAllString(t.Text, ""))}, nil

	case TokenFencesCode:
		return &Code{
			Language: strings.TrimSpace(t.Group(1)),
			Content:  strings.TrimRight(strings.TrimLeft(t.Group(2), "\n"), "\n"),
		}, nil

	case TokenMath:
		p.ctx.SetHasMath()

		return &Math{Expression: strings.TrimSpace(t.Group(1))}, nil

	case TokenHorizontalRule:
		return &HorizontalRule{}, nil

	case TokenHeading:
		return p.heading(t)

	case TokenSetextHeading:
		return p.setextHeading(t)

	case TokenLinkDefinition:
		def := &LinkDefinition{
			Label: t.Group(1),
			URL:   t.Group(2),
			Title: unquote(t.Group(3)),
		}
		p.ctx.Define(def)

		return def, nil

	case TokenFunctionCall:
		lead := len(t.Text) - len(strings.TrimLeft(t.Text, " "))

		return p.call(t, lead, true), nil

	case TokenBlockQuote:
		children, err := p.nested(NewBlockLexer(""), strings.TrimSpace(quoteMarker.ReplaceAllString(t.Text, "")))
		if err != nil {
			return nil, err
		}

		return &BlockQuote{Children: children}, nil

	case TokenUnorderedList:
		items, err := p.nested(NewListItemLexer(""), t.Text)
		if err != nil {
			return nil, err
		}

		return &UnorderedList{Children: items}, nil

	case TokenOrderedList:
		return nil, ErrOrderedListUnsupported.With(slog.String("pos", t.Pos.String()))

	case TokenListItem:
		children, err := p.nested(NewBlockLexer(""), listItemBody(t.Text))
		if err != nil {
			return nil, err
		}

		return &ListItem{Children: children}, nil

	case TokenHTML:
		return &HTML{Content: strings.TrimSpace(t.Text)}, nil

	case TokenParagraph:
		children, err := p.inline(strings.TrimSpace(t.Group(1)))
		if err != nil {
			return nil, err
		}

		return &Paragraph{Children: children}, nil

	case TokenBlockText:
		return &BlockText{}, nil

	case TokenPlainText, TokenEscape, TokenComment, TokenCodeSpan,
		TokenInlineMath, TokenInlineFunctionCall, TokenImage,
		TokenReferenceImage, TokenLink, TokenReferenceLink, TokenAutolink,
		TokenStrongEmphasis, TokenStrong, TokenEmphasis, TokenLineBreak:
		return p.inlineNode(t)

	default:
		panic("lang: unhandled token kind " + t.Kind.String())
	}
}

func (p BlockParser) nested(l Lexer, source string) ([]Node, error) {
	return p.ParseSource(l, source)
}

func (p BlockParser) inline(source string) ([]Node, error) {
	return p.ParseSource(NewInlineLexer(""), source)
}

func (p BlockParser) heading(t Token) (Node, error) {
	text := t.Group(2)
	if loc := headingCloser.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	} else if strings.Trim(text, "#") == "" {
		text = ""
	}

	children, err := p.inline(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}

	return &Heading{Depth: len(t.Group(1)), Children: children}, nil
}

func (p BlockParser) setextHeading(t Token) (Node, error) {
	var depth int

	switch marker := t.Group(2); {
	case strings.HasPrefix(marker, "="):
		depth = 1
	case strings.HasPrefix(marker, "-"):
		depth = 2
	default:
		panic(ErrInvalidSetextHeading.With(slog.String("marker", marker)))
	}

	children, err := p.inline(strings.TrimSpace(t.Group(1)))
	if err != nil {
		return nil, err
	}

	return &Heading{Depth: depth, Children: children}, nil
}

// listItemBody removes the item marker, then strips from every line as
// many leading spaces as the first line of content is indented by.
func listItemBody(text string) string {
	body := listMarker.ReplaceAllString(text, "")

	first, _ := line(body, 0)
	indent := indentWidth(first)

	lines := strings.Split(body, "\n")
	for i, l := range lines {
		n := 0
		for n < indent && n < len(l) && l[n] == ' ' {
			n++
		}

		lines[i] = l[n:]
	}

	return strings.Join(lines, "\n")
}

// call builds a function call node from a call token's text and queues it
// for expansion.
func (p BlockParser) call(t Token, offset int, block bool) Node {
	syntax, ok := scanCall(t.Text, offset, block)
	if !ok {
		return &PlainText{Text: t.Text}
	}

	args := syntax.args
	if syntax.body != nil {
		args = append(args, CallArgument{Value: *syntax.body, Body: true})
	}

	n := &FunctionCallNode{
		Name:      syntax.name,
		Arguments: args,
		Block:     block,
		Pos:       t.Pos,
	}
	p.ctx.Enqueue(n)

	return n
}

// unquote strips the delimiters of a link title.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}

	return s[1 : len(s)-1]
}
