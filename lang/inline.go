package lang

func (p BlockParser) inlineNode(t Token) (Node, error) {
	switch t.Kind {
	case TokenPlainText:
		return &PlainText{Text: t.Text}, nil

	case TokenEscape:
		return &PlainText{Text: t.Group(1)}, nil

	case TokenComment:
		return &Comment{Text: t.Text}, nil

	case TokenCodeSpan:
		return &CodeSpan{Text: t.Group(1)}, nil

	case TokenInlineMath:
		p.ctx.SetHasMath()

		expr := t.Group(1)
		if expr == "" {
			expr = t.Group(2)
		}

		return &InlineMath{Expression: expr}, nil

	case TokenInlineFunctionCall:
		return p.call(t, 0, false), nil

	case TokenImage:
		link, err := p.link(t)
		if err != nil {
			return nil, err
		}

		return &Image{Link: link}, nil

	case TokenReferenceImage:
		link, err := p.referenceLink(t, t.Text[1:])
		if err != nil {
			return nil, err
		}

		return &ReferenceImage{Link: link}, nil

	case TokenLink:
		return p.link(t)

	case TokenReferenceLink:
		return p.referenceLink(t, t.Text)

	case TokenAutolink:
		return &Link{Label: []Node{&PlainText{Text: t.Group(1)}}, URL: t.Group(1)}, nil

	case TokenStrongEmphasis:
		children, err := p.inline(t.Group(1))

		return &StrongEmphasis{Children: children}, err

	case TokenStrong:
		children, err := p.inline(t.Group(1))

		return &Strong{Children: children}, err

	case TokenEmphasis:
		children, err := p.inline(t.Group(1))

		return &Emphasis{Children: children}, err

	case TokenLineBreak:
		return &LineBreak{}, nil

	default:
		return p.node(t)
	}
}

func (p BlockParser) link(t Token) (*Link, error) {
	label, err := p.inline(t.Group(1))
	if err != nil {
		return nil, err
	}

	return &Link{Label: label, URL: t.Group(2), Title: unquote(t.Group(3))}, nil
}

func (p BlockParser) referenceLink(t Token, raw string) (*ReferenceLink, error) {
	label, err := p.inline(t.Group(1))
	if err != nil {
		return nil, err
	}

	ref := t.Group(2)
	if ref == "" {
		ref = t.Group(1)
	}

	return &ReferenceLink{Label: label, Reference: ref, Raw: raw}, nil
}
