package lang

import (
	"log/slog"
)

// converter turns argument text into a value of one kind.
type converter func(vf ValueFactory, p Parameter, text string) (Value, error)

// rawKinds receive the argument text unevaluated. Every other kind is
// evaluated first, and only a dynamic result is converted.
var rawKinds = map[Kind]bool{
	KindString:         true,
	KindBlockMarkdown:  true,
	KindInlineMarkdown: true,
	KindLambda:         true,
}

var converters = map[Kind]converter{
	KindString: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.String(text), nil
	},
	KindNumber: func(vf ValueFactory, p Parameter, text string) (Value, error) {
		if n, ok := vf.Number(text); ok {
			return n, nil
		}

		return nil, invalidArgument(p, text)
	},
	KindBoolean: func(vf ValueFactory, p Parameter, text string) (Value, error) {
		if b, ok := vf.Boolean(text); ok {
			return b, nil
		}

		return nil, invalidArgument(p, text)
	},
	KindRange: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.Range(text), nil
	},
	KindSize: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.Size(text)
	},
	KindSizes: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.Sizes(text)
	},
	KindColor: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.Color(text)
	},
	KindEnum: func(vf ValueFactory, p Parameter, text string) (Value, error) {
		if e, ok := vf.Enum(text, p.Candidates); ok {
			return e, nil
		}

		return nil, invalidArgument(p, text).With(slog.Any("candidates", p.Candidates))
	},
	KindEvaluableString: func(_ ValueFactory, _ Parameter, text string) (Value, error) {
		return Object(EvaluableString(text)), nil
	},
	KindBlockMarkdown: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.BlockMarkdown(text)
	},
	KindInlineMarkdown: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.InlineMarkdown(text)
	},
	KindIterable: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.iterable(text, DynamicValue(text))
	},
	KindLambda: func(vf ValueFactory, _ Parameter, text string) (Value, error) {
		return vf.Lambda(text), nil
	},
	KindDynamic: func(_ ValueFactory, _ Parameter, text string) (Value, error) {
		return DynamicValue(text), nil
	},
}

func invalidArgument(p Parameter, raw string) *Error {
	return ErrInvalidArgument.With(
		slog.String("parameter", p.Name),
		slog.String("kind", p.Kind.String()),
		slog.String("raw", raw),
	)
}

// Convert converts raw argument text to a value of p's kind.
func (vf ValueFactory) Convert(p Parameter, raw string) (Value, error) {
	conv, ok := converters[p.Kind]
	if !ok {
		return nil, invalidArgument(p, raw)
	}

	if rawKinds[p.Kind] {
		return conv(vf, p, raw)
	}

	v, err := vf.EvalOr(raw, dynamicFallback(raw))
	if err != nil {
		return nil, err
	}

	return vf.coerce(p, v)
}

// coerce converts an evaluated value to p's kind. Dynamic and textual
// values go through p's converter; other values must already have the
// expected kind.
func (vf ValueFactory) coerce(p Parameter, v Value) (Value, error) {
	if p.Kind == KindDynamic {
		return v, nil
	}

	if d, ok := v.(DynamicValue); ok {
		return converters[p.Kind](vf, p, string(d))
	}

	if KindOf(v) == p.Kind {
		if e, ok := v.(ObjectValue[Enum]); ok {
			return converters[KindEnum](vf, p, e.V.Name)
		}

		return v, nil
	}

	if p.Kind == KindBlockMarkdown || p.Kind == KindInlineMarkdown {
		if nodes, ok := contentOf(v); ok {
			return MarkdownValue{Children: nodes, Inline: p.Kind == KindInlineMarkdown}, nil
		}
	}

	if s, ok := Text(v); ok {
		return converters[p.Kind](vf, p, s)
	}

	if p.Kind == KindIterable {
		return vf.iterable(p.Name, v)
	}

	return nil, ErrInvalidArgument.With(
		slog.String("parameter", p.Name),
		slog.String("expected", p.Kind.String()),
		slog.String("got", KindOf(v).String()),
	)
}

// contentOf returns the nodes of a node or Markdown value.
func contentOf(v Value) ([]Node, bool) {
	switch v := v.(type) {
	case MarkdownValue:
		return v.Children, true
	case NodeValue:
		return []Node{v.Node}, true
	default:
		return nil, false
	}
}
