package lang

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// ValueFactory converts raw argument text into values, evaluating nested
// function calls against its context.
type ValueFactory struct {
	ctx *Context
}

var (
	rangePattern  = regexp.MustCompile(`^(\d+)?\.\.(\d+)?$`)
	sizePattern   = regexp.MustCompile(`^(\d+(?:\.\d+)?)(px|pt|cm|mm|in)?$`)
	lambdaPattern = regexp.MustCompile(`^\s*(?:\w+[ \t]*)*:`)
)

func (vf ValueFactory) String(raw string) StringValue { return StringValue(raw) }

// Number parses an integer or a decimal number.
func (vf ValueFactory) Number(raw string) (NumberValue, bool) {
	s := strings.TrimSpace(raw)

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), true
	}

	return NumberValue{}, false
}

// Boolean accepts true, yes, false and no in any case.
func (vf ValueFactory) Boolean(raw string) (BooleanValue, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	default:
		return false, false
	}
}

// Range parses "a..b", "a..", "..b" or "..". Malformed text yields an
// unbounded range.
func (vf ValueFactory) Range(raw string) ObjectValue[Range] {
	m := rangePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Object(Range{})
	}

	var r Range

	// A bound that overflows int is left open.
	if n, err := strconv.Atoi(m[1]); err == nil {
		r.Start = bound(n - 1)
	}

	if n, err := strconv.Atoi(m[2]); err == nil {
		r.End = bound(n - 1)
	}

	return Object(r)
}

// Size parses a magnitude with an optional unit, px by default.
func (vf ValueFactory) Size(raw string) (ObjectValue[Size], error) {
	s, err := parseSize(raw)

	return Object(s), err
}

func parseSize(raw string) (Size, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Size{}, ErrInvalidSize.With(slog.String("raw", raw))
	}

	mag, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, ErrInvalidSize.Wrap(err).With(slog.String("raw", raw))
	}

	unit := SizeUnit(m[2])
	if unit == "" {
		unit = UnitPixels
	}

	return Size{Magnitude: mag, Unit: unit}, nil
}

// Sizes parses one, two or four whitespace-separated sizes, expanded the
// way CSS expands margin shorthand.
func (vf ValueFactory) Sizes(raw string) (ObjectValue[Sizes], error) {
	fields := strings.Fields(raw)
	parts := make([]Size, len(fields))

	for i, f := range fields {
		s, err := parseSize(f)
		if err != nil {
			return Object(Sizes{}), ErrInvalidSizes.Wrap(err).With(slog.String("raw", raw))
		}

		parts[i] = s
	}

	switch len(parts) {
	case 1:
		return Object(Sizes{parts[0], parts[0], parts[0], parts[0]}), nil
	case 2:
		return Object(Sizes{parts[0], parts[1], parts[0], parts[1]}), nil
	case 4:
		return Object(Sizes{parts[0], parts[1], parts[2], parts[3]}), nil
	default:
		return Object(Sizes{}), ErrInvalidSizes.With(
			slog.String("raw", raw), slog.Int("count", len(parts)),
		)
	}
}

// Color parses a hex color or a CSS color name.
func (vf ValueFactory) Color(raw string) (ObjectValue[Color], error) {
	c, ok := parseColor(raw)
	if !ok {
		return Object(Color{}), ErrInvalidColor.With(slog.String("raw", raw))
	}

	return Object(c), nil
}

// Enum matches raw against candidates ignoring case and underscores.
func (vf ValueFactory) Enum(raw string, candidates []string) (ObjectValue[Enum], bool) {
	want := normalizeEnum(raw)

	for i, c := range candidates {
		if normalizeEnum(c) == want {
			return Object(Enum{Name: c, Index: i}), true
		}
	}

	return Object(Enum{}), false
}

// EvaluableString evaluates the function calls in raw and returns the
// textual result.
func (vf ValueFactory) EvaluableString(raw string) (ObjectValue[EvaluableString], error) {
	v, err := vf.EvalOr(raw, dynamicFallback(raw))
	if err != nil {
		return Object(EvaluableString("")), err
	}

	if s, ok := Text(v); ok {
		return Object(EvaluableString(s)), nil
	}

	return Object(EvaluableString(TextOf(NodesOf(v)...))), nil
}

// BlockMarkdown parses raw as block content and expands its calls.
func (vf ValueFactory) BlockMarkdown(raw string) (MarkdownValue, error) {
	nodes, err := vf.Markdown(raw, NewBlockLexer(""), true)

	return MarkdownValue{Children: nodes}, err
}

// InlineMarkdown parses raw as inline content and expands its calls.
func (vf ValueFactory) InlineMarkdown(raw string) (MarkdownValue, error) {
	nodes, err := vf.Markdown(raw, NewInlineLexer(""), true)

	return MarkdownValue{Children: nodes, Inline: true}, err
}

// Markdown parses raw with the given lexer's patterns through the
// attached pipeline, expanding the result if expand is set.
func (vf ValueFactory) Markdown(raw string, l Lexer, expand bool) ([]Node, error) {
	att, ok := vf.ctx.Attached()
	if !ok {
		return nil, ErrUnattachedPipeline
	}

	tokens, err := l.WithSource(raw).Tokenize()
	if err != nil {
		return nil, err
	}

	root, err := att.Parse(vf.ctx, tokens)
	if err != nil {
		return nil, err
	}

	if expand {
		if err := att.Expand(vf.ctx, root); err != nil {
			return nil, err
		}
	}

	return root.Children, nil
}

// Iterable evaluates raw and returns it as a collection. A finite range
// enumerates its 1-based members, and blank text is an empty collection.
func (vf ValueFactory) Iterable(raw string) (IterableValue, error) {
	if strings.TrimSpace(raw) == "" {
		return IterableValue{}, nil
	}

	v, err := vf.EvalOr(raw, dynamicFallback(raw))
	if err != nil {
		return nil, err
	}

	return vf.iterable(raw, v)
}

func (vf ValueFactory) iterable(raw string, v Value) (IterableValue, error) {
	switch v := v.(type) {
	case IterableValue:
		return v, nil
	case ObjectValue[Range]:
		return v.V.Collection()
	case DynamicValue:
		if r := vf.Range(string(v)).V; r.IsFinite() {
			return r.Collection()
		}
	}

	return nil, ErrNotIterable.With(slog.String("raw", raw))
}

// Lambda parses raw as a lambda: an optional header of parameter names
// ending in ':', then the body.
func (vf ValueFactory) Lambda(raw string) LambdaValue {
	var params []string

	body := raw

	if header := lambdaPattern.FindString(raw); header != "" {
		params = strings.Fields(strings.TrimSuffix(header, ":"))
		body = raw[len(header):]
	}

	return LambdaValue{Lambda: NewLambda(vf.ctx, strings.TrimSpace(body), params...)}
}

// Fallback produces the value of an expression that cannot be evaluated.
type Fallback func() (Value, error)

func dynamicFallback(raw string) Fallback {
	return func() (Value, error) { return DynamicValue(raw), nil }
}

// Eval evaluates raw as an expression. If it cannot be evaluated, raw is
// parsed as block Markdown instead.
func (vf ValueFactory) Eval(raw string) (Value, error) {
	return vf.EvalOr(raw, func() (Value, error) { return vf.BlockMarkdown(raw) })
}

// EvalOr evaluates raw as an expression, returning fallback's value if the
// expression is empty or cannot be evaluated. A failed evaluation
// discards the context's pending calls first.
func (vf ValueFactory) EvalOr(raw string, fallback Fallback) (Value, error) {
	expr, err := vf.Expression(raw)
	if err != nil {
		return nil, err
	}

	if expr == nil {
		return fallback()
	}

	v, err := expr.Eval()
	if IsInvalidExpression(err) {
		vf.ctx.Logger().Trace("expression fallback",
			slog.String("raw", excerpt(raw, 40)), slog.Any("error", err))
		vf.ctx.DequeueAll()

		return fallback()
	}

	return v, err
}
