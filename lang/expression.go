package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Expression is an evaluable piece of argument text.
type Expression interface {
	Eval() (Value, error)
}

// FunctionCall is an [Expression] that invokes a function.
type FunctionCall struct {
	ctx  *Context
	node *FunctionCallNode
}

func (fc FunctionCall) Eval() (Value, error) {
	fn, ok := fc.ctx.FunctionByName(fc.node.Name)
	if !ok {
		return nil, ErrFunctionNotFound.With(
			slog.String("function", fc.node.Name),
			slog.String("pos", fc.node.Pos.String()),
		)
	}

	return fc.ctx.Call(fn, fc.node)
}

// ComposedExpression is a sequence of text and function calls whose
// results are concatenated.
type ComposedExpression struct {
	Components []Expression
}

// Eval evaluates each component in order. A single result is returned
// unchanged. Textual results concatenate into a [DynamicValue]; text mixed
// with nodes yields inline Markdown. Any other combination, or a call to
// an undefined function, fails with [ErrInvalidExpressionEval].
func (e ComposedExpression) Eval() (Value, error) {
	values := make([]Value, 0, len(e.Components))

	for _, c := range e.Components {
		v, err := c.Eval()
		if errors.Is(err, ErrFunctionNotFound) {
			return nil, ErrInvalidExpressionEval.Wrap(err)
		}

		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	if len(values) == 1 {
		return values[0], nil
	}

	return concat(values)
}

func concat(values []Value) (Value, error) {
	hasNodes := false

	for _, v := range values {
		if _, ok := Text(v); ok {
			continue
		}

		switch v.(type) {
		case NodeValue, MarkdownValue:
			hasNodes = true
		case VoidValue:
		default:
			return nil, ErrInvalidExpressionEval.With(slog.String("kind", KindOf(v).String()))
		}
	}

	if !hasNodes {
		var b strings.Builder

		for _, v := range values {
			s, _ := Text(v)
			b.WriteString(s)
		}

		return DynamicValue(b.String()), nil
	}

	var nodes []Node

	for _, v := range values {
		for _, n := range inlineNodes(v) {
			nodes = appendMerged(nodes, n)
		}
	}

	return MarkdownValue{Children: nodes, Inline: true}, nil
}

// inlineNodes returns the nodes of v, unwrapping block content that is a
// single paragraph.
func inlineNodes(v Value) []Node {
	if md, ok := v.(MarkdownValue); ok && !md.Inline && len(md.Children) == 1 {
		if p, ok := md.Children[0].(*Paragraph); ok {
			return p.Children
		}
	}

	return NodesOf(v)
}

// IsInvalidExpression reports whether err is an expression evaluation
// failure that should fall back to the raw text.
func IsInvalidExpression(err error) bool {
	return errors.Is(err, ErrInvalidExpressionEval)
}

// Expression parses raw into an expression of text and function calls.
// It returns nil if raw has no components.
func (vf ValueFactory) Expression(raw string) (Expression, error) {
	tokens, err := NewExpressionLexer(raw, true).Tokenize()
	if err != nil {
		return nil, err
	}

	nodes, err := NewBlockParser(vf.ctx).Parse(tokens)
	if err != nil {
		return nil, err
	}

	if len(nodes) == 0 {
		return nil, nil
	}

	components := make([]Expression, 0, len(nodes))

	for _, n := range nodes {
		switch n := n.(type) {
		case *FunctionCallNode:
			vf.ctx.Dequeue(n)
			components = append(components, FunctionCall{ctx: vf.ctx, node: n})
		case *PlainText:
			components = append(components, DynamicValue(n.Text))
		default:
			components = append(components, DynamicValue(TextOf(n)))
		}
	}

	return ComposedExpression{Components: components}, nil
}

// Call binds a call's arguments to fn, converts them and invokes fn.
func (c *Context) Call(fn Function, n *FunctionCallNode) (Value, error) {
	bindings, err := Bind(fn, n.Arguments)
	if err != nil {
		return nil, err
	}

	args := NewArguments()
	vf := c.Values()

	for _, b := range bindings {
		v, err := vf.Convert(b.Parameter, b.Argument.Value)
		if err != nil {
			return nil, WrapError(err).With(slog.String("function", fn.Name()))
		}

		args.set(b.Parameter.Name, v)
	}

	for _, p := range fn.Parameters() {
		if _, ok := args.Get(p.Name); ok || p.Default == "" {
			continue
		}

		v, err := vf.Convert(p, p.Default)
		if err != nil {
			return nil, WrapError(err).With(slog.String("function", fn.Name()))
		}

		args.set(p.Name, v)
	}

	c.Logger().Trace("invoke",
		slog.String("function", fn.Name()),
		slog.Int("args", args.Len()),
	)

	return fn.Invoke(c, args)
}
