package lang

import (
	"errors"
	"log/slog"
)

// Expand drains c's call queue, expanding each queued call in order.
// Calls enqueued while expanding are expanded in later passes.
func Expand(c *Context) error {
	for len(c.calls) > 0 {
		for _, n := range c.Calls() {
			c.Dequeue(n)

			if err := expandCall(c, n); err != nil {
				return err
			}
		}
	}

	return nil
}

// ExpandTree expands every unexpanded call in the tree under root,
// removing each from c's queue.
func ExpandTree(c *Context, root Node) error {
	var err error

	Walk(root, func(n Node) bool {
		if err != nil {
			return false
		}

		if call, ok := n.(*FunctionCallNode); ok {
			c.Dequeue(call)
			err = expandCall(c, call)
		}

		return err == nil
	})

	return err
}

// expandCall invokes the function a call names and stores the rendering
// of its result as the call's children. Failures go to the context's
// error handler.
func expandCall(c *Context, n *FunctionCallNode) error {
	if n.expanded {
		return nil
	}

	n.expanded = true

	fn, ok := c.FunctionByName(n.Name)
	if !ok {
		return c.ErrorHandler().Handle(c, ErrFunctionNotFound.With(
			slog.String("function", n.Name),
			slog.String("pos", n.Pos.String()),
		), n)
	}

	v, err := c.Call(fn, n)
	if err != nil {
		return c.ErrorHandler().Handle(c, err, n)
	}

	children, err := resultNodes(c, n, v)
	if err != nil {
		return c.ErrorHandler().Handle(c, err, n)
	}

	n.Children = children

	return nil
}

// resultNodes maps a call's result to nodes. Dynamic text is parsed as
// Markdown of the call's level; without an attached pipeline it stays
// plain text.
func resultNodes(c *Context, n *FunctionCallNode, v Value) ([]Node, error) {
	d, ok := v.(DynamicValue)
	if !ok {
		return NodesOf(v), nil
	}

	l := NewInlineLexer("")
	if n.Block {
		l = NewBlockLexer("")
	}

	nodes, err := c.Values().Markdown(string(d), l, true)
	if errors.Is(err, ErrUnattachedPipeline) {
		return NodesOf(v), nil
	}

	return nodes, err
}
