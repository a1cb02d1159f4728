package lang_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/quark/lang"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	nodes := parse(t, c, "Total: .sum {1} {2}\n\n.missing {x}\n")

	if err := lang.Expand(c); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	if n := len(c.Calls()); n != 0 {
		t.Errorf("Calls() has %d entries after Expand, want 0", n)
	}

	var calls []*lang.FunctionCallNode

	for _, n := range nodes {
		lang.Walk(n, func(n lang.Node) bool {
			if call, ok := n.(*lang.FunctionCallNode); ok {
				calls = append(calls, call)
			}

			return true
		})
	}

	if len(calls) != 2 {
		t.Fatalf("found %d calls, want 2", len(calls))
	}

	for _, call := range calls {
		if !call.Expanded() {
			t.Errorf("call %s not expanded", call.Name)
		}
	}

	if diff := cmp.Diff([]lang.Node{text("3")}, calls[0].Children); diff != "" {
		t.Errorf("sum children mismatch (-want +got):\n%s", diff)
	}

	box, ok := calls[1].Children[0].(*lang.ErrorBox)
	if !ok || box.Title != "missing" {
		t.Errorf("missing children = %#v, want error box", calls[1].Children)
	}
}

func TestExpand_Strict(t *testing.T) {
	t.Parallel()

	c := newContext(t, lang.WithErrorHandler(lang.StrictErrorHandler{}))
	parse(t, c, ".sum {1} {two}\n")

	err := lang.Expand(c)
	if !errors.Is(err, lang.ErrInvalidArgument) {
		t.Fatalf("Expand() error = %v, want ErrInvalidArgument", err)
	}
}

func TestExpand_NestedMarkdown(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	nodes := parse(t, c, ".emph\n    inner .sum {2} {2}\n")

	if err := lang.Expand(c); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	if got := lang.TextOf(nodes...); got != "inner 4" {
		t.Errorf("TextOf() = %q, want %q", got, "inner 4")
	}
}

func TestExpand_SkipsExpanded(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	nodes := parse(t, c, ".sum {1} {1}\n")

	if err := lang.Expand(c); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	call := nodes[0].(*lang.FunctionCallNode)
	call.Children = []lang.Node{text("kept")}

	c.Enqueue(call)

	if err := lang.Expand(c); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	if got := lang.TextOf(call); got != "kept" {
		t.Errorf("re-expansion changed children to %q", got)
	}
}

func TestContext_Fork(t *testing.T) {
	t.Parallel()

	parent := newContext(t)
	parent.Enqueue(&lang.FunctionCallNode{Name: "queued"})

	child := parent.Fork()
	child.Register(lang.NewLibrary("extra", lang.NewFunction("only-child", nil)))
	child.DequeueAll()
	child.Define(&lang.LinkDefinition{Label: "shared", URL: "/s"})
	child.SetHasMath()

	if _, ok := parent.FunctionByName("only-child"); ok {
		t.Error("library registered in child is visible in parent")
	}

	if _, ok := child.FunctionByName("sum"); !ok {
		t.Error("child cannot see parent library")
	}

	if n := len(parent.Calls()); n != 1 {
		t.Errorf("parent queue has %d entries, want 1", n)
	}

	if _, ok := parent.Resolve("SHARED"); !ok {
		t.Error("link defined in child is not visible in parent")
	}

	if !parent.HasMath() {
		t.Error("math flag set in child is not visible in parent")
	}
}

func TestContext_FunctionByName_Shadowing(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	c.Register(lang.NewLibrary("override", lang.NewFunction("sum",
		func(*lang.Context, lang.Arguments) (lang.Value, error) { return lang.StringValue("shadowed"), nil })))

	got, err := c.Values().Eval(".sum")
	if err != nil || got != lang.StringValue("shadowed") {
		t.Errorf("Eval(\".sum\") = %v, %v; want shadowed", got, err)
	}

	if _, ok := c.FunctionByName("SUM"); ok {
		t.Error("FunctionByName is case-insensitive")
	}
}

func TestExpand_DynamicResult(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	nodes := parse(t, c, ".dyn\n\ninline .dyn\n")

	if err := lang.Expand(c); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	var calls []*lang.FunctionCallNode

	for _, n := range nodes {
		lang.Walk(n, func(n lang.Node) bool {
			if call, ok := n.(*lang.FunctionCallNode); ok {
				calls = append(calls, call)

				return false
			}

			return true
		})
	}

	if len(calls) != 2 {
		t.Fatalf("found %d calls, want 2", len(calls))
	}

	emph := &lang.Emphasis{Children: []lang.Node{text("x")}}

	if diff := cmp.Diff([]lang.Node{&lang.Paragraph{Children: []lang.Node{emph}}}, calls[0].Children, nodeOpts); diff != "" {
		t.Errorf("block call children mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]lang.Node{emph}, calls[1].Children, nodeOpts); diff != "" {
		t.Errorf("inline call children mismatch (-want +got):\n%s", diff)
	}
}
