package lang_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
)

// attachment parses with a BlockParser and expands subtrees in place.
type attachment struct{}

func (attachment) Parse(c *lang.Context, tokens []lang.Token) (*lang.Root, error) {
	nodes, err := lang.NewBlockParser(c).Parse(tokens)
	if err != nil {
		return nil, err
	}

	return &lang.Root{Children: nodes}, nil
}

func (attachment) Expand(c *lang.Context, root *lang.Root) error {
	return lang.ExpandTree(c, root)
}

func number(args lang.Arguments, name string) lang.NumberValue {
	n, _ := lang.Arg[lang.NumberValue](args, name)

	return n
}

var testLibrary = lang.NewLibrary("test",
	lang.NewFunction("sum", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
		return lang.Int(number(args, "a").Int64() + number(args, "b").Int64()), nil
	}, lang.Param("a", lang.KindNumber), lang.Param("b", lang.KindNumber)),

	lang.NewFunction("greet", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
		greeting, _ := lang.Arg[lang.StringValue](args, "greeting")
		name, _ := lang.Arg[lang.StringValue](args, "name")

		return lang.StringValue(string(greeting) + ", " + string(name)), nil
	}, lang.Param("name", lang.KindString), lang.Param("greeting", lang.KindString).WithDefault("Hello")),

	lang.NewFunction("list", func(_ *lang.Context, _ lang.Arguments) (lang.Value, error) {
		return lang.IterableValue{lang.Int(1), lang.Int(2)}, nil
	}),

	lang.NewFunction("dyn", func(*lang.Context, lang.Arguments) (lang.Value, error) {
		return lang.DynamicValue("*x*"), nil
	}),

	lang.NewFunction("emph", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
		body, _ := lang.Arg[lang.MarkdownValue](args, "body")

		return lang.NodeValue{Node: &lang.Emphasis{Children: body.Children}}, nil
	}, lang.Param("body", lang.KindInlineMarkdown)),
)

func newContext(t *testing.T, opts ...lang.ContextOption) *lang.Context {
	t.Helper()

	base := []lang.ContextOption{
		lang.WithLogger(log.Discard()),
		lang.WithAttachment(attachment{}),
		lang.WithLibraries(testLibrary),
	}

	return lang.NewContext(append(base, opts...)...)
}

func parse(t *testing.T, c *lang.Context, source string) []lang.Node {
	t.Helper()

	nodes, err := lang.NewBlockParser(c).ParseSource(lang.NewBlockLexer(""), source)
	if err != nil {
		t.Fatalf("ParseSource(%q) error = %v", source, err)
	}

	return nodes
}

var nodeOpts = cmp.Options{
	cmpopts.IgnoreUnexported(lang.FunctionCallNode{}),
	cmpopts.IgnoreFields(lang.FunctionCallNode{}, "Pos"),
	cmpopts.EquateEmpty(),
}
