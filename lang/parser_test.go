package lang_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/quark/lang"
)

func text(s string) *lang.PlainText { return &lang.PlainText{Text: s} }

func TestBlockParser_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []lang.Node
	}{
		{
			name:  "atx_heading_closing_sequence",
			input: "## Title ##\n",
			want:  []lang.Node{&lang.Heading{Depth: 2, Children: []lang.Node{text("Title")}}},
		},
		{
			name:  "atx_heading_keeps_hash_before_text",
			input: "# a #b\n",
			want:  []lang.Node{&lang.Heading{Depth: 1, Children: []lang.Node{text("a #b")}}},
		},
		{
			name:  "setext_heading",
			input: "Title\n---\n",
			want:  []lang.Node{&lang.Heading{Depth: 2, Children: []lang.Node{text("Title")}}},
		},
		{
			name:  "block_quote_strips_markers",
			input: "> one\n> two\n",
			want: []lang.Node{&lang.BlockQuote{Children: []lang.Node{
				&lang.Paragraph{Children: []lang.Node{text("one\ntwo")}},
			}}},
		},
		{
			name:  "block_quote_strips_one_marker",
			input: "> > inner\n",
			want: []lang.Node{&lang.BlockQuote{Children: []lang.Node{
				&lang.BlockQuote{Children: []lang.Node{
					&lang.Paragraph{Children: []lang.Node{text("inner")}},
				}},
			}}},
		},
		{
			name:  "block_quote_strips_one_space",
			input: "> one\n>  two\n",
			want: []lang.Node{&lang.BlockQuote{Children: []lang.Node{
				&lang.Paragraph{Children: []lang.Node{text("one\n two")}},
			}}},
		},
		{
			name:  "unordered_list",
			input: "- a\n- b\n",
			want: []lang.Node{&lang.UnorderedList{Children: []lang.Node{
				&lang.ListItem{Children: []lang.Node{&lang.Paragraph{Children: []lang.Node{text("a")}}}},
				&lang.ListItem{Children: []lang.Node{&lang.Paragraph{Children: []lang.Node{text("b")}}}},
			}}},
		},
		{
			name:  "fenced_code",
			input: "```go\nx := 1\n```\n",
			want:  []lang.Node{&lang.Code{Language: "go", Content: "x := 1"}},
		},
		{
			name:  "emphasis_in_paragraph",
			input: "some *text* here\n",
			want: []lang.Node{&lang.Paragraph{Children: []lang.Node{
				text("some "),
				&lang.Emphasis{Children: []lang.Node{text("text")}},
				text(" here"),
			}}},
		},
		{
			name:  "link_with_title",
			input: "[Go](https://go.dev \"The Go site\")\n",
			want: []lang.Node{&lang.Paragraph{Children: []lang.Node{
				&lang.Link{Label: []lang.Node{text("Go")}, URL: "https://go.dev", Title: "The Go site"},
			}}},
		},
		{
			name:  "inline_call",
			input: "Sum .sum {1} {2} here\n",
			want: []lang.Node{&lang.Paragraph{Children: []lang.Node{
				text("Sum "),
				&lang.FunctionCallNode{Name: "sum", Arguments: []lang.CallArgument{{Value: "1"}, {Value: "2"}}},
				text(" here"),
			}}},
		},
		{
			name:  "block_call_with_named_argument_and_body",
			input: ".greet greeting:{Hi}\n    World\n",
			want: []lang.Node{&lang.FunctionCallNode{
				Name: "greet",
				Arguments: []lang.CallArgument{
					{Name: "greeting", Value: "Hi"},
					{Value: "World", Body: true},
				},
				Block: true,
			}},
		},
		{
			name:  "escaped_brace_in_argument",
			input: `.greet {a \} b}` + "\n",
			want: []lang.Node{
				&lang.FunctionCallNode{Name: "greet", Arguments: []lang.CallArgument{{Value: "a } b"}}, Block: true},
				&lang.Newline{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parse(t, newContext(t), tt.input)

			if diff := cmp.Diff(tt.want, got, nodeOpts); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlockParser_ListItemIndentation(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	got := parse(t, c, "-  first\n  continued\n   nested\n")

	want := []lang.Node{&lang.UnorderedList{Children: []lang.Node{
		&lang.ListItem{Children: []lang.Node{
			&lang.Paragraph{Children: []lang.Node{text("first\ncontinued\n nested")}},
		}},
	}}}

	if diff := cmp.Diff(want, got, nodeOpts); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockParser_OrderedListUnsupported(t *testing.T) {
	t.Parallel()

	_, err := lang.NewBlockParser(newContext(t)).ParseSource(lang.NewBlockLexer(""), "1. one\n")
	if !errors.Is(err, lang.ErrOrderedListUnsupported) {
		t.Fatalf("ParseSource() error = %v, want ErrOrderedListUnsupported", err)
	}
}

func TestBlockParser_InvalidSetextMarkerPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()

		err, ok := r.(error)
		if !ok || !errors.Is(err, lang.ErrInvalidSetextHeading) {
			t.Errorf("recover() = %v, want ErrInvalidSetextHeading", r)
		}
	}()

	tok := lang.Token{
		Kind:   lang.TokenSetextHeading,
		Text:   "Title\n~~~\n",
		Groups: []string{"Title\n~~~\n", "Title", "~~~"},
	}

	_, _ = lang.NewBlockParser(newContext(t)).Parse([]lang.Token{tok})
}

func TestBlockParser_SideEffects(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	parse(t, c, "[Go Site]: https://go.dev\n\nSee [docs][go site] and $x$ with .sum {1} {2}.\n")

	if !c.HasMath() {
		t.Error("HasMath() = false, want true")
	}

	def, ok := c.Resolve("GO   SITE")
	if !ok || def.URL != "https://go.dev" {
		t.Errorf("Resolve() = %v, %v; want https://go.dev", def, ok)
	}

	calls := c.Calls()
	if len(calls) != 1 || calls[0].Name != "sum" {
		t.Errorf("Calls() = %v, want one call to sum", calls)
	}
}

func TestContext_ResolveOrFallback(t *testing.T) {
	t.Parallel()

	c := newContext(t)
	c.Define(&lang.LinkDefinition{Label: "home", URL: "/", Title: "Home"})

	label := []lang.Node{text("here")}

	got := c.ResolveOrFallback(&lang.ReferenceLink{Label: label, Reference: "Home", Raw: "[here][Home]"})
	want := &lang.Link{Label: label, URL: "/", Title: "Home"}

	if diff := cmp.Diff(lang.Node(want), got, nodeOpts); diff != "" {
		t.Errorf("ResolveOrFallback() mismatch (-want +got):\n%s", diff)
	}

	missing := &lang.ReferenceImage{Link: &lang.ReferenceLink{Label: label, Reference: "nope", Raw: "[here][nope]"}}
	if diff := cmp.Diff(lang.Node(text("![here][nope]")), c.ResolveImageOrFallback(missing)); diff != "" {
		t.Errorf("ResolveImageOrFallback() mismatch (-want +got):\n%s", diff)
	}
}
