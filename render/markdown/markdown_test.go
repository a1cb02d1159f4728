package markdown_test

import (
	"context"
	"testing"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
	"github.com/ardnew/quark/pipeline"
	"github.com/ardnew/quark/render/markdown"
)

var testLibrary = lang.NewLibrary("test",
	lang.NewFunction("twice", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
		s, _ := lang.Arg[lang.StringValue](args, "s")

		return lang.StringValue(string(s) + string(s)), nil
	}, lang.Param("s", lang.KindString)),
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "heading_and_paragraph",
			source: "## Title\n\nSome *em* and **strong**.\n",
			want:   "## Title\n\nSome *em* and **strong**.\n",
		},
		{
			name:   "list",
			source: "- a\n- b\n",
			want:   "- a\n- b\n",
		},
		{
			name:   "quote",
			source: "> one\n",
			want:   "> one\n",
		},
		{
			name:   "call_output",
			source: "x .twice {ab} y\n",
			want:   "x abab y\n",
		},
		{
			name:   "block_call_output",
			source: ".twice {*}\n",
			want:   "\\*\\*\n",
		},
		{
			name:   "reference",
			source: "[go][x] [no][y]\n\n[x]: /go\n",
			want:   "[go](/go) [no][y]\n",
		},
		{
			name:   "code",
			source: "```go\nx := 1\n```\n",
			want:   "```go\nx := 1\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := pipeline.New(
				pipeline.WithLogger(log.Discard()),
				pipeline.WithRenderer(markdown.New()),
				pipeline.WithLibraries(testLibrary),
			)

			got, err := p.Execute(context.Background(), tt.source)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Execute() = %q, want %q", got, tt.want)
			}
		})
	}
}
