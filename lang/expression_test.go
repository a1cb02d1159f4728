package lang_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/quark/lang"
)

func TestValueFactory_Eval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want lang.Value
	}{
		{name: "single_call", raw: ".sum {1} {2}", want: lang.Int(3)},
		{name: "nested_call", raw: ".sum {.sum {1} {2}} {4}", want: lang.Int(7)},
		{name: "text_and_call", raw: "x .sum {1} {2} y", want: lang.DynamicValue("x 3 y")},
		{name: "plain_text", raw: "just text", want: lang.DynamicValue("just text")},
		{name: "default_argument", raw: ".greet {Go}", want: lang.StringValue("Hello, Go")},
		{name: "named_argument", raw: ".greet greeting:{Hi} {Go}", want: lang.StringValue("Hi, Go")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := newContext(t).Values().Eval(tt.raw)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.raw, err)
			}

			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(lang.NumberValue{})); diff != "" {
				t.Errorf("Eval(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestValueFactory_EvalMixedNodes(t *testing.T) {
	t.Parallel()

	got, err := newContext(t).Values().Eval("see .emph {this} now")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	want := lang.MarkdownValue{Inline: true, Children: []lang.Node{
		text("see "),
		&lang.Emphasis{Children: []lang.Node{text("this")}},
		text(" now"),
	}}

	if diff := cmp.Diff(lang.Value(want), got, nodeOpts); diff != "" {
		t.Errorf("Eval() mismatch (-want +got):\n%s", diff)
	}
}

func TestValueFactory_EvalFallback(t *testing.T) {
	t.Parallel()

	c := newContext(t)

	// An undefined call makes the expression invalid; the raw text is
	// parsed as Markdown instead and the pending queue is discarded.
	c.Enqueue(&lang.FunctionCallNode{Name: "pending"})

	got, err := c.Values().Eval(".undefined {1} and *more*")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	md, ok := got.(lang.MarkdownValue)
	if !ok || md.Inline {
		t.Fatalf("Eval() = %#v, want block Markdown", got)
	}

	if n := len(c.Calls()); n != 0 {
		t.Errorf("Calls() has %d entries after fallback, want 0", n)
	}

	var boxes int

	for _, n := range md.Children {
		lang.Walk(n, func(n lang.Node) bool {
			if _, ok := n.(*lang.ErrorBox); ok {
				boxes++
			}

			return true
		})
	}

	if boxes != 1 {
		t.Errorf("fallback Markdown has %d error boxes, want 1", boxes)
	}
}

func TestValueFactory_EvalInvalidComposition(t *testing.T) {
	t.Parallel()

	// An iterable cannot be concatenated with text.
	got, err := newContext(t).Values().EvalOr(".list and more", func() (lang.Value, error) {
		return lang.StringValue("fallback"), nil
	})
	if err != nil {
		t.Fatalf("EvalOr() error = %v", err)
	}

	if got != lang.StringValue("fallback") {
		t.Errorf("EvalOr() = %v, want fallback", got)
	}
}

func TestValueFactory_Convert(t *testing.T) {
	t.Parallel()

	vf := newContext(t).Values()

	tests := []struct {
		name    string
		param   lang.Parameter
		raw     string
		want    lang.Value
		wantErr error
	}{
		{
			name:  "number_from_call",
			param: lang.Param("n", lang.KindNumber),
			raw:   ".sum {1} {2}",
			want:  lang.Int(3),
		},
		{
			name:  "string_is_raw",
			param: lang.Param("s", lang.KindString),
			raw:   ".sum {1} {2}",
			want:  lang.StringValue(".sum {1} {2}"),
		},
		{
			name:  "evaluable_string",
			param: lang.Param("e", lang.KindEvaluableString),
			raw:   "a .sum {1} {1}",
			want:  lang.Object(lang.EvaluableString("a 2")),
		},
		{
			name:  "boolean_from_number_text",
			param: lang.Param("b", lang.KindBoolean),
			raw:   "yes",
			want:  lang.BooleanValue(true),
		},
		{
			name:    "number_soft_absence",
			param:   lang.Param("n", lang.KindNumber),
			raw:     "many",
			wantErr: lang.ErrInvalidArgument,
		},
		{
			name:    "enum_not_a_candidate",
			param:   lang.Param("e", lang.KindEnum).OneOf("left", "right"),
			raw:     "up",
			wantErr: lang.ErrInvalidArgument,
		},
		{
			name:    "iterable_to_number",
			param:   lang.Param("n", lang.KindNumber),
			raw:     ".list",
			wantErr: lang.ErrInvalidArgument,
		},
		{
			name:    "invalid_size",
			param:   lang.Param("w", lang.KindSize),
			raw:     "wide",
			wantErr: lang.ErrInvalidSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vf.Convert(tt.param, tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(lang.NumberValue{})); diff != "" {
				t.Errorf("Convert() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLambda(t *testing.T) {
	t.Parallel()

	c := newContext(t)

	t.Run("first_binding_persists", func(t *testing.T) {
		l := c.Values().Lambda("x y: .x and .y").Lambda

		if diff := cmp.Diff([]string{"x", "y"}, l.Parameters); diff != "" {
			t.Errorf("Parameters mismatch (-want +got):\n%s", diff)
		}

		got, err := l.Invoke(lang.KindString, lang.DynamicValue("A"), lang.DynamicValue("B"))
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}

		if got != lang.StringValue("A and B") {
			t.Errorf("Invoke() = %v, want %q", got, "A and B")
		}

		if l.State() != lang.LambdaBound {
			t.Errorf("State() = %v, want LambdaBound", l.State())
		}

		again, err := l.InvokeDynamic(lang.DynamicValue("C"), lang.DynamicValue("D"))
		if err != nil {
			t.Fatalf("InvokeDynamic() error = %v", err)
		}

		if again != lang.DynamicValue("A and B") {
			t.Errorf("second InvokeDynamic() = %v, want first binding", again)
		}

		fresh, err := l.Fresh().InvokeDynamic(lang.DynamicValue("C"), lang.DynamicValue("D"))
		if err != nil || fresh != lang.DynamicValue("C and D") {
			t.Errorf("Fresh().InvokeDynamic() = %v, %v; want C and D", fresh, err)
		}
	})

	t.Run("arity", func(t *testing.T) {
		l := c.Values().Lambda("x y: .x").Lambda

		_, err := l.InvokeDynamic(lang.Int(1), lang.Int(2), lang.Int(3))
		if !errors.Is(err, lang.ErrLambdaArity) {
			t.Errorf("InvokeDynamic() error = %v, want ErrLambdaArity", err)
		}
	})

	t.Run("implicit_parameters", func(t *testing.T) {
		l := c.Values().Lambda("item .1 of .2").Lambda

		got, err := l.InvokeDynamic(lang.Int(1), lang.Int(2), lang.Int(3))
		if err != nil || got != lang.DynamicValue("item 1 of 2") {
			t.Errorf("InvokeDynamic() = %v, %v; want %q", got, err, "item 1 of 2")
		}
	})

	t.Run("result_kind", func(t *testing.T) {
		l := c.Values().Lambda("n: .n").Lambda

		_, err := l.Invoke(lang.KindNumber, lang.DynamicValue("not a number"))
		if !errors.Is(err, lang.ErrLambdaResult) {
			t.Errorf("Invoke() error = %v, want ErrLambdaResult", err)
		}
	})

	t.Run("isolated_scope", func(t *testing.T) {
		l := c.Values().Lambda("v: .v").Lambda
		if _, err := l.InvokeDynamic(lang.Int(1)); err != nil {
			t.Fatalf("InvokeDynamic() error = %v", err)
		}

		if _, ok := c.FunctionByName("v"); ok {
			t.Error("lambda parameter leaked into the parent context")
		}
	})
}
