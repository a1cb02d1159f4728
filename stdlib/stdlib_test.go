package stdlib_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
	"github.com/ardnew/quark/pipeline"
	"github.com/ardnew/quark/render/markdown"
	"github.com/ardnew/quark/stdlib"
)

func newPipeline(opts ...pipeline.Option) *pipeline.Pipeline {
	base := []pipeline.Option{
		pipeline.WithLogger(log.Discard()),
		pipeline.WithRenderer(markdown.New()),
		pipeline.WithLibraries(stdlib.All()...),
		pipeline.WithWrap(false),
	}

	return pipeline.New(append(base, opts...)...)
}

func compile(t *testing.T, source string, opts ...pipeline.Option) string {
	t.Helper()

	out, err := newPipeline(opts...).Execute(context.Background(), source)
	if err != nil {
		t.Fatalf("Execute(%q) error = %v", source, err)
	}

	return out
}

func eval(t *testing.T, raw string) (lang.Value, error) {
	t.Helper()

	return newPipeline().Context().Values().Eval(raw)
}

var numberOpt = cmp.AllowUnexported(lang.NumberValue{})

func TestMath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    lang.Value
		wantErr error
	}{
		{raw: ".sum {2} {3}", want: lang.Int(5)},
		{raw: ".sum {0.5} {1}", want: lang.Float(1.5)},
		{raw: ".subtract {2} {5}", want: lang.Int(-3)},
		{raw: ".multiply {4} {2.5}", want: lang.Float(10)},
		{raw: ".divide {6} {3}", want: lang.Int(2)},
		{raw: ".divide {7} {2}", want: lang.Float(3.5)},
		{raw: ".divide {1} {0}", wantErr: stdlib.ErrDivisionByZero},
		{raw: ".pow {2} {10}", want: lang.Int(1024)},
		{raw: ".pow {2} {-1}", want: lang.Float(0.5)},
		{raw: ".calc {2 * (3 + 4)}", want: lang.Int(14)},
		{raw: ".calc {10 / 4}", want: lang.Float(2.5)},
		{raw: ".calc {1 + .sum {1} {1}}", want: lang.Int(3)},
		{raw: ".calc {1 +}", wantErr: stdlib.ErrCalc},
		{raw: ".calc {undefined * 2}", wantErr: stdlib.ErrCalc},
		{raw: ".range {2..4}", want: lang.IterableValue{lang.Int(2), lang.Int(3), lang.Int(4)}},
		{raw: ".range {2..}", wantErr: lang.ErrNotIterable},
		{raw: ".range {1..1000000}", wantErr: lang.ErrCollectionTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := eval(t, tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Eval() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got, numberOpt); diff != "" {
				t.Errorf("Eval() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want lang.Value
	}{
		{raw: ".uppercase {quark}", want: lang.StringValue("QUARK")},
		{raw: ".lowercase {QuArK}", want: lang.StringValue("quark")},
		{raw: ".capitalize {élan vital}", want: lang.StringValue("Élan vital")},
		{raw: ".concatenate {ab} {cd}", want: lang.StringValue("abcd")},
		{raw: ".code {go} {x := 1}", want: lang.NodeValue{Node: &lang.Code{Language: "go", Content: "x := 1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := eval(t, tt.raw)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Eval() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "if_true", source: ".if {yes}\n    shown *here*\n", want: "shown *here*\n"},
		{name: "if_false", source: ".if {no}\n    hidden\n\nafter\n", want: "after\n"},
		{name: "ifnot", source: ".ifnot {false}\n    shown\n", want: "shown\n"},
		{name: "foreach", source: ".foreach {1..3}\n    n: Item .n\n", want: "Item 1\n\nItem 2\n\nItem 3\n"},
		{name: "foreach_calc", source: ".foreach {1..2}\n    n: .calc {n * 10}\n", want: "10\n\n20\n"},
		{name: "repeat_implicit", source: ".repeat {2}\n    Row .1\n", want: "Row 1\n\nRow 2\n"},
		{name: "repeat_zero", source: ".repeat {0}\n    never\n\nend\n", want: "end\n"},
		{name: "var", source: ".var {x} {5}\n\n.sum {.x} {1}\n", want: "6\n"},
		{name: "var_shadowed", source: ".var {x} {1}\n\n.var {x} {2}\n\n.x\n", want: "2\n"},
		{name: "function", source: ".function {greet}\n    name: Hi, .name!\n\n.greet {Bob}\n\n.greet {Ann}\n", want: "Hi, Bob!\n\nHi, Ann!\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := compile(t, tt.source); got != tt.want {
				t.Errorf("Execute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogic_CollectionTooLarge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		title  string
	}{
		{name: "repeat", source: ".repeat {4611686018427387904}\n    x\n", title: "repeat"},
		{name: "foreach", source: ".foreach {1..100000000}\n    n: .n\n", title: "foreach"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := compile(t, tt.source)
			if !strings.Contains(got, "**Error: "+tt.title+"**") ||
				!strings.Contains(got, lang.ErrCollectionTooLarge.Error()) {
				t.Errorf("Execute() = %q, want %s error box", got, tt.title)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	got, err := eval(t, ".box {Title} background:{red} padding:{4px 8px} body:{content}")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	box, ok := got.(lang.NodeValue).Node.(*lang.Box)
	if !ok {
		t.Fatalf("Eval() = %#v, want box", got)
	}

	if lang.TextOf(box.Title...) != "Title" || lang.TextOf(box.Children...) != "content" {
		t.Errorf("box title %q, content %q", lang.TextOf(box.Title...), lang.TextOf(box.Children...))
	}

	if box.Background == nil || box.Background.String() != "#ff0000" {
		t.Errorf("box background = %v, want #ff0000", box.Background)
	}

	if box.Padding == nil || box.Padding.String() != "4px 8px 4px 8px" {
		t.Errorf("box padding = %v", box.Padding)
	}

	if box.Width != nil {
		t.Errorf("box width = %v, want unset", box.Width)
	}

	got, err = eval(t, ".align {RIGHT} {x}")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	if a := got.(lang.NodeValue).Node.(*lang.Aligned); a.Alignment != "right" {
		t.Errorf("alignment = %q, want right", a.Alignment)
	}

	if _, err := eval(t, ".align {middle} {x}"); !errors.Is(err, lang.ErrInvalidArgument) {
		t.Errorf("Eval() error = %v, want ErrInvalidArgument", err)
	}
}

func TestSlides(t *testing.T) {
	t.Parallel()

	got, err := eval(t, ".slides {yes} transition:{fade}")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	center := true
	want := &lang.SlidesConfiguration{
		Center:     &center,
		Transition: &lang.Transition{Style: "fade", Speed: "default"},
	}

	if diff := cmp.Diff(want, got.(lang.NodeValue).Node); diff != "" {
		t.Errorf("slides mismatch (-want +got):\n%s", diff)
	}

	got, err = eval(t, ".slides")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	if diff := cmp.Diff(&lang.SlidesConfiguration{}, got.(lang.NodeValue).Node); diff != "" {
		t.Errorf("default slides mismatch (-want +got):\n%s", diff)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestInclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "work", "part.md"), "# Part\n\nincluded .uppercase {x}\n")
	writeFile(t, filepath.Join(dir, "lib", "shared.md"), "shared\n")
	writeFile(t, filepath.Join(dir, "work", "loop.md"), ".include {loop.md}\n")

	opts := []pipeline.Option{
		pipeline.WithWorkingDirectory(filepath.Join(dir, "work")),
		pipeline.WithSearchPath(filepath.Join(dir, "lib")),
	}

	t.Run("working_directory", func(t *testing.T) {
		t.Parallel()

		if got := compile(t, ".include {part.md}\n", opts...); got != "# Part\n\nincluded X\n" {
			t.Errorf("Execute() = %q", got)
		}
	})

	t.Run("search_path", func(t *testing.T) {
		t.Parallel()

		if got := compile(t, ".include {shared.md}\n", opts...); got != "shared\n" {
			t.Errorf("Execute() = %q", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := newPipeline(opts...).Context().Values().Eval(".include {nope.md}")
		if !errors.Is(err, stdlib.ErrFileNotFound) {
			t.Errorf("Eval() error = %v, want ErrFileNotFound", err)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()

		strict := append(opts, pipeline.WithErrorHandler(lang.StrictErrorHandler{}))

		_, err := newPipeline(strict...).Execute(context.Background(), ".include {loop.md}\n")
		if !errors.Is(err, stdlib.ErrIncludeCycle) {
			t.Errorf("Execute() error = %v, want ErrIncludeCycle", err)
		}
	})
}

func TestRequire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		wantErr error
	}{
		{raw: ".require {>= 0.1.0}"},
		{raw: ".require {< 99}"},
		{raw: ".require {> 99}", wantErr: stdlib.ErrVersionConstraint},
		{raw: ".require {not a version}", wantErr: stdlib.ErrInvalidConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := eval(t, tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Eval() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}

			if got != (lang.VoidValue{}) {
				t.Errorf("Eval() = %v, want void", got)
			}
		})
	}
}
