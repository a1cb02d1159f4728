package lang_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/quark/lang"
)

func TestBind(t *testing.T) {
	t.Parallel()

	fn := lang.NewFunction("box", nil,
		lang.Param("title", lang.KindInlineMarkdown).Opt(),
		lang.Param("padding", lang.KindSizes).Opt(),
		lang.Param("body", lang.KindBlockMarkdown),
	)

	tests := []struct {
		name    string
		args    []lang.CallArgument
		want    map[string]string
		wantErr error
	}{
		{
			name: "positional_and_body",
			args: []lang.CallArgument{{Value: "Title"}, {Value: "content", Body: true}},
			want: map[string]string{"title": "Title", "body": "content"},
		},
		{
			name: "named_before_positional",
			args: []lang.CallArgument{{Value: "Title"}, {Name: "padding", Value: "4px"}, {Value: "text"}},
			want: map[string]string{"title": "Title", "padding": "4px", "body": "text"},
		},
		{
			name: "positional_skips_named",
			args: []lang.CallArgument{{Name: "title", Value: "T"}, {Value: "1px"}, {Value: "b"}},
			want: map[string]string{"title": "T", "padding": "1px", "body": "b"},
		},
		{
			name:    "unknown_name",
			args:    []lang.CallArgument{{Name: "color", Value: "red"}, {Value: "b", Body: true}},
			wantErr: lang.ErrUnknownArgument,
		},
		{
			name:    "duplicate",
			args:    []lang.CallArgument{{Name: "body", Value: "a"}, {Value: "b", Body: true}},
			wantErr: lang.ErrDuplicateArgument,
		},
		{
			name:    "too_many",
			args:    []lang.CallArgument{{Value: "a"}, {Value: "b"}, {Value: "c"}, {Value: "d"}},
			wantErr: lang.ErrTooManyArguments,
		},
		{
			name:    "missing_required",
			args:    []lang.CallArgument{{Value: "Title"}},
			wantErr: lang.ErrMissingArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bindings, err := lang.Bind(fn, tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Bind() error = %v, want %v", err, tt.wantErr)
				}

				var le *lang.Error
				if !errors.As(err, &le) || len(le.Attrs()) == 0 {
					t.Errorf("Bind() error %v carries no attributes", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}

			got := make(map[string]string, len(bindings))
			for _, b := range bindings {
				got[b.Parameter.Name] = b.Argument.Value
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Bind() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBind_NoParameters(t *testing.T) {
	t.Parallel()

	fn := lang.NewFunction("now", nil)

	if _, err := lang.Bind(fn, []lang.CallArgument{{Value: "x", Body: true}}); !errors.Is(err, lang.ErrTooManyArguments) {
		t.Errorf("Bind() error = %v, want ErrTooManyArguments", err)
	}
}
