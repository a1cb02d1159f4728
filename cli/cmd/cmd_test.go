package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/quark/lang"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestSourceRead_ErrorAttrs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.qd")

	_, err := Source(path).Read(context.Background())

	var le *lang.Error
	if !errors.As(err, &le) {
		t.Fatalf("Read() error = %T, want *lang.Error", err)
	}

	if !errors.Is(err, ErrReadSource) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() error = %v, want ErrReadSource wrapping ErrNotExist", err)
	}

	attrs := le.Attrs()
	if len(attrs) != 1 || attrs[0].Key != "file" || attrs[0].Value.String() != path {
		t.Errorf("Attrs() = %v, want file=%s", attrs, path)
	}
}

func TestSourceRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "doc.qd", "hello world")

	tests := []struct {
		name    string
		source  Source
		want    string
		wantErr error
	}{
		{name: "file", source: Source(path), want: "hello world"},
		{name: "empty", source: "", wantErr: ErrNoSourceFile},
		{name: "missing", source: Source(filepath.Join(dir, "nope.qd")), wantErr: ErrReadSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.source.Read(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Read() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Read() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "doc.qd", "")

	if got := Source(path).Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if got := Source(stdinSource).Dir(); got != wd {
		t.Errorf("stdin Dir() = %q, want %q", got, wd)
	}
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := WithOutput(context.Background(), &buf)

	if err := writeOutput(ctx, "", "to stdout"); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "to stdout" {
		t.Errorf("output = %q", buf.String())
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := writeOutput(ctx, path, "to file"); err != nil {
		t.Fatal(err)
	}

	if data, _ := os.ReadFile(path); string(data) != "to file" {
		t.Errorf("file = %q", data)
	}

	err := writeOutput(ctx, filepath.Join(path, "sub", "x"), "bad")
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("writeOutput() error = %v, want ErrWriteOutput", err)
	}
}

func TestCompileRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "part.qd", "included *text*\n")
	doc := writeFile(t, dir, "doc.qd", "# Sum\n\n.sum {2} {3}\n\n.include {part.qd}\n")

	tests := []struct {
		name     string
		compile  Compile
		contains []string
		excludes []string
	}{
		{
			name:     "html",
			compile:  Compile{Source: Source(doc), Target: "html", Wrap: true},
			contains: []string{"<!DOCTYPE html>", "<title>Sum</title>", "<p>5</p>", "<em>text</em>"},
		},
		{
			name:     "html_unwrapped",
			compile:  Compile{Source: Source(doc), Target: "html"},
			contains: []string{"<h1>Sum</h1>"},
			excludes: []string{"<!DOCTYPE html>"},
		},
		{
			name:     "markdown",
			compile:  Compile{Source: Source(doc), Target: "markdown", Wrap: true},
			contains: []string{"# Sum\n\n5\n\nincluded *text*\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			ctx := WithOutput(context.Background(), &buf)

			if err := tt.compile.Run(ctx); err != nil {
				t.Fatalf("Compile.Run() error = %v", err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}

			for _, bad := range tt.excludes {
				if strings.Contains(buf.String(), bad) {
					t.Errorf("output contains %q:\n%s", bad, buf.String())
				}
			}
		})
	}
}

func TestCompileStrict(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, t.TempDir(), "doc.qd", ".nosuchfunction\n")

	var buf bytes.Buffer

	ctx := WithOutput(context.Background(), &buf)

	lenient := Compile{Source: Source(doc), Target: "html"}
	if err := lenient.Run(ctx); err != nil {
		t.Fatalf("Compile.Run() error = %v", err)
	}

	if !strings.Contains(buf.String(), `class="error"`) {
		t.Errorf("lenient output has no error box:\n%s", buf.String())
	}

	strict := Compile{Source: Source(doc), Target: "html", Strict: true}
	if err := strict.Run(ctx); err == nil {
		t.Error("strict Compile.Run() succeeded on unknown function")
	}
}

func TestCompileNoSource(t *testing.T) {
	t.Parallel()

	err := (&Compile{}).Run(context.Background())
	if !errors.Is(err, ErrNoSourceFile) {
		t.Errorf("Compile.Run() error = %v, want ErrNoSourceFile", err)
	}
}

func TestTokensRun(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, t.TempDir(), "doc.qd", "# Title\n\ntext\n")
	off := false

	tests := []struct {
		format string
		want   string
	}{
		{format: "text", want: "heading"},
		{format: "json", want: `"kind": "heading"`},
		{format: "yaml", want: "kind: heading"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			cmd := Tokens{Source: Source(doc), Format: tt.format, Indent: 2, Color: &off}
			if err := cmd.Run(WithOutput(context.Background(), &buf)); err != nil {
				t.Fatalf("Tokens.Run() error = %v", err)
			}

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}

			if strings.Contains(buf.String(), "\x1b[") {
				t.Error("output is colorized")
			}
		})
	}
}

func TestASTRun(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, t.TempDir(), "doc.qd", ".uppercase {abc}\n")

	tests := []struct {
		name   string
		cmd    AST
		want   string
		reject string
	}{
		{
			name:   "tree",
			cmd:    AST{Format: "tree"},
			want:   "FunctionCallNode .uppercase",
			reject: `"ABC"`,
		},
		{
			name: "tree_expanded",
			cmd:  AST{Format: "tree", Expand: true},
			want: `PlainText "ABC"`,
		},
		{
			name: "json",
			cmd:  AST{Format: "json", Indent: 2},
			want: `"type": "Root"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tt.cmd.Source = Source(doc)
			if err := tt.cmd.Run(WithOutput(context.Background(), &buf)); err != nil {
				t.Fatalf("AST.Run() error = %v", err)
			}

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}

			if tt.reject != "" && strings.Contains(buf.String(), tt.reject) {
				t.Errorf("output contains %q:\n%s", tt.reject, buf.String())
			}
		})
	}
}
