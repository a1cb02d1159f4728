package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_FlagValues(t *testing.T) {
	t.Parallel()

	const doc = `
log-level: debug
log_format: json
count: 3
ratio: 0.5
pretty: true
search-path: [lib, docs]
`

	loader := resolve(context.Background())

	resolver, err := loader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{flag: "log-level", want: "debug"},
		{flag: "log-format", want: "json"},
		{flag: "count", want: "3"},
		{flag: "ratio", want: "0.5"},
		{flag: "pretty", want: true},
		{flag: "search-path", want: "lib,docs"},
		{flag: "missing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := resolver.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%s) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_InvalidDocument(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"empty":    "",
		"sequence": "- a\n- b\n",
		"syntax":   "key: [unterminated\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resolver, err := resolve(context.Background())(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}

			if c, ok := resolver.(config); !ok || len(c) != 0 {
				t.Errorf("resolver = %#v, want empty config", resolver)
			}
		})
	}
}

func TestResolve_Kong(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	const doc = `
level: info
build:
  target: markdown
  pretty: true
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli struct {
		Level string `default:"warn"`
		Build struct {
			Target string `default:"html"`
			Pretty bool
			Output string `default:"-"`
		} `cmd:""`
	}

	parser, err := kong.New(&cli,
		kong.Configuration(resolve(context.Background()), path),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"build", "--target=html"}); err != nil {
		t.Fatal(err)
	}

	if cli.Level != "info" {
		t.Errorf("Level = %q, want %q", cli.Level, "info")
	}

	if cli.Build.Target != "html" {
		t.Errorf("Target = %q, want command line to win", cli.Build.Target)
	}

	if !cli.Build.Pretty {
		t.Error("Pretty not read from command section")
	}

	if cli.Build.Output != "-" {
		t.Errorf("Output = %q, want default", cli.Build.Output)
	}
}
