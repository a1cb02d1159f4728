package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
	"github.com/ardnew/quark/pipeline"
	"github.com/ardnew/quark/stdlib"
)

// AST prints the document tree of a source document.
type AST struct {
	Format     string   `default:"tree" enum:"tree,yaml,json" help:"Output format."                   short:"F"`
	Indent     int      `default:"2"                          help:"Indent width for YAML and JSON." short:"i"`
	Expand     bool     `                                     help:"Expand function calls before printing." short:"x"`
	WorkingDir string   `                                     help:"Directory relative paths resolve against (default: source directory)." type:"existingdir"`
	SearchPath []string `                                     help:"Additional directories searched by .include."`

	Source Source `arg:"" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := a.Source.Read(ctx)
	if err != nil {
		return err
	}

	wd := a.WorkingDir
	if wd == "" {
		wd = a.Source.Dir()
	}

	p := pipeline.New(
		pipeline.WithLogger(log.Default()),
		pipeline.WithWorkingDirectory(wd),
		pipeline.WithSearchPath(a.SearchPath...),
		pipeline.WithLibraries(stdlib.All()...),
	)

	root, err := p.Tree(ctx, src, a.Expand)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "ast"),
				slog.Bool("expand", a.Expand),
			)
	}

	w := outputFrom(ctx)

	switch a.Format {
	case "json":
		if err := lang.FormatJSON(ctx, w, lang.ToNative(root), a.Indent); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

	case "yaml":
		if err := lang.FormatYAML(ctx, w, lang.ToNative(root), a.Indent); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	default:
		return lang.PrintTree(w, root)
	}

	return nil
}
