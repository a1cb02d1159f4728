package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/quark/lang"
)

// Tokens prints the block tokens of a source document.
type Tokens struct {
	Format string `default:"text" enum:"text,yaml,json" help:"Output format."                   short:"F"`
	Indent int    `default:"2"                          help:"Indent width for YAML and JSON." short:"i"`
	Color  *bool  `                                     help:"Colorize text output (default: when stdout is a terminal)." negatable:""`

	Source Source `arg:"" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := t.Source.Read(ctx)
	if err != nil {
		return err
	}

	tokens, err := lang.NewBlockLexer(src).Tokenize()
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "tokens"))
	}

	w := outputFrom(ctx)

	switch t.Format {
	case "json":
		err = lang.FormatJSON(ctx, w, lang.TokensToNative(tokens), t.Indent)
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

	case "yaml":
		err = lang.FormatYAML(ctx, w, lang.TokensToNative(tokens), t.Indent)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	default:
		if !colorize(w, t.Color) {
			return lang.PrintTokens(w, tokens)
		}

		return printTokens(w, tokens)
	}

	return nil
}

// colorize reports whether text written to w should be colorized. An
// explicit setting wins over terminal detection.
func colorize(w io.Writer, setting *bool) bool {
	if setting != nil {
		return *setting
	}

	f, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

var (
	posColor  = color.New(color.FgHiBlack)
	kindColor = color.New(color.FgCyan, color.Bold)
	textColor = color.New(color.FgGreen)
)

// printTokens writes the same layout as [lang.PrintTokens] in color.
func printTokens(w io.Writer, tokens []lang.Token) error {
	var buf bytes.Buffer

	for _, c := range []*color.Color{posColor, kindColor, textColor} {
		c.EnableColor()
	}

	for _, tok := range tokens {
		fmt.Fprintf(&buf, "%s %s %s\n",
			posColor.Sprintf("%-8s", tok.Pos),
			kindColor.Sprintf("%-20s", tok.Kind),
			textColor.Sprintf("%q", tok.Text),
		)
	}

	_, err := buf.WriteTo(w)

	return err
}
