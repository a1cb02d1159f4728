package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/quark/lang"
)

// ExitNoSourceFile is the exit status when a command requiring a source
// document was run without one (EX_NOINPUT).
const ExitNoSourceFile = 66

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source names a document: a file path, or "-" for stdin.
type Source string

// IsStdin reports whether s reads from stdin.
func (s Source) IsStdin() bool { return s == stdinSource }

// Dir returns the directory that relative paths in the document resolve
// against: the directory containing the file, or the process working
// directory for stdin.
func (s Source) Dir() string {
	if s == "" || s.IsStdin() {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}

		return "."
	}

	abs, err := filepath.Abs(string(s))
	if err != nil {
		return filepath.Dir(string(s))
	}

	return filepath.Dir(abs)
}

// Read returns the content of the document.
func (s Source) Read(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrNoSourceFile
	}

	var r io.Reader = os.Stdin

	if !s.IsStdin() {
		file, err := os.Open(string(s))
		if err != nil {
			return "", ErrReadSource.
				With(slog.String("file", string(s))).
				Wrap(err)
		}
		defer file.Close()

		r = file
	}

	text, err := lang.ReadSource(ctx, r)
	if err != nil {
		return "", ErrReadSource.
			With(slog.String("file", string(s))).
			Wrap(err)
	}

	return text, nil
}

// writeOutput writes text to the file at path, or to the context's output
// if path is empty or "-".
func writeOutput(ctx context.Context, path, text string) error {
	if path == "" || path == stdinSource {
		_, err := io.WriteString(outputFrom(ctx), text)

		return err
	}

	//nolint:gosec
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return ErrWriteOutput.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return nil
}
