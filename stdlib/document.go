package stdlib

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/pkg"
)

// Document returns functions that combine and constrain documents.
func Document() *lang.Library {
	return lang.NewLibrary("document",
		&include{active: map[string]bool{}},
		lang.NewFunction("require", require, lang.Param("constraint", lang.KindString)),
	)
}

// include inserts the content of another document. The path is resolved
// against the working directory, then each search path directory.
type include struct {
	active map[string]bool
}

func (*include) Name() string { return "include" }

func (*include) Parameters() []lang.Parameter {
	return []lang.Parameter{lang.Param("path", lang.KindString)}
}

func (f *include) Invoke(c *lang.Context, args lang.Arguments) (lang.Value, error) {
	name := strings.TrimSpace(string(arg[lang.StringValue](args, "path")))

	path, err := locate(c, name)
	if err != nil {
		return nil, err
	}

	if f.active[path] {
		return nil, ErrIncludeCycle.With(slog.String("path", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrFileNotFound.Wrap(err).With(slog.String("path", path))
	}
	defer file.Close()

	source, err := lang.ReadSource(context.Background(), file)
	if err != nil {
		return nil, err
	}

	f.active[path] = true
	defer delete(f.active, path)

	c.Logger().Debug("include", slog.String("path", path))

	return c.Values().BlockMarkdown(source)
}

// locate returns the first existing file named name, trying an absolute
// name as is.
func locate(c *lang.Context, name string) (string, error) {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}

		return "", ErrFileNotFound.With(slog.String("path", name))
	}

	dirs := append([]string{c.WorkingDirectory()}, c.SearchPath()...)
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if !isFile(path) {
			continue
		}

		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		return path, nil
	}

	return "", ErrFileNotFound.With(
		slog.String("path", name),
		slog.Any("search", dirs),
	)
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// require fails unless the running version satisfies a semantic version
// constraint.
func require(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
	raw := string(arg[lang.StringValue](args, "constraint"))

	constraint, err := semver.NewConstraint(raw)
	if err != nil {
		return nil, ErrInvalidConstraint.Wrap(err).With(slog.String("constraint", raw))
	}

	if ok, errs := constraint.Validate(pkg.SemVer()); !ok {
		return nil, ErrVersionConstraint.Wrap(errors.Join(errs...)).With(
			slog.String("constraint", raw),
			slog.String("version", pkg.Version()),
		)
	}

	return void()
}
