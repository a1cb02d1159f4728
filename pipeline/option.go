package pipeline

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
)

// Option configures a [Pipeline].
type Option func(config) config

type config struct {
	pretty     bool
	wrap       bool
	workDir    string
	searchPath []string
	handler    lang.ErrorHandler
	libraries  []*lang.Library
	renderer   Renderer
	hooks      Hooks
	logger     log.Logger
}

func makeConfig(opts ...Option) config {
	cfg := config{
		wrap:    true,
		handler: lang.BaseErrorHandler{},
		logger:  log.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithPretty enables indented output.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

// WithWrap controls whether rendered output is wrapped in a complete
// document. It is enabled by default.
func WithWrap(enable bool) Option {
	return func(c config) config {
		c.wrap = enable

		return c
	}
}

func WithWorkingDirectory(dir string) Option {
	return func(c config) config {
		c.workDir = dir

		return c
	}
}

// WithSearchPath appends directories searched for included documents.
// Each entry may itself be a list joined by the OS path list separator.
func WithSearchPath(dirs ...string) Option {
	return func(c config) config {
		c.searchPath = mungSearchPath(append(slices.Clone(c.searchPath), dirs...)...)

		return c
	}
}

func WithErrorHandler(h lang.ErrorHandler) Option {
	return func(c config) config {
		if h != nil {
			c.handler = h
		}

		return c
	}
}

// WithLibraries registers function libraries on the root context.
func WithLibraries(libs ...*lang.Library) Option {
	return func(c config) config {
		c.libraries = append(slices.Clone(c.libraries), libs...)

		return c
	}
}

func WithRenderer(r Renderer) Option {
	return func(c config) config {
		c.renderer = r

		return c
	}
}

func WithHooks(h Hooks) Option {
	return func(c config) config {
		c.hooks = h

		return c
	}
}

func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// mungSearchPath flattens and deduplicates a search path, keeping the
// first occurrence of each directory.
func mungSearchPath(dirs ...string) []string {
	delim := string(os.PathListSeparator)

	munged := mung.Make(
		mung.WithSubjectItems(dirs...),
		mung.WithDelim(delim),
	).String()

	var out []string

	for _, dir := range strings.Split(munged, delim) {
		if dir = strings.TrimSpace(dir); dir == "" {
			continue
		}

		if dir = filepath.Clean(dir); !slices.Contains(out, dir) {
			out = append(out, dir)
		}
	}

	return out
}
