package repl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
	"github.com/ardnew/quark/pipeline"
	"github.com/ardnew/quark/render/markdown"
	"github.com/ardnew/quark/stdlib"
)

// session compiles REPL entries against one persistent pipeline, so that
// functions, variables and link definitions from one entry are visible to
// the next.
type session struct {
	pipeline *pipeline.Pipeline
	preview  *glamour.TermRenderer
	logger   log.Logger
	entries  []string
}

// newSession creates a session rendering to Markdown. If preview is
// non-nil, results are styled with it before display.
func newSession(
	logger log.Logger,
	preview *glamour.TermRenderer,
	opts ...pipeline.Option,
) *session {
	base := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithRenderer(markdown.New()),
		pipeline.WithWrap(false),
		pipeline.WithLibraries(stdlib.All()...),
	}

	return &session{
		pipeline: pipeline.New(append(base, opts...)...),
		preview:  preview,
		logger:   logger,
	}
}

// newPreview returns a glamour renderer wrapping at width.
func newPreview(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

func (s *session) context() *lang.Context {
	if s == nil {
		return nil
	}

	return s.pipeline.Context()
}

// eval compiles input and returns the rendered Markdown. Entries that
// compile are recorded for the source command.
func (s *session) eval(ctx context.Context, input string) (string, error) {
	out, err := s.pipeline.Execute(ctx, input)
	if err != nil {
		// Calls left by a failed entry must not expand with the next one.
		s.context().DequeueAll()

		return "", err
	}

	s.entries = append(s.entries, input)

	s.logger.TraceContext(ctx, "repl entry compiled",
		slog.Int("entries", len(s.entries)),
		slog.Int("bytes", len(out)),
	)

	return out, nil
}

// display formats compiled Markdown for the terminal.
func (s *session) display(out string) string {
	out = strings.TrimRight(out, "\n")
	if s.preview == nil || out == "" {
		return out
	}

	styled, err := s.preview.Render(out)
	if err != nil {
		s.logger.Debug("preview failed", slog.Any("error", err))

		return out
	}

	return strings.Trim(styled, "\n")
}

// source returns every compiled entry, separated by blank lines.
func (s *session) source() string {
	return strings.Join(s.entries, "\n\n")
}

// signatures lists each reachable function's signature, sorted by name.
func (s *session) signatures() []string {
	c := s.context()
	names := functionNames(c)
	sigs := make([]string, 0, len(names))

	for _, name := range names {
		if fn, ok := c.FunctionByName(name); ok {
			sigs = append(sigs, lang.Signature(fn))
		}
	}

	return sigs
}
