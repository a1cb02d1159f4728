package pipeline

import (
	"context"
	"log/slog"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
)

var (
	ErrNoRenderer = lang.NewError("no renderer configured")
	ErrCanceled   = lang.NewError("compilation canceled")
	ErrPending    = lang.NewError("function calls left unexpanded")
)

// Renderer converts an expanded document tree to output text.
type Renderer interface {
	// Render converts the tree.
	Render(c *lang.Context, root *lang.Root) (string, error)
	// Wrap embeds rendered output in a complete document.
	Wrap(c *lang.Context, body string) (string, error)
}

// Hooks are called after each stage of [Pipeline.Execute]. Nil hooks are
// skipped.
type Hooks struct {
	AfterLexing        func([]lang.Token)
	AfterParsing       func(*lang.Root)
	AfterExpanding     func(*lang.Root)
	AfterRendering     func(string)
	AfterPostRendering func(string)
}

func call[T any](hook func(T), v T) {
	if hook != nil {
		hook(v)
	}
}

// Pipeline compiles source documents against a persistent root context.
// It is attached to its context, so nested Markdown in function arguments
// is parsed and expanded by the same pipeline.
type Pipeline struct {
	cfg config
	ctx *lang.Context
	log log.Logger
}

func New(opts ...Option) *Pipeline {
	cfg := makeConfig(opts...)

	p := &Pipeline{cfg: cfg, log: cfg.logger}
	p.ctx = lang.NewContext(
		lang.WithAttachment(p),
		lang.WithErrorHandler(cfg.handler),
		lang.WithLogger(cfg.logger),
		lang.WithWorkingDirectory(cfg.workDir),
		lang.WithSearchPath(cfg.searchPath...),
		lang.WithLibraries(cfg.libraries...),
	)

	return p
}

// Context returns the root context.
func (p *Pipeline) Context() *lang.Context { return p.ctx }

// Pretty reports whether output should be indented.
func (p *Pipeline) Pretty() bool { return p.cfg.pretty }

// Wrapped reports whether output is wrapped in a complete document.
func (p *Pipeline) Wrapped() bool { return p.cfg.wrap }

// SearchPath returns the deduplicated include search path.
func (p *Pipeline) SearchPath() []string { return p.ctx.SearchPath() }

// Parse converts tokens to a document tree, enqueueing its calls in c.
func (p *Pipeline) Parse(c *lang.Context, tokens []lang.Token) (*lang.Root, error) {
	nodes, err := lang.NewBlockParser(c).Parse(tokens)
	if err != nil {
		return nil, err
	}

	return &lang.Root{Children: nodes}, nil
}

// Expand expands the calls in the tree under root.
func (p *Pipeline) Expand(c *lang.Context, root *lang.Root) error {
	return lang.ExpandTree(c, root)
}

// Tokenize lexes source as block Markdown.
func (p *Pipeline) Tokenize(source string) ([]lang.Token, error) {
	return lang.NewBlockLexer(source).Tokenize()
}

// Tree lexes, parses and optionally expands source without rendering.
func (p *Pipeline) Tree(ctx context.Context, source string, expand bool) (*lang.Root, error) {
	tokens, err := p.Tokenize(source)
	if err != nil {
		return nil, err
	}

	root, err := p.Parse(p.ctx, tokens)
	if err != nil || !expand {
		return root, err
	}

	if err := checkpoint(ctx, "expanding"); err != nil {
		return nil, err
	}

	return root, lang.Expand(p.ctx)
}

// Execute compiles source: lexing, parsing, expansion, rendering and, if
// enabled, wrapping. The context is checked for cancellation between
// stages.
func (p *Pipeline) Execute(ctx context.Context, source string) (string, error) {
	if p.cfg.renderer == nil {
		return "", ErrNoRenderer
	}

	hooks := p.cfg.hooks

	p.log.TraceContext(ctx, "lexing", slog.Int("bytes", len(source)))

	tokens, err := p.Tokenize(source)
	if err != nil {
		return "", err
	}

	call(hooks.AfterLexing, tokens)

	if err := checkpoint(ctx, "parsing"); err != nil {
		return "", err
	}

	p.log.TraceContext(ctx, "parsing", slog.Int("tokens", len(tokens)))

	root, err := p.Parse(p.ctx, tokens)
	if err != nil {
		return "", err
	}

	call(hooks.AfterParsing, root)

	if err := checkpoint(ctx, "expanding"); err != nil {
		return "", err
	}

	p.log.TraceContext(ctx, "expanding", slog.Int("calls", len(p.ctx.Calls())))

	if err := lang.Expand(p.ctx); err != nil {
		return "", err
	}

	if n := len(p.ctx.Calls()); n > 0 {
		return "", ErrPending.With(slog.Int("calls", n))
	}

	call(hooks.AfterExpanding, root)

	if err := checkpoint(ctx, "rendering"); err != nil {
		return "", err
	}

	out, err := p.cfg.renderer.Render(p.ctx, root)
	if err != nil {
		return "", err
	}

	call(hooks.AfterRendering, out)

	if p.cfg.wrap {
		if err := checkpoint(ctx, "wrapping"); err != nil {
			return "", err
		}

		if out, err = p.cfg.renderer.Wrap(p.ctx, out); err != nil {
			return "", err
		}
	}

	call(hooks.AfterPostRendering, out)

	p.log.DebugContext(ctx, "compiled",
		slog.Int("bytes", len(out)),
		slog.Bool("math", p.ctx.HasMath()),
	)

	return out, nil
}

func checkpoint(ctx context.Context, stage string) error {
	if ctx.Err() == nil {
		return nil
	}

	return ErrCanceled.Wrap(context.Cause(ctx)).With(slog.String("stage", stage))
}
