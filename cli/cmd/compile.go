package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
	"github.com/ardnew/quark/pipeline"
	"github.com/ardnew/quark/render/html"
	"github.com/ardnew/quark/render/markdown"
	"github.com/ardnew/quark/stdlib"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 50 * time.Millisecond

// Compile compiles a source document to HTML or Markdown.
type Compile struct {
	Source     Source   `arg:"" help:"Source input file or '-' for stdin." name:"source" optional:""`
	Output     string   `       help:"Output file (default stdout)."                                  short:"o" type:"path"`
	Target     string   `       help:"Output format."                              default:"html"     enum:"html,markdown"`
	Style      string   `       help:"Code highlighting style."                    default:"github"`
	WorkingDir string   `       help:"Directory relative paths resolve against (default: source directory)." type:"existingdir"`
	SearchPath []string `       help:"Additional directories searched by .include."`
	Pretty     bool     `       help:"Indent rendered output."`
	Wrap       bool     `       help:"Wrap output in a complete document."         default:"true"     negatable:""`
	Strict     bool     `       help:"Fail on the first function call error."`
	Watch      bool     `       help:"Recompile whenever the source file changes."                    short:"w"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	err = c.compile(ctx)
	if !c.Watch {
		return err
	}

	if err != nil {
		log.ErrorContext(ctx, "compile failed", slog.Any("error", err))
	}

	return c.watch(ctx)
}

// pipeline builds a pipeline for a single compilation. Each compilation
// gets a fresh pipeline, so definitions from a previous run do not leak
// into the next.
func (c *Compile) pipeline() *pipeline.Pipeline {
	wd := c.WorkingDir
	if wd == "" {
		wd = c.Source.Dir()
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(log.Default()),
		pipeline.WithPretty(c.Pretty),
		pipeline.WithWrap(c.Wrap),
		pipeline.WithWorkingDirectory(wd),
		pipeline.WithSearchPath(c.SearchPath...),
		pipeline.WithLibraries(stdlib.All()...),
		pipeline.WithRenderer(renderer(c.Target, c.Style)),
	}

	if c.Strict {
		opts = append(opts, pipeline.WithErrorHandler(lang.StrictErrorHandler{}))
	}

	return pipeline.New(opts...)
}

func renderer(target, style string) pipeline.Renderer {
	if target == "markdown" {
		return markdown.New()
	}

	return html.New(html.WithStyle(style))
}

func (c *Compile) compile(ctx context.Context) error {
	src, err := c.Source.Read(ctx)
	if err != nil {
		return err
	}

	start := time.Now()

	out, err := c.pipeline().Execute(ctx, src)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "compile"),
				slog.String("source", string(c.Source)),
			)
	}

	log.InfoContext(ctx, "compiled",
		slog.String("source", string(c.Source)),
		slog.String("target", c.Target),
		slog.Duration("elapsed", time.Since(start)),
	)

	return writeOutput(ctx, c.Output, out)
}

// watch recompiles the source each time it is written, until ctx is done.
// The parent directory is watched so that editors replacing the file on
// save are still seen.
func (c *Compile) watch(ctx context.Context) error {
	if c.Source.IsStdin() {
		return ErrWatch.With(slog.String("file", stdinSource))
	}

	path, err := filepath.Abs(string(c.Source))
	if err != nil {
		return ErrWatch.Wrap(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return ErrWatch.With(slog.String("file", path)).Wrap(err)
	}

	log.InfoContext(ctx, "watching", slog.String("file", path))

	var (
		timer   = time.NewTimer(watchDebounce)
		pending bool
	)

	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "watch stopped")

			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path ||
				!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.TraceContext(ctx, "source changed", slog.String("op", event.Op.String()))

			pending = true

			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))

		case <-timer.C:
			if !pending {
				continue
			}

			pending = false

			if err := c.compile(ctx); err != nil {
				log.ErrorContext(ctx, "compile failed", slog.Any("error", err))
			}
		}
	}
}
