package html

import (
	"fmt"
	"html/template"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/ardnew/quark/lang"
)

var ErrHighlight = lang.NewError("code highlighting failed")

// Option configures a [Renderer].
type Option func(config) config

type config struct {
	style string
}

// WithStyle selects the chroma style used for highlighted code. Unknown
// names fall back to chroma's default style.
func WithStyle(name string) Option {
	return func(c config) config {
		c.style = name

		return c
	}
}

// Renderer renders expanded document trees as HTML5.
//
// Render records document metadata (title, slides settings, whether any
// code was highlighted) that the following call to Wrap consumes.
type Renderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter

	mu  sync.Mutex
	doc document
}

// document is the metadata gathered while rendering.
type document struct {
	title       string
	slides      *lang.SlidesConfiguration
	highlighted bool
}

func New(opts ...Option) *Renderer {
	cfg := config{style: "github"}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	style := styles.Get(cfg.style)
	if style == nil {
		style = styles.Fallback
	}

	return &Renderer{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// pretty reports whether the pipeline attached to c asks for indented
// output.
func pretty(c *lang.Context) bool {
	att, ok := c.Attached()
	if !ok {
		return false
	}

	p, ok := att.(interface{ Pretty() bool })

	return ok && p.Pretty()
}

func (r *Renderer) Render(c *lang.Context, root *lang.Root) (string, error) {
	w := &writer{
		ctx:    c,
		r:      r,
		pretty: pretty(c),
	}

	for _, n := range root.Children {
		w.node(n)
	}

	if w.err != nil {
		return "", w.err
	}

	r.mu.Lock()
	r.doc = w.doc
	r.mu.Unlock()

	c.Logger().Trace("rendered html",
		slog.Int("bytes", w.b.Len()),
		slog.String("title", w.doc.title),
	)

	return w.b.String(), nil
}

// writer holds the state of a single rendering.
type writer struct {
	ctx    *lang.Context
	r      *Renderer
	pretty bool
	depth  int
	doc    document
	b      strings.Builder
	err    error
}

func (w *writer) write(s ...string) {
	for _, p := range s {
		w.b.WriteString(p)
	}
}

func (w *writer) indent() {
	if w.pretty {
		w.write(strings.Repeat("  ", w.depth))
	}
}

func (w *writer) newline() {
	if w.pretty {
		w.write("\n")
	}
}

// block writes a block element. Containers hold block children and get
// their own lines; others hold inline content.
func (w *writer) block(tag, attrs string, container bool, children []lang.Node) {
	w.indent()
	w.write("<", tag, attrs, ">")

	if container {
		w.newline()
		w.depth++
		w.nodes(children)
		w.depth--
		w.indent()
	} else {
		w.nodes(children)
	}

	w.write("</", tag, ">")
	w.newline()
}

func (w *writer) inline(tag, attrs string, children []lang.Node) {
	w.write("<", tag, attrs, ">")
	w.nodes(children)
	w.write("</", tag, ">")
}

func (w *writer) nodes(nodes []lang.Node) {
	for _, n := range nodes {
		w.node(n)
	}
}

// blocks writes nodes at block level. Runs of inline nodes, such as the
// text returned by a block function call, are wrapped in a paragraph.
func (w *writer) blocks(nodes []lang.Node) {
	var run []lang.Node

	flush := func() {
		if strings.TrimSpace(lang.TextOf(run...)) != "" || hasMarkup(run) {
			w.block("p", "", false, run)
		}

		run = nil
	}

	for _, n := range nodes {
		if isInline(n) {
			run = append(run, n)

			continue
		}

		flush()
		w.node(n)
	}

	flush()
}

func isInline(n lang.Node) bool {
	switch n := n.(type) {
	case *lang.PlainText, *lang.LineBreak, *lang.CodeSpan, *lang.InlineMath,
		*lang.Emphasis, *lang.Strong, *lang.StrongEmphasis, *lang.Link,
		*lang.Image, *lang.ReferenceLink, *lang.ReferenceImage, *lang.SlidesFragment:
		return true
	case *lang.FunctionCallNode:
		return !n.Block
	}

	return false
}

// hasMarkup reports whether a run holds anything besides text.
func hasMarkup(run []lang.Node) bool {
	for _, n := range run {
		if _, ok := n.(*lang.PlainText); !ok {
			return true
		}
	}

	return false
}

func attr(name, value string) string {
	if value == "" {
		return ""
	}

	return " " + name + `="` + template.HTMLEscapeString(value) + `"`
}

func esc(s string) string { return template.HTMLEscapeString(s) }

//nolint:cyclop,funlen
func (w *writer) node(n lang.Node) {
	if w.err != nil {
		return
	}

	switch n := n.(type) {
	case *lang.Root:
		w.nodes(n.Children)

	case *lang.Newline, *lang.BlockText, *lang.LinkDefinition, *lang.Comment:

	case *lang.HorizontalRule:
		w.indent()
		w.write("<hr>")
		w.newline()

	case *lang.Heading:
		if w.doc.title == "" {
			w.doc.title = lang.TextOf(n.Children...)
		}

		w.block("h"+strconv.Itoa(min(max(n.Depth, 1), 6)), "", false, n.Children)

	case *lang.Paragraph:
		w.block("p", "", false, n.Children)

	case *lang.BlockQuote:
		w.block("blockquote", "", true, n.Children)

	case *lang.UnorderedList:
		w.block("ul", "", true, n.Children)

	case *lang.ListItem:
		w.block("li", "", true, n.Children)

	case *lang.Code:
		w.indent()
		w.code(n)
		w.newline()

	case *lang.Math:
		w.indent()
		w.write(`<div class="math">$$`, esc(n.Expression), `$$</div>`)
		w.newline()

	case *lang.HTML:
		w.indent()
		w.write(n.Content)
		w.newline()

	case *lang.FunctionCallNode:
		if n.Block {
			w.blocks(n.Children)
		} else {
			w.nodes(n.Children)
		}

	case *lang.ErrorBox:
		w.indent()
		w.write(`<div class="error"><strong>Error: `, esc(n.Title), `</strong> `, esc(n.Message), `</div>`)
		w.newline()

	case *lang.SlidesConfiguration:
		w.doc.slides = n

	case *lang.SlidesFragment:
		w.inline("span", attr("class", "fragment"), n.Children)

	case *lang.Box:
		w.box(n)

	case *lang.Aligned:
		w.block("div", attr("class", "align align-"+n.Alignment)+
			attr("style", "text-align: "+n.Alignment+";"), true, n.Children)

	case *lang.PlainText:
		w.write(esc(n.Text))

	case *lang.LineBreak:
		w.write("<br>")

	case *lang.CodeSpan:
		w.write("<code>", esc(n.Text), "</code>")

	case *lang.InlineMath:
		w.write(`<span class="math">\(`, esc(n.Expression), `\)</span>`)

	case *lang.Emphasis:
		w.inline("em", "", n.Children)

	case *lang.Strong:
		w.inline("strong", "", n.Children)

	case *lang.StrongEmphasis:
		w.write("<em>")
		w.inline("strong", "", n.Children)
		w.write("</em>")

	case *lang.Link:
		w.inline("a", attr("href", n.URL)+attr("title", n.Title), n.Label)

	case *lang.Image:
		w.write("<img", attr("src", n.Link.URL),
			` alt="`, esc(lang.TextOf(n.Link.Label...)), `"`,
			attr("title", n.Link.Title), ">")

	case *lang.ReferenceLink:
		w.node(w.ctx.ResolveOrFallback(n))

	case *lang.ReferenceImage:
		w.node(w.ctx.ResolveImageOrFallback(n))

	default:
		panic(fmt.Sprintf("html: unhandled node type %T", n))
	}
}

func (w *writer) box(n *lang.Box) {
	var style []string

	if n.Background != nil {
		style = append(style, "background-color: "+n.Background.String()+";")
	}

	if n.Padding != nil {
		style = append(style, "padding: "+n.Padding.String()+";")
	}

	if n.Width != nil {
		style = append(style, "width: "+n.Width.String()+";")
	}

	w.indent()
	w.write("<div", attr("class", "box"), attr("style", strings.Join(style, " ")), ">")
	w.newline()
	w.depth++

	if len(n.Title) > 0 {
		w.block("header", "", false, n.Title)
	}

	w.block("div", attr("class", "box-content"), true, n.Children)
	w.depth--
	w.indent()
	w.write("</div>")
	w.newline()
}

// code writes a code block, highlighted if chroma knows its language.
func (w *writer) code(n *lang.Code) {
	var lexer chroma.Lexer
	if n.Language != "" {
		lexer = lexers.Get(n.Language)
	}

	if lexer == nil {
		w.write("<pre><code", attr("class", langClass(n.Language)), ">", esc(n.Content), "</code></pre>")

		return
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, n.Content)
	if err == nil {
		err = w.r.formatter.Format(&w.b, w.r.style, it)
	}

	if err != nil {
		w.err = ErrHighlight.Wrap(err).With(slog.String("language", n.Language))

		return
	}

	w.doc.highlighted = true
}

func langClass(language string) string {
	if language == "" {
		return ""
	}

	return "language-" + language
}
