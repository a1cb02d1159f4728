package lang

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ardnew/quark/log"
)

// Attachment is the pipeline a context parses and expands nested Markdown
// with.
type Attachment interface {
	Parse(c *Context, tokens []Token) (*Root, error)
	Expand(c *Context, root *Root) error
}

// Context holds the state shared by the stages of one compilation: the
// registered libraries, the queue of calls awaiting expansion, link
// definitions and the attached pipeline.
//
// A forked context owns copies of the library set and call queue. Link
// definitions, math usage, the error handler and the attachment stay
// shared with the parent.
type Context struct {
	libraries []*Library
	calls     []*FunctionCallNode
	shared    *shared
}

type shared struct {
	links      map[string]*LinkDefinition
	hasMath    bool
	handler    ErrorHandler
	attachment Attachment
	logger     log.Logger
	workDir    string
	searchPath []string
}

// ContextOption configures a [Context].
type ContextOption func(*Context)

// WithErrorHandler sets the handler that reports failed function calls.
func WithErrorHandler(h ErrorHandler) ContextOption {
	return func(c *Context) { c.shared.handler = h }
}

// WithLogger sets the logger shared by the context and its forks.
func WithLogger(l log.Logger) ContextOption {
	return func(c *Context) { c.shared.logger = l }
}

// WithAttachment sets the pipeline used to parse and expand nested Markdown.
func WithAttachment(a Attachment) ContextOption {
	return func(c *Context) { c.shared.attachment = a }
}

// WithWorkingDirectory sets the directory relative paths resolve against.
func WithWorkingDirectory(dir string) ContextOption {
	return func(c *Context) { c.shared.workDir = dir }
}

// WithSearchPath sets the directories searched for included documents.
func WithSearchPath(dirs ...string) ContextOption {
	return func(c *Context) { c.shared.searchPath = dirs }
}

// WithLibraries registers libs with the new context.
func WithLibraries(libs ...*Library) ContextOption {
	return func(c *Context) { c.Register(libs...) }
}

// NewContext returns a root context with the base error handler and no
// libraries, configured by opts.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		shared: &shared{
			links:   make(map[string]*LinkDefinition),
			handler: BaseErrorHandler{},
			logger:  log.Default(),
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Fork returns a child context.
func (c *Context) Fork() *Context {
	return &Context{
		libraries: slices.Clone(c.libraries),
		calls:     slices.Clone(c.calls),
		shared:    c.shared,
	}
}

// Register adds libraries. Later libraries shadow earlier ones.
func (c *Context) Register(libs ...*Library) {
	for _, lib := range libs {
		if lib != nil {
			c.libraries = append(c.libraries, lib)
		}
	}
}

func (c *Context) Libraries() []*Library { return slices.Clone(c.libraries) }

// FunctionByName finds a function in the registered libraries, most
// recently registered first.
func (c *Context) FunctionByName(name string) (Function, bool) {
	for _, lib := range slices.Backward(c.libraries) {
		if fn, ok := lib.Lookup(name); ok {
			return fn, true
		}
	}

	return nil, false
}

// Functions returns every reachable function, most recently registered
// first, omitting shadowed names.
func (c *Context) Functions() []Function {
	seen := make(map[string]bool)

	var fns []Function

	for _, lib := range slices.Backward(c.libraries) {
		for _, fn := range slices.Backward(lib.Functions) {
			if !seen[fn.Name()] {
				seen[fn.Name()] = true
				fns = append(fns, fn)
			}
		}
	}

	return fns
}

// Enqueue adds a call to the expansion queue.
func (c *Context) Enqueue(n *FunctionCallNode) { c.calls = append(c.calls, n) }

// Calls returns a snapshot of the expansion queue.
func (c *Context) Calls() []*FunctionCallNode { return slices.Clone(c.calls) }

// Dequeue removes n from the expansion queue and reports whether it was
// there.
func (c *Context) Dequeue(n *FunctionCallNode) bool {
	i := slices.Index(c.calls, n)
	if i < 0 {
		return false
	}

	c.calls = slices.Delete(c.calls, i, i+1)

	return true
}

// DequeueAll empties the expansion queue.
func (c *Context) DequeueAll() { c.calls = nil }

// linkKey normalizes a link label: case-folded, whitespace collapsed.
func linkKey(label string) string {
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}

// Define records a link definition. The first definition of a label wins.
func (c *Context) Define(def *LinkDefinition) {
	key := linkKey(def.Label)
	if _, ok := c.shared.links[key]; !ok {
		c.shared.links[key] = def
	}
}

// Resolve looks up the link definition for a reference label.
func (c *Context) Resolve(label string) (*LinkDefinition, bool) {
	def, ok := c.shared.links[linkKey(label)]

	return def, ok
}

// ResolveOrFallback returns the link a reference points to, or the
// reference's fallback if its label is undefined.
func (c *Context) ResolveOrFallback(ref *ReferenceLink) Node {
	def, ok := c.Resolve(ref.Reference)
	if !ok {
		return ref.Fallback()
	}

	return &Link{Label: ref.Label, URL: def.URL, Title: def.Title}
}

// ResolveImageOrFallback is [Context.ResolveOrFallback] for images.
func (c *Context) ResolveImageOrFallback(ref *ReferenceImage) Node {
	def, ok := c.Resolve(ref.Link.Reference)
	if !ok {
		return ref.Fallback()
	}

	return &Image{Link: &Link{Label: ref.Link.Label, URL: def.URL, Title: def.Title}}
}

func (c *Context) HasMath() bool { return c.shared.hasMath }
func (c *Context) SetHasMath()   { c.shared.hasMath = true }

func (c *Context) ErrorHandler() ErrorHandler { return c.shared.handler }

// Attach sets the pipeline used for nested Markdown.
func (c *Context) Attach(a Attachment) { c.shared.attachment = a }

func (c *Context) Attached() (Attachment, bool) {
	return c.shared.attachment, c.shared.attachment != nil
}

func (c *Context) Logger() log.Logger { return c.shared.logger }

func (c *Context) WorkingDirectory() string { return c.shared.workDir }

func (c *Context) SearchPath() []string { return slices.Clone(c.shared.searchPath) }

// Values returns a factory that evaluates against c.
func (c *Context) Values() ValueFactory { return ValueFactory{ctx: c} }
