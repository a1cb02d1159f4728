package lang

// Node is an element of a document tree. The set of node types is closed:
// the unexported marker method keeps other packages from adding variants,
// and [ChildrenOf] switches over every one of them.
type Node interface{ node() }

// Root is the top of a document tree.
type Root struct{ Children []Node }

// Block nodes.
type (
	Newline        struct{}
	HorizontalRule struct{}
	BlockText      struct{}

	Code struct {
		Language string
		Content  string
	}

	Math struct{ Expression string }

	Heading struct {
		Depth    int
		Children []Node
	}

	LinkDefinition struct {
		Label string
		URL   string
		Title string
	}

	UnorderedList struct{ Children []Node }
	ListItem      struct{ Children []Node }
	HTML          struct{ Content string }
	Paragraph     struct{ Children []Node }
	BlockQuote    struct{ Children []Node }
)

// FunctionCallNode is a call site in the document. Expansion replaces its
// Children with the rendering of the call's result.
type FunctionCallNode struct {
	Name      string
	Arguments []CallArgument
	Block     bool
	Pos       Position
	Children  []Node

	expanded bool
}

// Body returns the call's block body, if it has one.
func (n *FunctionCallNode) Body() (string, bool) {
	for _, arg := range n.Arguments {
		if arg.Body {
			return arg.Value, true
		}
	}

	return "", false
}

// Expanded reports whether the call has been expanded.
func (n *FunctionCallNode) Expanded() bool { return n.expanded }

// Nodes produced by function calls.
type (
	// ErrorBox replaces the output of a call that failed.
	ErrorBox struct {
		Title   string
		Message string
	}

	// SlidesConfiguration carries presentation settings. Nil fields keep
	// the renderer's defaults.
	SlidesConfiguration struct {
		Center     *bool
		Controls   *bool
		Transition *Transition
	}

	// SlidesFragment is content revealed one step at a time.
	SlidesFragment struct{ Children []Node }

	// Box is a titled, optionally styled container.
	Box struct {
		Title      []Node
		Background *Color
		Padding    *Sizes
		Width      *Size
		Children   []Node
	}

	// Aligned aligns its children horizontally.
	Aligned struct {
		Alignment string
		Children  []Node
	}
)

// Transition is a slide transition style and speed.
type Transition struct {
	Style string
	Speed string
}

// Inline nodes.
type (
	PlainText      struct{ Text string }
	LineBreak      struct{}
	Comment        struct{ Text string }
	CodeSpan       struct{ Text string }
	InlineMath     struct{ Expression string }
	Emphasis       struct{ Children []Node }
	Strong         struct{ Children []Node }
	StrongEmphasis struct{ Children []Node }

	Link struct {
		Label []Node
		URL   string
		Title string
	}

	Image struct{ Link *Link }
)

// ReferenceLink is a link whose destination is looked up by key in the
// context's link definitions.
type ReferenceLink struct {
	Label     []Node
	Reference string
	// Raw is the link's source text, shown when the reference is undefined.
	Raw string
}

// Fallback returns the node displayed when the reference is undefined.
func (n *ReferenceLink) Fallback() Node { return &PlainText{Text: n.Raw} }

// ReferenceImage is an image whose destination is looked up by key.
type ReferenceImage struct{ Link *ReferenceLink }

// Fallback returns the node displayed when the reference is undefined.
func (n *ReferenceImage) Fallback() Node { return &PlainText{Text: "!" + n.Link.Raw} }

func (*Root) node()                {}
func (*Newline) node()             {}
func (*HorizontalRule) node()      {}
func (*BlockText) node()           {}
func (*Code) node()                {}
func (*Math) node()                {}
func (*Heading) node()             {}
func (*LinkDefinition) node()      {}
func (*UnorderedList) node()       {}
func (*ListItem) node()            {}
func (*HTML) node()                {}
func (*Paragraph) node()           {}
func (*BlockQuote) node()          {}
func (*FunctionCallNode) node()    {}
func (*ErrorBox) node()            {}
func (*SlidesConfiguration) node() {}
func (*SlidesFragment) node()      {}
func (*Box) node()                 {}
func (*Aligned) node()             {}
func (*PlainText) node()           {}
func (*LineBreak) node()           {}
func (*Comment) node()             {}
func (*CodeSpan) node()            {}
func (*InlineMath) node()          {}
func (*Emphasis) node()            {}
func (*Strong) node()              {}
func (*StrongEmphasis) node()      {}
func (*Link) node()                {}
func (*Image) node()               {}
func (*ReferenceLink) node()       {}
func (*ReferenceImage) node()      {}
