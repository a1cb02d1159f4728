package lang

import (
	"fmt"
	"strings"
)

// ChildrenOf returns the nodes directly owned by n. A link's label and a
// box's title count as children.
func ChildrenOf(n Node) []Node {
	switch n := n.(type) {
	case *Root:
		return n.Children
	case *Heading:
		return n.Children
	case *UnorderedList:
		return n.Children
	case *ListItem:
		return n.Children
	case *Paragraph:
		return n.Children
	case *BlockQuote:
		return n.Children
	case *FunctionCallNode:
		return n.Children
	case *SlidesFragment:
		return n.Children
	case *Box:
		return append(append([]Node(nil), n.Title...), n.Children...)
	case *Aligned:
		return n.Children
	case *Emphasis:
		return n.Children
	case *Strong:
		return n.Children
	case *StrongEmphasis:
		return n.Children
	case *Link:
		return n.Label
	case *Image:
		return []Node{n.Link}
	case *ReferenceLink:
		return n.Label
	case *ReferenceImage:
		return []Node{n.Link}
	case *Newline, *HorizontalRule, *BlockText, *Code, *Math, *LinkDefinition,
		*HTML, *ErrorBox, *SlidesConfiguration, *PlainText, *LineBreak,
		*Comment, *CodeSpan, *InlineMath:
		return nil
	default:
		panic(fmt.Sprintf("lang: unhandled node type %T", n))
	}
}

// Walk visits n and its descendants depth-first in document order.
// If fn returns false, the children of the visited node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	for _, child := range ChildrenOf(n) {
		Walk(child, fn)
	}
}

// TextOf concatenates the literal text under nodes.
func TextOf(nodes ...Node) string {
	var b strings.Builder

	for _, n := range nodes {
		Walk(n, func(n Node) bool {
			switch n := n.(type) {
			case *PlainText:
				b.WriteString(n.Text)
			case *CodeSpan:
				b.WriteString(n.Text)
			case *InlineMath:
				b.WriteString(n.Expression)
			case *LineBreak:
				b.WriteByte('\n')
			}

			return true
		})
	}

	return b.String()
}
