// Package markdown renders expanded document trees back to plain
// Markdown. Function calls are replaced by their output, references are
// resolved and nodes without a Markdown form are reduced to their content.
package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/quark/lang"
)

// Renderer renders expanded trees as Markdown.
type Renderer struct{}

func New() Renderer { return Renderer{} }

func (Renderer) Render(c *lang.Context, root *lang.Root) (string, error) {
	out := blocks(c, root.Children)
	if out == "" {
		return "", nil
	}

	return out + "\n", nil
}

// Wrap returns body unchanged. Markdown has no document envelope.
func (Renderer) Wrap(_ *lang.Context, body string) (string, error) { return body, nil }

// flatten replaces call nodes with their children.
func flatten(nodes []lang.Node) []lang.Node {
	out := make([]lang.Node, 0, len(nodes))

	for _, n := range nodes {
		if call, ok := n.(*lang.FunctionCallNode); ok {
			out = append(out, flatten(call.Children)...)

			continue
		}

		out = append(out, n)
	}

	return out
}

func isInline(n lang.Node) bool {
	switch n.(type) {
	case *lang.PlainText, *lang.LineBreak, *lang.Comment, *lang.CodeSpan,
		*lang.InlineMath, *lang.Emphasis, *lang.Strong, *lang.StrongEmphasis,
		*lang.Link, *lang.Image, *lang.ReferenceLink, *lang.ReferenceImage,
		*lang.SlidesFragment:
		return true
	}

	return false
}

// blocks renders nodes as blocks separated by blank lines. Runs of inline
// nodes form a paragraph.
func blocks(c *lang.Context, nodes []lang.Node) string {
	var (
		parts []string
		run   []lang.Node
	)

	flush := func() {
		if s := strings.TrimSpace(inline(c, run)); s != "" {
			parts = append(parts, s)
		}

		run = nil
	}

	for _, n := range flatten(nodes) {
		if isInline(n) {
			run = append(run, n)

			continue
		}

		flush()

		if s := block(c, n); s != "" {
			parts = append(parts, s)
		}
	}

	flush()

	return strings.Join(parts, "\n\n")
}

func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		p := rest
		if i == 0 {
			p = first
		}

		if line == "" && i > 0 {
			lines[i] = strings.TrimRight(p, " ")

			continue
		}

		lines[i] = p + line
	}

	return strings.Join(lines, "\n")
}

//nolint:cyclop
func block(c *lang.Context, n lang.Node) string {
	switch n := n.(type) {
	case *lang.Newline, *lang.BlockText, *lang.LinkDefinition, *lang.SlidesConfiguration:
		return ""

	case *lang.Root:
		return blocks(c, n.Children)

	case *lang.HorizontalRule:
		return "---"

	case *lang.Heading:
		return strings.Repeat("#", min(max(n.Depth, 1), 6)) + " " + inline(c, n.Children)

	case *lang.Paragraph:
		return inline(c, n.Children)

	case *lang.BlockQuote:
		return prefixLines(blocks(c, n.Children), "> ", "> ")

	case *lang.UnorderedList:
		items := make([]string, 0, len(n.Children))
		for _, item := range flatten(n.Children) {
			items = append(items, prefixLines(block(c, item), "- ", "  "))
		}

		return strings.Join(items, "\n")

	case *lang.ListItem:
		return blocks(c, n.Children)

	case *lang.Code:
		fence := "```"
		for strings.Contains(n.Content, fence) {
			fence += "`"
		}

		return fence + n.Language + "\n" + n.Content + "\n" + fence

	case *lang.Math:
		return "$$ " + n.Expression + " $$"

	case *lang.HTML:
		return n.Content

	case *lang.ErrorBox:
		return "> **Error: " + escape(n.Title) + "**  \n> " + escape(n.Message)

	case *lang.Box:
		body := blocks(c, n.Children)
		if len(n.Title) > 0 {
			body = "**" + inline(c, n.Title) + "**\n\n" + body
		}

		return body

	case *lang.Aligned:
		return blocks(c, n.Children)

	default:
		panic(fmt.Sprintf("markdown: unhandled node type %T", n))
	}
}

func inline(c *lang.Context, nodes []lang.Node) string {
	var b strings.Builder

	for _, n := range flatten(nodes) {
		inlineNode(c, &b, n)
	}

	return b.String()
}

func inlineNode(c *lang.Context, b *strings.Builder, n lang.Node) {
	switch n := n.(type) {
	case *lang.PlainText:
		b.WriteString(escape(n.Text))
	case *lang.LineBreak:
		b.WriteString("\\\n")
	case *lang.Comment:
		b.WriteString(n.Text)
	case *lang.CodeSpan:
		tick := "`"
		for strings.Contains(n.Text, tick) {
			tick += "`"
		}

		b.WriteString(tick + n.Text + tick)
	case *lang.InlineMath:
		b.WriteString("$" + n.Expression + "$")
	case *lang.Emphasis:
		b.WriteString("*" + inline(c, n.Children) + "*")
	case *lang.Strong:
		b.WriteString("**" + inline(c, n.Children) + "**")
	case *lang.StrongEmphasis:
		b.WriteString("***" + inline(c, n.Children) + "***")
	case *lang.SlidesFragment:
		b.WriteString(inline(c, n.Children))
	case *lang.Link:
		b.WriteString("[" + inline(c, n.Label) + "](" + n.URL + title(n.Title) + ")")
	case *lang.Image:
		b.WriteString("![" + inline(c, n.Link.Label) + "](" + n.Link.URL + title(n.Link.Title) + ")")
	case *lang.ReferenceLink:
		resolved := c.ResolveOrFallback(n)
		if text, ok := resolved.(*lang.PlainText); ok {
			// Unresolved references keep their source text verbatim.
			b.WriteString(text.Text)

			return
		}

		inlineNode(c, b, resolved)
	case *lang.ReferenceImage:
		resolved := c.ResolveImageOrFallback(n)
		if text, ok := resolved.(*lang.PlainText); ok {
			b.WriteString(text.Text)

			return
		}

		inlineNode(c, b, resolved)
	default:
		// Block output of an inline call.
		b.WriteString(block(c, n))
	}
}

func title(t string) string {
	if t == "" {
		return ""
	}

	return " " + strconv.Quote(t)
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"$", `\$`,
)

func escape(s string) string { return escaper.Replace(s) }
