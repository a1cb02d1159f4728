package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatJSON writes v as JSON. Nodes and tokens should first be converted
// with [NodesToNative] or [TokensToNative].
func FormatJSON(_ context.Context, w io.Writer, v any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes v as YAML, in flow style if indent is not positive.
func FormatYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// PrintTree writes an indented outline of each node tree.
func PrintTree(w io.Writer, nodes ...Node) error {
	for _, n := range nodes {
		if err := printNode(w, n, 0); err != nil {
			return err
		}
	}

	return nil
}

func printNode(w io.Writer, n Node, depth int) error {
	label := reflect.TypeOf(n).Elem().Name()

	switch n := n.(type) {
	case *PlainText:
		label += fmt.Sprintf(" %q", n.Text)
	case *CodeSpan:
		label += fmt.Sprintf(" %q", n.Text)
	case *Code:
		label += fmt.Sprintf(" lang=%q", n.Language)
	case *Heading:
		label += fmt.Sprintf(" depth=%d", n.Depth)
	case *FunctionCallNode:
		label += fmt.Sprintf(" .%s args=%d @%s", n.Name, len(n.Arguments), n.Pos)
	case *Link:
		label += fmt.Sprintf(" url=%q", n.URL)
	case *ReferenceLink:
		label += fmt.Sprintf(" ref=%q", n.Reference)
	case *Math:
		label += fmt.Sprintf(" %q", n.Expression)
	case *InlineMath:
		label += fmt.Sprintf(" %q", n.Expression)
	case *ErrorBox:
		label += fmt.Sprintf(" %s: %s", n.Title, n.Message)
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label); err != nil {
		return err
	}

	for _, child := range ChildrenOf(n) {
		if err := printNode(w, child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// PrintTokens writes one line per token: position, kind and text.
func PrintTokens(w io.Writer, tokens []Token) error {
	for _, t := range tokens {
		if _, err := fmt.Fprintf(w, "%-8s %-20s %q\n", t.Pos, t.Kind, t.Text); err != nil {
			return err
		}
	}

	return nil
}
