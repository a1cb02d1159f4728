package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/quark/lang"
)

// signatureHintStyle styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // function name without the leading dot
	argIndex int    // number of arguments completed before the cursor
	inCall   bool   // true if the cursor is within the call
}

// callFrame is an open call while scanning input.
type callFrame struct {
	name  string
	depth int // brace depth the call was opened at
	args  int
}

// isIdentRune reports whether r may appear in a function name.
func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// callStart reports whether a dot at byte offset i begins a call: it must
// start the input or follow whitespace or an opening brace.
func callStart(input string, i int) bool {
	if i == 0 {
		return true
	}

	r, _ := utf8.DecodeLastRuneInString(input[:i])

	return unicode.IsSpace(r) || r == '{'
}

// identAt returns the identifier beginning at byte offset i.
func identAt(input string, i int) string {
	end := i

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isIdentRune(r) {
			break
		}

		end += size
	}

	return input[i:end]
}

// detectFunctionCall finds the innermost call whose name or arguments
// contain the cursor, and how many of its arguments precede the cursor.
//
// A call stays open while it is followed only by whitespace and braced
// arguments. Any other text at the call's own brace depth ends it.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	var (
		stack []callFrame
		depth int
	)

	top := func() *callFrame {
		if len(stack) == 0 {
			return nil
		}

		return &stack[len(stack)-1]
	}

	for i := 0; i < cursor; {
		r, size := utf8.DecodeRuneInString(input[i:])

		switch {
		case r == '{':
			depth++

		case r == '}':
			depth--

			for f := top(); f != nil && f.depth > depth; f = top() {
				stack = stack[:len(stack)-1]
			}

			if f := top(); f != nil && f.depth == depth {
				f.args++
			}

		case r == '.' && callStart(input, i):
			if name := identAt(input, i+size); name != "" {
				// A new call ends any finished call at the same depth.
				for f := top(); f != nil && f.depth >= depth; f = top() {
					stack = stack[:len(stack)-1]
				}

				stack = append(stack, callFrame{name: name, depth: depth})
				i += size + len(name)

				continue
			}

			fallthrough

		case !unicode.IsSpace(r):
			for f := top(); f != nil && f.depth == depth; f = top() {
				stack = stack[:len(stack)-1]
			}
		}

		i += size
	}

	f := top()
	if f == nil {
		return functionCall{inCall: false}
	}

	return functionCall{name: f.name, argIndex: f.args, inCall: true}
}

// getSignature returns the display form of each parameter of the function
// named name, or ok=false if no such function is reachable from c.
func getSignature(c *lang.Context, name string) (params []string, ok bool) {
	if c == nil {
		return nil, false
	}

	fn, ok := c.FunctionByName(name)
	if !ok {
		return nil, false
	}

	for _, p := range fn.Parameters() {
		s := p.Name + ":" + p.Kind.String()
		if len(p.Candidates) > 0 {
			s = p.Name + ":" + strings.Join(p.Candidates, "|")
		}

		if p.Optional {
			s = "[" + s + "]"
		}

		params = append(params, s)
	}

	return params, true
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted. Past the last parameter nothing is highlighted.
func renderSignatureHint(name string, params []string, currentArgIdx int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render("." + name))

	for i, param := range params {
		b.WriteString(" ")

		if i == currentArgIdx {
			b.WriteString(currentParamStyle.Render("{" + param + "}"))
		} else {
			b.WriteString(signatureStyle.Render("{" + param + "}"))
		}
	}

	return b.String()
}
