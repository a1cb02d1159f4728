package lang

import (
	"strings"
	"unicode/utf8"
)

// CallArgument is one raw argument of a function call as written in source:
// `{value}` or `name:{value}`. The trailing indented body of a block call
// is represented with Body set.
type CallArgument struct {
	Name  string `json:"name,omitempty"  yaml:"name,omitempty"`
	Value string `json:"value"           yaml:"value"`
	Body  bool   `json:"body,omitempty"  yaml:"body,omitempty"`
}

// callSyntax is the structure of a scanned function call.
type callSyntax struct {
	name string
	args []CallArgument
	body *string
	end  int
	// standalone is set when nothing but whitespace follows the call's
	// arguments on its line.
	standalone bool
}

// scanCall scans `.name {arg} name:{arg} ...` starting at src[pos].
// With allowBody, a standalone call also takes the indented lines that
// follow it as its body.
func scanCall(src string, pos int, allowBody bool) (callSyntax, bool) {
	var call callSyntax

	if pos >= len(src) || src[pos] != '.' {
		return call, false
	}

	i := pos + 1
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !isWordRune(r) {
			break
		}

		i += size
	}

	if i == pos+1 {
		return call, false
	}

	call.name = src[pos+1 : i]

	for {
		j := i
		for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
			j++
		}

		arg, next, ok := scanArgument(src, j)
		if !ok {
			break
		}

		call.args = append(call.args, arg)
		i = next
	}

	call.end = i

	rest, lineEnd := line(src, i)
	if !isBlank(rest) {
		return call, true
	}

	call.standalone = true

	if allowBody {
		if body, end, ok := scanBody(src, lineEnd); ok {
			call.body = &body
			call.end = end
		}
	}

	return call, true
}

// scanArgument scans `{...}` or `name:{...}` at src[i].
func scanArgument(src string, i int) (CallArgument, int, bool) {
	var arg CallArgument

	j := i
	for j < len(src) {
		r, size := utf8.DecodeRuneInString(src[j:])
		if !isWordRune(r) && r != '-' {
			break
		}

		j += size
	}

	if j > i {
		if !strings.HasPrefix(src[j:], ":{") {
			return arg, i, false
		}

		arg.Name = src[i:j]
		j++
	}

	value, end, ok := scanBraces(src, j)
	if !ok {
		return arg, i, false
	}

	arg.Value = value

	return arg, end, true
}

// scanBraces scans a balanced brace group at src[i] and returns its
// content. A backslash escapes a brace, which is then not counted.
func scanBraces(src string, i int) (string, int, bool) {
	if i >= len(src) || src[i] != '{' {
		return "", i, false
	}

	var b strings.Builder

	depth := 0

	for j := i; j < len(src); j++ {
		c := src[j]

		switch {
		case c == '\\' && j+1 < len(src) && (src[j+1] == '{' || src[j+1] == '}'):
			j++
			b.WriteByte(src[j])

			continue

		case c == '{':
			depth++
			if depth == 1 {
				continue
			}

		case c == '}':
			depth--
			if depth == 0 {
				return b.String(), j + 1, true
			}
		}

		b.WriteByte(c)
	}

	return "", i, false
}

// scanBody scans the indented lines starting at src[i]. Blank lines belong
// to the body only when an indented line follows them. The body is
// dedented by the smallest indentation of its non-blank lines.
func scanBody(src string, i int) (string, int, bool) {
	var (
		lines  []string
		end    = i
		indent = -1
	)

	for j := i; j < len(src); {
		text, next := line(src, j)

		switch {
		case isBlank(text):
			lines = append(lines, "")

		case strings.HasPrefix(text, "  ") || strings.HasPrefix(text, "\t"):
			lines = append(lines, text)
			end = next

			if w := indentWidth(text); indent < 0 || w < indent {
				indent = w
			}

		default:
			next = len(src)
		}

		j = next
	}

	if indent < 0 {
		return "", i, false
	}

	// Drop trailing blank lines, which were only provisionally taken.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for k, text := range lines {
		if len(text) >= indent {
			lines[k] = text[indent:]
		}
	}

	return strings.Join(lines, "\n"), end, true
}
