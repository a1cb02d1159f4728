package lang

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher reports the length of the match of some construct starting at
// src[pos:], and its capture groups (groups[0] is the whole match).
// A zero length means no match.
type Matcher func(src string, pos int) (n int, groups []string)

// Pattern pairs a token kind with the matcher that recognizes it.
type Pattern struct {
	Kind  TokenKind
	Match Matcher
}

// NewPattern returns a Pattern matching the regular expression expr
// anchored at the scan position.
func NewPattern(kind TokenKind, expr string) Pattern {
	re := regexp.MustCompile(`\A(?:` + expr + `)`)

	return Pattern{Kind: kind, Match: func(src string, pos int) (int, []string) {
		loc := re.FindStringSubmatchIndex(src[pos:])
		if loc == nil || loc[1] == 0 {
			return 0, nil
		}

		groups := make([]string, len(loc)/2)
		for i := range groups {
			if lo := loc[2*i]; lo >= 0 {
				groups[i] = src[pos+lo : pos+loc[2*i+1]]
			}
		}

		return loc[1], groups
	}}
}

// NewWalker returns a Pattern matching with a hand-written matcher.
func NewWalker(kind TokenKind, match Matcher) Pattern {
	return Pattern{Kind: kind, Match: match}
}

const eol = `(?:\n|\z)`

// Block patterns, in priority order.
var (
	patternNewline    = NewPattern(TokenNewline, `[ \t]*\n`)
	patternBlockCode  = NewPattern(TokenBlockCode, `(?:(?: {4}|\t)[^\n]*`+eol+`)+`)
	patternFencesCode = NewWalker(TokenFencesCode, matchFences)
	patternMath       = NewPattern(TokenMath, ` {0,3}\$\$((?s:.*?))\$\$[ \t]*`+eol)
	patternHR         = NewPattern(TokenHorizontalRule, ` {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})`+eol)
	patternHeading    = NewPattern(TokenHeading, ` {0,3}(#{1,6})(?:[ \t]+([^\n]*?))?[ \t]*`+eol)
	patternSetext     = NewPattern(TokenSetextHeading, ` {0,3}([^\s][^\n]*?)[ \t]*\n {0,3}(=+|-+)[ \t]*`+eol)
	patternLinkDef    = NewPattern(TokenLinkDefinition,
		` {0,3}\[([^\]\n]+)\]:[ \t]*<?([^\s>]+)>?(?:[ \t]+("[^"\n]*"|'[^'\n]*'|\([^)\n]*\)))?[ \t]*`+eol)
	patternBlockCall  = NewWalker(TokenFunctionCall, matchBlockCall)
	patternBlockQuote = NewPattern(TokenBlockQuote, `(?: {0,3}>[^\n]*`+eol+`)+`)
	patternUnordered  = NewPattern(TokenUnorderedList, `(?:`+listItem(`[-*+]`)+`)+`)
	patternOrdered    = NewPattern(TokenOrderedList, `(?:`+listItem(`\d{1,9}[.)]`)+`)+`)
	patternListItem   = NewPattern(TokenListItem, listItem(`[-*+]|\d{1,9}[.)]`))
	patternHTML       = NewPattern(TokenHTML, ` {0,3}<(?:!--|/?[A-Za-z][A-Za-z0-9-]*)[^\n]*(?:\n[^\n]*\S[^\n]*)*`+eol)
	patternParagraph  = NewWalker(TokenParagraph, matchParagraph)
	patternBlockText  = NewPattern(TokenBlockText, `[^\n]*`+eol)
)

// listItem builds the pattern of one list item with the given marker:
// the marker line, then any indented continuation lines, possibly
// separated by blank lines, then trailing blank lines.
func listItem(marker string) string {
	return ` {0,3}(?:` + marker + `)(?:[ \t][^\n]*)?` + eol +
		`(?:(?:[ \t]*\n)*(?: {2,}|\t)[^\n]*` + eol + `)*` +
		`(?:[ \t]*\n)*`
}

// Inline patterns, in priority order.
var (
	patternEscape     = NewPattern(TokenEscape, `\\([!-/:-@\[-`+"`"+`{-~])`)
	patternComment    = NewPattern(TokenComment, `<!--(?s:.*?)-->`)
	patternCodeSpan   = NewWalker(TokenCodeSpan, matchCodeSpan)
	patternInlineMath = NewPattern(TokenInlineMath, `\$(?:[ \t]([^$\n]+?)[ \t]|([^\s$](?:[^$\n]*?[^\s$])?))\$`)
	patternInlineCall = NewWalker(TokenInlineFunctionCall, matchInlineCall)
	patternImage      = NewPattern(TokenImage, `!`+linkBody)
	patternRefImage   = NewPattern(TokenReferenceImage, `!`+refBody)
	patternLink       = NewPattern(TokenLink, linkBody)
	patternRefLink    = NewPattern(TokenReferenceLink, refBody)
	patternAutolink   = NewPattern(TokenAutolink, `<((?:https?|ftp|mailto):[^\s<>]+)>`)
	patternStrongEm   = NewWalker(TokenStrongEmphasis, matchDelimited("***", "___"))
	patternStrong     = NewWalker(TokenStrong, matchDelimited("**", "__"))
	patternEmphasis   = NewWalker(TokenEmphasis, matchDelimited("*", "_"))
	patternLineBreak  = NewPattern(TokenLineBreak, `(?: {2,}|\\)\n`)
	patternWords      = NewPattern(TokenPlainText, `[^\\<!\[\]*_`+"`"+`$. \n]+`)
	patternAnyChar    = NewPattern(TokenPlainText, `(?s:.)`)
)

const (
	linkBody = `\[([^\]\n]*)\]\(\s*<?([^\s)>]*)>?(?:\s+("[^"]*"|'[^']*'))?\s*\)`
	refBody  = `\[([^\]\n]+)\](?:\[([^\]\n]*)\])?`
)

// Expression patterns.
var (
	patternExprText = NewPattern(TokenPlainText, `[^.]+`)
)

// patternSet is an ordered list of patterns. A non-empty name enables
// token caching for the set.
type patternSet struct {
	name     string
	patterns []Pattern
}

var (
	blockPatterns = patternSet{"block", []Pattern{
		patternNewline,
		patternBlockCode,
		patternFencesCode,
		patternMath,
		patternHR,
		patternHeading,
		patternSetext,
		patternLinkDef,
		patternBlockCall,
		patternBlockQuote,
		patternUnordered,
		patternOrdered,
		patternHTML,
		patternParagraph,
		patternBlockText,
	}}

	listItemPatterns = patternSet{"list-item", []Pattern{patternListItem}}

	inlinePatterns = patternSet{"inline", []Pattern{
		patternEscape,
		patternComment,
		patternCodeSpan,
		patternInlineMath,
		patternInlineCall,
		patternImage,
		patternRefImage,
		patternLink,
		patternRefLink,
		patternAutolink,
		patternStrongEm,
		patternStrong,
		patternEmphasis,
		patternLineBreak,
		patternWords,
		patternAnyChar,
	}}

	expressionPatterns = patternSet{"expression", []Pattern{
		patternInlineCall,
		patternExprText,
		patternAnyChar,
	}}

	blockExpressionPatterns = patternSet{"block-expression", []Pattern{
		NewWalker(TokenFunctionCall, matchExprCall),
		patternExprText,
		patternAnyChar,
	}}
)

// line returns the line of s starting at i, without its newline, and the
// index following the newline (or len(s)).
func line(s string, i int) (text string, next int) {
	j := strings.IndexByte(s[i:], '\n')
	if j < 0 {
		return s[i:], len(s)
	}

	return s[i : i+j], i + j + 1
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// indentWidth counts the leading space and tab characters of s.
func indentWidth(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

// matchFences matches a ``` or ~~~ fenced code block, closed by a fence of
// the same character at least as long, or by the end of input.
func matchFences(src string, pos int) (int, []string) {
	first, next := line(src, pos)

	trimmed := strings.TrimLeft(first, " ")
	if len(first)-len(trimmed) > 3 || len(trimmed) < 3 {
		return 0, nil
	}

	fc := trimmed[0]
	if fc != '`' && fc != '~' {
		return 0, nil
	}

	width := len(trimmed) - len(strings.TrimLeft(trimmed, string(fc)))
	if width < 3 {
		return 0, nil
	}

	info := trimmed[width:]
	if fc == '`' && strings.ContainsRune(info, '`') {
		return 0, nil
	}

	bodyStart := next
	for i := next; i < len(src); {
		text, after := line(src, i)
		closer := strings.TrimLeft(text, " ")

		if len(text)-len(closer) <= 3 {
			marks := len(closer) - len(strings.TrimLeft(closer, string(fc)))
			if marks >= width && isBlank(closer[marks:]) {
				return after - pos, []string{src[pos:after], strings.TrimSpace(info), src[bodyStart:i]}
			}
		}

		i = after
	}

	return len(src) - pos, []string{src[pos:], strings.TrimSpace(info), src[min(bodyStart, len(src)):]}
}

// interruptsParagraph reports whether a line begins a block that ends an
// open paragraph.
func interruptsParagraph(text string) bool {
	probe := text + "\n"
	for _, p := range []Pattern{
		patternFencesCode, patternMath, patternHR, patternHeading,
		patternBlockQuote, patternBlockCall,
	} {
		if n, _ := p.Match(probe, 0); n > 0 {
			return true
		}
	}

	t := strings.TrimLeft(text, " ")
	if len(text)-len(t) <= 3 && len(t) >= 2 && strings.ContainsRune("-*+", rune(t[0])) && (t[1] == ' ' || t[1] == '\t') {
		return true
	}

	return false
}

// matchParagraph consumes lines up to a blank line or a line that
// interrupts the paragraph. The trailing newline is consumed but excluded
// from the text group.
func matchParagraph(src string, pos int) (int, []string) {
	first, next := line(src, pos)
	if isBlank(first) {
		return 0, nil
	}

	end, textEnd := next, pos+len(first)

	for end < len(src) {
		text, after := line(src, end)
		if isBlank(text) || interruptsParagraph(text) {
			break
		}

		// A setext underline after a single line is matched by its own
		// pattern; under a longer paragraph it closes the paragraph.
		if u := strings.TrimSpace(text); u != "" && strings.Trim(u, "=") == "" {
			break
		}

		textEnd, end = end+len(text), after
	}

	return end - pos, []string{src[pos:end], src[pos:textEnd]}
}

// matchCodeSpan matches a run of backticks closed by a run of equal length.
func matchCodeSpan(src string, pos int) (int, []string) {
	s := src[pos:]

	width := len(s) - len(strings.TrimLeft(s, "`"))
	if width == 0 {
		return 0, nil
	}

	for i := width; i < len(s); {
		j := strings.IndexByte(s[i:], '`')
		if j < 0 {
			break
		}

		start := i + j
		run := len(s[start:]) - len(strings.TrimLeft(s[start:], "`"))

		if run == width {
			content := s[width:start]
			if len(content) > 2 && content[0] == ' ' && content[len(content)-1] == ' ' && !isBlank(content) {
				content = content[1 : len(content)-1]
			}

			return start + run, []string{s[:start+run], content}
		}

		i = start + run
	}

	return 0, nil
}

// matchDelimited returns a matcher for text enclosed by one of the given
// symmetric delimiters. The opening delimiter must be followed, and the
// closing delimiter preceded, by a non-space character; neither may be
// adjacent to another delimiter character.
func matchDelimited(delims ...string) Matcher {
	return func(src string, pos int) (int, []string) {
		s := src[pos:]

		for _, d := range delims {
			if !strings.HasPrefix(s, d) {
				continue
			}

			c := d[0]
			open := len(d)

			if open >= len(s) || s[open] == c || isSpaceByte(s[open]) {
				continue
			}

			for i := open + 1; i+len(d) <= len(s); i++ {
				if !strings.HasPrefix(s[i:], d) {
					continue
				}

				prev := s[i-1]
				if prev == c || isSpaceByte(prev) {
					continue
				}

				if after := i + len(d); after < len(s) && s[after] == c {
					continue
				}

				return i + len(d), []string{s[:i+len(d)], s[open:i]}
			}
		}

		return 0, nil
	}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// callBoundary reports whether a call may begin at pos: at the start of
// input, after whitespace, or after an opening bracket.
func callBoundary(src string, pos int) bool {
	if pos == 0 {
		return true
	}

	r, _ := utf8.DecodeLastRuneInString(src[:pos])

	return unicode.IsSpace(r) || strings.ContainsRune("([{", r)
}

func matchInlineCall(src string, pos int) (int, []string) {
	if !callBoundary(src, pos) {
		return 0, nil
	}

	call, ok := scanCall(src, pos, false)
	if !ok {
		return 0, nil
	}

	return call.end - pos, []string{src[pos:call.end]}
}

// matchExprCall matches a call inside an expression, allowing an indented
// body on the lines that follow.
func matchExprCall(src string, pos int) (int, []string) {
	if !callBoundary(src, pos) {
		return 0, nil
	}

	call, ok := scanCall(src, pos, true)
	if !ok {
		return 0, nil
	}

	return call.end - pos, []string{src[pos:call.end]}
}

// matchBlockCall matches a call standing alone on its line, with its
// optional indented body.
func matchBlockCall(src string, pos int) (int, []string) {
	first, _ := line(src, pos)

	lead := len(first) - len(strings.TrimLeft(first, " "))
	if lead > 3 {
		return 0, nil
	}

	call, ok := scanCall(src, pos+lead, true)
	if !ok || !call.standalone {
		return 0, nil
	}

	return call.end - pos, []string{src[pos:call.end]}
}
