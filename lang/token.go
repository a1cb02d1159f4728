package lang

//go:generate go tool stringer --linecomment --type TokenKind --output token_string.go

import (
	"log/slog"
	"strconv"
)

// TokenKind tags the syntactic construct a [Token] was matched as.
type TokenKind int

// Block token kinds.
const (
	TokenNewline        TokenKind = iota // newline
	TokenBlockCode                       // block-code
	TokenFencesCode                      // fences-code
	TokenMath                            // math
	TokenHorizontalRule                  // horizontal-rule
	TokenHeading                         // heading
	TokenSetextHeading                   // setext-heading
	TokenLinkDefinition                  // link-definition
	TokenFunctionCall                    // function-call
	TokenBlockQuote                      // block-quote
	TokenUnorderedList                   // unordered-list
	TokenOrderedList                     // ordered-list
	TokenListItem                        // list-item
	TokenHTML                            // html
	TokenParagraph                       // paragraph
	TokenBlockText                       // block-text
)

// Inline token kinds.
const (
	TokenPlainText          TokenKind = iota + TokenBlockText + 1 // plain-text
	TokenEscape                                                   // escape
	TokenComment                                                  // comment
	TokenCodeSpan                                                 // code-span
	TokenInlineMath                                               // inline-math
	TokenInlineFunctionCall                                       // inline-function-call
	TokenImage                                                    // image
	TokenReferenceImage                                           // reference-image
	TokenLink                                                     // link
	TokenReferenceLink                                            // reference-link
	TokenAutolink                                                 // autolink
	TokenStrongEmphasis                                           // strong-emphasis
	TokenStrong                                                   // strong
	TokenEmphasis                                                 // emphasis
	TokenLineBreak                                                // line-break
)

// IsBlock reports whether k is a block-level kind.
func (k TokenKind) IsBlock() bool { return k >= TokenNewline && k <= TokenBlockText }

// Position locates a token in its source region. Line and Column are 1-based.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is an immutable lexeme. Groups[0] holds the whole match; later
// entries hold the matching pattern's capture groups, empty when a group
// did not participate.
type Token struct {
	Kind   TokenKind `json:"kind"`
	Text   string    `json:"text"`
	Groups []string  `json:"groups,omitempty"`
	Pos    Position  `json:"pos"`
}

// Group returns capture group i, or "" if there is no such group.
func (t Token) Group(i int) string {
	if i < 0 || i >= len(t.Groups) {
		return ""
	}

	return t.Groups[i]
}

func (t Token) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", t.Kind.String()),
		slog.String("pos", t.Pos.String()),
		slog.Int("len", len(t.Text)),
	)
}
