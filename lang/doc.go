// Package lang implements the front end and evaluation core of the quark
// document language: Markdown extended with function calls.
//
// # Syntax
//
// A function call is a dot, a name, and zero or more brace-delimited
// arguments, each optionally named:
//
//	.center {Hello}
//	.box {Title} background:{#eef} padding:{8px 16px}
//
// A call standing alone on its line takes the indented lines below it as
// a body argument, bound to the function's last parameter:
//
//	.foreach {1..3}
//	    n: Item .n
//
// # Pipeline
//
// Source text is split by a [Lexer] into immutable [Token] values using an
// ordered set of patterns: the first pattern that matches at the current
// position wins. A [BlockParser] turns tokens into [Node] trees, re-lexing
// nested regions (paragraph text, list items, block quotes) with the
// appropriate lexer. Each call node is enqueued in the [Context].
//
// [Expand] then drains the queue. Every call is resolved by name against
// the context's libraries, its arguments are bound with [Bind] and
// converted with [ValueFactory.Convert], and the function's result becomes
// the call node's children. Failures go to the context's [ErrorHandler].
//
// # Values
//
// Argument text is evaluated before conversion unless the parameter takes
// it raw (string, Markdown and lambda kinds). Text mixed with calls forms a
// [ComposedExpression] whose results are concatenated; an expression that
// cannot be evaluated falls back to its raw text.
package lang
