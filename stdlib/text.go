package stdlib

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ardnew/quark/lang"
)

// Text returns string manipulation functions.
func Text() *lang.Library {
	transform := func(name string, fn func(string) string) lang.Function {
		return lang.NewFunction(name, func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return lang.StringValue(fn(string(arg[lang.StringValue](args, "text")))), nil
		}, lang.Param("text", lang.KindString))
	}

	return lang.NewLibrary("text",
		transform("uppercase", func(s string) string { return cases.Upper(language.Und).String(s) }),
		transform("lowercase", func(s string) string { return cases.Lower(language.Und).String(s) }),
		transform("capitalize", capitalize),
		lang.NewFunction("concatenate", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return lang.StringValue(string(arg[lang.StringValue](args, "a")) + string(arg[lang.StringValue](args, "b"))), nil
		}, lang.Param("a", lang.KindString), lang.Param("b", lang.KindString)),
		lang.NewFunction("code", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return lang.NodeValue{Node: &lang.Code{
				Language: strings.TrimSpace(string(arg[lang.StringValue](args, "lang"))),
				Content:  strings.Trim(string(arg[lang.StringValue](args, "code")), "\n"),
			}}, nil
		}, lang.Param("lang", lang.KindString).Opt(), lang.Param("code", lang.KindString)),
	)
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
