package stdlib

import (
	"github.com/ardnew/quark/lang"
)

// Layout returns functions that position and decorate content.
func Layout() *lang.Library {
	return lang.NewLibrary("layout",
		lang.NewFunction("center", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return aligned("center", args), nil
		}, lang.Param("body", lang.KindBlockMarkdown)),

		lang.NewFunction("align", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return aligned(arg[lang.ObjectValue[lang.Enum]](args, "alignment").V.Name, args), nil
		}, lang.Param("alignment", lang.KindEnum).OneOf("left", "center", "right"),
			lang.Param("body", lang.KindBlockMarkdown)),

		lang.NewFunction("box", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return lang.NodeValue{Node: &lang.Box{
				Title:      arg[lang.MarkdownValue](args, "title").Children,
				Background: optional[lang.Color](args, "background"),
				Padding:    optional[lang.Sizes](args, "padding"),
				Width:      optional[lang.Size](args, "width"),
				Children:   arg[lang.MarkdownValue](args, "body").Children,
			}}, nil
		}, lang.Param("title", lang.KindInlineMarkdown).Opt(),
			lang.Param("background", lang.KindColor).Opt(),
			lang.Param("padding", lang.KindSizes).Opt(),
			lang.Param("width", lang.KindSize).Opt(),
			lang.Param("body", lang.KindBlockMarkdown)),
	)
}

func aligned(alignment string, args lang.Arguments) lang.Value {
	return lang.NodeValue{Node: &lang.Aligned{
		Alignment: alignment,
		Children:  arg[lang.MarkdownValue](args, "body").Children,
	}}
}
