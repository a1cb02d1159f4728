package stdlib

import (
	"github.com/ardnew/quark/lang"
)

var (
	transitionStyles = []string{"none", "fade", "slide", "convex", "concave", "zoom"}
	transitionSpeeds = []string{"default", "fast", "slow"}
)

// Slides returns functions for presentation documents.
func Slides() *lang.Library {
	return lang.NewLibrary("slides",
		lang.NewFunction("slides", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			cfg := &lang.SlidesConfiguration{
				Center:   optionalBool(args, "center"),
				Controls: optionalBool(args, "controls"),
			}

			if style := optional[lang.Enum](args, "transition"); style != nil {
				cfg.Transition = &lang.Transition{
					Style: style.Name,
					Speed: arg[lang.ObjectValue[lang.Enum]](args, "speed").V.Name,
				}
			}

			return lang.NodeValue{Node: cfg}, nil
		},
			lang.Param("center", lang.KindBoolean).Opt(),
			lang.Param("controls", lang.KindBoolean).Opt(),
			lang.Param("transition", lang.KindEnum).OneOf(transitionStyles...).Opt(),
			lang.Param("speed", lang.KindEnum).OneOf(transitionSpeeds...).WithDefault("default"),
		),

		lang.NewFunction("fragment", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return lang.NodeValue{Node: &lang.SlidesFragment{
				Children: arg[lang.MarkdownValue](args, "body").Children,
			}}, nil
		}, lang.Param("body", lang.KindInlineMarkdown)),
	)
}
