package stdlib

import (
	"log/slog"

	"github.com/ardnew/quark/lang"
)

// Logic returns control-flow functions and functions that define new
// functions.
func Logic() *lang.Library {
	return lang.NewLibrary("logic",
		lang.NewFunction("if", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return branch(bool(arg[lang.BooleanValue](args, "condition")), args)
		}, lang.Param("condition", lang.KindBoolean), lang.Param("body", lang.KindLambda)),

		lang.NewFunction("ifnot", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return branch(!bool(arg[lang.BooleanValue](args, "condition")), args)
		}, lang.Param("condition", lang.KindBoolean), lang.Param("body", lang.KindLambda)),

		lang.NewFunction("foreach", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return each(arg[lang.IterableValue](args, "iterable"), arg[lang.LambdaValue](args, "body").Lambda)
		}, lang.Param("iterable", lang.KindIterable), lang.Param("body", lang.KindLambda)),

		lang.NewFunction("repeat", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			items, err := lang.Sequence(1, arg[lang.NumberValue](args, "times").Int64())
			if err != nil {
				return nil, err
			}

			return each(items, arg[lang.LambdaValue](args, "body").Lambda)
		}, lang.Param("times", lang.KindNumber), lang.Param("body", lang.KindLambda)),

		lang.NewFunction("var", func(c *lang.Context, args lang.Arguments) (lang.Value, error) {
			name := string(arg[lang.StringValue](args, "name"))
			value, _ := args.Get("value")

			c.Register(lang.NewLibrary("var:"+name,
				lang.NewFunction(name, func(*lang.Context, lang.Arguments) (lang.Value, error) {
					return value, nil
				})))

			c.Logger().Trace("define variable", slog.String("name", name))

			return void()
		}, lang.Param("name", lang.KindString), lang.Param("value", lang.KindDynamic)),

		lang.NewFunction("function", func(c *lang.Context, args lang.Arguments) (lang.Value, error) {
			fn := &customFunction{
				name:   string(arg[lang.StringValue](args, "name")),
				lambda: arg[lang.LambdaValue](args, "body").Lambda,
			}

			c.Register(lang.NewLibrary("function:"+fn.name, fn))
			c.Logger().Trace("define function", slog.String("name", fn.name))

			return void()
		}, lang.Param("name", lang.KindString), lang.Param("body", lang.KindLambda)),
	)
}

// branch evaluates the body lambda as block content if cond holds.
func branch(cond bool, args lang.Arguments) (lang.Value, error) {
	if !cond {
		return void()
	}

	return arg[lang.LambdaValue](args, "body").Lambda.Fresh().Invoke(lang.KindBlockMarkdown)
}

// each evaluates a fresh copy of body for every item, collecting the
// results as block content.
func each(items lang.IterableValue, body *lang.Lambda) (lang.Value, error) {
	out := make(lang.IterableValue, 0, len(items))

	for _, item := range items {
		v, err := body.Fresh().Invoke(lang.KindBlockMarkdown, item)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// customFunction is a function defined in a document. Its parameters
// are the lambda's, each taking a dynamic value.
type customFunction struct {
	name   string
	lambda *lang.Lambda
}

func (f *customFunction) Name() string { return f.name }

func (f *customFunction) Parameters() []lang.Parameter {
	params := make([]lang.Parameter, len(f.lambda.Parameters))
	for i, name := range f.lambda.Parameters {
		params[i] = lang.Param(name, lang.KindDynamic)
	}

	return params
}

func (f *customFunction) Invoke(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
	values := make([]lang.Value, len(f.lambda.Parameters))
	for i, name := range f.lambda.Parameters {
		values[i], _ = args.Get(name)
	}

	return f.lambda.Fresh().InvokeDynamic(values...)
}
