package lang

import (
	"log/slog"
)

// Binding pairs a parameter with the argument bound to it.
type Binding struct {
	Parameter Parameter
	Argument  CallArgument
}

// Bind matches a call's arguments to fn's parameters.
//
// A body argument binds to the last parameter. Named arguments bind by
// name, and positional arguments fill the remaining parameters in
// declaration order. The result lists bound parameters in declaration
// order; omitted optional parameters are absent from it.
func Bind(fn Function, args []CallArgument) ([]Binding, error) {
	params := fn.Parameters()
	bound := make([]*CallArgument, len(params))

	errAttrs := func(name string) []slog.Attr {
		return []slog.Attr{
			slog.String("function", fn.Name()),
			slog.String("parameter", name),
		}
	}

	bind := func(i int, arg CallArgument) error {
		if bound[i] != nil {
			return ErrDuplicateArgument.With(errAttrs(params[i].Name)...)
		}

		bound[i] = &arg

		return nil
	}

	var positional []CallArgument

	for _, arg := range args {
		switch {
		case arg.Body:
			if len(params) == 0 {
				return nil, ErrTooManyArguments.With(errAttrs("body")...)
			}

			if err := bind(len(params)-1, arg); err != nil {
				return nil, err
			}

		case arg.Name != "":
			i := indexOfParam(params, arg.Name)
			if i < 0 {
				return nil, ErrUnknownArgument.With(errAttrs(arg.Name)...)
			}

			if err := bind(i, arg); err != nil {
				return nil, err
			}

		default:
			positional = append(positional, arg)
		}
	}

	next := 0

	for _, arg := range positional {
		for next < len(params) && bound[next] != nil {
			next++
		}

		if next == len(params) {
			return nil, ErrTooManyArguments.With(
				slog.String("function", fn.Name()),
				slog.String("argument", arg.Value),
			)
		}

		bound[next] = &arg
	}

	bindings := make([]Binding, 0, len(params))

	for i, p := range params {
		if bound[i] == nil {
			if p.required() {
				return nil, ErrMissingArgument.With(errAttrs(p.Name)...)
			}

			continue
		}

		bindings = append(bindings, Binding{Parameter: p, Argument: *bound[i]})
	}

	return bindings, nil
}

func indexOfParam(params []Parameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}

	return -1
}
