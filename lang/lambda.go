package lang

import (
	"log/slog"
	"strconv"
)

// LambdaState tracks whether a lambda has registered its arguments.
type LambdaState int

const (
	LambdaUnbound LambdaState = iota
	LambdaBound
)

const lambdaLibrary = "lambda-parameters"

// Lambda is a deferred block of source evaluated in a forked context with
// its arguments available as zero-parameter functions, named after the
// declared parameters or, without declarations, numbered from 1.
//
// Arguments are registered by the first invocation only; later
// invocations of the same Lambda see the first arguments. Use
// [Lambda.Fresh] to invoke with new arguments.
type Lambda struct {
	Parameters []string
	Body       string

	parent *Context
	ctx    *Context
	state  LambdaState
}

func NewLambda(parent *Context, body string, params ...string) *Lambda {
	return &Lambda{Parameters: params, Body: body, parent: parent}
}

func (l *Lambda) State() LambdaState { return l.state }

// Fresh returns an unbound copy of l.
func (l *Lambda) Fresh() *Lambda {
	return NewLambda(l.parent, l.Body, l.Parameters...)
}

func (l *Lambda) context() *Context {
	if l.ctx == nil {
		l.ctx = l.parent.Fork()
	}

	return l.ctx
}

func (l *Lambda) bind(args []Value) {
	fns := make([]Function, len(args))

	for i, arg := range args {
		name := strconv.Itoa(i + 1)
		if i < len(l.Parameters) {
			name = l.Parameters[i]
		}

		fns[i] = NewFunction(name, func(*Context, Arguments) (Value, error) {
			return arg, nil
		})
	}

	l.context().Register(NewLibrary(lambdaLibrary, fns...))
	l.state = LambdaBound
}

// InvokeDynamic evaluates the body with args bound and returns the
// result without type conversion.
func (l *Lambda) InvokeDynamic(args ...Value) (Value, error) {
	if len(l.Parameters) > 0 && len(args) != len(l.Parameters) {
		return nil, ErrLambdaArity.With(
			slog.Int("expected", len(l.Parameters)),
			slog.Int("got", len(args)),
		)
	}

	if l.state == LambdaUnbound {
		l.bind(args)
	}

	return l.context().Values().Eval(l.Body)
}

// Invoke evaluates the body with args bound and converts the result to
// kind.
func (l *Lambda) Invoke(kind Kind, args ...Value) (Value, error) {
	v, err := l.InvokeDynamic(args...)
	if err != nil {
		return nil, err
	}

	out, err := l.context().Values().coerce(Parameter{Name: "result", Kind: kind}, v)
	if err != nil {
		return nil, ErrLambdaResult.Wrap(err).With(
			slog.String("expected", kind.String()),
			slog.String("got", KindOf(v).String()),
		)
	}

	return out, nil
}
