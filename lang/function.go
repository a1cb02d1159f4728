package lang

import (
	"slices"
	"strings"
)

// Parameter describes one argument a function accepts.
type Parameter struct {
	Name     string
	Kind     Kind
	Optional bool
	// Default is raw text converted when the argument is omitted.
	Default string
	// Candidates lists the accepted values of an enum parameter.
	Candidates []string
}

// Param returns a required parameter.
func Param(name string, kind Kind) Parameter {
	return Parameter{Name: name, Kind: kind}
}

// Opt marks p optional.
func (p Parameter) Opt() Parameter {
	p.Optional = true

	return p
}

// WithDefault marks p optional with raw as its default value.
func (p Parameter) WithDefault(raw string) Parameter {
	p.Optional = true
	p.Default = raw

	return p
}

// OneOf restricts an enum parameter to the given candidates.
func (p Parameter) OneOf(candidates ...string) Parameter {
	p.Kind = KindEnum
	p.Candidates = candidates

	return p
}

func (p Parameter) required() bool { return !p.Optional && p.Default == "" }

// Function is a named, invokable unit of the language.
type Function interface {
	Name() string
	Parameters() []Parameter
	Invoke(c *Context, args Arguments) (Value, error)
}

// Impl is the body of a [SimpleFunction].
type Impl func(c *Context, args Arguments) (Value, error)

// SimpleFunction is a [Function] built from a parameter list and an [Impl].
type SimpleFunction struct {
	name   string
	params []Parameter
	impl   Impl
}

// NewFunction returns a function named name that binds params and calls impl.
func NewFunction(name string, impl Impl, params ...Parameter) *SimpleFunction {
	return &SimpleFunction{name: name, params: params, impl: impl}
}

func (f *SimpleFunction) Name() string            { return f.name }
func (f *SimpleFunction) Parameters() []Parameter { return f.params }

func (f *SimpleFunction) Invoke(c *Context, args Arguments) (Value, error) {
	return f.impl(c, args)
}

// Signature formats the function's name and parameters for display.
func Signature(fn Function) string {
	var b strings.Builder

	b.WriteString("." + fn.Name())

	for _, p := range fn.Parameters() {
		b.WriteString(" ")

		if p.Optional {
			b.WriteString("[")
		}

		b.WriteString(p.Name + ":" + p.Kind.String())

		if p.Optional {
			b.WriteString("]")
		}
	}

	return b.String()
}

// Library is a named set of functions.
type Library struct {
	Name      string
	Functions []Function
}

func NewLibrary(name string, fns ...Function) *Library {
	return &Library{Name: name, Functions: fns}
}

// Lookup returns the function named name. Names are case-sensitive.
func (l *Library) Lookup(name string) (Function, bool) {
	for _, fn := range slices.Backward(l.Functions) {
		if fn.Name() == name {
			return fn, true
		}
	}

	return nil, false
}

// Arguments are the converted argument values passed to a function.
type Arguments struct {
	values map[string]Value
}

func NewArguments() Arguments {
	return Arguments{values: make(map[string]Value)}
}

func (a Arguments) set(name string, v Value) { a.values[name] = v }

// Get returns the value bound to the named parameter.
func (a Arguments) Get(name string) (Value, bool) {
	v, ok := a.values[name]

	return v, ok
}

// Len returns the number of bound parameters.
func (a Arguments) Len() int { return len(a.values) }

// Arg returns the value bound to the named parameter as a T.
func Arg[T Value](a Arguments, name string) (T, bool) {
	v, ok := a.values[name].(T)

	return v, ok
}
