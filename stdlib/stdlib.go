// Package stdlib provides the libraries of functions callable from quark
// documents.
//
// Each library is a [lang.Library]; [All] returns every library in
// registration order. Functions receive converted arguments, so their
// implementations only read typed values:
//
//	.sum {2} {3}               5
//	.uppercase {quark}         QUARK
//	.foreach {1..3}            one paragraph per item
//	    n: Item .n
package stdlib

import (
	"github.com/ardnew/quark/lang"
)

var (
	ErrDivisionByZero    = lang.NewError("division by zero")
	ErrCalc              = lang.NewError("invalid calculation")
	ErrFileNotFound      = lang.NewError("file not found")
	ErrIncludeCycle      = lang.NewError("file includes itself")
	ErrInvalidConstraint = lang.NewError("invalid version constraint")
	ErrVersionConstraint = lang.NewError("version does not satisfy constraint")
)

// All returns the standard libraries.
func All() []*lang.Library {
	return []*lang.Library{
		Math(),
		Text(),
		Logic(),
		Layout(),
		Slides(),
		Document(),
	}
}

// arg returns the named argument as a T, or T's zero value if it is
// unbound.
func arg[T lang.Value](args lang.Arguments, name string) T {
	v, _ := lang.Arg[T](args, name)

	return v
}

// optional returns a pointer to the named argument's payload, or nil if
// it is unbound.
func optional[T any](args lang.Arguments, name string) *T {
	v, ok := lang.Arg[lang.ObjectValue[T]](args, name)
	if !ok {
		return nil
	}

	return &v.V
}

func optionalBool(args lang.Arguments, name string) *bool {
	v, ok := lang.Arg[lang.BooleanValue](args, name)
	if !ok {
		return nil
	}

	b := bool(v)

	return &b
}

func void() (lang.Value, error) { return lang.VoidValue{}, nil }
