package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Structural errors indicate a grammar invariant violation.
var (
	ErrNoPatternMatch         = NewError("no token pattern matches input")
	ErrInvalidSetextHeading   = NewError("invalid setext heading marker")
	ErrOrderedListUnsupported = NewError("ordered lists are not supported")
)

// Binding errors name the offending function and parameter.
var (
	ErrFunctionNotFound  = NewError("function not found")
	ErrTooManyArguments  = NewError("too many arguments")
	ErrUnknownArgument   = NewError("unknown argument name")
	ErrDuplicateArgument = NewError("argument bound more than once")
	ErrMissingArgument   = NewError("missing required argument")
)

// Conversion errors are hard failures naming the raw text.
var (
	ErrInvalidSize        = NewError("invalid size")
	ErrInvalidSizes       = NewError("invalid top-right-bottom-left sizes")
	ErrInvalidColor       = NewError("invalid color")
	ErrNotIterable        = NewError("value is not iterable")
	ErrCollectionTooLarge = NewError("collection too large")
	ErrInvalidArgument    = NewError("invalid argument value")
)

var (
	ErrInvalidExpressionEval = NewError("invalid composed expression")
	ErrLambdaArity           = NewError("lambda argument count mismatch")
	ErrLambdaResult          = NewError("lambda result type mismatch")
	ErrUnattachedPipeline    = NewError("context has no attached pipeline")
	ErrReadSource            = NewError("failed to read source")
)

// Error is an error carrying structured attributes for logging.
// It implements both error and [slog.LogValuer].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err as an *Error, wrapping it if it is not one already.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error joins the message and the wrapped cause with ": ".
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

// Is matches sentinel errors derived from the same message through
// [Error.Wrap] or [Error.With].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && len(t.attrs) == 0 && t.msg != "" && t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns the attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	merged = append(merged, e.attrs...)
	merged = append(merged, attrs...)

	return &Error{msg: e.msg, err: e.err, attrs: merged}
}
