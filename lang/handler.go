package lang

import (
	"log/slog"
)

// ErrorHandler decides what happens when a call fails to expand.
type ErrorHandler interface {
	Handle(c *Context, err error, call *FunctionCallNode) error
}

// BaseErrorHandler logs the failure and replaces the call's output with
// an [ErrorBox], letting compilation continue.
type BaseErrorHandler struct{}

func (BaseErrorHandler) Handle(c *Context, err error, call *FunctionCallNode) error {
	c.Logger().Warn("function call failed",
		slog.String("function", call.Name),
		slog.String("pos", call.Pos.String()),
		slog.Any("error", err),
	)

	call.Children = []Node{&ErrorBox{Title: call.Name, Message: err.Error()}}

	return nil
}

// StrictErrorHandler aborts compilation on the first failed call.
type StrictErrorHandler struct{}

func (StrictErrorHandler) Handle(_ *Context, err error, call *FunctionCallNode) error {
	return WrapError(err).With(
		slog.String("call", call.Name),
		slog.String("pos", call.Pos.String()),
	)
}
