package cmd

import "github.com/ardnew/quark/lang"

// Error is the structured error shared with the language core, so command
// failures and compile failures log the same way.
type Error = lang.Error

// NewError returns a sentinel command error.
func NewError(msg string) *Error { return lang.NewError(msg) }

var (
	ErrNoSourceFile = NewError("no source file passed")
	ErrReadSource   = NewError("read source")
	ErrWriteOutput  = NewError("write output")
	ErrWatch        = NewError("watch source")
	ErrJSONMarshal  = NewError("marshal JSON")
	ErrYAMLMarshal  = NewError("marshal YAML")
	ErrWriteConfig  = NewError("write configuration file")
	ErrFileExists   = NewError("file exists (use --force to overwrite)")
)
