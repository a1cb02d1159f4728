package lang

//go:generate go tool stringer --linecomment --type Kind --output value_string.go

import (
	"fmt"
	"strconv"
)

// Kind tags the static type a function parameter expects.
type Kind int

const (
	KindString          Kind = iota // string
	KindNumber                      // number
	KindBoolean                     // boolean
	KindRange                       // range
	KindSize                        // size
	KindSizes                       // sizes
	KindColor                       // color
	KindEnum                        // enum
	KindEvaluableString             // evaluable-string
	KindBlockMarkdown               // block-markdown
	KindInlineMarkdown              // inline-markdown
	KindIterable                    // iterable
	KindLambda                      // lambda
	KindDynamic                     // dynamic
)

// Value is the result of converting or evaluating an argument. Each
// implementation wraps exactly one payload, returned by Unwrap.
type Value interface {
	Unwrap() any
	value()
}

type (
	StringValue  string
	BooleanValue bool
	// DynamicValue is text whose type is decided where it is used.
	DynamicValue string
	// VoidValue is the result of functions that produce no output.
	VoidValue struct{}
)

// NumberValue is an integer or a floating-point number.
type NumberValue struct {
	i       int64
	f       float64
	isFloat bool
}

func Int(i int64) NumberValue     { return NumberValue{i: i, f: float64(i)} }
func Float(f float64) NumberValue { return NumberValue{i: int64(f), f: f, isFloat: true} }

func (n NumberValue) IsInt() bool      { return !n.isFloat }
func (n NumberValue) Int64() int64     { return n.i }
func (n NumberValue) Float64() float64 { return n.f }

func (n NumberValue) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}

	return strconv.FormatInt(n.i, 10)
}

// ObjectValue wraps a structured payload such as a [Range] or [Color].
type ObjectValue[T any] struct{ V T }

func Object[T any](v T) ObjectValue[T] { return ObjectValue[T]{V: v} }

// IterableValue is an ordered collection of values.
type IterableValue []Value

// NodeValue wraps a single document node.
type NodeValue struct{ Node Node }

// MarkdownValue is parsed Markdown content.
type MarkdownValue struct {
	Children []Node
	Inline   bool
}

// LambdaValue wraps a deferred [Lambda].
type LambdaValue struct{ Lambda *Lambda }

func (v StringValue) Unwrap() any   { return string(v) }
func (v BooleanValue) Unwrap() any  { return bool(v) }
func (v DynamicValue) Unwrap() any  { return string(v) }
func (VoidValue) Unwrap() any       { return nil }
func (n NumberValue) Unwrap() any {
	if n.isFloat {
		return n.f
	}

	return n.i
}
func (v ObjectValue[T]) Unwrap() any { return v.V }
func (v IterableValue) Unwrap() any  { return []Value(v) }
func (v NodeValue) Unwrap() any      { return v.Node }
func (v MarkdownValue) Unwrap() any  { return v.Children }
func (v LambdaValue) Unwrap() any    { return v.Lambda }

func (StringValue) value()    {}
func (BooleanValue) value()   {}
func (DynamicValue) value()   {}
func (VoidValue) value()      {}
func (NumberValue) value()    {}
func (ObjectValue[T]) value() {}
func (IterableValue) value()  {}
func (NodeValue) value()      {}
func (MarkdownValue) value()  {}
func (LambdaValue) value()    {}

// Eval makes DynamicValue a trivial [Expression].
func (v DynamicValue) Eval() (Value, error) { return v, nil }

// Text returns the textual form of string, dynamic, number and boolean
// values.
func Text(v Value) (string, bool) {
	switch v := v.(type) {
	case StringValue:
		return string(v), true
	case DynamicValue:
		return string(v), true
	case NumberValue:
		return v.String(), true
	case BooleanValue:
		return strconv.FormatBool(bool(v)), true
	default:
		return "", false
	}
}

// KindOf returns the static kind of v. Dynamic values report KindDynamic.
func KindOf(v Value) Kind {
	switch v := v.(type) {
	case StringValue:
		return KindString
	case NumberValue:
		return KindNumber
	case BooleanValue:
		return KindBoolean
	case ObjectValue[Range]:
		return KindRange
	case ObjectValue[Size]:
		return KindSize
	case ObjectValue[Sizes]:
		return KindSizes
	case ObjectValue[Color]:
		return KindColor
	case ObjectValue[Enum]:
		return KindEnum
	case ObjectValue[EvaluableString]:
		return KindEvaluableString
	case MarkdownValue:
		if v.Inline {
			return KindInlineMarkdown
		}

		return KindBlockMarkdown
	case IterableValue:
		return KindIterable
	case LambdaValue:
		return KindLambda
	default:
		return KindDynamic
	}
}

// NodesOf returns the document nodes that represent v.
func NodesOf(v Value) []Node {
	if s, ok := Text(v); ok {
		return []Node{&PlainText{Text: s}}
	}

	switch v := v.(type) {
	case NodeValue:
		return []Node{v.Node}
	case MarkdownValue:
		return v.Children
	case IterableValue:
		var nodes []Node
		for _, item := range v {
			nodes = append(nodes, NodesOf(item)...)
		}

		return nodes
	case VoidValue, LambdaValue, nil:
		return nil
	default:
		return []Node{&PlainText{Text: fmt.Sprint(v.Unwrap())}}
	}
}
