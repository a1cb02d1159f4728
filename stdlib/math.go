package stdlib

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/quark/lang"
)

// Math returns arithmetic functions. Integer operands give integer
// results where the result is exact.
func Math() *lang.Library {
	binary := func(name string, op func(a, b lang.NumberValue) (lang.Value, error)) lang.Function {
		return lang.NewFunction(name, func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return op(arg[lang.NumberValue](args, "a"), arg[lang.NumberValue](args, "b"))
		}, lang.Param("a", lang.KindNumber), lang.Param("b", lang.KindNumber))
	}

	return lang.NewLibrary("math",
		binary("sum", func(a, b lang.NumberValue) (lang.Value, error) {
			if a.IsInt() && b.IsInt() {
				return lang.Int(a.Int64() + b.Int64()), nil
			}

			return lang.Float(a.Float64() + b.Float64()), nil
		}),
		binary("subtract", func(a, b lang.NumberValue) (lang.Value, error) {
			if a.IsInt() && b.IsInt() {
				return lang.Int(a.Int64() - b.Int64()), nil
			}

			return lang.Float(a.Float64() - b.Float64()), nil
		}),
		binary("multiply", func(a, b lang.NumberValue) (lang.Value, error) {
			if a.IsInt() && b.IsInt() {
				return lang.Int(a.Int64() * b.Int64()), nil
			}

			return lang.Float(a.Float64() * b.Float64()), nil
		}),
		binary("divide", divide),
		binary("pow", func(a, b lang.NumberValue) (lang.Value, error) {
			if a.IsInt() && b.IsInt() && b.Int64() >= 0 {
				return number(math.Pow(a.Float64(), b.Float64())), nil
			}

			return lang.Float(math.Pow(a.Float64(), b.Float64())), nil
		}),
		lang.NewFunction("calc", calc, lang.Param("expression", lang.KindEvaluableString)),
		lang.NewFunction("range", func(_ *lang.Context, args lang.Arguments) (lang.Value, error) {
			return arg[lang.ObjectValue[lang.Range]](args, "range").V.Collection()
		}, lang.Param("range", lang.KindRange)),
	)
}

func divide(a, b lang.NumberValue) (lang.Value, error) {
	if b.Float64() == 0 {
		return nil, ErrDivisionByZero.With(slog.String("dividend", a.String()))
	}

	if a.IsInt() && b.IsInt() && a.Int64()%b.Int64() == 0 {
		return lang.Int(a.Int64() / b.Int64()), nil
	}

	return lang.Float(a.Float64() / b.Float64()), nil
}

// number returns f as an integer if it has no fractional part.
func number(f float64) lang.NumberValue {
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		return lang.Int(int64(f))
	}

	return lang.Float(f)
}

// calc evaluates an arithmetic expression. Bare identifiers naming
// functions without required parameters, such as lambda parameters, are
// replaced by their values before compilation.
func calc(c *lang.Context, args lang.Arguments) (lang.Value, error) {
	source := arg[lang.ObjectValue[lang.EvaluableString]](args, "expression").V.String()

	p := &identPatcher{ctx: c}

	program, err := expr.Compile(source, expr.Env(map[string]any{}), expr.Patch(p))
	if p.err != nil {
		return nil, p.err
	}

	if err != nil {
		return nil, ErrCalc.Wrap(err).With(slog.String("expression", source))
	}

	out, err := vm.Run(program, map[string]any{})
	if err != nil {
		return nil, ErrCalc.Wrap(err).With(slog.String("expression", source))
	}

	return fromNative(out), nil
}

func fromNative(v any) lang.Value {
	switch v := v.(type) {
	case int:
		return lang.Int(int64(v))
	case int64:
		return lang.Int(v)
	case float64:
		return lang.Float(v)
	case bool:
		return lang.BooleanValue(v)
	case string:
		return lang.StringValue(v)
	default:
		return lang.DynamicValue(fmt.Sprint(v))
	}
}

// identPatcher replaces identifiers with the values of the context's
// functions of the same name.
type identPatcher struct {
	ctx *lang.Context
	err error
}

func (p *identPatcher) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok || p.err != nil {
		return
	}

	fn, ok := p.ctx.FunctionByName(ident.Value)
	if !ok || !nullary(fn) {
		return
	}

	v, err := p.ctx.Call(fn, &lang.FunctionCallNode{Name: ident.Value})
	if err != nil {
		p.err = err

		return
	}

	ast.Patch(node, literal(p.ctx, v))

	p.ctx.Logger().Trace("patch identifier", slog.String("name", ident.Value))
}

func nullary(fn lang.Function) bool {
	for _, param := range fn.Parameters() {
		if !param.Optional {
			return false
		}
	}

	return true
}

func literal(c *lang.Context, v lang.Value) ast.Node {
	switch v := v.(type) {
	case lang.NumberValue:
		if v.IsInt() {
			return &ast.IntegerNode{Value: int(v.Int64())}
		}

		return &ast.FloatNode{Value: v.Float64()}
	case lang.BooleanValue:
		return &ast.BoolNode{Value: bool(v)}
	}

	s, ok := lang.Text(v)
	if !ok {
		s = lang.TextOf(lang.NodesOf(v)...)
	}

	if n, ok := c.Values().Number(s); ok {
		return literal(c, n)
	}

	return &ast.StringNode{Value: s}
}
