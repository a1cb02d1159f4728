package lang

import (
	"fmt"
	"reflect"
)

// ToNative converts a node tree to maps and slices suitable for encoding.
// Each node becomes a map with a "type" key and one key per non-empty
// field.
func ToNative(n Node) map[string]any {
	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	result := map[string]any{"type": v.Type().Name()}

	for i := range v.NumField() {
		field := v.Type().Field(i)
		if !field.IsExported() {
			continue
		}

		if native := fieldNative(v.Field(i)); native != nil {
			result[lowerFirst(field.Name)] = native
		}
	}

	return result
}

// NodesToNative converts each node with [ToNative].
func NodesToNative(nodes []Node) []any {
	result := make([]any, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, ToNative(n))
	}

	return result
}

// TokensToNative converts tokens to maps suitable for encoding.
func TokensToNative(tokens []Token) []any {
	result := make([]any, 0, len(tokens))

	for _, t := range tokens {
		m := map[string]any{
			"kind": t.Kind.String(),
			"pos":  t.Pos.String(),
			"text": t.Text,
		}

		if len(t.Groups) > 1 {
			m["groups"] = t.Groups[1:]
		}

		result = append(result, m)
	}

	return result
}

func fieldNative(f reflect.Value) any {
	switch x := f.Interface().(type) {
	case []Node:
		if len(x) == 0 {
			return nil
		}

		return NodesToNative(x)
	case Node:
		return ToNative(x)
	case []CallArgument:
		if len(x) == 0 {
			return nil
		}

		return x
	case Position:
		return x.String()
	case fmt.Stringer:
		if f.Kind() == reflect.Pointer && f.IsNil() {
			return nil
		}

		return x.String()
	}

	switch f.Kind() {
	case reflect.Pointer:
		if f.IsNil() {
			return nil
		}

		return fieldNative(f.Elem())
	case reflect.String:
		if f.Len() == 0 {
			return nil
		}
	case reflect.Struct:
		return fmt.Sprintf("%+v", f.Interface())
	}

	return f.Interface()
}

func lowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}

	return string(s[0]+'a'-'A') + s[1:]
}
