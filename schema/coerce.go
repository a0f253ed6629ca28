package schema

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Accepted boolean tokens, compared case-insensitively.
var boolTokens = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true, "on": true,
	"false": false, "f": false, "no": false, "n": false, "0": false, "off": false,
}

func parseBool(s string) (bool, error) {
	v, ok := boolTokens[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false, fmt.Errorf("%q is not a boolean (want true/false, yes/no, on/off or 1/0)", s)
	}

	return v, nil
}

func parseInt(s string) (int, error) { return strconv.Atoi(strings.TrimSpace(s)) }

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseString(s string) (string, error) { return s, nil }

// coerceToken converts one token to the Go representation of elem.
func coerceToken(elem Elem, tok string) (any, error) {
	var (
		v   any
		err error
	)

	switch elem {
	case ElemInt:
		v, err = parseInt(tok)
	case ElemFloat:
		v, err = parseFloat(tok)
	case ElemString:
		v, err = parseString(tok)
	case ElemBool:
		v, err = parseBool(tok)
	default:
		return nil, ErrUnsupportedType.With(slog.String("type", elem.String()))
	}

	if err != nil {
		return nil, ErrCoercion.Wrap(err).With(
			slog.String("token", tok),
			slog.String("type", elem.String()),
		)
	}

	return v, nil
}

func coerceTokens[T any](tokens []string, parse func(string) (T, error), elem Elem) ([]T, error) {
	out := make([]T, 0, len(tokens))

	for _, tok := range tokens {
		v, err := parse(tok)
		if err != nil {
			return nil, ErrCoercion.Wrap(err).With(
				slog.String("token", tok),
				slog.String("type", elem.String()),
			)
		}

		out = append(out, v)
	}

	return out, nil
}

// coerce converts the tokens of one slot to the Go representation of t.
// A scalar slot holds exactly one token.
func (t Type) coerce(tokens []string) (any, error) {
	if t.Kind == KindScalar {
		if len(tokens) != 1 {
			return nil, ErrArity.With(
				slog.String("type", t.String()),
				slog.Int("want", 1),
				slog.Int("got", len(tokens)),
			)
		}

		return coerceToken(t.Elem, tokens[0])
	}

	if t.Kind == KindFixed && len(tokens) != t.Len {
		return nil, ErrArity.With(
			slog.String("type", t.String()),
			slog.Int("want", t.Len),
			slog.Int("got", len(tokens)),
		)
	}

	switch t.Elem {
	case ElemInt:
		return coerceTokens(tokens, parseInt, t.Elem)
	case ElemFloat:
		return coerceTokens(tokens, parseFloat, t.Elem)
	case ElemString:
		return coerceTokens(tokens, parseString, t.Elem)
	case ElemBool:
		return coerceTokens(tokens, parseBool, t.Elem)
	default:
		return nil, ErrUnsupportedType.With(slog.String("type", t.String()))
	}
}

// normalize converts a declared default value to the Go representation of t.
//
// Scalars accept their own Go type, any numeric kind a conversion preserves
// (integers for int; integers and floats for float64), or a string that
// coerces. Containers accept a slice or array of such elements, or a
// comma-separated string.
func (t Type) normalize(v any) (any, error) {
	if t.Kind == KindScalar {
		return normalizeElem(t.Elem, v)
	}

	var tokens []string

	rv := reflect.ValueOf(v)

	switch {
	case v == nil:
		tokens = []string{}

	case rv.Kind() == reflect.String:
		tokens = splitList(rv.String())

	case rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			item, err := normalizeElem(t.Elem, rv.Index(i).Interface())
			if err != nil {
				return nil, annotate(err, slog.Int("index", i))
			}

			items[i] = item
		}

		if t.Kind == KindFixed && len(items) != t.Len {
			return nil, ErrInvalidDefault.With(
				slog.String("type", t.String()),
				slog.Int("want", t.Len),
				slog.Int("got", len(items)),
			)
		}

		return collect(t.Elem, items), nil

	default:
		return nil, ErrInvalidDefault.With(
			slog.String("type", t.String()),
			slog.String("value", fmt.Sprint(v)),
			slog.String("go", rv.Type().String()),
		)
	}

	out, err := t.coerce(tokens)
	if err != nil {
		return nil, ErrInvalidDefault.Wrap(err)
	}

	return out, nil
}

func normalizeElem(elem Elem, v any) (any, error) {
	invalid := func() error {
		attrs := []slog.Attr{
			slog.String("type", elem.String()),
			slog.String("value", fmt.Sprint(v)),
		}
		if v != nil {
			attrs = append(attrs, slog.String("go", reflect.TypeOf(v).String()))
		}

		return ErrInvalidDefault.With(attrs...)
	}

	if v == nil {
		return nil, invalid()
	}

	rv := reflect.ValueOf(v)

	if rv.Kind() == reflect.String {
		out, err := coerceToken(elem, rv.String())
		if err != nil {
			return nil, ErrInvalidDefault.Wrap(err)
		}

		return out, nil
	}

	switch elem {
	case ElemInt:
		switch {
		case rv.CanInt():
			return int(rv.Int()), nil
		case rv.CanUint():
			return int(rv.Uint()), nil //nolint:gosec
		case rv.CanFloat() && rv.Float() == float64(int(rv.Float())):
			// YAML and JSON decoders may produce whole floats for integers.
			return int(rv.Float()), nil
		}

	case ElemFloat:
		switch {
		case rv.CanFloat():
			return rv.Float(), nil
		case rv.CanInt():
			return float64(rv.Int()), nil
		case rv.CanUint():
			return float64(rv.Uint()), nil
		}

	case ElemBool:
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}

	case ElemString, ElemInvalid:
	}

	return nil, invalid()
}

// collect packs normalized items into the typed slice for elem.
func collect(elem Elem, items []any) any {
	switch elem {
	case ElemInt:
		return collectAs[int](items)
	case ElemFloat:
		return collectAs[float64](items)
	case ElemString:
		return collectAs[string](items)
	case ElemBool:
		return collectAs[bool](items)
	default:
		return items
	}
}

func collectAs[T any](items []any) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i], _ = item.(T)
	}

	return out
}

// splitList splits a comma-separated default into trimmed tokens.
// The empty string is an empty list.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// clone returns a copy of v that shares no memory with it.
func clone(v any) any {
	switch x := v.(type) {
	case []int:
		return slices.Clone(x)
	case []float64:
		return slices.Clone(x)
	case []string:
		return slices.Clone(x)
	case []bool:
		return slices.Clone(x)
	default:
		return v
	}
}
