package schema

import (
	"log/slog"
	"strconv"
	"strings"
)

// Kind classifies how many values a field consumes per slot.
type Kind uint8

const (
	KindInvalid  Kind = iota // invalid
	KindScalar               // scalar
	KindFixed                // fixed
	KindVariable             // variable
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindFixed:
		return "fixed"
	case KindVariable:
		return "variable"
	default:
		return "invalid"
	}
}

// Elem is the scalar type of a field, or of each item of a container field.
type Elem uint8

const (
	ElemInvalid Elem = iota // invalid
	ElemInt                 // int
	ElemFloat               // float64
	ElemString              // string
	ElemBool                // bool
)

// String returns the Go spelling of e.
func (e Elem) String() string {
	switch e {
	case ElemInt:
		return "int"
	case ElemFloat:
		return "float64"
	case ElemString:
		return "string"
	case ElemBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Type is the declared type of a field.
//
// The zero Type is invalid. Use the predeclared scalars or the [List] and
// [Tuple] constructors.
type Type struct {
	Kind Kind
	Elem Elem
	Len  int // item count for KindFixed
}

// Scalar field types.
var (
	Int    = Type{Kind: KindScalar, Elem: ElemInt}
	Float  = Type{Kind: KindScalar, Elem: ElemFloat}
	String = Type{Kind: KindScalar, Elem: ElemString}
	Bool   = Type{Kind: KindScalar, Elem: ElemBool}
)

// List returns a variable-size container of elem.
// The result is invalid unless elem is a scalar type.
func List(elem Type) Type {
	t := Type{Kind: KindVariable}
	if elem.Kind == KindScalar {
		t.Elem = elem.Elem
	}

	return t
}

// Tuple returns a fixed-size container of n items of elem.
// The result is invalid unless elem is a scalar type and n > 0.
func Tuple(elem Type, n int) Type {
	t := Type{Kind: KindFixed, Len: n}
	if elem.Kind == KindScalar {
		t.Elem = elem.Elem
	}

	return t
}

// IsContainer reports whether t holds more than one value per slot.
func (t Type) IsContainer() bool {
	return t.Kind == KindFixed || t.Kind == KindVariable
}

// Arity returns the number of values consumed per slot, or -1 if a slot
// accepts one or more values.
func (t Type) Arity() int {
	switch t.Kind {
	case KindScalar:
		return 1
	case KindFixed:
		return t.Len
	case KindVariable:
		return -1
	default:
		return 0
	}
}

// String returns the Go spelling of t, such as "int", "[]string" or
// "[3]float64".
func (t Type) String() string {
	switch t.Kind {
	case KindScalar:
		return t.Elem.String()
	case KindFixed:
		return "[" + strconv.Itoa(t.Len) + "]" + t.Elem.String()
	case KindVariable:
		return "[]" + t.Elem.String()
	default:
		return "invalid"
	}
}

// validate returns [ErrUnsupportedType] unless t has a known coercion and
// arity rule.
func (t Type) validate() error {
	if t.Elem == ElemInvalid || t.Elem > ElemBool {
		return ErrUnsupportedType.With(slog.String("type", t.String()))
	}

	switch t.Kind {
	case KindScalar, KindVariable:
		return nil
	case KindFixed:
		if t.Len > 0 {
			return nil
		}

		return ErrUnsupportedType.With(
			slog.String("type", t.String()),
			slog.String("reason", "tuple length must be positive"),
		)
	default:
		return ErrUnsupportedType.With(slog.String("type", t.String()))
	}
}

// ParseType parses the Go-style spelling of a field type.
//
// Recognized scalars are "int", "float" (or "float64"), "string" (or "str"),
// and "bool". A scalar prefixed with "[]" is a [List]; prefixed with "[n]" it
// is a [Tuple] of length n.
func ParseType(s string) (Type, error) {
	text := strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(text, "[]"):
		elem, err := parseElem(text[2:])
		if err != nil {
			return Type{}, err
		}

		return List(elem), nil

	case strings.HasPrefix(text, "["):
		end := strings.IndexByte(text, ']')
		if end < 0 {
			return Type{}, ErrUnsupportedType.With(slog.String("type", s))
		}

		n, err := strconv.Atoi(strings.TrimSpace(text[1:end]))
		if err != nil || n < 1 {
			return Type{}, ErrUnsupportedType.With(
				slog.String("type", s),
				slog.String("reason", "tuple length must be a positive integer"),
			)
		}

		elem, err := parseElem(text[end+1:])
		if err != nil {
			return Type{}, err
		}

		return Tuple(elem, n), nil

	default:
		return parseElem(text)
	}
}

func parseElem(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int":
		return Int, nil
	case "float", "float64":
		return Float, nil
	case "string", "str":
		return String, nil
	case "bool":
		return Bool, nil
	default:
		return Type{}, ErrUnsupportedType.With(slog.String("type", s))
	}
}
