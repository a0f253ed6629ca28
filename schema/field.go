package schema

import (
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/expr-lang/expr/vm"
)

// Field declares one named, typed member of a [Schema].
//
// Construct fields with [Required] or [Optional]; the zero Field is invalid.
type Field struct {
	Name  string
	Type  Type
	Help  string
	Check string // expr-lang condition, see [Field.Where]

	def        any
	hasDefault bool
}

// Required declares a field without a default value.
// Parsing fails with [ErrMissingRequired] when no value is given for it.
func Required(name string, t Type) Field {
	return Field{Name: name, Type: t}
}

// Optional declares a field whose value is def when no value is given.
// The default is converted to the Go representation of t when the schema is
// built.
func Optional(name string, t Type, def any) Field {
	return Field{Name: name, Type: t, def: def, hasDefault: true}
}

// Describe returns a copy of f with help text for the synthesized flag.
func (f Field) Describe(help string) Field {
	f.Help = help

	return f
}

// Where returns a copy of f that every built instance must satisfy.
//
// The condition is an expr-lang expression that must yield a bool. It sees
// every field of the schema by name, and this field's own value as "value".
// A schema with a field named "value" may only check that field.
func (f Field) Where(cond string) Field {
	f.Check = cond

	return f
}

// Default returns the default value of f and whether it has one.
func (f Field) Default() (any, bool) {
	return clone(f.def), f.hasDefault
}

// IsRequired reports whether f has no default.
func (f Field) IsRequired() bool { return !f.hasDefault }

// field is a resolved [Field], cached by its [Schema].
type field struct {
	Field

	index   int         // position within the schema
	goIndex []int       // struct field index when derived by [Of]
	check   *vm.Program // compiled Check, nil if none
}

// resolve validates f and normalizes its default.
func resolve(index int, f Field) (field, error) {
	if err := validName(f.Name); err != nil {
		return field{}, err
	}

	attr := slog.String("field", f.Name)

	if err := f.Type.validate(); err != nil {
		return field{}, annotate(err, attr)
	}

	if f.hasDefault {
		def, err := f.Type.normalize(f.def)
		if err != nil {
			if !errors.Is(err, ErrInvalidDefault) {
				err = ErrInvalidDefault.Wrap(err)
			}

			return field{}, annotate(err, attr)
		}

		f.def = def
	}

	return field{Field: f, index: index}, nil
}

// validName rejects names that cannot be spelled as a long flag.
func validName(name string) error {
	switch {
	case name == "":
		return ErrInvalidField.With(slog.String("reason", "empty name"))
	case strings.HasPrefix(name, "-"):
		return ErrInvalidField.With(
			slog.String("field", name),
			slog.String("reason", "name must not start with '-'"),
		)
	case strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '='
	}):
		return ErrInvalidField.With(
			slog.String("field", name),
			slog.String("reason", "name must not contain spaces or '='"),
		)
	}

	return nil
}
