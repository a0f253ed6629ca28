package schema

import (
	"iter"
	"log/slog"
	"reflect"
)

// Schema is an ordered set of resolved fields describing one configuration
// object. A Schema is immutable once built and safe for concurrent use.
type Schema struct {
	name   string
	fields []field
	index  map[string]int
	goType reflect.Type // struct type when derived by [Of], nil otherwise
}

// New resolves fields into a Schema named name.
//
// Each field type is classified, each default normalized, and each check
// compiled exactly once, here. Field names must be unique.
func New(name string, fields ...Field) (*Schema, error) {
	if name == "" {
		return nil, ErrInvalidField.With(slog.String("reason", "empty schema name"))
	}

	s := &Schema{
		name:   name,
		fields: make([]field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			return nil, ErrInvalidField.With(
				slog.String("schema", name),
				slog.String("field", f.Name),
				slog.String("reason", "duplicate field name"),
			)
		}

		rf, err := resolve(i, f)
		if err != nil {
			return nil, annotate(err, slog.String("schema", name))
		}

		s.index[f.Name] = i
		s.fields = append(s.fields, rf)
	}

	if err := compileChecks(s.fields); err != nil {
		return nil, annotate(err, slog.String("schema", name))
	}

	return s, nil
}

// MustNew is like [New] but panics on error.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns the declaration of the named field.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}

	return s.fields[i].Field, true
}

// Fields returns an iterator over the field declarations in order.
// Defaults are reported in their normalized form.
func (s *Schema) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, f := range s.fields {
			if !yield(f.Field) {
				return
			}
		}
	}
}

// GoType returns the struct type the schema was derived from by [Of], or nil.
func (s *Schema) GoType() reflect.Type { return s.goType }

// LogValue implements slog.LogValuer.
func (s *Schema) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(s.fields))
	for _, f := range s.fields {
		attrs = append(attrs, slog.String(f.Name, f.Type.String()))
	}

	return slog.GroupValue(
		slog.String("name", s.name),
		slog.Any("fields", slog.GroupValue(attrs...)),
	)
}
