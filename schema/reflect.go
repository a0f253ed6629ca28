package schema

import (
	"fmt"
	"iter"
	"log/slog"
	"reflect"

	"github.com/iancoleman/strcase"
)

// Struct tags recognized by [Of].
const (
	tagFlag     = "flag"     // flag name; "-" skips the field
	tagDefault  = "default"  // default value, parsed like a command-line token
	tagOptional = "optional" // present: default is the Go zero value
	tagHelp     = "help"     // help text
	tagCheck    = "check"    // expr-lang condition, see [Field.Where]
)

// Of derives a Schema named name from the exported fields of struct type T.
//
// A field is named by its flag tag, or by the kebab-case of its Go name. It
// is optional when tagged default or optional, and required otherwise:
//
//	type Train struct {
//		Epochs int       `default:"10" help:"Training epochs."`
//		Rate   float64   `flag:"lr" default:"0.01"`
//		Layers []int     `check:"len(value) > 0"`
//		Shape  [2]int    `optional:""`
//		Debug  bool      `flag:"-"`
//	}
//
// Supported Go types are the integer kinds, float32 and float64, string,
// bool, and slices or arrays of those. Other types fail with
// [ErrUnsupportedType].
func Of[T any](name string) (*Schema, error) {
	return FromType(reflect.TypeFor[T](), name)
}

// FromType is like [Of] for a struct type known only at run time.
func FromType(t reflect.Type, name string) (*Schema, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, ErrUnsupportedType.With(
			slog.String("schema", name),
			slog.String("go", goTypeName(t)),
			slog.String("reason", "schema must be derived from a struct"),
		)
	}

	var (
		fields []Field
		index  [][]int
	)

	for sf := range fieldsOf(t) {
		tag := sf.Tag.Get(tagFlag)
		if tag == "-" {
			continue
		}

		flagName := tag
		if flagName == "" {
			flagName = strcase.ToKebab(sf.Name)
		}

		ft, err := typeOf(sf.Type)
		if err != nil {
			return nil, annotate(err, slog.String("field", sf.Name))
		}

		var f Field

		if def, ok := sf.Tag.Lookup(tagDefault); ok {
			f = Optional(flagName, ft, def)
		} else if _, ok := sf.Tag.Lookup(tagOptional); ok {
			f = Optional(flagName, ft, reflect.Zero(sf.Type).Interface())
		} else {
			f = Required(flagName, ft)
		}

		fields = append(fields,
			f.Describe(sf.Tag.Get(tagHelp)).Where(sf.Tag.Get(tagCheck)))
		index = append(index, sf.Index)
	}

	s, err := New(name, fields...)
	if err != nil {
		return nil, err
	}

	s.goType = t

	for i := range s.fields {
		f := &s.fields[i]
		f.goIndex = index[i]

		// Defaults must fit the Go field they decode into.
		if f.hasDefault {
			dst := reflect.New(t.FieldByIndex(f.goIndex).Type).Elem()
			if err := assign(dst, f.def); err != nil {
				return nil, ErrInvalidDefault.Wrap(err).With(slog.String("field", f.Name))
			}
		}
	}

	return s, nil
}

// fieldsOf yields the exported, non-embedded fields of struct type t.
func fieldsOf(t reflect.Type) iter.Seq[reflect.StructField] {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() || sf.Anonymous {
				continue
			}

			if !yield(sf) {
				return
			}
		}
	}
}

// typeOf maps a Go type onto a field [Type].
func typeOf(t reflect.Type) (Type, error) {
	switch t.Kind() {
	case reflect.Slice:
		elem, err := elemOf(t.Elem())
		if err != nil {
			return Type{}, err
		}

		return List(elem), nil

	case reflect.Array:
		elem, err := elemOf(t.Elem())
		if err != nil {
			return Type{}, err
		}

		return Tuple(elem, t.Len()), nil

	default:
		return elemOf(t)
	}
}

func elemOf(t reflect.Type) (Type, error) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int, nil
	case reflect.Float32, reflect.Float64:
		return Float, nil
	case reflect.String:
		return String, nil
	case reflect.Bool:
		return Bool, nil
	default:
		return Type{}, ErrUnsupportedType.With(slog.String("go", t.String()))
	}
}

func goTypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}

// Decode binds inst onto a new value of T.
//
// The schema of inst must have been derived from T by [Of]; otherwise Decode
// fails with [ErrSchemaMismatch].
func Decode[T any](inst Instance) (T, error) {
	var out T

	err := decodeInto(reflect.ValueOf(&out).Elem(), inst)

	return out, err
}

// DecodeAll binds each instance onto a new value of T, in order.
func DecodeAll[T any](instances []Instance) ([]T, error) {
	out := make([]T, len(instances))

	for i, inst := range instances {
		v, err := Decode[T](inst)
		if err != nil {
			return nil, annotate(err, slog.Int("instance", i))
		}

		out[i] = v
	}

	return out, nil
}

func decodeInto(dst reflect.Value, inst Instance) error {
	if inst.schema == nil || inst.schema.goType != dst.Type() {
		name := "<nil>"
		if inst.schema != nil {
			name = inst.schema.name
		}

		return ErrSchemaMismatch.With(
			slog.String("schema", name),
			slog.String("go", dst.Type().String()),
		)
	}

	for i, f := range inst.schema.fields {
		target := dst.FieldByIndex(f.goIndex)
		if err := assign(target, inst.values[i]); err != nil {
			return annotate(err, slog.String("field", f.Name))
		}
	}

	return nil
}

// assign stores v, a value in the Go representation of a field Type, into
// target, converting scalars to the target's own kind.
func assign(target reflect.Value, v any) error {
	src := reflect.ValueOf(v)
	if !src.IsValid() {
		target.SetZero()

		return nil
	}

	switch target.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(target.Type(), src.Len(), src.Len())
		for i := range src.Len() {
			if err := assign(out.Index(i), src.Index(i).Interface()); err != nil {
				return err
			}
		}

		target.Set(out)

	case reflect.Array:
		if src.Len() != target.Len() {
			return ErrArity.With(
				slog.Int("want", target.Len()),
				slog.Int("got", src.Len()),
			)
		}

		for i := range src.Len() {
			if err := assign(target.Index(i), src.Index(i).Interface()); err != nil {
				return err
			}
		}

	default:
		if !src.Type().ConvertibleTo(target.Type()) {
			return ErrSchemaMismatch.With(
				slog.String("go", target.Type().String()),
				slog.String("value", src.Type().String()),
			)
		}

		if err := checkRange(target, src); err != nil {
			return err
		}

		target.Set(src.Convert(target.Type()))
	}

	return nil
}

// checkRange rejects numeric values that would not survive conversion to the
// kind of target, such as 300 into uint8 or -1 into uint.
func checkRange(target, src reflect.Value) error {
	var overflow bool

	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		overflow = src.CanInt() && target.OverflowInt(src.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		overflow = src.CanInt() && (src.Int() < 0 || target.OverflowUint(uint64(src.Int())))
	case reflect.Float32:
		overflow = src.CanFloat() && target.OverflowFloat(src.Float())
	}

	if overflow {
		return ErrCoercion.With(
			slog.String("token", fmt.Sprint(src.Interface())),
			slog.String("type", target.Type().String()),
		)
	}

	return nil
}
