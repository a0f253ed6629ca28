package schema

import (
	"log/slog"
)

// slots splits the occurrences collected for f into distribution slots.
//
// raw holds the tokens that followed each occurrence of the flag, and is nil
// when the flag was absent. A slot is one value for a scalar, one group of
// Len values for a tuple, and one occurrence for a list.
func (f *Flag) slots(raw [][]string) ([][]string, error) {
	if raw == nil {
		return nil, nil
	}

	switch f.Type.Kind {
	case KindScalar:
		var out [][]string

		for _, occ := range raw {
			if len(occ) == 0 {
				// A bare boolean flag means true.
				if f.Type.Elem == ElemBool {
					out = append(out, []string{"true"})

					continue
				}

				return nil, f.missing()
			}

			for _, tok := range occ {
				out = append(out, []string{tok})
			}
		}

		return out, nil

	case KindFixed:
		var all []string
		for _, occ := range raw {
			all = append(all, occ...)
		}

		if len(all) == 0 {
			return nil, f.missing()
		}

		if len(all)%f.Type.Len != 0 {
			return nil, ErrArity.With(append(flagAttrs(f),
				slog.String("type", f.Type.String()),
				slog.Int("want", f.Type.Len),
				slog.Int("got", len(all)),
			)...)
		}

		out := make([][]string, 0, len(all)/f.Type.Len)
		for i := 0; i < len(all); i += f.Type.Len {
			out = append(out, all[i:i+f.Type.Len])
		}

		return out, nil

	case KindVariable:
		out := make([][]string, len(raw))

		for i, occ := range raw {
			if len(occ) == 0 {
				// An empty occurrence of a defaulted list is an empty list.
				if f.Required {
					return nil, f.missing()
				}

				occ = []string{}
			}

			out[i] = occ
		}

		return out, nil

	default:
		return nil, ErrUnsupportedType.With(append(flagAttrs(f),
			slog.String("type", f.Type.String()))...)
	}
}

// missing returns the error for a flag that received no value.
//
// A defaulted scalar or tuple named without values is an arity error; every
// other case is a missing required argument.
func (f *Flag) missing() error {
	if f.Required {
		return ErrMissingRequired.With(flagAttrs(f)...)
	}

	return ErrArity.With(append(flagAttrs(f),
		slog.Int("want", max(f.Type.Arity(), 1)),
		slog.Int("got", 0),
	)...)
}

// distribute coerces the values collected for f and fans them out to
// f.Count instances: the default when there are none, one slot broadcast to
// all, or one slot per instance in input order.
func (f *Flag) distribute(raw [][]string) ([]any, error) {
	slots, err := f.slots(raw)
	if err != nil {
		return nil, err
	}

	out := make([]any, f.Count)

	switch len(slots) {
	case 0:
		if f.Required {
			return nil, ErrMissingRequired.With(flagAttrs(f)...)
		}

		for i := range out {
			out[i] = clone(f.field.def)
		}

	case 1:
		v, err := f.Type.coerce(slots[0])
		if err != nil {
			return nil, annotate(err, flagAttrs(f)...)
		}

		for i := range out {
			out[i] = clone(v)
		}

	case f.Count:
		for i, slot := range slots {
			v, err := f.Type.coerce(slot)
			if err != nil {
				return nil, annotate(err, append(flagAttrs(f), slog.Int("instance", i))...)
			}

			out[i] = v
		}

	default:
		return nil, &MismatchError{
			Dest: f.Dest,
			Flag: f.Name,
			Want: f.Count,
			Got:  len(slots),
		}
	}

	return out, nil
}
