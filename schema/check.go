package schema

import (
	"log/slog"
	"maps"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// checkSelf names a field's own value inside its check expression. A schema
// with a field of that name may only check that field.
const checkSelf = "value"

// exemplar returns a value of the Go representation of t, used to type-check
// expressions at compile time.
func exemplar(t Type) any {
	if t.Kind == KindScalar {
		switch t.Elem {
		case ElemInt:
			return 0
		case ElemFloat:
			return 0.0
		case ElemString:
			return ""
		case ElemBool:
			return false
		}
	}

	switch t.Elem {
	case ElemInt:
		return []int{}
	case ElemFloat:
		return []float64{}
	case ElemString:
		return []string{}
	case ElemBool:
		return []bool{}
	}

	return nil
}

// compileChecks compiles every field check against an environment holding
// all fields of the schema.
func compileChecks(fields []field) error {
	env := make(map[string]any, len(fields)+1)
	for _, f := range fields {
		env[f.Name] = exemplar(f.Type)
	}

	_, shadowed := env[checkSelf]

	for i := range fields {
		f := &fields[i]
		if f.Check == "" {
			continue
		}

		// A field named "value" would be hidden by the checked field's own
		// value, except in its own check.
		if shadowed && f.Name != checkSelf {
			return ErrInvalidCheck.With(
				slog.String("field", f.Name),
				slog.String("check", f.Check),
				slog.String("reason", "a field named "+checkSelf+" cannot be referenced from other checks"),
			)
		}

		local := maps.Clone(env)
		local[checkSelf] = exemplar(f.Type)

		program, err := expr.Compile(f.Check, expr.Env(local), expr.AsBool())
		if err != nil {
			return ErrInvalidCheck.Wrap(err).With(
				slog.String("field", f.Name),
				slog.String("check", f.Check),
			)
		}

		f.check = program
	}

	return nil
}

// verify runs the field's check, if any, against the values of one instance
// keyed by field name.
func (f *field) verify(env map[string]any) error {
	if f.check == nil {
		return nil
	}

	local := maps.Clone(env)
	local[checkSelf] = env[f.Name]

	out, err := vm.Run(f.check, local)
	if err != nil {
		return ErrCheckFailed.Wrap(err).With(
			slog.String("field", f.Name),
			slog.String("check", f.Check),
		)
	}

	if ok, _ := out.(bool); !ok {
		return ErrCheckFailed.With(
			slog.String("field", f.Name),
			slog.String("check", f.Check),
		)
	}

	return nil
}
