package schema

import (
	"log/slog"
)

// build assembles the instances of r from the flags synthesized for its
// fields and the occurrences dispatched to each, both in field order.
//
// Every field is distributed and every check is run before any instance is
// returned.
func (r *Registration) build(flags []Flag, raw []occurrences) ([]Instance, error) {
	columns := make([][]any, len(flags))

	for i := range flags {
		col, err := flags[i].distribute(raw[i])
		if err != nil {
			return nil, err
		}

		columns[i] = col
	}

	instances := make([]Instance, r.count)

	for n := range instances {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = col[n]
		}

		inst := Instance{schema: r.schema, values: values}

		env := inst.env()
		for i := range r.schema.fields {
			if err := r.schema.fields[i].verify(env); err != nil {
				return nil, annotate(err,
					slog.String("dest", r.dest),
					slog.Int("instance", n),
				)
			}
		}

		instances[n] = inst
	}

	return instances, nil
}
