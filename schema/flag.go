package schema

import (
	"fmt"
	"log/slog"
	"strings"
)

// Registration is a schema registered on a [Parser] under a destination name.
type Registration struct {
	schema *Schema
	dest   string
	count  int
	prefix string
}

// Schema returns the registered schema.
func (r *Registration) Schema() *Schema { return r.schema }

// Dest returns the destination name.
func (r *Registration) Dest() string { return r.dest }

// Count returns the number of instances built for the registration.
func (r *Registration) Count() int { return r.count }

// destinations returns one Destination per schema field, in field order.
func (r *Registration) destinations() []Destination {
	out := make([]Destination, len(r.schema.fields))
	for i, f := range r.schema.fields {
		out[i] = Destination{Dest: r.dest, Field: f.Name}
	}

	return out
}

// Flag is the command-line flag synthesized for one [Destination].
//
// A flag accepts zero slots (every instance gets the default), one slot
// (broadcast to every instance) or Count slots (one per instance, in order).
type Flag struct {
	Dest     Destination
	Name     string // long name, without leading dashes
	Help     string
	Type     Type
	Required bool
	Count    int // instances of the registration
	Default  any // normalized default, nil if Required

	field *field
}

// Placeholder returns the value placeholder shown in help, such as "INT",
// "FLOAT FLOAT" or "STRING ...".
func (f Flag) Placeholder() string {
	elem := strings.ToUpper(f.Type.Elem.String())
	if f.Type.Elem == ElemFloat {
		elem = "FLOAT"
	}

	switch f.Type.Kind {
	case KindFixed:
		return strings.TrimSpace(strings.Repeat(elem+" ", f.Type.Len))
	case KindVariable:
		return elem + " ..."
	default:
		return elem
	}
}

// Usage returns the help text with the accepted shape and default appended.
func (f Flag) Usage() string {
	var parts []string

	if f.Help != "" {
		parts = append(parts, f.Help)
	}

	if f.Count > 1 {
		unit := "value"
		if f.Type.IsContainer() {
			unit = "set"
		}

		parts = append(parts, fmt.Sprintf("(1 %s for all, or %d %ss, one per instance)", unit, f.Count, unit))
	}

	if f.Required {
		parts = append(parts, "(required)")
	} else {
		parts = append(parts, fmt.Sprintf("(default: %v)", f.Default))
	}

	return strings.Join(parts, " ")
}

// LogValue implements slog.LogValuer.
func (f Flag) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("flag", "--"+f.Name),
		slog.String("dest", f.Dest.String()),
		slog.String("type", f.Type.String()),
		slog.Bool("required", f.Required),
		slog.Int("count", f.Count),
	)
}

// helpFlag is reserved for help output.
const helpFlag = "help"

// synthesize returns the flags of every registration in order, naming each
// and rejecting two flags with the same name.
func synthesize(regs []*Registration, autoPrefix bool) ([]Flag, error) {
	// Count how many registrations use each field name.
	used := make(map[string]int)

	if autoPrefix {
		for _, r := range regs {
			for _, f := range r.schema.fields {
				used[r.prefix+f.Name]++
			}
		}
	}

	var (
		flags []Flag
		owner = map[string]Destination{
			helpFlag: {Field: helpFlag}, // defined by the dispatcher
		}
	)

	for _, r := range regs {
		for i := range r.schema.fields {
			f := &r.schema.fields[i]
			dst := Destination{Dest: r.dest, Field: f.Name}

			name := r.prefix + f.Name
			if used[name] > 1 {
				name = r.dest + "." + name
			}

			if prev, dup := owner[name]; dup {
				return nil, ErrDuplicateFlag.With(
					slog.String("flag", "--"+name),
					slog.String("dest", dst.String()),
					slog.String("owner", prev.String()),
				)
			}

			owner[name] = dst

			flags = append(flags, Flag{
				Dest:     dst,
				Name:     name,
				Help:     f.Help,
				Type:     f.Type,
				Required: f.IsRequired(),
				Count:    r.count,
				Default:  clone(f.def),
				field:    f,
			})
		}
	}

	return flags, nil
}
