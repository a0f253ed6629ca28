package schema

import (
	"fmt"
	"log/slog"
	"strings"
)

// Destination identifies the flag that writes one field of one registration.
// A Destination is registered at most once per [Parser].
type Destination struct {
	Dest  string // registration name
	Field string // field name within the schema
}

// String returns "dest.field".
func (d Destination) String() string { return d.Dest + "." + d.Field }

// Instance is one populated object conforming to a [Schema].
//
// Instances are values: accessors return copies, so an Instance cannot be
// modified after it is built.
type Instance struct {
	schema *Schema
	values []any
}

// Schema returns the schema inst conforms to.
func (inst Instance) Schema() *Schema { return inst.schema }

// Get returns the value of the named field and whether the field exists.
//
// Values use the Go representation of the field type: int, float64, string,
// bool, or a slice of one of those.
func (inst Instance) Get(name string) (any, bool) {
	if inst.schema == nil {
		return nil, false
	}

	i, ok := inst.schema.index[name]
	if !ok {
		return nil, false
	}

	return clone(inst.values[i]), true
}

// Value returns the value of the named field, or nil if there is none.
func (inst Instance) Value(name string) any {
	v, _ := inst.Get(name)

	return v
}

// Map returns the field values keyed by field name.
func (inst Instance) Map() map[string]any {
	if inst.schema == nil {
		return nil
	}

	m := make(map[string]any, len(inst.values))
	for i, f := range inst.schema.fields {
		m[f.Name] = clone(inst.values[i])
	}

	return m
}

// String returns the schema name followed by the field values in order,
// like "train{epochs=10 lr=0.01}".
func (inst Instance) String() string {
	if inst.schema == nil {
		return "{}"
	}

	var sb strings.Builder

	sb.WriteString(inst.schema.name)
	sb.WriteByte('{')

	for i, f := range inst.schema.fields {
		if i > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprintf(&sb, "%s=%v", f.Name, inst.values[i])
	}

	sb.WriteByte('}')

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (inst Instance) LogValue() slog.Value {
	if inst.schema == nil {
		return slog.GroupValue()
	}

	attrs := make([]slog.Attr, len(inst.values))
	for i, f := range inst.schema.fields {
		attrs[i] = slog.Any(f.Name, inst.values[i])
	}

	return slog.GroupValue(attrs...)
}

// env returns the values keyed by field name for check evaluation.
func (inst Instance) env() map[string]any {
	m := make(map[string]any, len(inst.values)+1)
	for i, f := range inst.schema.fields {
		m[f.Name] = inst.values[i]
	}

	return m
}
