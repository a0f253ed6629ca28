package schema

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// Document is the YAML form of a [Schema] and its registration settings.
//
//	name: train
//	count: 3
//	fields:
//	  - name: lr
//	    type: float
//	    default: 0.01
//	    help: Learning rate.
//	    check: value > 0
//
// A field is required unless it has a default or is marked optional, in which
// case its default is the zero value of its type.
type Document struct {
	Name   string          `yaml:"name"`
	Count  int             `yaml:"count,omitempty"`
	Prefix string          `yaml:"prefix,omitempty"`
	Fields []DocumentField `yaml:"fields"`
}

// DocumentField is one field of a [Document].
type DocumentField struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Default  any    `yaml:"default,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
	Help     string `yaml:"help,omitempty"`
	Check    string `yaml:"check,omitempty"`
}

// ReadDocument decodes a YAML schema document from r.
// Unknown keys are rejected.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document

	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.Decode(&doc); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}

	if doc.Name == "" {
		return nil, ErrInvalidDocument.With(slog.String("reason", "missing name"))
	}

	if doc.Count < 0 {
		return nil, ErrInvalidDocument.With(
			slog.String("schema", doc.Name),
			slog.Int("count", doc.Count),
		)
	}

	return &doc, nil
}

// Schema builds the Schema the document describes.
func (d *Document) Schema() (*Schema, error) {
	fields := make([]Field, 0, len(d.Fields))

	for _, df := range d.Fields {
		t, err := ParseType(df.Type)
		if err != nil {
			return nil, annotate(err,
				slog.String("schema", d.Name),
				slog.String("field", df.Name),
			)
		}

		var f Field

		switch {
		case df.Default != nil:
			f = Optional(df.Name, t, df.Default)
		case df.Optional:
			f = Optional(df.Name, t, zero(t))
		default:
			f = Required(df.Name, t)
		}

		fields = append(fields, f.Describe(df.Help).Where(df.Check))
	}

	return New(d.Name, fields...)
}

// RegisterOptions returns the registration options the document declares.
func (d *Document) RegisterOptions() []RegisterOption {
	var opts []RegisterOption

	if d.Count > 0 {
		opts = append(opts, WithCount(d.Count))
	}

	if d.Prefix != "" {
		opts = append(opts, WithPrefix(d.Prefix))
	}

	return opts
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf, yaml.IndentSequence(true))
	if err := enc.Encode(d); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}

	if err := enc.Close(); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}

	return buf.Bytes(), nil
}

// DocumentOf returns the document describing s.
func DocumentOf(s *Schema) *Document {
	doc := &Document{
		Name:   s.name,
		Fields: make([]DocumentField, 0, len(s.fields)),
	}

	for _, f := range s.fields {
		doc.Fields = append(doc.Fields, DocumentField{
			Name:     f.Name,
			Type:     f.Type.String(),
			Default:  clone(f.def),
			Optional: f.hasDefault,
			Help:     f.Help,
			Check:    f.Check,
		})
	}

	return doc
}

// zero returns the zero value of the Go representation of t.
func zero(t Type) any {
	if t.Kind == KindFixed {
		switch t.Elem {
		case ElemInt:
			return make([]int, t.Len)
		case ElemFloat:
			return make([]float64, t.Len)
		case ElemString:
			return make([]string, t.Len)
		case ElemBool:
			return make([]bool, t.Len)
		}
	}

	return exemplar(t)
}
