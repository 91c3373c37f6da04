package schema

import (
	"fmt"
	"slices"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Record is the runtime record type built from an output schema.
// It lives for a single invocation.
type Record struct {
	fields []Field
}

// Build turns an ordered field list into a Record. Names must be
// identifiers and unique within the record.
func Build(fields []Field) (*Record, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !identifier.MatchString(f.Name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldName, f.Name)
		}
		if _, ok := kindNames[f.Kind]; !ok {
			return nil, fmt.Errorf("field %q: %w: %s", f.Name, ErrUnsupportedType, f.Kind)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	return &Record{fields: slices.Clone(fields)}, nil
}

// BuildFromSpecs is ParseFields followed by Build.
func BuildFromSpecs(specs []FieldSpec) (*Record, error) {
	fields, err := ParseFields(specs)
	if err != nil {
		return nil, err
	}
	return Build(fields)
}

func (r *Record) Fields() []Field {
	return slices.Clone(r.fields)
}

// Names returns the field names in declaration order.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		names = append(names, f.Name)
	}
	return names
}

// Definition returns the object schema enforced for one record.
// Every field is required and no extra properties are allowed.
func (r *Record) Definition() jsonschema.Definition {
	props := make(map[string]jsonschema.Definition, len(r.fields))
	for _, f := range r.fields {
		props[f.Name] = f.Definition()
	}
	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           props,
		Required:             r.Names(),
		AdditionalProperties: false,
	}
}

// FreeForm reports whether a field holds an unconstrained list or mapping.
func (r *Record) FreeForm() bool {
	for _, f := range r.fields {
		if f.Kind == KindList || f.Kind == KindMapping {
			return true
		}
	}
	return false
}
