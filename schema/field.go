package schema

import (
	"fmt"
	"regexp"

	"github.com/sashabaranov/go-openai/jsonschema"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FieldSpec is one row of the user-declared output schema, as the host hands it over.
type FieldSpec struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	Multiple    bool   `json:"multiple" yaml:"multiple"`
}

// Field is a validated FieldSpec.
type Field struct {
	Name        string
	Description string
	Kind        Kind
	// Multiple turns the field into a sequence of Kind.
	Multiple bool
}

// ParseFields converts raw rows into typed fields. It fails on the first
// row with an unknown type or a name that is not an identifier.
func ParseFields(specs []FieldSpec) ([]Field, error) {
	fields := make([]Field, 0, len(specs))
	for i, spec := range specs {
		if !identifier.MatchString(spec.Name) {
			return nil, fmt.Errorf("field %d: %w: %q", i, ErrInvalidFieldName, spec.Name)
		}
		kind, err := ParseKind(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", spec.Name, err)
		}
		fields = append(fields, Field{
			Name:        spec.Name,
			Description: spec.Description,
			Kind:        kind,
			Multiple:    spec.Multiple,
		})
	}
	return fields, nil
}

// Definition returns the JSON schema of a single field value.
func (f Field) Definition() jsonschema.Definition {
	item := jsonschema.Definition{
		Type: f.Kind.dataType(),
	}
	def := item
	if f.Multiple {
		def = jsonschema.Definition{
			Type:  jsonschema.Array,
			Items: &item,
		}
	}
	def.Description = f.Description
	return def
}
