package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

const (
	// EnvelopeField is the single field of the list envelope.
	EnvelopeField = "objects"

	// DefaultName names an unwrapped target when the caller gave none.
	DefaultName = "OutputModel"
)

var invalidNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Target is the type the model output is decoded into: either a Record,
// or an envelope holding a list of Records under "objects".
type Target struct {
	name     string
	record   *Record
	envelope bool

	compiled *gojsonschema.Schema
}

// NewTarget wraps rec in a list envelope named after name when multiple is
// set. Without multiple the record itself is the target.
func NewTarget(name string, rec *Record, multiple bool) (*Target, error) {
	if rec == nil {
		return nil, ErrNoFields
	}
	name = strings.TrimSpace(name)
	if multiple && name == "" {
		return nil, ErrEmptyName
	}
	if name == "" {
		name = DefaultName
	}
	return &Target{name: name, record: rec, envelope: multiple}, nil
}

func (t *Target) Name() string { return t.name }

// Identifier is Name reduced to the characters model APIs accept for schema names.
func (t *Target) Identifier() string {
	id := invalidNameChars.ReplaceAllString(t.name, "_")
	if len(id) > 64 {
		id = id[:64]
	}
	return id
}

func (t *Target) Record() *Record { return t.record }

// Envelope reports whether the record is wrapped in a list.
func (t *Target) Envelope() bool { return t.envelope }

func (t *Target) Description() string {
	if t.envelope {
		return fmt.Sprintf("A list of %s.", t.name)
	}
	return ""
}

// Definition returns the schema the model output must satisfy.
func (t *Target) Definition() jsonschema.Definition {
	inner := t.record.Definition()
	if !t.envelope {
		return inner
	}
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			EnvelopeField: {
				Type:        jsonschema.Array,
				Description: t.Description(),
				Items:       &inner,
			},
		},
		Required:             []string{EnvelopeField},
		AdditionalProperties: false,
	}
}

// StrictCompatible reports whether Definition is accepted by strict
// structured output backends, which require every array to declare its items
// and every object to close its properties.
func (t *Target) StrictCompatible() bool {
	return !t.record.FreeForm()
}

// JSONSchema returns Definition serialized as JSON.
func (t *Target) JSONSchema() ([]byte, error) {
	def := t.Definition()
	return json.Marshal(&def)
}

// Validate checks a raw JSON document against the target schema.
func (t *Target) Validate(raw []byte) error {
	if t.compiled == nil {
		schemaJSON, err := t.JSONSchema()
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
		if err != nil {
			return fmt.Errorf("failed to compile schema: %w", err)
		}
		t.compiled = compiled
	}

	result, err := t.compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}

// Decode validates raw against the target and converts it into an Instance.
// Integers decode to int64, floats to float64.
func (t *Target) Decode(raw []byte) (*Instance, error) {
	if err := t.Validate(raw); err != nil {
		return nil, err
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}

	if !t.envelope {
		obj, err := decodeRecord(t.record, doc)
		if err != nil {
			return nil, err
		}
		return &Instance{target: t, object: obj}, nil
	}

	items, _ := doc[EnvelopeField].([]any)
	objects := make([]*Object, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is %T, not an object", ErrValidation, EnvelopeField, i, item)
		}
		obj, err := decodeRecord(t.record, m)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", EnvelopeField, i, err)
		}
		objects = append(objects, obj)
	}

	obj := NewObject()
	obj.Set(EnvelopeField, objects)
	return &Instance{target: t, object: obj}, nil
}
