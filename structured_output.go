package structura

import (
	"context"
	"errors"
	"fmt"

	"github.com/mudler/structura/schema"
)

var (
	// ErrStructuredOutputUnsupported is returned when the bound model client
	// does not implement SupportsStructuredDecoding.
	ErrStructuredOutputUnsupported = errors.New("language model does not support structured output")

	// ErrEmptySchema is returned before any schema is built when the node has
	// no output fields.
	ErrEmptySchema = errors.New("output schema cannot be empty")

	// ErrNotValidated is returned when a decoder hands back anything other
	// than an instance of the bound target.
	ErrNotValidated = errors.New("output is not a validated structured record")
)

// Data is the record handed to downstream nodes: field name to value, in
// schema order.
type Data = schema.Object

// StructuredOutput coerces free text into a record of a user-declared schema.
// Fields mirror the inputs bound by the host.
type StructuredOutput struct {
	// LLM is the model client handle. It must implement SupportsStructuredDecoding.
	LLM          any
	InputValue   string
	SchemaName   string
	OutputSchema []schema.FieldSpec
	// Multiple asks for a list of records under "objects".
	Multiple bool
}

// NewStructuredOutput returns a node bound to a client that statically
// provides structured decoding.
func NewStructuredOutput(llm SupportsStructuredDecoding, schemaName string, outputSchema []schema.FieldSpec, multiple bool) *StructuredOutput {
	return &StructuredOutput{
		LLM:          llm,
		SchemaName:   schemaName,
		OutputSchema: outputSchema,
		Multiple:     multiple,
	}
}

// Run sets the input text and builds the structured output.
func (c *StructuredOutput) Run(ctx context.Context, input string, opts ...Option) (*Data, error) {
	c.InputValue = input
	return c.BuildStructuredOutput(ctx, opts...)
}

// BuildStructuredOutput produces the "structured_output" output.
//
// It fails with ErrStructuredOutputUnsupported before contacting the model
// when the client lacks the capability, with ErrEmptySchema before building
// any schema, and with ErrNotValidated when the client returns something
// other than a decoded instance of the requested schema.
func (c *StructuredOutput) BuildStructuredOutput(ctx context.Context, opts ...Option) (*Data, error) {
	o := defaultOptions()
	o.Apply(opts...)

	llm, ok := c.LLM.(SupportsStructuredDecoding)
	if !ok {
		return nil, ErrStructuredOutputUnsupported
	}
	if len(c.OutputSchema) == 0 {
		return nil, ErrEmptySchema
	}

	target, err := c.Target()
	if err != nil {
		return nil, err
	}

	decoder, err := llm.WithStructuredOutput(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to bind structured output: %w", err)
	}

	out, err := decoder.Invoke(ctx, c.InputValue, RunConfig{
		RunName:     o.DisplayName,
		ProjectName: o.ProjectName(),
		Callbacks:   o.Callbacks(),
	})
	if err != nil {
		return nil, err
	}

	return normalizeFor(target, out)
}

// Target builds the schema the model output is decoded into: the record
// built from OutputSchema, wrapped in a list envelope when Multiple is set.
func (c *StructuredOutput) Target() (*schema.Target, error) {
	if len(c.OutputSchema) == 0 {
		return nil, ErrEmptySchema
	}
	rec, err := schema.BuildFromSpecs(c.OutputSchema)
	if err != nil {
		return nil, fmt.Errorf("invalid output schema: %w", err)
	}
	target, err := schema.NewTarget(c.SchemaName, rec, c.Multiple)
	if err != nil {
		return nil, fmt.Errorf("invalid output schema: %w", err)
	}
	return target, nil
}

// Normalize converts a decoded instance into Data.
func Normalize(out any) (*Data, error) {
	inst, ok := out.(*schema.Instance)
	if !ok || inst == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotValidated, out)
	}
	return inst.Object(), nil
}

func normalizeFor(target *schema.Target, out any) (*Data, error) {
	data, err := Normalize(out)
	if err != nil {
		return nil, err
	}
	if out.(*schema.Instance).Target() != target {
		return nil, fmt.Errorf("%w: instance of a different schema", ErrNotValidated)
	}
	return data, nil
}
