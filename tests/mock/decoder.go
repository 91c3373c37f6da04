package mock

import (
	"context"
	"fmt"

	. "github.com/mudler/structura"
	"github.com/mudler/structura/schema"
)

// MockStructuredLLM implements SupportsStructuredDecoding without a model.
// Each Invoke decodes the next queued document against the bound target,
// or returns the next queued raw value as is.
type MockStructuredLLM struct {
	Documents []string
	Raw       []any
	Err       error

	Targets []*schema.Target
	Inputs  []string
	Configs []RunConfig
	Options []*Options
}

func NewMockStructuredLLM() *MockStructuredLLM {
	return &MockStructuredLLM{}
}

// AddDocument queues a JSON document the "model" replies with.
func (m *MockStructuredLLM) AddDocument(doc string) {
	m.Documents = append(m.Documents, doc)
}

// AddRaw queues a value returned without decoding.
func (m *MockStructuredLLM) AddRaw(v any) {
	m.Raw = append(m.Raw, v)
}

// Calls is the number of Invoke calls seen so far.
func (m *MockStructuredLLM) Calls() int {
	return len(m.Inputs)
}

func (m *MockStructuredLLM) WithStructuredOutput(target *schema.Target, opts ...Option) (StructuredDecoder, error) {
	o := &Options{}
	o.Apply(opts...)
	m.Targets = append(m.Targets, target)
	m.Options = append(m.Options, o)
	return &mockDecoder{llm: m, target: target}, nil
}

type mockDecoder struct {
	llm    *MockStructuredLLM
	target *schema.Target
}

func (d *mockDecoder) Invoke(ctx context.Context, input string, cfg RunConfig) (any, error) {
	m := d.llm
	m.Inputs = append(m.Inputs, input)
	m.Configs = append(m.Configs, cfg)

	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Raw) > 0 {
		v := m.Raw[0]
		m.Raw = m.Raw[1:]
		return v, nil
	}
	if len(m.Documents) == 0 {
		return nil, fmt.Errorf("no more documents configured")
	}
	doc := m.Documents[0]
	m.Documents = m.Documents[1:]

	inst, err := d.target.Decode([]byte(doc))
	if err != nil {
		return nil, err
	}
	return inst, nil
}
