package structura

const (
	DisplayName = "Structured Output"
	Description = "A component for structured output."

	// OutputStructuredOutput is the name of the node's only output.
	OutputStructuredOutput = "structured_output"
)

// InputKind is the widget a host uses to bind an input.
type InputKind string

const (
	InputHandle      InputKind = "handle"
	InputMessageText InputKind = "message_text"
	InputString      InputKind = "str"
	InputTable       InputKind = "table"
	InputBool        InputKind = "bool"
)

type TableColumn struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Input struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name"`
	Kind        InputKind     `json:"kind"`
	Info        string        `json:"info,omitempty"`
	InputTypes  []string      `json:"input_types,omitempty"`
	TableSchema []TableColumn `json:"table_schema,omitempty"`
}

type Output struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Method      string `json:"method"`
}

// Component describes the node to a host registry.
type Component struct {
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Inputs      []Input  `json:"inputs"`
	Outputs     []Output `json:"outputs"`
}

// ComponentSpec returns the inputs and outputs of the Structured Output node.
func ComponentSpec() Component {
	return Component{
		DisplayName: DisplayName,
		Description: Description,
		Inputs: []Input{
			{
				Name:        "llm",
				DisplayName: "Language Model",
				Kind:        InputHandle,
				Info:        "The language model to use to generate the structured output.",
				InputTypes:  []string{"LanguageModel"},
			},
			{
				Name:        "input_value",
				DisplayName: "Input message",
				Kind:        InputMessageText,
			},
			{
				Name:        "schema_name",
				DisplayName: "Schema Name",
				Kind:        InputString,
				Info:        "Provide a name for the output data schema.",
			},
			{
				Name:        "output_schema",
				DisplayName: "Output Schema",
				Kind:        InputTable,
				Info:        "Define the structure and data types for the model's output.",
				TableSchema: []TableColumn{
					{
						Name:        "name",
						DisplayName: "Name",
						Type:        "str",
						Description: "Specify the name of the output field.",
					},
					{
						Name:        "description",
						DisplayName: "Description",
						Type:        "str",
						Description: "Describe the purpose of the output field.",
					},
					{
						Name:        "type",
						DisplayName: "Type",
						Type:        "str",
						Description: "Indicate the data type of the output field (e.g., str, int, float, bool, list, dict).",
					},
					{
						Name:        "multiple",
						DisplayName: "Multiple",
						Type:        "bool",
						Description: "Set to True if this output field should be a list of the specified type.",
					},
				},
			},
			{
				Name:        "multiple",
				DisplayName: "Generate Multiple",
				Kind:        InputBool,
				Info:        "Set to True if the model should generate a list of outputs instead of a single output.",
			},
		},
		Outputs: []Output{
			{
				Name:        OutputStructuredOutput,
				DisplayName: "Structured Output",
				Method:      "BuildStructuredOutput",
			},
		},
	}
}
