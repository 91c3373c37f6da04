package structura

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mudler/structura/schema"
	"github.com/mudler/xlog"
)

const mcpToolName = OutputStructuredOutput

// FieldArgument is one output schema row as sent by MCP clients.
type FieldArgument struct {
	Name        string `json:"name" jsonschema:"name of the output field, a valid identifier"`
	Description string `json:"description,omitempty" jsonschema:"purpose of the output field"`
	Type        string `json:"type" jsonschema:"data type of the field: str, int, float, bool, list or dict"`
	Multiple    bool   `json:"multiple,omitempty" jsonschema:"whether the field is a list of the given type"`
}

// StructuredOutputArguments are the arguments of the structured_output tool.
type StructuredOutputArguments struct {
	InputValue   string          `json:"input_value" jsonschema:"the text to extract structured data from"`
	SchemaName   string          `json:"schema_name,omitempty" jsonschema:"name of the output data schema"`
	OutputSchema []FieldArgument `json:"output_schema" jsonschema:"fields of the output record"`
	Multiple     bool            `json:"multiple,omitempty" jsonschema:"generate a list of records instead of a single one"`
}

func (a StructuredOutputArguments) specs() []schema.FieldSpec {
	specs := make([]schema.FieldSpec, 0, len(a.OutputSchema))
	for _, f := range a.OutputSchema {
		specs = append(specs, schema.FieldSpec{
			Name:        f.Name,
			Description: f.Description,
			Type:        f.Type,
			Multiple:    f.Multiple,
		})
	}
	return specs
}

// NewMCPServer exposes the Structured Output node as an MCP tool backed by llm.
// Options are applied to every call.
func NewMCPServer(llm SupportsStructuredDecoding, version string, opts ...Option) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "structura", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        mcpToolName,
		Description: Description + " Extracts a record matching output_schema from input_value.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StructuredOutputArguments) (*mcp.CallToolResult, any, error) {
		node := NewStructuredOutput(llm, args.SchemaName, args.specs(), args.Multiple)

		data, err := node.Run(ctx, args.InputValue, opts...)
		if err != nil {
			xlog.Error("structured output tool failed", "error", err)
			return toolError(err), nil, nil
		}

		payload, err := json.Marshal(data)
		if err != nil {
			return toolError(err), nil, nil
		}

		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(payload)}},
			StructuredContent: data.ToMap(),
		}, nil, nil
	})

	return server
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
