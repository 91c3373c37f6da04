package structura

import (
	"github.com/mudler/structura/schema"
	"github.com/sashabaranov/go-openai"
)

const structuredToolName = "json"

// structuredTool is the single tool the model must call under
// MethodFunctionCalling. Its parameters are the target schema. Targets with
// free-form fields are never sent as strict.
func structuredTool(target *schema.Target, strict bool) openai.Tool {
	description := target.Description()
	if description == "" {
		description = "Return the extracted " + target.Name()
	}
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Strict:      strict && target.StrictCompatible(),
			Name:        structuredToolName,
			Description: description,
			Parameters:  target.Definition(),
		},
	}
}

func structuredToolChoice() openai.ToolChoice {
	return openai.ToolChoice{
		Type:     openai.ToolTypeFunction,
		Function: openai.ToolFunction{Name: structuredToolName},
	}
}
