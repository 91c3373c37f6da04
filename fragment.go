package structura

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mudler/structura/schema"
	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"
)

var (
	ErrRefused = errors.New("model refused to produce structured output")
)

// Fragment is a conversation sent to the model.
type Fragment struct {
	Messages       []openai.ChatCompletionMessage
	ParentFragment *Fragment
}

func NewEmptyFragment() Fragment {
	return Fragment{}
}

func NewFragment(messages ...openai.ChatCompletionMessage) Fragment {
	return Fragment{
		Messages: messages,
	}
}

func (r Fragment) AddMessage(role, content string) Fragment {
	r.Messages = append(r.Messages, openai.ChatCompletionMessage{
		Role:    role,
		Content: content,
	})
	return r
}

func (r Fragment) AddStartMessage(role, content string) Fragment {
	r.Messages = append([]openai.ChatCompletionMessage{
		{
			Role:    role,
			Content: content,
		},
	}, r.Messages...)
	return r
}

// ExtractStructure asks the model for output matching target and decodes it.
// With MethodJSONSchema the schema is sent as a strict response format, with
// MethodFunctionCalling the model is forced to call the "json" tool.
func (r Fragment) ExtractStructure(ctx context.Context, llm LLM, target *schema.Target, method Method, strict bool) (*schema.Instance, error) {
	messages := slices.Clone(r.Messages)
	strict = strict && target.StrictCompatible()

	request := openai.ChatCompletionRequest{
		Messages: messages,
	}

	switch method {
	case MethodJSONSchema, "":
		def := target.Definition()
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        target.Identifier(),
				Description: target.Description(),
				Schema:      &def,
				Strict:      strict,
			},
		}
	case MethodFunctionCalling:
		request.Tools = []openai.Tool{structuredTool(target, strict)}
		request.ToolChoice = structuredToolChoice()
	default:
		return nil, fmt.Errorf("unknown structured output method %q", method)
	}

	resp, err := llm.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) != 1 {
		return nil, fmt.Errorf("no choices: %d", len(resp.Choices))
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return nil, fmt.Errorf("%w: %s", ErrRefused, msg.Refusal)
	}

	raw := msg.Content
	if method == MethodFunctionCalling {
		if len(msg.ToolCalls) == 0 {
			return nil, fmt.Errorf("no tool calls: %d", len(msg.ToolCalls))
		}
		raw = msg.ToolCalls[0].Function.Arguments
	}

	xlog.Debug("Structured output received", "schema", target.Name(), "method", method, "raw", raw)

	return target.Decode([]byte(raw))
}

func (f Fragment) String() string {
	var str strings.Builder
	for _, msg := range f.Messages {
		str.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		if len(msg.ToolCalls) > 0 {
			for _, tool := range msg.ToolCalls {
				str.WriteString(fmt.Sprintf("  Tool call: %s(%s)\n", tool.Function.Name, tool.Function.Arguments))
			}
		}
	}

	return str.String()
}

func (f Fragment) LastMessage() *openai.ChatCompletionMessage {
	if len(f.Messages) == 0 {
		return nil
	}
	return &f.Messages[len(f.Messages)-1]
}
