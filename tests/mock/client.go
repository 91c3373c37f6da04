package mock

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// MockOpenAIClient is a ChatCompleter replying with queued responses. It
// records every request it receives.
type MockOpenAIClient struct {
	Responses      []openai.ChatCompletionResponse
	Err            error
	RequestHistory []openai.ChatCompletionRequest
}

func NewMockOpenAIClient() *MockOpenAIClient {
	return &MockOpenAIClient{}
}

func (m *MockOpenAIClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.RequestHistory = append(m.RequestHistory, request)
	if m.Err != nil {
		return openai.ChatCompletionResponse{}, m.Err
	}
	if len(m.Responses) == 0 {
		return openai.ChatCompletionResponse{}, fmt.Errorf("no more responses configured")
	}

	response := m.Responses[0]
	m.Responses = m.Responses[1:]
	return response, nil
}

func (m *MockOpenAIClient) SetCreateChatCompletionResponse(response openai.ChatCompletionResponse) {
	m.Responses = append(m.Responses, response)
}

// AddCreateChatCompletionContent queues an assistant reply, as returned
// for the json_schema response format
func (m *MockOpenAIClient) AddCreateChatCompletionContent(content string) {
	m.SetCreateChatCompletionResponse(
		openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: content,
					},
				},
			},
		})
}

func (m *MockOpenAIClient) AddCreateChatCompletionFunction(name, args string) {
	m.SetCreateChatCompletionResponse(
		openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role: "assistant",
						ToolCalls: []openai.ToolCall{
							{
								Type: openai.ToolTypeFunction,
								Function: openai.FunctionCall{
									Name:      name,
									Arguments: args,
								},
							},
						},
					},
				},
			},
		})
}

func (m *MockOpenAIClient) SetCreateChatCompletionError(err error) {
	m.Err = err
}
