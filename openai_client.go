package structura

import (
	"context"
	"fmt"

	"github.com/mudler/structura/prompt"
	"github.com/mudler/structura/schema"
	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"
)

// ChatCompleter is the part of the go-openai client used here.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIClient struct {
	model  string
	client ChatCompleter
}

func NewOpenAILLM(model, apiKey, baseURL string) *OpenAIClient {
	return NewOpenAILLMWithClient(model, openaiClient(apiKey, baseURL))
}

// NewOpenAILLMWithClient wraps an existing chat client, for instance one
// configured for Azure or a test double.
func NewOpenAILLMWithClient(model string, client ChatCompleter) *OpenAIClient {
	return &OpenAIClient{
		model:  model,
		client: client,
	}
}

// Ask prompts to the LLM with the provided messages
// and returns a Fragment containing the response
func (llm *OpenAIClient) Ask(ctx context.Context, f Fragment) (Fragment, error) {
	resp, err := llm.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:    llm.model,
			Messages: f.Messages,
		},
	)

	if err == nil && len(resp.Choices) > 0 {
		return Fragment{
			Messages:       append(f.Messages, resp.Choices[0].Message),
			ParentFragment: &f,
		}, nil
	}

	return Fragment{}, err
}

func (llm *OpenAIClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	request.Model = llm.model
	return llm.client.CreateChatCompletion(ctx, request)
}

// WithStructuredOutput binds target to the client. Options select the
// decoding method and prompt overrides.
func (llm *OpenAIClient) WithStructuredOutput(target *schema.Target, opts ...Option) (StructuredDecoder, error) {
	if target == nil {
		return nil, fmt.Errorf("target cannot be nil")
	}
	o := defaultOptions()
	o.Apply(opts...)

	if o.Method != MethodJSONSchema && o.Method != MethodFunctionCalling {
		return nil, fmt.Errorf("unknown structured output method %q", o.Method)
	}

	return &openAIDecoder{llm: llm, target: target, opts: o}, nil
}

type openAIDecoder struct {
	llm    LLM
	target *schema.Target
	opts   *Options
}

func (d *openAIDecoder) Invoke(ctx context.Context, input string, cfg RunConfig) (any, error) {
	run := cfg.begin(ctx, d.opts.Method, d.target, input)

	inst, err := d.invoke(ctx, input)
	if err != nil {
		xlog.Debug("Structured output failed", "run", run.RunID, "schema", d.target.Name(), "error", err)
		cfg.end(ctx, run, nil, err)
		return nil, err
	}

	cfg.end(ctx, run, inst, nil)
	return inst, nil
}

func (d *openAIDecoder) invoke(ctx context.Context, input string) (*schema.Instance, error) {
	system, err := renderSystemPrompt(d.opts, d.target)
	if err != nil {
		return nil, err
	}

	conv := NewEmptyFragment().
		AddMessage("system", system).
		AddMessage("user", input)

	return conv.ExtractStructure(ctx, d.llm, d.target, d.opts.Method, d.opts.Strict)
}

func renderSystemPrompt(o *Options, target *schema.Target) (string, error) {
	promptType := prompt.PromptStructuredOutputType
	if o.Method == MethodFunctionCalling {
		promptType = prompt.PromptFunctionCallingType
	}

	schemaJSON, err := target.JSONSchema()
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	p, err := o.Prompts.GetPrompt(promptType).Render(struct {
		Name     string
		Multiple bool
		Fields   []schema.Field
		Tool     string
		Schema   string
	}{
		Name:     target.Name(),
		Multiple: target.Envelope(),
		Fields:   target.Record().Fields(),
		Tool:     structuredToolName,
		Schema:   string(schemaJSON),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render structured output prompt: %w", err)
	}
	return p, nil
}

func openaiClient(apiKey string, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return openai.NewClientWithConfig(config)
}
