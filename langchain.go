package structura

import (
	"context"
	"fmt"

	"github.com/mudler/structura/schema"
	"github.com/mudler/xlog"
	"github.com/tmc/langchaingo/llms"
)

// LangchainLLM adapts a langchaingo model. Backends without native schema
// enforcement are asked for JSON and the result is checked against the
// target schema before it is returned.
type LangchainLLM struct {
	model llms.Model
}

func NewLangchainLLM(model llms.Model) *LangchainLLM {
	return &LangchainLLM{model: model}
}

func (l *LangchainLLM) WithStructuredOutput(target *schema.Target, opts ...Option) (StructuredDecoder, error) {
	if target == nil {
		return nil, fmt.Errorf("target cannot be nil")
	}
	o := defaultOptions()
	o.Apply(opts...)

	if o.Method != MethodJSONSchema && o.Method != MethodFunctionCalling {
		return nil, fmt.Errorf("unknown structured output method %q", o.Method)
	}

	return &langchainDecoder{model: l.model, target: target, opts: o}, nil
}

type langchainDecoder struct {
	model  llms.Model
	target *schema.Target
	opts   *Options
}

func (d *langchainDecoder) Invoke(ctx context.Context, input string, cfg RunConfig) (any, error) {
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

func (d *langchainDecoder) invoke(ctx context.Context, input string) (*schema.Instance, error) {
	system, err := renderSystemPrompt(d.opts, d.target)
	if err != nil {
		return nil, err
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, input),
	}

	var callOpts []llms.CallOption
	if d.opts.Method == MethodFunctionCalling {
		tool := structuredTool(d.target, d.opts.Strict)
		callOpts = append(callOpts, llms.WithTools([]llms.Tool{
			{
				Type: "function",
				Function: &llms.FunctionDefinition{
					Name:        tool.Function.Name,
					Description: tool.Function.Description,
					Parameters:  tool.Function.Parameters,
				},
			},
		}))
	} else {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := d.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) != 1 {
		return nil, fmt.Errorf("no choices: %d", len(resp.Choices))
	}

	choice := resp.Choices[0]
	raw := choice.Content
	if d.opts.Method == MethodFunctionCalling {
		if len(choice.ToolCalls) == 0 || choice.ToolCalls[0].FunctionCall == nil {
			return nil, fmt.Errorf("no tool calls: %d", len(choice.ToolCalls))
		}
		raw = choice.ToolCalls[0].FunctionCall.Arguments
	}

	xlog.Debug("Structured output received", "schema", d.target.Name(), "method", d.opts.Method, "raw", raw)

	return d.target.Decode([]byte(raw))
}
