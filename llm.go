package structura

import (
	"context"

	"github.com/mudler/structura/schema"
	"github.com/sashabaranov/go-openai"
)

// Method selects how a client asks the model for structured output.
type Method string

const (
	// MethodJSONSchema uses the "json_schema" response format.
	MethodJSONSchema Method = "json_schema"
	// MethodFunctionCalling forces a single call to a "json" tool whose
	// parameters are the target schema.
	MethodFunctionCalling Method = "function_calling"
)

type LLM interface {
	Ask(ctx context.Context, f Fragment) (Fragment, error)
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SupportsStructuredDecoding is implemented by model clients that can bind a
// target schema and return decoded, validated output for it.
type SupportsStructuredDecoding interface {
	WithStructuredOutput(target *schema.Target, opts ...Option) (StructuredDecoder, error)
}

// StructuredDecoder runs one request against a bound target. A successful
// Invoke returns a *schema.Instance.
type StructuredDecoder interface {
	Invoke(ctx context.Context, input string, cfg RunConfig) (any, error)
}
