package structura

import (
	"github.com/mudler/structura/prompt"
)

type Options struct {
	Prompts     prompt.PromptMap
	Method      Method
	Strict      bool
	DisplayName string
	ProjectName func() string
	Callbacks   func() []Callback
}

type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Method:      MethodJSONSchema,
		Strict:      true,
		DisplayName: DisplayName,
		ProjectName: func() string { return "" },
		Callbacks:   func() []Callback { return nil },
	}
}

func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

var (
	// DisableStrict drops the "strict" flag from structured requests, for
	// backends that reject it.
	DisableStrict Option = func(o *Options) {
		o.Strict = false
	}
)

// WithMethod sets how structured output is requested from the model
func WithMethod(m Method) func(o *Options) {
	return func(o *Options) {
		o.Method = m
	}
}

// WithPrompt allows to set a custom prompt for a given PromptType
func WithPrompt(t prompt.PromptType, p prompt.Prompt) func(o *Options) {
	return func(o *Options) {
		if o.Prompts == nil {
			o.Prompts = make(prompt.PromptMap)
		}

		o.Prompts[t] = p
	}
}

// WithDisplayName sets the node display name, forwarded as the run name
func WithDisplayName(name string) func(o *Options) {
	return func(o *Options) {
		o.DisplayName = name
	}
}

// WithProjectName sets the accessor for the originating project name
func WithProjectName(fn func() string) func(o *Options) {
	return func(o *Options) {
		if fn != nil {
			o.ProjectName = fn
		}
	}
}

// WithCallbacks sets the accessor for the observability callbacks of the host
func WithCallbacks(fn func() []Callback) func(o *Options) {
	return func(o *Options) {
		if fn != nil {
			o.Callbacks = fn
		}
	}
}
