package structura

import (
	"context"

	"github.com/google/uuid"
	"github.com/mudler/structura/schema"
)

// RunConfig is the host-provided metadata attached to a model invocation.
type RunConfig struct {
	RunName     string
	ProjectName string
	Callbacks   []Callback
}

// RunInfo identifies a single invocation to callbacks.
type RunInfo struct {
	RunID       string
	RunName     string
	ProjectName string
	Schema      string
	Method      Method
}

// Callback observes model invocations. Clients call OnStart before the
// request and exactly one of OnEnd or OnError after it.
type Callback interface {
	OnStart(ctx context.Context, run RunInfo, input string)
	OnEnd(ctx context.Context, run RunInfo, output any)
	OnError(ctx context.Context, run RunInfo, err error)
}

func (c RunConfig) begin(ctx context.Context, method Method, target *schema.Target, input string) RunInfo {
	run := RunInfo{
		RunID:       uuid.NewString(),
		RunName:     c.RunName,
		ProjectName: c.ProjectName,
		Schema:      target.Name(),
		Method:      method,
	}
	for _, cb := range c.Callbacks {
		cb.OnStart(ctx, run, input)
	}
	return run
}

func (c RunConfig) end(ctx context.Context, run RunInfo, output any, err error) {
	for _, cb := range c.Callbacks {
		if err != nil {
			cb.OnError(ctx, run, err)
			continue
		}
		cb.OnEnd(ctx, run, output)
	}
}
