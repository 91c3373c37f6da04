// Package callbacks provides Callback implementations that report model
// invocations to OpenTelemetry and Prometheus.
package callbacks

import (
	"context"
	"sync"

	"github.com/mudler/structura"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/mudler/structura"

// Tracing records one span per invocation.
type Tracing struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

// NewTracing traces with tp, or with the global provider when tp is nil.
func NewTracing(tp trace.TracerProvider) *Tracing {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracing{
		tracer: tp.Tracer(instrumentationName),
		spans:  make(map[string]trace.Span),
	}
}

func (t *Tracing) OnStart(ctx context.Context, run structura.RunInfo, input string) {
	_, span := t.tracer.Start(ctx, spanName(run),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("structura.run_id", run.RunID),
			attribute.String("structura.project", run.ProjectName),
			attribute.String("structura.schema", run.Schema),
			attribute.String("structura.method", string(run.Method)),
			attribute.Int("structura.input_length", len(input)),
		),
	)

	t.mu.Lock()
	t.spans[run.RunID] = span
	t.mu.Unlock()
}

func (t *Tracing) OnEnd(ctx context.Context, run structura.RunInfo, output any) {
	span := t.pop(run.RunID)
	if span == nil {
		return
	}
	span.SetStatus(codes.Ok, "")
	span.End()
}

func (t *Tracing) OnError(ctx context.Context, run structura.RunInfo, err error) {
	span := t.pop(run.RunID)
	if span == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

func (t *Tracing) pop(id string) trace.Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	span, ok := t.spans[id]
	if !ok {
		return nil
	}
	delete(t.spans, id)
	return span
}

func spanName(run structura.RunInfo) string {
	if run.RunName != "" {
		return run.RunName
	}
	return structura.DisplayName
}
