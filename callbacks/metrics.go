package callbacks

import (
	"context"
	"sync"
	"time"

	"github.com/mudler/structura"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts invocations and observes their latency.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	mu      sync.Mutex
	started map[string]time.Time
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "structura",
			Name:      "invocations_total",
			Help:      "Structured output invocations by schema, method and status.",
		}, []string{"schema", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "structura",
			Name:      "invocation_duration_seconds",
			Help:      "Latency of structured output invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"schema", "method"}),
		started: make(map[string]time.Time),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Requests exposes the invocation counter.
func (m *Metrics) Requests() *prometheus.CounterVec { return m.requests }

func (m *Metrics) OnStart(ctx context.Context, run structura.RunInfo, input string) {
	m.mu.Lock()
	m.started[run.RunID] = time.Now()
	m.mu.Unlock()
}

func (m *Metrics) OnEnd(ctx context.Context, run structura.RunInfo, output any) {
	m.observe(run, "ok")
}

func (m *Metrics) OnError(ctx context.Context, run structura.RunInfo, err error) {
	m.observe(run, "error")
}

func (m *Metrics) observe(run structura.RunInfo, status string) {
	m.mu.Lock()
	start, ok := m.started[run.RunID]
	delete(m.started, run.RunID)
	m.mu.Unlock()

	m.requests.WithLabelValues(run.Schema, string(run.Method), status).Inc()
	if ok {
		m.duration.WithLabelValues(run.Schema, string(run.Method)).Observe(time.Since(start).Seconds())
	}
}
