// Package metrics exports decorated function activity to Prometheus.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/on-the-ground/deco_ive_go/deco"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides Prometheus metrics for decorated functions.
type Collector struct {
	callsTotal   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	callDuration *prometheus.HistogramVec

	registerer prometheus.Registerer

	mu      sync.Mutex
	watched map[string]stateMetrics
}

// stateMetrics reads the counters a state bag already keeps.
type stateMetrics struct {
	calls       prometheus.CounterFunc
	cacheHits   prometheus.CounterFunc
	cacheMisses prometheus.CounterFunc
}

// NewCollector creates a collector on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector using supplied registerer.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	return &Collector{
		callsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "deco_calls_total",
				Help: "Total number of calls through instrumented functions",
			},
			[]string{"function"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "deco_errors_total",
				Help: "Total number of calls that returned an error",
			},
			[]string{"function"},
		),
		callDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deco_call_duration_seconds",
				Help:    "Duration of calls through instrumented functions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"function"},
		),
		registerer: registry,
		watched:    make(map[string]stateMetrics),
	}
}

// RecordCall records one call, its duration and whether it failed.
func (c *Collector) RecordCall(name string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	c.callsTotal.WithLabelValues(name).Inc()
	c.callDuration.WithLabelValues(name).Observe(duration.Seconds())
	if err != nil {
		c.errorsTotal.WithLabelValues(name).Inc()
	}
}

// Instrument returns a combinator recording every call into c.
func Instrument[T, R any](c *Collector) deco.Combinator[T, R] {
	return func(f *deco.Func[T, R]) *deco.Func[T, R] {
		var g *deco.Func[T, R]
		g = deco.Wrap(f, func(a deco.Args[T]) (R, error) {
			start := time.Now()
			res, err := f.CallArgs(a)
			c.RecordCall(g.Name(), time.Since(start), err)
			return res, err
		})
		return g
	}
}

// Watch exports the call and cache counters held in f's state bag.
// Watching a bag twice is a no-op.
func (c *Collector) Watch(f interface {
	Name() string
	State() *deco.State
}) error {
	if c == nil {
		return nil
	}
	st := f.State()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.watched[st.ID()]; ok {
		return nil
	}

	labels := prometheus.Labels{"function": f.Name(), "state_id": st.ID()}
	sm := stateMetrics{
		calls: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "deco_state_calls_total",
			Help:        "Calls counted by CountCalls layers",
			ConstLabels: labels,
		}, func() float64 { return float64(st.Calls()) }),
		cacheHits: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "deco_state_cache_hits_total",
			Help:        "Calls answered from a memo cache",
			ConstLabels: labels,
		}, func() float64 { return float64(st.CacheHits()) }),
		cacheMisses: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "deco_state_cache_misses_total",
			Help:        "Calls a memo cache had to compute",
			ConstLabels: labels,
		}, func() float64 { return float64(st.CacheMisses()) }),
	}

	for _, m := range []prometheus.Collector{sm.calls, sm.cacheHits, sm.cacheMisses} {
		if err := c.registerer.Register(m); err != nil {
			return fmt.Errorf("failed to watch %q: %w", f.Name(), err)
		}
	}
	c.watched[st.ID()] = sm
	return nil
}
