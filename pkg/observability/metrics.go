package observability

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements every hook interface on top of Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	Mutations     *prometheus.CounterVec
	Exports       *prometheus.HistogramVec
	UnknownModels *prometheus.CounterVec
	Nodes         prometheus.Gauge
	Connections   prometheus.Gauge

	Revisions   prometheus.Gauge
	Navigations *prometheus.CounterVec

	CacheEvents *prometheus.CounterVec
	CacheBytes  prometheus.Counter

	Requests         *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
}

// NewMetrics registers the collectors against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same registry
// reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{gatherer: gatherer}
	var err error

	if m.Mutations, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nestgraph_mutations_total",
		Help: "Committed network mutations, labeled by operation.",
	}, []string{"op"}), "nestgraph_mutations_total"); err != nil {
		return nil, err
	}
	if m.Exports, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nestgraph_export_duration_seconds",
		Help:    "Network serialization latency in seconds, labeled by target.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"target"}), "nestgraph_export_duration_seconds"); err != nil {
		return nil, err
	}
	if m.UnknownModels, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nestgraph_unknown_models_total",
		Help: "Model lookups that did not resolve, labeled by model id.",
	}, []string{"model"}), "nestgraph_unknown_models_total"); err != nil {
		return nil, err
	}
	if m.Nodes, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nestgraph_nodes",
		Help: "Node count after the last mutation.",
	}), "nestgraph_nodes"); err != nil {
		return nil, err
	}
	if m.Connections, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nestgraph_connections",
		Help: "Connection count after the last mutation.",
	}), "nestgraph_connections"); err != nil {
		return nil, err
	}
	if m.Revisions, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nestgraph_history_revisions",
		Help: "Revisions currently held by the history.",
	}), "nestgraph_history_revisions"); err != nil {
		return nil, err
	}
	if m.Navigations, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nestgraph_history_navigations_total",
		Help: "History moves, labeled by direction.",
	}, []string{"direction"}), "nestgraph_history_navigations_total"); err != nil {
		return nil, err
	}
	if m.CacheEvents, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nestgraph_cache_events_total",
		Help: "Artifact cache events, labeled by key type and result.",
	}, []string{"key_type", "result"}), "nestgraph_cache_events_total"); err != nil {
		return nil, err
	}
	if m.CacheBytes, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nestgraph_cache_written_bytes_total",
		Help: "Bytes written to the artifact cache.",
	}), "nestgraph_cache_written_bytes_total"); err != nil {
		return nil, err
	}
	if m.Requests, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nestgraph_http_requests_total",
		Help: "Handled API requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "nestgraph_http_requests_total"); err != nil {
		return nil, err
	}
	if m.RequestDurations, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nestgraph_http_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"method", "route"}), "nestgraph_http_request_duration_seconds"); err != nil {
		return nil, err
	}
	return m, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (m *Metrics) Handler() http.Handler {
	gatherer := m.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// OnMutation implements NetworkHooks.
func (m *Metrics) OnMutation(op string, nodeCount, connectionCount int) {
	m.Mutations.WithLabelValues(op).Inc()
	m.Nodes.Set(float64(nodeCount))
	m.Connections.Set(float64(connectionCount))
}

// OnExport implements NetworkHooks.
func (m *Metrics) OnExport(target string, _ int, d time.Duration) {
	m.Exports.WithLabelValues(target).Observe(d.Seconds())
}

// OnUnknownModel implements NetworkHooks.
func (m *Metrics) OnUnknownModel(modelID string) {
	m.UnknownModels.WithLabelValues(modelID).Inc()
}

// OnCommit implements HistoryHooks.
func (m *Metrics) OnCommit(revisions int) {
	m.Revisions.Set(float64(revisions))
}

// OnNavigate implements HistoryHooks.
func (m *Metrics) OnNavigate(direction string, _ int) {
	m.Navigations.WithLabelValues(direction).Inc()
}

// OnCacheHit implements CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheEvents.WithLabelValues(keyType, "set").Inc()
	m.CacheBytes.Add(float64(size))
}

// OnRequest implements APIHooks.
func (m *Metrics) OnRequest(_ context.Context, method, route string, statusCode int, d time.Duration) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.RequestDurations.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ NetworkHooks = (*Metrics)(nil)
	_ HistoryHooks = (*Metrics)(nil)
	_ CacheHooks   = (*Metrics)(nil)
	_ APIHooks     = (*Metrics)(nil)
)

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}
