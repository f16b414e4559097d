// File: lixenwraith/logprops/metrics.go
package logprops

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution tiers reported by the lookups counter.
const (
	tierNormalized = "normalized"
	tierLiteral    = "literal"
	tierScan       = "scan"
	tierTokenized  = "tokenized"
	tierMiss       = "miss"
)

// Metrics holds Prometheus metrics for an Environment. A nil *Metrics
// records nothing.
type Metrics struct {
	lookups        *prometheus.CounterVec
	reloads        prometheus.Counter
	reloadDuration prometheus.Histogram
	sources        prometheus.Gauge
}

// NewMetrics creates the metrics and registers them with registerer.
// Collectors that are already registered under the same names are reused,
// so several Environments may share one registry.
func NewMetrics(registerer prometheus.Registerer, namespace string) (*Metrics, error) {
	if namespace == "" {
		namespace = "logprops"
	}
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "lookups_total",
			Help:      "Total number of property lookups by resolution tier",
		}, []string{"tier"}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "reloads_total",
			Help:      "Total number of cache rebuilds",
		}),
		reloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "reload_duration_seconds",
			Help:      "Time spent rebuilding the property caches",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		sources: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "sources",
			Help:      "Current number of property sources",
		}),
	}
	if registerer == nil {
		return m, nil
	}

	var err error
	if m.lookups, err = register(registerer, m.lookups); err != nil {
		return nil, err
	}
	if m.reloads, err = register(registerer, m.reloads); err != nil {
		return nil, err
	}
	if m.reloadDuration, err = register(registerer, m.reloadDuration); err != nil {
		return nil, err
	}
	if m.sources, err = register(registerer, m.sources); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			if existing, ok := alreadyRegErr.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, fmt.Errorf("failed to register property metrics: %w", err)
	}
	return collector, nil
}

func (m *Metrics) lookup(tier string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(tier).Inc()
}

func (m *Metrics) observeReload(d time.Duration) {
	if m == nil {
		return
	}
	m.reloads.Inc()
	m.reloadDuration.Observe(d.Seconds())
}

func (m *Metrics) setSources(n int) {
	if m == nil {
		return
	}
	m.sources.Set(float64(n))
}
