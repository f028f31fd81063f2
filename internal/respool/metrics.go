package respool

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus collectors updated by a ResourcePool.
type Metrics struct {
	Acquires        prometheus.Counter
	AcquireTimeouts prometheus.Counter
	AcquireWait     prometheus.Histogram
	Resources       prometheus.Gauge
	InUse           prometheus.Gauge
}

// NewMetrics creates and registers Prometheus collectors for pool activity.
func NewMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		Acquires: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "acquires_total",
			Help:      "Total number of successful resource acquisitions",
		}),
		AcquireTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "acquire_timeouts_total",
			Help:      "Total number of acquisitions that timed out",
		}),
		AcquireWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "acquire_wait_seconds",
			Help:      "Histogram of time spent waiting for a resource",
			Buckets:   prometheus.DefBuckets,
		}),
		Resources: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "resources",
			Help:      "Current number of resources managed by the pool",
		}),
		InUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "resources_in_use",
			Help:      "Current number of acquired resources",
		}),
	}
	prometheus.MustRegister(
		m.Acquires,
		m.AcquireTimeouts,
		m.AcquireWait,
		m.Resources,
		m.InUse,
	)
	return m
}
