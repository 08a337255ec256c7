// Package rmetrics exposes the store's hit/miss/reload counters as
// Prometheus collectors, grounded on Voskan-arena-cache's pkg/metrics.go
// construct-and-register shape.
package rmetrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the store's Prometheus instrumentation. A nil
// *Collector is valid everywhere it's used — every method is a no-op on a
// nil receiver, so metrics stay entirely optional.
type Collector struct {
	hits           prometheus.Counter
	misses         prometheus.Counter
	reloads        prometheus.Counter
	reloadFailures prometheus.Counter
	cascadeDepth   prometheus.Histogram
}

// New builds a Collector and registers it against reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rehoard_cache_hits_total",
			Help: "Number of Get/GetBy calls served from the cache without invoking a loader.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rehoard_cache_misses_total",
			Help: "Number of Get/GetBy calls that invoked a loader.",
		}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rehoard_reloads_total",
			Help: "Number of successful reload-closure invocations from sync.",
		}),
		reloadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rehoard_reload_failures_total",
			Help: "Number of reload-closure invocations that returned a loader error.",
		}),
		cascadeDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rehoard_cascade_depth",
			Help:    "Number of dependent entries reloaded in a single cascade, per dirty key.",
			Buckets: prometheus.LinearBuckets(0, 1, 8),
		}),
	}
	reg.MustRegister(c.hits, c.misses, c.reloads, c.reloadFailures, c.cascadeDepth)
	return c
}

// Hit records a cache hit.
func (c *Collector) Hit() {
	if c == nil {
		return
	}
	c.hits.Inc()
}

// Miss records a cache miss (loader invoked).
func (c *Collector) Miss() {
	if c == nil {
		return
	}
	c.misses.Inc()
}

// Reload records a successful reload-closure invocation.
func (c *Collector) Reload() {
	if c == nil {
		return
	}
	c.reloads.Inc()
}

// ReloadFailure records a failed reload-closure invocation.
func (c *Collector) ReloadFailure() {
	if c == nil {
		return
	}
	c.reloadFailures.Inc()
}

// CascadeDepth records how many dependents were reloaded for one dirty key.
func (c *Collector) CascadeDepth(n int) {
	if c == nil {
		return
	}
	c.cascadeDepth.Observe(float64(n))
}
