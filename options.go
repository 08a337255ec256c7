package rehoard

import (
	"time"

	"github.com/arqlane/rehoard/rconfig"
	"github.com/arqlane/rehoard/rmetrics"
	"go.uber.org/zap"
)

// buildOpts accumulates everything Option functions can set before New
// validates and constructs the Store. Settings gets struct-tag validation
// via rconfig; the rest (discovery hook, logger, metrics collector) are
// funcs/pointers with nothing for a validator to check.
type buildOpts struct {
	settings  rconfig.Settings
	discovery Hook
	logger    *zap.Logger
	metrics   *rmetrics.Collector
}

func defaultSettings() rconfig.Settings {
	return rconfig.Defaults()
}

// Option configures a Store at construction time.
type Option func(*buildOpts)

// WithRoot sets the directory the watcher is rooted at and virtual paths
// are resolved against. Default: ".".
func WithRoot(root string) Option {
	return func(b *buildOpts) { b.settings.Root = root }
}

// WithDebounce sets the window within which multiple filesystem events
// for the same path are coalesced into one reload. Default: 50ms.
func WithDebounce(d time.Duration) Option {
	return func(b *buildOpts) { b.settings.DebounceMS = d.Milliseconds() }
}

// WithDiscovery sets the hook invoked when the watcher sees an event for
// a path not already installed in the store. Default: no-op.
func WithDiscovery(h Hook) Option {
	return func(b *buildOpts) { b.discovery = h }
}

// WithLogger sets the logger the store and its synchronizer use for
// Debug/Warn-level diagnostics. Default: a no-op logger — a library
// should not write to its host's console unless asked to.
func WithLogger(logger *zap.Logger) Option {
	return func(b *buildOpts) { b.logger = logger }
}

// WithMetrics attaches a Prometheus-backed collector for cache hit/miss
// and reload counters. Default: nil, which disables instrumentation
// entirely (every Collector method is a no-op on a nil receiver).
func WithMetrics(m *rmetrics.Collector) Option {
	return func(b *buildOpts) { b.metrics = m }
}
