package store

import (
	"context"

	"github.com/arqlane/rehoard/key"
)

// Method tags a loader implementation. Several loaders can target the
// same value type T; GetBy/GetProxiedBy pick among them by Method, while
// Get/GetProxied use DefaultMethod.
type Method string

// DefaultMethod is the method tag used by Get and GetProxied.
const DefaultMethod Method = ""

// Loader is the contract the store consumes for a value type T under one
// method tag (spec.md §4.8). The store never inspects a loader's
// internals — it only calls Load on a miss and Reload from the reload
// closure Sync eventually invokes.
type Loader[T any] interface {
	// Load materializes the initial value for k. It may recursively call
	// Get/GetBy on storage to resolve dependencies; any key it resolves
	// that way should also be returned in the deps slice so the store can
	// wire the cascade edge.
	Load(ctx context.Context, k key.Key, s *Storage) (T, []key.Key, error)

	// Reload re-materializes the value for k, given the current contents.
	// A loader with no special incremental-reload behavior can implement
	// this by discarding current and delegating to Load — see
	// ReloadViaLoad.
	Reload(ctx context.Context, current T, k key.Key, s *Storage) (T, error)
}

// ReloadViaLoad implements the default Reload behavior spec.md §4.8
// describes (discard current, call Load again) as a free function, since
// Go has no default trait-method dispatch through an embedded type: a
// loader's Reload can simply delegate to this helper.
func ReloadViaLoad[T any](ctx context.Context, k key.Key, s *Storage, ldr Loader[T]) (T, error) {
	v, _, err := ldr.Load(ctx, k, s)
	return v, err
}
