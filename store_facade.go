package rehoard

import (
	"context"
	"path/filepath"

	"github.com/arqlane/rehoard/key"
	"github.com/arqlane/rehoard/res"
	"github.com/arqlane/rehoard/rerr"
	"github.com/arqlane/rehoard/rlog"
	"github.com/arqlane/rehoard/store"
)

// Re-exported key types so callers don't need to import the key package
// for the common case. Path and Logical are plain aliases (not generic),
// so this works on every Go version the module supports.
type (
	Key     = key.Key
	Path    = key.Path
	Logical = key.Logical
)

// Method re-exports store.Method for callers that use GetBy/GetProxiedBy.
type Method = store.Method

// DefaultMethod re-exports store.DefaultMethod.
const DefaultMethod = store.DefaultMethod

// Hook re-exports the discovery hook type.
type Hook = store.Hook

// Store composes Storage and Synchronizer, plus the configuration
// (root, debounce, discovery) spec.md §4.6 describes. It forwards the
// Storage operations and adds Sync.
type Store struct {
	storage *store.Storage
	sync    *store.Synchronizer
}

// New constructs a Store from opts. The root is canonicalized immediately;
// failure to do so yields rerr.RootDoesNotExist.
func New(opts ...Option) (*Store, error) {
	b := &buildOpts{
		settings: defaultSettings(),
		logger:   rlog.Nop(),
	}
	for _, o := range opts {
		o(b)
	}
	if err := b.settings.Validate(); err != nil {
		return nil, err
	}

	canonRoot, err := filepath.EvalSymlinks(b.settings.Root)
	if err != nil {
		return nil, rerr.NewRootDoesNotExist(b.settings.Root, err)
	}

	storage := store.NewStorage(canonRoot, b.logger, b.metrics)
	synchronizer, err := store.NewSynchronizer(canonRoot, b.settings.Debounce(), b.discovery, b.logger, b.metrics)
	if err != nil {
		return nil, err
	}

	return &Store{storage: storage, sync: synchronizer}, nil
}

// Root returns the canonicalized root the store resolves path keys
// against.
func (st *Store) Root() string {
	return st.storage.Root()
}

// Sync drains filesystem events observed since the last call, reloads
// whatever has settled past the debounce window, and cascades to
// dependents. It is single-threaded and blocks only for as long as the
// loaders it invokes take (spec.md §5).
func (st *Store) Sync(ctx context.Context) {
	st.sync.Sync(ctx, st.storage)
}

// Close stops the store's filesystem watcher. Installed handles remain
// valid; they simply stop receiving reloads.
func (st *Store) Close() error {
	return st.sync.Close()
}

// Get looks up key under the default loader method, invoking ldr.Load on
// a miss (spec.md §4.3).
func Get[T any](ctx context.Context, st *Store, k Key, ldr store.Loader[T]) (res.Handle[T], error) {
	return store.Get[T](ctx, st.storage, k, ldr)
}

// GetBy is Get with an explicit loader method tag, for when several
// loaders target the same value type.
func GetBy[T any](ctx context.Context, st *Store, k Key, method Method, ldr store.Loader[T]) (res.Handle[T], error) {
	return store.GetBy[T](ctx, st.storage, k, method, ldr)
}

// GetProxied is Get, except a loader failure installs proxy() instead of
// surfacing the loader error; only store-policy errors (e.g.
// AlreadyRegisteredKey) are returned.
func GetProxied[T any](ctx context.Context, st *Store, k Key, proxy func() T, ldr store.Loader[T]) (res.Handle[T], error) {
	return store.GetProxied[T](ctx, st.storage, k, proxy, ldr)
}

// GetProxiedBy is GetProxied with an explicit loader method tag.
func GetProxiedBy[T any](ctx context.Context, st *Store, k Key, proxy func() T, method Method, ldr store.Loader[T]) (res.Handle[T], error) {
	return store.GetProxiedBy[T](ctx, st.storage, k, proxy, method, ldr)
}
