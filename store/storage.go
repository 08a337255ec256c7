// Package store implements the core cache (Storage), the loader protocol
// it consumes, and the filesystem-driven Synchronizer that reloads it.
// Storage, Loader and Synchronizer live in one package because the
// loader protocol and the discovery hook both need to reference *Storage
// in their own signatures — splitting them into separate packages (as a
// first pass at this design tried) creates an import cycle.
package store

import (
	"context"
	"reflect"

	"github.com/arqlane/rehoard/key"
	"github.com/arqlane/rehoard/res"
	"github.com/arqlane/rehoard/rerr"
	"github.com/arqlane/rehoard/rmetrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// entry is the metadata the store keeps per installed key: the typed
// cache slot its handle lives under, and a closure that re-invokes the
// loader's Reload with only (ctx, storage). The keys that depend on it
// are kept separately, in Storage.deps.
type entry struct {
	// cacheKey is the type-tagged slot this entry's handle lives under in
	// Storage.cache.
	cacheKey string
	reload   func(ctx context.Context, s *Storage) error
}

// Storage is the in-memory cache proper: key -> handle, key -> dependency
// list, key -> reload closure. It is not safe for concurrent use without
// external synchronization — the store is single-threaded by contract
// (spec.md §5); the singleflight group below exists only to collapse
// accidental concurrent misses on the same key into one loader call, not
// to make Storage a general-purpose concurrent cache.
type Storage struct {
	root string

	cache map[string]any    // typed cache slot -> res.Handle[T] (boxed)
	meta  map[string]*entry // normalized key -> entry (one per key)
	deps  map[string][]string

	group   singleflight.Group
	logger  *zap.Logger
	metrics *rmetrics.Collector
}

// NewStorage constructs an empty Storage rooted at canonRoot, which must
// already be canonicalized by the caller (the Store facade does this at
// construction).
func NewStorage(canonRoot string, logger *zap.Logger, metrics *rmetrics.Collector) *Storage {
	return &Storage{
		root:    canonRoot,
		cache:   make(map[string]any),
		meta:    make(map[string]*entry),
		deps:    make(map[string][]string),
		logger:  logger,
		metrics: metrics,
	}
}

// Root returns the canonicalized root this Storage resolves path keys
// against.
func (s *Storage) Root() string {
	return s.root
}

func typeTag[T any]() string {
	var zero T
	return reflect.TypeOf(&zero).Elem().String()
}

func slotKey(nk key.Key, method Method, typeTagStr string) string {
	return nk.CacheKey() + "\x00" + string(method) + "\x00" + typeTagStr
}

// Get looks up key under the default method, loading it on a miss.
func Get[T any](ctx context.Context, s *Storage, k key.Key, ldr Loader[T]) (res.Handle[T], error) {
	return GetBy[T](ctx, s, k, DefaultMethod, ldr)
}

// GetBy looks up key under a specific loader method tag, loading it on a
// miss (spec.md §4.3).
func GetBy[T any](ctx context.Context, s *Storage, k key.Key, method Method, ldr Loader[T]) (res.Handle[T], error) {
	nk := key.Prepare(s.root, k)
	slot := slotKey(nk, method, typeTag[T]())

	if v, ok := s.cache[slot]; ok {
		s.metrics.Hit()
		return v.(res.Handle[T]), nil
	}
	s.metrics.Miss()

	loaded, err, _ := s.group.Do(slot, func() (any, error) {
		v, deps, loadErr := ldr.Load(ctx, nk, s)
		if loadErr != nil {
			return nil, loadErr
		}
		h, injectErr := inject[T](s, nk, slot, deps, v, ldr)
		if injectErr != nil {
			return nil, injectErr
		}
		return h, nil
	})
	if err != nil {
		var zero res.Handle[T]
		return zero, err
	}
	return loaded.(res.Handle[T]), nil
}

// inject installs a freshly loaded value under key, enforcing the
// at-most-one-entry-per-key invariant (spec.md §4.3), and builds the
// reload closure that Sync will later invoke with only (ctx, storage).
func inject[T any](s *Storage, nk key.Key, slot string, deps []key.Key, v T, ldr Loader[T]) (res.Handle[T], error) {
	metaKey := nk.CacheKey()
	if _, exists := s.meta[metaKey]; exists {
		var zero res.Handle[T]
		return zero, rerr.NewAlreadyRegisteredKey(metaKey)
	}

	h := res.New(v)
	reload := func(ctx context.Context, st *Storage) error {
		current := h.View()
		newVal, err := ldr.Reload(ctx, current, nk, st)
		if err != nil {
			return err
		}
		h.Replace(newVal)
		return nil
	}

	s.meta[metaKey] = &entry{cacheKey: slot, reload: reload}
	s.cache[slot] = h

	for _, d := range deps {
		dn := key.Prepare(s.root, d)
		dk := dn.CacheKey()
		s.deps[dk] = append(s.deps[dk], metaKey)
	}

	return h, nil
}

// GetProxied calls Get; on loader failure only, it installs the lazily
// produced proxy value under key with no dependencies, so a later
// filesystem event can reload it normally (spec.md §4.3). Callers only
// ever see a *rerr.StoreError here — a loader failure is swallowed in
// favor of the proxy.
func GetProxied[T any](ctx context.Context, s *Storage, k key.Key, proxy func() T, ldr Loader[T]) (res.Handle[T], error) {
	return GetProxiedBy[T](ctx, s, k, proxy, DefaultMethod, ldr)
}

// GetProxiedBy is GetProxied with an explicit loader method tag.
func GetProxiedBy[T any](ctx context.Context, s *Storage, k key.Key, proxy func() T, method Method, ldr Loader[T]) (res.Handle[T], error) {
	h, err := GetBy[T](ctx, s, k, method, ldr)
	if err == nil {
		return h, nil
	}
	if se, ok := asStoreError(err); ok {
		var zero res.Handle[T]
		return zero, se
	}

	// Loader failed: install the proxy with no dependencies instead.
	nk := key.Prepare(s.root, k)
	slot := slotKey(nk, method, typeTag[T]())
	return inject[T](s, nk, slot, nil, proxy(), ldr)
}

func asStoreError(err error) (*rerr.StoreError, bool) {
	se, ok := err.(*rerr.StoreError)
	return se, ok
}
