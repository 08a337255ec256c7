package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arqlane/rehoard/key"
	"github.com/arqlane/rehoard/rerr"
	"github.com/arqlane/rehoard/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainLoader loads the whole content of a path key as a string, with no
// dependencies. It's the simplest possible Loader[string] for exercising
// Storage in isolation from any real format.
type plainLoader struct{}

func (plainLoader) Load(_ context.Context, k key.Key, _ *store.Storage) (string, []key.Key, error) {
	p, ok := k.(key.Path)
	if !ok {
		return "", nil, os.ErrInvalid
	}
	b, err := os.ReadFile(string(p))
	if err != nil {
		return "", nil, err
	}
	return string(b), nil, nil
}

func (l plainLoader) Reload(ctx context.Context, _ string, k key.Key, s *store.Storage) (string, error) {
	return store.ReloadViaLoad[string](ctx, k, s, l)
}

// logicalEchoLoader loads a Logical key whose contents are its own string
// form, matching spec.md scenario S4.
type logicalEchoLoader struct{}

func (logicalEchoLoader) Load(_ context.Context, k key.Key, _ *store.Storage) (string, []key.Key, error) {
	l, ok := k.(key.Logical)
	if !ok {
		return "", nil, os.ErrInvalid
	}
	return string(l), nil, nil
}

func (l logicalEchoLoader) Reload(ctx context.Context, _ string, k key.Key, s *store.Storage) (string, error) {
	return store.ReloadViaLoad[string](ctx, k, s, l)
}

// derivedLoader loads a Logical key by resolving a Path dependency through
// the same Storage, matching spec.md scenario S5.
type derivedLoader struct {
	pathKey key.Key
}

func (d derivedLoader) Load(ctx context.Context, _ key.Key, s *store.Storage) (string, []key.Key, error) {
	h, err := store.Get[string](ctx, s, d.pathKey, plainLoader{})
	if err != nil {
		return "", nil, err
	}
	return h.View(), []key.Key{d.pathKey}, nil
}

func (d derivedLoader) Reload(ctx context.Context, _ string, k key.Key, s *store.Storage) (string, error) {
	return store.ReloadViaLoad[string](ctx, k, s, d)
}

func newTestStorage(t *testing.T) (*store.Storage, string) {
	t.Helper()
	root := t.TempDir()
	return store.NewStorage(root, nil, nil), root
}

func TestGetLoadsOnMissAndCachesOnHit(t *testing.T) {
	s, root := newTestStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "foo.txt"), []byte("Hello, world!"), 0o644))

	h1, err := store.Get[string](context.Background(), s, key.Path("foo.txt"), plainLoader{})
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", h1.View())

	h2, err := store.Get[string](context.Background(), s, key.Path("foo.txt"), plainLoader{})
	require.NoError(t, err)
	assert.True(t, h1.SameCell(h2), "second Get of the same key must alias the first handle")
}

func TestVirtualAndRelativePathKeysResolveToSameEntry(t *testing.T) {
	s, root := newTestStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "foo.txt"), []byte("Hello, world!"), 0o644))

	h1, err := store.Get[string](context.Background(), s, key.Path("foo.txt"), plainLoader{})
	require.NoError(t, err)

	h2, err := store.Get[string](context.Background(), s, key.Path("/foo.txt"), plainLoader{})
	require.NoError(t, err)

	assert.True(t, h1.SameCell(h2))
}

func TestKeyTypeCollisionFailsSecondRegistration(t *testing.T) {
	s, root := newTestStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("foobarzoo"), 0o644))

	h, err := store.Get[string](context.Background(), s, key.Path("a.txt"), plainLoader{})
	require.NoError(t, err)
	assert.Equal(t, "foobarzoo", h.View())

	type Bar int
	barLoader := boxedLoader[Bar]{load: func(key.Key, *store.Storage) (Bar, []key.Key, error) {
		return 0, nil, nil
	}}
	_, err = store.Get[Bar](context.Background(), s, key.Path("a.txt"), barLoader)
	require.Error(t, err)
	assert.True(t, rerr.IsAlreadyRegisteredKey(err))
}

func TestLogicalKeyWithNoBackingFile(t *testing.T) {
	s, _ := newTestStorage(t)

	h, err := store.Get[string](context.Background(), s, key.Logical("mem/uid/32197"), logicalEchoLoader{})
	require.NoError(t, err)
	assert.Equal(t, "mem/uid/32197", h.View())
}

func TestLogicalLoaderWithPathDependencyConverges(t *testing.T) {
	s, root := newTestStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "foo.txt"), []byte("Hello, world!"), 0o644))

	fileHandle, err := store.Get[string](context.Background(), s, key.Path("foo.txt"), plainLoader{})
	require.NoError(t, err)

	logicalHandle, err := store.Get[string](context.Background(), s, key.Logical("foo.txt"),
		derivedLoader{pathKey: key.Path("foo.txt")})
	require.NoError(t, err)

	assert.Equal(t, "Hello, world!", fileHandle.View())
	assert.Equal(t, "Hello, world!", logicalHandle.View())
}

func TestGetProxiedInstallsProxyOnLoaderFailure(t *testing.T) {
	s, _ := newTestStorage(t)

	h, err := store.GetProxied[string](context.Background(), s, key.Path("missing.txt"), func() string {
		return "<proxy>"
	}, plainLoader{})
	require.NoError(t, err)
	assert.Equal(t, "<proxy>", h.View())
}

func TestGetProxiedPropagatesStoreErrors(t *testing.T) {
	s, root := newTestStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	_, err := store.Get[string](context.Background(), s, key.Path("a.txt"), plainLoader{})
	require.NoError(t, err)

	type Bar int
	barLoader := boxedLoader[Bar]{load: func(key.Key, *store.Storage) (Bar, []key.Key, error) {
		return 0, nil, nil
	}}
	_, err = store.GetProxied[Bar](context.Background(), s, key.Path("a.txt"), func() Bar { return 0 }, barLoader)
	require.Error(t, err)
	assert.True(t, rerr.IsAlreadyRegisteredKey(err))
}

// boxedLoader lets tests build an ad hoc Loader[T] from a plain function
// without declaring a new named type per case.
type boxedLoader[T any] struct {
	load func(key.Key, *store.Storage) (T, []key.Key, error)
}

func (b boxedLoader[T]) Load(_ context.Context, k key.Key, s *store.Storage) (T, []key.Key, error) {
	return b.load(k, s)
}

func (b boxedLoader[T]) Reload(ctx context.Context, _ T, k key.Key, s *store.Storage) (T, error) {
	return store.ReloadViaLoad[T](ctx, k, s, b)
}
