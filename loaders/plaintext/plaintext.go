// Package plaintext is a minimal example loader: the whole file, as a
// string, no dependencies. It demonstrates the simplest possible
// store.Loader[T] implementation and is not part of the store's core.
package plaintext

import (
	"context"
	"os"

	"github.com/arqlane/rehoard/key"
	"github.com/arqlane/rehoard/store"
)

// Loader loads a path key's entire contents as a string.
type Loader struct{}

// Load implements store.Loader[string].
func (Loader) Load(_ context.Context, k key.Key, _ *store.Storage) (string, []key.Key, error) {
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

// Reload re-reads the file, discarding current.
func (l Loader) Reload(ctx context.Context, _ string, k key.Key, s *store.Storage) (string, error) {
	return store.ReloadViaLoad[string](ctx, k, s, l)
}
