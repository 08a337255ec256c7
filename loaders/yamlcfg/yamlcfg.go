// Package yamlcfg is an example loader that parses a path key as YAML
// into a caller-supplied struct type. It demonstrates a format-specific
// loader built on gopkg.in/yaml.v3 and is not part of the store's core —
// concrete format loaders are an explicit out-of-scope collaborator.
package yamlcfg

import (
	"context"
	"os"

	"github.com/arqlane/rehoard/key"
	"github.com/arqlane/rehoard/store"
	"gopkg.in/yaml.v3"
)

// Loader parses a path key's contents as YAML into a T value. T must be a
// struct (or pointer-free value) suitable for yaml.Unmarshal.
type Loader[T any] struct{}

// Load implements store.Loader[T].
func (Loader[T]) Load(_ context.Context, k key.Key, _ *store.Storage) (T, []key.Key, error) {
	var zero T
	p, ok := k.(key.Path)
	if !ok {
		return zero, nil, os.ErrInvalid
	}
	b, err := os.ReadFile(string(p))
	if err != nil {
		return zero, nil, err
	}
	var v T
	if err := yaml.Unmarshal(b, &v); err != nil {
		return zero, nil, err
	}
	return v, nil, nil
}

// Reload re-reads and re-parses the file, discarding current.
func (l Loader[T]) Reload(ctx context.Context, _ T, k key.Key, s *store.Storage) (T, error) {
	return store.ReloadViaLoad[T](ctx, k, s, l)
}
