// Package derived is an example logical loader that computes its value
// from another resource, registering that resource as a dependency so a
// change to it cascades into a reload of the derived value — the pattern
// spec.md scenario S5 exercises.
package derived

import (
	"context"
	"strings"

	"github.com/arqlane/rehoard/key"
	"github.com/arqlane/rehoard/loaders/plaintext"
	"github.com/arqlane/rehoard/store"
)

// UppercaseLoader loads a Logical key whose value is the uppercased
// contents of a Path resource.
type UppercaseLoader struct {
	// Of is the path key this logical resource derives from.
	Of key.Path
}

// Load implements store.Loader[string].
func (l UppercaseLoader) Load(ctx context.Context, _ key.Key, s *store.Storage) (string, []key.Key, error) {
	h, err := store.Get[string](ctx, s, l.Of, plaintext.Loader{})
	if err != nil {
		return "", nil, err
	}
	return strings.ToUpper(h.View()), []key.Key{l.Of}, nil
}

// Reload recomputes the derived value.
func (l UppercaseLoader) Reload(ctx context.Context, _ string, k key.Key, s *store.Storage) (string, error) {
	return store.ReloadViaLoad[string](ctx, k, s, l)
}
