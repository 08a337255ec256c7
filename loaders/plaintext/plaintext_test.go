package plaintext_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arqlane/rehoard/key"
	"github.com/arqlane/rehoard/loaders/plaintext"
	"github.com/arqlane/rehoard/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderReadsWholeFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("content"), 0o644))

	s := store.NewStorage(root, nil, nil)
	h, err := store.Get[string](context.Background(), s, key.Path("a.txt"), plaintext.Loader{})
	require.NoError(t, err)
	assert.Equal(t, "content", h.View())
}

func TestLoaderErrorsOnMissingFile(t *testing.T) {
	root := t.TempDir()
	s := store.NewStorage(root, nil, nil)
	_, err := store.Get[string](context.Background(), s, key.Path("missing.txt"), plaintext.Loader{})
	assert.Error(t, err)
}
