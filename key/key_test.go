package key_test

import (
	"testing"

	"github.com/arqlane/rehoard/key"
	"github.com/stretchr/testify/assert"
)

func TestPrepareVirtualAndRelativePathsConverge(t *testing.T) {
	root := "/srv/assets"

	virtual := key.Prepare(root, key.Path("/foo.txt"))
	relative := key.Prepare(root, key.Path("foo.txt"))

	assert.Equal(t, virtual.CacheKey(), relative.CacheKey())
	assert.Equal(t, "path:/srv/assets/foo.txt", virtual.CacheKey())
}

func TestPrepareNestedVirtualPath(t *testing.T) {
	root := "/srv/assets"
	got := key.Prepare(root, key.Path("/nested/dir/foo.txt"))
	assert.Equal(t, "path:/srv/assets/nested/dir/foo.txt", got.CacheKey())
}

func TestPrepareLogicalKeyIsIdentity(t *testing.T) {
	root := "/srv/assets"
	got := key.Prepare(root, key.Logical("mem/uid/32197"))
	assert.Equal(t, key.Logical("mem/uid/32197").CacheKey(), got.CacheKey())
}

func TestCacheKeyDistinguishesPathFromLogicalWithSameText(t *testing.T) {
	p := key.Path("a.txt").CacheKey()
	l := key.Logical("a.txt").CacheKey()
	assert.NotEqual(t, p, l)
}
