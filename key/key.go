// Package key implements the key model for the resource store: path keys,
// logical keys, and the virtual-path substitution rule that lets a path
// key be addressed relative to the store's configured root.
package key

import (
	"path/filepath"
	"strings"
)

// Key identifies a resource inside the store. It is implemented by Path
// and Logical. A Key is only meaningful for cache lookups after it has
// gone through Prepare.
type Key interface {
	// CacheKey returns the normalized, hashable identity of the key. It
	// must only be called on a key that has already been passed through
	// Prepare.
	CacheKey() string
}

// Path is a file-backed key. A value beginning with "/" is virtual: the
// leading separator is stripped and the remainder is joined onto the
// store's root. Any other value is joined onto the root unconditionally.
type Path string

// CacheKey implements Key.
func (p Path) CacheKey() string {
	return "path:" + string(p)
}

// Logical is an opaque, in-memory key unaffected by the root.
type Logical string

// CacheKey implements Key.
func (l Logical) CacheKey() string {
	return "logical:" + string(l)
}

// Prepare normalizes k against root per the virtual-path substitution
// rule (spec.md §4.2): Path keys are rewritten relative to root, Logical
// keys pass through untouched. All cache insertions and lookups go
// through Prepare first.
func Prepare(root string, k Key) Key {
	switch v := k.(type) {
	case Path:
		return Path(substitutePath(root, string(v)))
	default:
		return v
	}
}

// substitutePath joins p onto root, dropping a leading "/" marker when
// present so that both "foo/bar.txt" and "/foo/bar.txt" resolve to the
// same real path under root.
func substitutePath(root, p string) string {
	if strings.HasPrefix(p, "/") {
		return filepath.Join(root, strings.TrimPrefix(p, "/"))
	}
	return filepath.Join(root, p)
}
