// Package rerr defines the store's two-level error taxonomy: cache/policy
// errors (StoreError) that the store itself raises, kept distinct from
// opaque loader errors that pass through unwrapped. Grounded on the
// teacher's pkg/errors.AppError constructor-and-predicate style.
package rerr

import "fmt"

// Code enumerates the store's own error conditions. Loader errors are not
// represented here — they are whatever type the loader returns.
type Code int

const (
	// RootDoesNotExist means the configured root could not be
	// canonicalized at store construction.
	RootDoesNotExist Code = iota
	// AlreadyRegisteredKey means inject found an existing entry for the
	// normalized key — at most one entry is permitted per key.
	AlreadyRegisteredKey
)

func (c Code) String() string {
	switch c {
	case RootDoesNotExist:
		return "RootDoesNotExist"
	case AlreadyRegisteredKey:
		return "AlreadyRegisteredKey"
	default:
		return "Unknown"
	}
}

// StoreError is the store's own policy error, distinct from a loader's
// error type. Callers distinguish the two with errors.As.
type StoreError struct {
	Code Code
	// Key holds the offending root path (RootDoesNotExist) or normalized
	// cache key (AlreadyRegisteredKey).
	Key string
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Key)
}

// Unwrap allows errors.Is and errors.As to reach the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a StoreError with the same Code, so
// callers can write errors.Is(err, &rerr.StoreError{Code: rerr.AlreadyRegisteredKey}).
func (e *StoreError) Is(target error) bool {
	other, ok := target.(*StoreError)
	return ok && other.Code == e.Code
}

// NewRootDoesNotExist wraps the canonicalization failure for root.
func NewRootDoesNotExist(root string, cause error) *StoreError {
	return &StoreError{Code: RootDoesNotExist, Key: root, Err: cause}
}

// NewAlreadyRegisteredKey reports that cacheKey already has an entry.
func NewAlreadyRegisteredKey(cacheKey string) *StoreError {
	return &StoreError{Code: AlreadyRegisteredKey, Key: cacheKey}
}

// IsAlreadyRegisteredKey reports whether err is (or wraps) an
// AlreadyRegisteredKey StoreError.
func IsAlreadyRegisteredKey(err error) bool {
	se, ok := asStoreError(err)
	return ok && se.Code == AlreadyRegisteredKey
}

// IsRootDoesNotExist reports whether err is (or wraps) a
// RootDoesNotExist StoreError.
func IsRootDoesNotExist(err error) bool {
	se, ok := asStoreError(err)
	return ok && se.Code == RootDoesNotExist
}

func asStoreError(err error) (*StoreError, bool) {
	for err != nil {
		if se, ok := err.(*StoreError); ok {
			return se, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
