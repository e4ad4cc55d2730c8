package transit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the Transit error taxonomy. Use errors.Is to check
// for these.
var (
	// ErrShapeMismatch indicates the host-JSON node's shape (object, array,
	// scalar) does not match what the decode target expects.
	ErrShapeMismatch = errors.New("transit: shape mismatch")

	// ErrKindViolation indicates a value's Kind (scalar vs composite) is
	// incompatible with the position it appears in, e.g. a composite value
	// used as a map key with no key-position form.
	ErrKindViolation = errors.New("transit: kind violation")

	// ErrNarrowing indicates a scalar value decoded successfully but could
	// not be narrowed into the target's numeric type without loss.
	ErrNarrowing = errors.New("transit: narrowing failure")

	// ErrTagViolation indicates a tagged composite's tag does not match
	// any tag registered or expected for the decode target.
	ErrTagViolation = errors.New("transit: tag violation")

	// ErrCacheMiss indicates a cached-surface back-reference code did not
	// resolve to a previously admitted string.
	ErrCacheMiss = errors.New("transit: cache miss")

	// ErrCacheOverflow indicates the key cache's code space (1980 distinct
	// keys) was exhausted during encoding.
	ErrCacheOverflow = errors.New("transit: cache overflow")
)

// DecodeError wraps one of the sentinel errors above with the path at
// which it occurred.
type DecodeError struct {
	Err  error  // one of the sentinel errors above
	Path string // dotted/bracketed path into the document, e.g. "[0].name"
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Path)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newDecodeError wraps sentinel as a *DecodeError at path.
func newDecodeError(sentinel error, path string) error {
	return &DecodeError{Err: sentinel, Path: path}
}

// pathField appends a struct field name to a path.
func pathField(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// pathIndex appends an array index to a path.
func pathIndex(path string, idx int) string {
	return fmt.Sprintf("%s[%d]", path, idx)
}
