package transit

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// EncodeVerbose encodes v to a host-JSON node using the verbose surface
// (spec §4.5). The returned node can be passed to encoding/json.Marshal
// directly.
func EncodeVerbose(v any) (any, error) {
	return encodeSession("verbose", verboseWriter{}, v)
}

// EncodeCached encodes v to a host-JSON node using the cached surface
// (spec §4.6), with a fresh key cache scoped to this call. It is the one
// documented way encoding can fail: once the session's key cache has
// admitted cacheOverflowAt distinct cache-eligible keys, it refuses any
// more and EncodeCached returns ErrCacheOverflow.
func EncodeCached(v any) (any, error) {
	w := newCachedWriter()
	node, err := encodeSession("cached", w, v)
	if w.cache.Overflowed() {
		emitCacheOverflow(fmt.Sprintf("%T", v), len(w.cache.order))
		if err == nil {
			err = fmt.Errorf("%w: more than %d distinct cache-eligible keys in one document", ErrCacheOverflow, cacheOverflowAt)
		}
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

// DecodeVerbose decodes a host-JSON node produced by the verbose surface
// into a value of type T.
func DecodeVerbose[T any](node any) (T, error) {
	return decodeSession[T]("verbose", verboseReader{}, node)
}

// DecodeCached decodes a host-JSON node produced by the cached surface
// into a value of type T, with a fresh key cache scoped to this call.
func DecodeCached[T any](node any) (T, error) {
	return decodeSession[T]("cached", newCachedReader(), node)
}

// MarshalVerbose encodes v through the verbose surface and renders it as
// JSON bytes via encoding/json.
func MarshalVerbose(v any) ([]byte, error) {
	node, err := EncodeVerbose(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// MarshalCached encodes v through the cached surface and renders it as
// JSON bytes via encoding/json.
func MarshalCached(v any) ([]byte, error) {
	node, err := EncodeCached(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// UnmarshalVerbose parses JSON bytes produced by MarshalVerbose and
// decodes them into a value of type T.
func UnmarshalVerbose[T any](data []byte) (T, error) {
	var zero T
	var node any
	if err := json.Unmarshal(data, &node); err != nil {
		return zero, err
	}
	return DecodeVerbose[T](node)
}

// UnmarshalCached parses JSON bytes produced by MarshalCached and decodes
// them into a value of type T.
func UnmarshalCached[T any](data []byte) (T, error) {
	var zero T
	var node any
	if err := json.Unmarshal(data, &node); err != nil {
		return zero, err
	}
	return DecodeCached[T](node)
}

func encodeSession(surface string, w Writer, v any) (node any, err error) {
	typeName := fmt.Sprintf("%T", v)
	start := time.Now()
	emitEncodeStart(surface, typeName)
	defer func() { emitEncodeComplete(surface, typeName, time.Since(start), err) }()

	rv := reflect.ValueOf(v)
	node, err = marshalAny(w, rv)
	if err != nil {
		return nil, err
	}
	// A document whose top-level value is a bare scalar is wrapped in the
	// "~#" quoting envelope (spec §3) so it is still recognizable as
	// Transit at the root; composites are already self-describing there.
	if kindOfValue(rv) == Scalar {
		node = w.Quote(node)
	}
	return node, nil
}

func decodeSession[T any](surface string, r Reader, node any) (result T, err error) {
	typeName := reflect.TypeFor[T]().String()
	start := time.Now()
	emitDecodeStart(surface, typeName)
	defer func() { emitDecodeComplete(surface, typeName, time.Since(start), err) }()

	if inner, wrapped := r.Unquote(node); wrapped {
		node = inner
	}

	target := reflect.New(reflect.TypeFor[T]()).Elem()
	if err = decodeInto(r, node, target, ""); err != nil {
		var zero T
		return zero, err
	}
	return target.Interface().(T), nil
}
