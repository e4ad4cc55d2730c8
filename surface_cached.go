package transit

import "time"

// mapArrayMarker is the literal first element of a cached-surface map
// envelope array, distinguishing it from a plain array or a tagged
// composite (whose first element is always a "~#tag" marker or a cache
// back-reference to one).
const mapArrayMarker = "^"

// cachedWriter implements Writer for the cached JSON surface (spec §4.6):
// map envelopes and tag markers become arrays, and repeated key-position
// strings are replaced by back-references after their first occurrence.
// A cachedWriter is stateful and must not be shared between sessions.
type cachedWriter struct {
	cache *KeyCache
}

func newCachedWriter() *cachedWriter {
	return &cachedWriter{cache: NewKeyCache()}
}

func (w *cachedWriter) admit(s string) any {
	code, cached, ok := w.cache.Admit(s)
	if ok && cached {
		return code
	}
	return s
}

func (w *cachedWriter) Null() any           { return nil }
func (w *cachedWriter) Bool(b bool) any     { return b }
func (w *cachedWriter) Int(i int64) any     { return i }
func (w *cachedWriter) Float(f float64) any { return f }
func (w *cachedWriter) String(s string) any { return quoteString(s) }
func (w *cachedWriter) Instant(t time.Time) any {
	return codeInstant + t.UTC().Format(time.RFC3339Nano)
}

func (w *cachedWriter) Array(elems []any) any {
	if elems == nil {
		elems = []any{}
	}
	return elems
}

func (w *cachedWriter) Tagged(tag string, elems []any) any {
	out := make([]any, 0, len(elems)+1)
	out = append(out, w.admit(tagged(tag)))
	out = append(out, elems...)
	return out
}

func (w *cachedWriter) Object(pairs []KV) any {
	out := make([]any, 0, len(pairs)*2+1)
	out = append(out, mapArrayMarker)
	for _, kv := range pairs {
		out = append(out, w.admit(kv.Key), kv.Val)
	}
	return out
}

func (w *cachedWriter) TaggedObject(tag string, pairs []KV) any {
	return []any{w.admit(tagged(tag)), w.Object(pairs)}
}

func (w *cachedWriter) CMap(pairs []KVPair) any {
	flat := make([]any, 0, len(pairs)*2)
	for _, p := range pairs {
		flat = append(flat, p.Key, p.Val)
	}
	return []any{w.admit(tagged(tagCMap)), flat}
}

// Quote wraps a bare top-level scalar in the "~#" quoting envelope (spec
// §3): a two-element array of the marker and the value, mirroring how
// every other tagged composite on this surface puts its marker first.
func (w *cachedWriter) Quote(node any) any {
	return []any{w.admit(tagged("")), node}
}

// cachedReader implements Reader for the cached JSON surface. It must be
// given the same, freshly created KeyCache state for the whole decode
// session, reusing it across the walk the same way the writer does across
// an encode.
type cachedReader struct {
	cache *KeyCache
}

func newCachedReader() *cachedReader {
	return &cachedReader{cache: NewKeyCache()}
}

// resolve turns a key-position string — either a literal or a cache
// back-reference — into its literal value, recording literals into the
// cache table so later back-references resolve.
func (r *cachedReader) resolve(s string) (string, error) {
	if IsCacheCode(s) {
		return r.cache.Resolve(s)
	}
	r.cache.Observe(s)
	return s, nil
}

func (r *cachedReader) IsNull(node any) bool {
	return node == nil
}

func (r *cachedReader) AsBool(node any) (bool, bool) {
	b, ok := node.(bool)
	return b, ok
}

func (r *cachedReader) AsInt(node any) (int64, bool) {
	return asIntValue(node)
}

func (r *cachedReader) AsFloat(node any) (float64, bool) {
	return asFloatValue(node)
}

func (r *cachedReader) AsString(node any) (string, bool) {
	s, ok := node.(string)
	if !ok || hasTildeCode(s) {
		return "", false
	}
	return s, true
}

func (r *cachedReader) AsInstant(node any) (time.Time, bool) {
	s, ok := node.(string)
	if !ok {
		return time.Time{}, false
	}
	return parseInstantCode(s)
}

func (r *cachedReader) AsArray(node any) ([]any, bool) {
	a, ok := node.([]any)
	if !ok || isMapArrayShape(a) || isTaggedShape(a) {
		return nil, false
	}
	return a, true
}

func (r *cachedReader) AsTagged(node any) (string, []any, bool) {
	a, ok := node.([]any)
	if !ok || len(a) == 0 {
		return "", nil, false
	}
	tag, ok := r.tagAt(a[0])
	if !ok {
		return "", nil, false
	}
	return tag, a[1:], true
}

func (r *cachedReader) AsObject(node any) ([]KV, bool) {
	a, ok := node.([]any)
	if !ok || !isMapArrayShape(a) {
		return nil, false
	}
	body := a[1:]
	pairs := make([]KV, 0, len(body)/2)
	for i := 0; i+1 < len(body); i += 2 {
		ks, ok := body[i].(string)
		if !ok {
			return nil, false
		}
		key, err := r.resolve(ks)
		if err != nil {
			return nil, false
		}
		pairs = append(pairs, KV{Key: key, Val: body[i+1]})
	}
	return pairs, true
}

func (r *cachedReader) AsTaggedObject(node any) (string, []KV, bool) {
	a, ok := node.([]any)
	if !ok || len(a) != 2 {
		return "", nil, false
	}
	tag, ok := r.tagAt(a[0])
	if !ok {
		return "", nil, false
	}
	pairs, ok := r.AsObject(a[1])
	if !ok {
		return "", nil, false
	}
	return tag, pairs, true
}

func (r *cachedReader) AsCMap(node any) ([]KVPair, bool) {
	a, ok := node.([]any)
	if !ok || len(a) != 2 {
		return nil, false
	}
	tag, ok := r.tagAt(a[0])
	if !ok || tag != tagCMap {
		return nil, false
	}
	flat, ok := a[1].([]any)
	if !ok || len(flat)%2 != 0 {
		return nil, false
	}
	pairs := make([]KVPair, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		pairs = append(pairs, KVPair{Key: flat[i], Val: flat[i+1]})
	}
	return pairs, true
}

func (r *cachedReader) Tag(node any) (string, bool) {
	a, ok := node.([]any)
	if !ok || len(a) == 0 {
		return "", false
	}
	return r.tagAt(a[0])
}

func (r *cachedReader) Unquote(node any) (any, bool) {
	a, ok := node.([]any)
	if !ok || len(a) != 2 {
		return node, false
	}
	// The "~#" marker is too short to ever be cached, so it is compared
	// literally; resolving a[0] would record a value string in the cache.
	if s, ok := a[0].(string); !ok || s != tagged("") {
		return node, false
	}
	return a[1], true
}

// tagAt resolves element zero of a tagged-array node to its tag name.
func (r *cachedReader) tagAt(elem any) (string, bool) {
	s, ok := elem.(string)
	if !ok {
		return "", false
	}
	marker, err := r.resolve(s)
	if err != nil {
		return "", false
	}
	return tagName(marker)
}

// isMapArrayShape reports whether a looks like a cached map envelope: a
// non-empty array whose first element is the literal "^" marker.
func isMapArrayShape(a []any) bool {
	if len(a) == 0 {
		return false
	}
	s, ok := a[0].(string)
	return ok && s == mapArrayMarker
}

// isTaggedShape reports whether a looks like a cached tagged composite:
// a non-empty array whose first element is a tag marker or a
// back-reference to one.
func isTaggedShape(a []any) bool {
	if len(a) == 0 {
		return false
	}
	s, ok := a[0].(string)
	if !ok {
		return false
	}
	if _, isTag := tagName(s); isTag {
		return true
	}
	return IsCacheCode(s)
}
