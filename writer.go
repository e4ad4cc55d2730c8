package transit

import "time"

// KV is an ordered key/value pair for the plain map envelope, where the
// key has already been reduced to its key-position string form (including
// any tilde-code prefix, e.g. "~i4").
type KV struct {
	Key string
	Val any
}

// KVPair is an ordered key/value pair for the ~#cmap envelope, where the
// key is carried as a fully encoded host-JSON node rather than a string,
// because cmap exists precisely for keys that have no key-position form.
type KVPair struct {
	Key any
	Val any
}

// Writer is the serializer contract (spec Component C): given the parts of
// a value already reduced to host-JSON nodes, it assembles the concrete
// surface representation (verbose or cached). Callers build bottom-up —
// children are encoded first, then passed to the parent's Writer call —
// rather than through a streaming/event-based API, since the host
// representation is always an in-memory `any` tree in this implementation.
type Writer interface {
	// Null returns the host node for Transit null in value position: the
	// native JSON null. Tilde-coding only applies in key position (see
	// keyFormOf in instances.go).
	Null() any
	// Bool returns the host node for a boolean scalar in value position:
	// a native JSON bool.
	Bool(b bool) any
	// Int returns the host node for an integer scalar in value position:
	// a native JSON number.
	Int(i int64) any
	// Float returns the host node for a floating point scalar in value
	// position: a native JSON number.
	Float(f float64) any
	// String returns the host node for a string scalar, quoting a literal
	// leading tilde so it is not mistaken for a tilde-code.
	String(s string) any
	// Instant returns the host node for a point-in-time scalar.
	Instant(t time.Time) any

	// Array returns the host node for a plain (untagged) array.
	Array(elems []any) any
	// Tagged returns the host node for a tagged array composite (user
	// tuples, sets, and any other composite whose canonical form is an
	// array of elements following its tag).
	Tagged(tag string, elems []any) any
	// Object returns the host node for a plain map envelope: all keys
	// have a key-position string form.
	Object(pairs []KV) any
	// TaggedObject returns the host node for a tagged map composite (user
	// records): a tag plus field name/value pairs.
	TaggedObject(tag string, pairs []KV) any
	// CMap returns the host node for the ~#cmap envelope, used when a
	// map's keys are composite or otherwise have no key-position form.
	CMap(pairs []KVPair) any

	// Quote wraps a document whose top-level value is a bare scalar in
	// the "~#" quoting envelope (spec §3), so a host-JSON parser can
	// always tell a Transit document apart from plain JSON at the root.
	// Composites never pass through Quote — they are already
	// self-describing at the top level.
	Quote(node any) any
}
