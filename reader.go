package transit

import "time"

// Reader is the deserializer contract (spec Component D): it normalizes a
// surface-specific host-JSON node (verbose or cached) into the generic
// shapes the reflection decode engine understands, resolving any
// surface-specific mechanics (cached-surface back-reference substitution,
// array- vs object-envelope detection) internally.
type Reader interface {
	// IsNull reports whether node is Transit null.
	IsNull(node any) bool
	// AsBool narrows node to a bool scalar.
	AsBool(node any) (bool, bool)
	// AsInt narrows node to an integer scalar.
	AsInt(node any) (int64, bool)
	// AsFloat narrows node to a floating point scalar.
	AsFloat(node any) (float64, bool)
	// AsString narrows node to a string scalar. The returned string still
	// carries any doubled-tilde quoting; unquoting is the String canonical
	// instance's job, not the Reader's.
	AsString(node any) (string, bool)
	// AsInstant narrows node to an instant scalar.
	AsInstant(node any) (time.Time, bool)

	// AsArray narrows node to a plain (untagged) array's elements.
	AsArray(node any) ([]any, bool)
	// AsTagged narrows node to a tagged array composite's tag and
	// following elements.
	AsTagged(node any) (tag string, elems []any, ok bool)
	// AsObject narrows node to a plain map envelope's ordered key/value
	// pairs, with any cached-surface key back-references already
	// resolved to their literal key strings.
	AsObject(node any) (pairs []KV, ok bool)
	// AsTaggedObject narrows node to a tagged map composite's tag and
	// ordered field name/value pairs.
	AsTaggedObject(node any) (tag string, pairs []KV, ok bool)
	// AsCMap narrows node to a ~#cmap envelope's ordered key/value node
	// pairs.
	AsCMap(node any) (pairs []KVPair, ok bool)

	// Tag reports the tag of a tagged composite node regardless of
	// whether its canonical form is array- or map-based, for variant
	// dispatch (spec §4.7's registry-indexed builder).
	Tag(node any) (tag string, ok bool)

	// Unquote reverses Quote: if node is a top-level "~#" quoting
	// envelope, it returns the scalar it wraps and wrapped is true;
	// otherwise node is returned unchanged and wrapped is false.
	Unquote(node any) (inner any, wrapped bool)
}
