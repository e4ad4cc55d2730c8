// Package transit implements the Transit data interchange format over a
// JSON host representation.
//
// Transit layers a richer type vocabulary on top of JSON — integers and
// floats distinguished from their textual forms, sets distinguished from
// lists, maps with non-string keys, tagged extension values, and null —
// by attaching small textual type markers ("tilde-codes") to scalars and
// wrapping composites in a conventional envelope.
//
// # Surfaces
//
// Two JSON surface encodings are provided:
//
//   - Verbose: a faithful, human-readable projection. Maps are JSON
//     objects, tagged composites are single-key JSON objects.
//   - Cached: a terser encoding for large homogeneous payloads. Map
//     envelopes and tag names become arrays, and repeated short strings
//     in key position (or as tag names) are replaced by compact
//     back-references after their first occurrence.
//
// # Basic usage
//
//	node, _ := transit.EncodeVerbose(map[int]string{4: "yolo", -6: "swag"})
//	data, _ := json.Marshal(node)
//
//	out, _ := transit.DecodeVerbose[map[int]string](node)
//
// Or, skipping the intermediate host-JSON node entirely:
//
//	data, _ := transit.MarshalCached(myValue)
//	var out MyType
//	out, _ = transit.UnmarshalCached[MyType](data)
//
// # Participating types
//
// Built-in Go kinds (bool, integer and float kinds, string, pointer,
// slice, array, map, struct) are handled automatically by a reflection
// fallback. A type that needs custom representation implements Marshaler
// and Unmarshaler (and, if it can appear as a map key, KeyMarshaler and
// KeyUnmarshaler). Struct types that don't implement these interfaces
// are derived automatically into tagged records (or tuples — see
// derive.go) the first time they're encountered, and the derived plan is
// cached for the lifetime of the process.
//
// # Non-goals
//
// This package defines no binary representation, no streaming I/O, no
// schema validation, and no polymorphic "read any value" deserializer:
// decoding is always driven by the expected static shape of the target.
package transit
