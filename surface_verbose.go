package transit

import "time"

// verboseWriter implements Writer for the verbose JSON surface (spec
// §4.5): maps are JSON objects, tagged composites are single-key JSON
// objects keyed by their "~#tag" marker. It carries no state — the
// verbose surface never caches.
type verboseWriter struct{}

func (verboseWriter) Null() any           { return nil }
func (verboseWriter) Bool(b bool) any     { return b }
func (verboseWriter) Int(i int64) any     { return i }
func (verboseWriter) Float(f float64) any { return f }
func (verboseWriter) String(s string) any { return quoteString(s) }
func (verboseWriter) Instant(t time.Time) any {
	return codeInstant + t.UTC().Format(time.RFC3339Nano)
}

func (verboseWriter) Array(elems []any) any {
	if elems == nil {
		elems = []any{}
	}
	return elems
}

func (verboseWriter) Tagged(tag string, elems []any) any {
	if elems == nil {
		elems = []any{}
	}
	return map[string]any{tagged(tag): elems}
}

func (verboseWriter) Object(pairs []KV) any {
	obj := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		obj[kv.Key] = kv.Val
	}
	return obj
}

func (verboseWriter) TaggedObject(tag string, pairs []KV) any {
	fields := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		fields[kv.Key] = kv.Val
	}
	return map[string]any{tagged(tag): fields}
}

func (verboseWriter) CMap(pairs []KVPair) any {
	flat := make([]any, 0, len(pairs)*2)
	for _, p := range pairs {
		flat = append(flat, p.Key, p.Val)
	}
	return map[string]any{tagged(tagCMap): flat}
}

// Quote wraps a bare top-level scalar in the "~#" quoting envelope (spec
// §3) so a document whose entire value is, say, a string or a number is
// still recognizable as Transit at the root.
func (verboseWriter) Quote(node any) any {
	return map[string]any{tagged(""): node}
}

// verboseReader implements Reader for the verbose JSON surface.
type verboseReader struct{}

func (verboseReader) IsNull(node any) bool {
	return node == nil
}

func (verboseReader) AsBool(node any) (bool, bool) {
	b, ok := node.(bool)
	return b, ok
}

func (verboseReader) AsInt(node any) (int64, bool) {
	return asIntValue(node)
}

func (verboseReader) AsFloat(node any) (float64, bool) {
	return asFloatValue(node)
}

func (verboseReader) AsString(node any) (string, bool) {
	s, ok := node.(string)
	if !ok {
		return "", false
	}
	if hasTildeCode(s) {
		return "", false
	}
	return s, true
}

func (verboseReader) AsInstant(node any) (time.Time, bool) {
	s, ok := node.(string)
	if !ok {
		return time.Time{}, false
	}
	return parseInstantCode(s)
}

func (verboseReader) AsArray(node any) ([]any, bool) {
	a, ok := node.([]any)
	if !ok {
		return nil, false
	}
	return a, true
}

func (verboseReader) AsTagged(node any) (string, []any, bool) {
	tag, rest, ok := verboseSingleTagged(node)
	if !ok {
		return "", nil, false
	}
	elems, ok := rest.([]any)
	if !ok {
		return "", nil, false
	}
	return tag, elems, true
}

func (verboseReader) AsObject(node any) ([]KV, bool) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, false
	}
	if len(m) == 1 {
		for k := range m {
			if _, isTag := tagName(k); isTag {
				return nil, false
			}
		}
	}
	pairs := make([]KV, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, KV{Key: k, Val: v})
	}
	return pairs, true
}

func (verboseReader) AsTaggedObject(node any) (string, []KV, bool) {
	tag, rest, ok := verboseSingleTagged(node)
	if !ok {
		return "", nil, false
	}
	fields, ok := rest.(map[string]any)
	if !ok {
		return "", nil, false
	}
	pairs := make([]KV, 0, len(fields))
	for k, v := range fields {
		pairs = append(pairs, KV{Key: k, Val: v})
	}
	return tag, pairs, true
}

func (verboseReader) AsCMap(node any) ([]KVPair, bool) {
	tag, rest, ok := verboseSingleTagged(node)
	if !ok || tag != tagCMap {
		return nil, false
	}
	flat, ok := rest.([]any)
	if !ok || len(flat)%2 != 0 {
		return nil, false
	}
	pairs := make([]KVPair, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		pairs = append(pairs, KVPair{Key: flat[i], Val: flat[i+1]})
	}
	return pairs, true
}

func (verboseReader) Tag(node any) (string, bool) {
	tag, _, ok := verboseSingleTagged(node)
	return tag, ok
}

func (verboseReader) Unquote(node any) (any, bool) {
	m, ok := node.(map[string]any)
	if !ok || len(m) != 1 {
		return node, false
	}
	inner, ok := m[tagged("")]
	if !ok {
		return node, false
	}
	return inner, true
}

// verboseSingleTagged reports whether node is a single-key JSON object
// whose key is a tilde-coded tag marker, returning the tag name and the
// associated value.
func verboseSingleTagged(node any) (string, any, bool) {
	m, ok := node.(map[string]any)
	if !ok || len(m) != 1 {
		return "", nil, false
	}
	for k, v := range m {
		if tag, isTag := tagName(k); isTag {
			return tag, v, true
		}
	}
	return "", nil, false
}
