package transit

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"time"
)

var (
	timeType            = reflect.TypeFor[time.Time]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	marshalerType       = reflect.TypeFor[Marshaler]()
	keyMarshalerType    = reflect.TypeFor[KeyMarshaler]()
	kindedType          = reflect.TypeFor[Kinded]()
)

// kindOfType classifies a static Go type for dispatch purposes (spec
// §4.1's Kind), without needing a live value. It is used to decide, ahead
// of decoding, whether a map's keys ride the plain object envelope or
// force the ~#cmap envelope.
func kindOfType(t reflect.Type) Kind {
	if t == timeType {
		return Scalar
	}
	if t.Implements(kindedType) || reflect.PointerTo(t).Implements(kindedType) {
		if k, ok := zeroKinded(t); ok {
			return k
		}
	}
	if t.Implements(keyMarshalerType) || reflect.PointerTo(t).Implements(keyMarshalerType) {
		return Scalar
	}
	if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType) {
		return Scalar
	}
	if t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return Scalar
	}
	switch t.Kind() {
	case reflect.Pointer:
		return kindOfType(t.Elem())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return Scalar
	default:
		return Composite
	}
}

func zeroKinded(t reflect.Type) (Kind, bool) {
	zero := reflect.New(t).Elem().Interface()
	if k, ok := zero.(Kinded); ok {
		return k.TransitKind(), true
	}
	return 0, false
}

// kindOfValue classifies a live value the same way marshalAny dispatches
// it, for the one caller (the top-level quoting envelope, spec §3) that
// needs to know Kind after the fact rather than ahead of encoding. A nil
// value is Scalar (it encodes as null).
func kindOfValue(v reflect.Value) Kind {
	v = derefForMarshal(v)
	if !v.IsValid() {
		return Scalar
	}
	if v.Type() == timeType {
		return Scalar
	}
	if k, ok := v.Interface().(Kinded); ok {
		return k.TransitKind()
	}
	return kindOfType(v.Type())
}

// marshalAny encodes v through w, dispatching on v's concrete type: an
// explicit Marshaler implementation first, then the reflective default
// for built-in Go kinds, then struct derivation as a last resort.
func marshalAny(w Writer, v reflect.Value) (any, error) {
	v = derefForMarshal(v)
	if !v.IsValid() {
		return w.Null(), nil
	}

	if v.Type() == timeType {
		return w.Instant(v.Interface().(time.Time)), nil
	}

	if m, ok := asMarshaler(v); ok {
		return m.MarshalTransit(w)
	}

	if tm, ok := asTextMarshaler(v); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, err
		}
		return w.String(string(text)), nil
	}

	switch v.Kind() {
	case reflect.Bool:
		return w.Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return w.Int(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return w.Float(v.Float()), nil
	case reflect.String:
		return w.String(v.String()), nil
	case reflect.Slice, reflect.Array:
		return marshalSequence(w, v)
	case reflect.Map:
		return marshalMap(w, v)
	case reflect.Struct:
		return marshalStruct(w, v)
	case reflect.Interface:
		return marshalAny(w, v.Elem())
	default:
		return nil, fmt.Errorf("%w: cannot encode kind %s", ErrKindViolation, v.Kind())
	}
}

func derefForMarshal(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func asMarshaler(v reflect.Value) (Marshaler, bool) {
	if v.Type().Implements(marshalerType) {
		m, _ := v.Interface().(Marshaler)
		return m, m != nil
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(marshalerType) {
		m, _ := v.Addr().Interface().(Marshaler)
		return m, m != nil
	}
	return nil, false
}

func asTextMarshaler(v reflect.Value) (encoding.TextMarshaler, bool) {
	if v.Type().Implements(textMarshalerType) {
		m, _ := v.Interface().(encoding.TextMarshaler)
		return m, m != nil
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(textMarshalerType) {
		m, _ := v.Addr().Interface().(encoding.TextMarshaler)
		return m, m != nil
	}
	return nil, false
}

func marshalSequence(w Writer, v reflect.Value) (any, error) {
	n := v.Len()
	elems := make([]any, n)
	for i := 0; i < n; i++ {
		node, err := marshalAny(w, v.Index(i))
		if err != nil {
			return nil, err
		}
		elems[i] = node
	}
	return w.Array(elems), nil
}

// marshalMap encodes a Go map, choosing the plain object envelope when
// every key has a key-position form (spec Kind Scalar with a key form),
// and the ~#cmap envelope otherwise.
func marshalMap(w Writer, v reflect.Value) (any, error) {
	keys := sortedMapKeys(v)
	keyType := v.Type().Key()

	if kindOfType(keyType) == Scalar {
		pairs := make([]KV, len(keys))
		for i, k := range keys {
			ks, err := keyFormOf(k)
			if err != nil {
				return nil, err
			}
			val, err := marshalAny(w, v.MapIndex(k))
			if err != nil {
				return nil, err
			}
			pairs[i] = KV{Key: ks, Val: val}
		}
		return w.Object(pairs), nil
	}

	pairs := make([]KVPair, len(keys))
	for i, k := range keys {
		keyNode, err := marshalAny(w, k)
		if err != nil {
			return nil, err
		}
		val, err := marshalAny(w, v.MapIndex(k))
		if err != nil {
			return nil, err
		}
		pairs[i] = KVPair{Key: keyNode, Val: val}
	}
	return w.CMap(pairs), nil
}

// keyFormOf reduces v to its key-position string form.
func keyFormOf(v reflect.Value) (string, error) {
	v = derefForMarshal(v)
	if !v.IsValid() {
		return codeNull, nil
	}
	if v.Type() == timeType {
		return codeInstant + v.Interface().(time.Time).UTC().Format(time.RFC3339Nano), nil
	}
	if v.Type().Implements(keyMarshalerType) {
		km := v.Interface().(KeyMarshaler)
		return km.MarshalTransitKey()
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(keyMarshalerType) {
		km := v.Addr().Interface().(KeyMarshaler)
		return km.MarshalTransitKey()
	}
	if tm, ok := asTextMarshaler(v); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return quoteString(string(text)), nil
	}
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return codeTrue, nil
		}
		return codeFalse, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%s%d", codeInt, v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%s%d", codeInt, v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%s%s", codeFloat, formatFloat(v.Float())), nil
	case reflect.String:
		return quoteString(v.String()), nil
	default:
		return "", fmt.Errorf("%w: type %s has no key-position form", ErrKindViolation, v.Type())
	}
}

// sortedMapKeys returns v's map keys in a deterministic order (spec §8's
// properties rely on stable output), mirroring the sorted iteration a
// Rust BTreeMap gives the original implementation for free.
func sortedMapKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return compareReflectValues(keys[i], keys[j]) < 0
	})
	return keys
}

// compareReflectValues orders two values of the same underlying type for
// deterministic output. Numeric and string kinds compare by their actual
// value (so "~i10" sorts after "~i9", unlike a naive lexicographic
// comparison of their key-position forms); anything else falls back to
// comparing key-position forms, and finally to a %v rendering.
func compareReflectValues(a, b reflect.Value) int {
	a, b = derefForMarshal(a), derefForMarshal(b)
	if a.IsValid() && b.IsValid() && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmpOrdered(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return cmpOrdered(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmpOrdered(a.Float(), b.Float())
		case reflect.String:
			return cmpOrdered(a.String(), b.String())
		case reflect.Bool:
			return cmpOrdered(boolRank(a.Bool()), boolRank(b.Bool()))
		}
	}

	aStr, aErr := keyFormOf(a)
	bStr, bErr := keyFormOf(b)
	if aErr == nil && bErr == nil {
		return cmpOrdered(aStr, bStr)
	}
	return cmpOrdered(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func cmpOrdered[T int | int64 | uint64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
