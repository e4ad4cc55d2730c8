package transit

import (
	"encoding"
	"fmt"
	"reflect"
)

// decodeInto decodes node through r into target, dispatching on target's
// static type: an explicit Unmarshaler first, then the reflective default
// for built-in Go kinds, then struct derivation, then registered variant
// dispatch for named interfaces.
func decodeInto(r Reader, node any, target reflect.Value, path string) error {
	if u, ok := asUnmarshaler(target); ok {
		return u.UnmarshalTransit(r, node)
	}

	if target.Type() == timeType {
		t, ok := r.AsInstant(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		target.Set(reflect.ValueOf(t))
		return nil
	}

	if tu, ok := asTextUnmarshaler(target); ok {
		s, ok := r.AsString(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		return tu.UnmarshalText([]byte(unquoteString(s)))
	}

	switch target.Kind() {
	case reflect.Bool:
		b, ok := r.AsBool(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		target.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := r.AsInt(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		if target.OverflowInt(i) {
			return newDecodeError(ErrNarrowing, path)
		}
		target.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := r.AsInt(node)
		if !ok || i < 0 {
			return newDecodeError(ErrShapeMismatch, path)
		}
		if target.OverflowUint(uint64(i)) {
			return newDecodeError(ErrNarrowing, path)
		}
		target.SetUint(uint64(i))
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := r.AsFloat(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		if target.OverflowFloat(f) {
			return newDecodeError(ErrNarrowing, path)
		}
		target.SetFloat(f)
		return nil

	case reflect.String:
		s, ok := r.AsString(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		target.SetString(unquoteString(s))
		return nil

	case reflect.Pointer:
		if r.IsNull(node) {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		return decodeInto(r, node, target.Elem(), path)

	case reflect.Slice:
		elems, ok := r.AsArray(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		out := reflect.MakeSlice(target.Type(), len(elems), len(elems))
		for i, elem := range elems {
			if err := decodeInto(r, elem, out.Index(i), pathIndex(path, i)); err != nil {
				return err
			}
		}
		target.Set(out)
		return nil

	case reflect.Array:
		elems, ok := r.AsArray(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		if len(elems) != target.Len() {
			return newDecodeError(fmt.Errorf("%w: want %d elements, got %d", ErrShapeMismatch, target.Len(), len(elems)), path)
		}
		for i, elem := range elems {
			if err := decodeInto(r, elem, target.Index(i), pathIndex(path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		return decodeMap(r, node, target, path)

	case reflect.Struct:
		return decodeStruct(r, node, target, path)

	case reflect.Interface:
		return decodeVariant(r, node, target, path)

	default:
		return newDecodeError(fmt.Errorf("%w: cannot decode into kind %s", ErrKindViolation, target.Kind()), path)
	}
}

func decodeMap(r Reader, node any, target reflect.Value, path string) error {
	mt := target.Type()
	out := reflect.MakeMap(mt)

	if kindOfType(mt.Key()) == Scalar {
		pairs, ok := r.AsObject(node)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		for _, kv := range pairs {
			key := reflect.New(mt.Key()).Elem()
			if err := decodeKeyInto(kv.Key, key, pathField(path, kv.Key)); err != nil {
				return err
			}
			val := reflect.New(mt.Elem()).Elem()
			if err := decodeInto(r, kv.Val, val, pathField(path, kv.Key)); err != nil {
				return err
			}
			out.SetMapIndex(key, val)
		}
		target.Set(out)
		return nil
	}

	pairs, ok := r.AsCMap(node)
	if !ok {
		return newDecodeError(ErrShapeMismatch, path)
	}
	for i, p := range pairs {
		key := reflect.New(mt.Key()).Elem()
		if err := decodeInto(r, p.Key, key, pathIndex(path, i)); err != nil {
			return err
		}
		val := reflect.New(mt.Elem()).Elem()
		if err := decodeInto(r, p.Val, val, pathIndex(path, i)); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	target.Set(out)
	return nil
}

// decodeKeyInto decodes a key-position string produced by keyFormOf back
// into target.
func decodeKeyInto(s string, target reflect.Value, path string) error {
	if ku, ok := asKeyUnmarshaler(target); ok {
		return ku.UnmarshalTransitKey(s)
	}
	if target.Type() == timeType {
		t, ok := parseInstantCode(s)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		target.Set(reflect.ValueOf(t))
		return nil
	}
	if tu, ok := asTextUnmarshaler(target); ok {
		return tu.UnmarshalText([]byte(unquoteString(s)))
	}
	switch target.Kind() {
	case reflect.Bool:
		b, ok := parseBoolCode(s)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		target.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := parseIntCode(s)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		if target.OverflowInt(i) {
			return newDecodeError(ErrNarrowing, path)
		}
		target.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := parseIntCode(s)
		if !ok || i < 0 {
			return newDecodeError(ErrShapeMismatch, path)
		}
		if target.OverflowUint(uint64(i)) {
			return newDecodeError(ErrNarrowing, path)
		}
		target.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		f, ok := parseFloatCode(s)
		if !ok {
			return newDecodeError(ErrShapeMismatch, path)
		}
		target.SetFloat(f)
	case reflect.String:
		target.SetString(unquoteString(s))
	default:
		return newDecodeError(fmt.Errorf("%w: type %s has no key-position form", ErrKindViolation, target.Type()), path)
	}
	return nil
}

// decodeVariant resolves a named interface target via the variant
// registry (spec §4.7). Decoding into the bare `any`/interface{} type is
// rejected: this package defines no polymorphic "read any value"
// deserializer.
func decodeVariant(r Reader, node any, target reflect.Value, path string) error {
	if target.NumMethod() == 0 {
		return newDecodeError(fmt.Errorf("%w: cannot decode into interface{}", ErrShapeMismatch), path)
	}

	tag, ok := r.Tag(node)
	if !ok {
		return newDecodeError(ErrShapeMismatch, path)
	}
	ctor, ok := variantConstructors.Load(tag)
	if !ok {
		return newDecodeError(fmt.Errorf("%w: no variant registered for tag %q", ErrTagViolation, tag), path)
	}

	inst := reflect.ValueOf(ctor())
	if inst.Kind() != reflect.Pointer {
		return newDecodeError(fmt.Errorf("%w: variant constructor for %q must return a pointer", ErrTagViolation, tag), path)
	}
	if err := decodeInto(r, node, inst.Elem(), path); err != nil {
		return err
	}
	if !inst.Type().AssignableTo(target.Type()) {
		return newDecodeError(fmt.Errorf("%w: %s does not implement %s", ErrTagViolation, inst.Type(), target.Type()), path)
	}
	target.Set(inst)
	return nil
}

func asUnmarshaler(v reflect.Value) (Unmarshaler, bool) {
	if !v.CanAddr() {
		return nil, false
	}
	u, ok := v.Addr().Interface().(Unmarshaler)
	return u, ok
}

func asKeyUnmarshaler(v reflect.Value) (KeyUnmarshaler, bool) {
	if !v.CanAddr() {
		return nil, false
	}
	u, ok := v.Addr().Interface().(KeyUnmarshaler)
	return u, ok
}

func asTextUnmarshaler(v reflect.Value) (encoding.TextUnmarshaler, bool) {
	if !v.CanAddr() {
		return nil, false
	}
	u, ok := v.Addr().Interface().(encoding.TextUnmarshaler)
	return u, ok
}
