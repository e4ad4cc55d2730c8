package transit

import (
	"reflect"
	"testing"
)

func TestVerboseScalarMapTildeCodedKeys(t *testing.T) {
	node, err := EncodeVerbose(map[int]string{4: "yolo", -6: "swag", 10: "ok"})
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	obj, ok := node.(map[string]any)
	if !ok {
		t.Fatalf("node is %T, want map[string]any", node)
	}
	if obj["~i4"] != "yolo" || obj["~i-6"] != "swag" || obj["~i10"] != "ok" {
		t.Fatalf("node = %#v, missing expected entries", obj)
	}

	back, err := DecodeVerbose[map[int]string](node)
	if err != nil {
		t.Fatalf("DecodeVerbose: %v", err)
	}
	want := map[int]string{4: "yolo", -6: "swag", 10: "ok"}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("round trip = %#v, want %#v", back, want)
	}
}

func TestVerboseCompositeKeyMapUsesCMap(t *testing.T) {
	type coord struct {
		X, Y int
	}
	m := map[coord]string{{X: 1, Y: 2}: "a", {X: 3, Y: 4}: "b"}

	node, err := EncodeVerbose(m)
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	obj, ok := node.(map[string]any)
	if !ok || len(obj) != 1 {
		t.Fatalf("node = %#v, want single-key tagged object", node)
	}
	if _, ok := obj[tagged(tagCMap)]; !ok {
		t.Fatalf("node = %#v, want %q key", node, tagged(tagCMap))
	}

	back, err := DecodeVerbose[map[coord]string](node)
	if err != nil {
		t.Fatalf("DecodeVerbose: %v", err)
	}
	if !reflect.DeepEqual(back, m) {
		t.Errorf("round trip = %#v, want %#v", back, m)
	}
}

func TestVerboseStringQuoting(t *testing.T) {
	node, err := EncodeVerbose("~i4")
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	wrapped, ok := node.(map[string]any)
	if !ok || len(wrapped) != 1 {
		t.Fatalf("node = %#v, want a single-key top-level quoting envelope", node)
	}
	if wrapped[tagged("")] != "~~i4" {
		t.Fatalf("node = %#v, want %q under the %q key", node, "~~i4", tagged(""))
	}
	back, err := DecodeVerbose[string](node)
	if err != nil {
		t.Fatalf("DecodeVerbose: %v", err)
	}
	if back != "~i4" {
		t.Errorf("round trip = %q, want %q", back, "~i4")
	}
}

func TestVerboseTaggedSet(t *testing.T) {
	s := NewSet(3, 1, 2)
	node, err := EncodeVerbose(s)
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	obj, ok := node.(map[string]any)
	if !ok {
		t.Fatalf("node is %T, want map[string]any", node)
	}
	elems, ok := obj[tagged(tagSet)].([]any)
	if !ok {
		t.Fatalf("node = %#v, want %q array", node, tagged(tagSet))
	}
	want := []any{int64(1), int64(2), int64(3)}
	if !reflect.DeepEqual(elems, want) {
		t.Errorf("elems = %#v, want %#v", elems, want)
	}
}

func TestVerbosePlainArray(t *testing.T) {
	node, err := EncodeVerbose([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	want := []any{int64(1), int64(2), int64(3)}
	if !reflect.DeepEqual(node, want) {
		t.Errorf("node = %#v, want %#v", node, want)
	}
}

func TestVerboseNull(t *testing.T) {
	var p *int
	node, err := EncodeVerbose(p)
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	wrapped, ok := node.(map[string]any)
	if !ok || len(wrapped) != 1 {
		t.Fatalf("node = %#v, want a single-key top-level quoting envelope", node)
	}
	if v, present := wrapped[tagged("")]; !present || v != nil {
		t.Errorf("node = %#v, want nil under the %q key", node, tagged(""))
	}
	back, err := DecodeVerbose[*int](node)
	if err != nil {
		t.Fatalf("DecodeVerbose: %v", err)
	}
	if back != nil {
		t.Errorf("back = %v, want nil", back)
	}
}

func TestVerboseValuePositionScalarsAreNative(t *testing.T) {
	type scalars struct {
		N int
		F float64
		B bool
	}
	node, err := EncodeVerbose(scalars{N: 7, F: 1.5, B: true})
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	_, fields, ok := verboseSingleTagged(node)
	if !ok {
		t.Fatalf("node = %#v, want a tagged record", node)
	}
	obj, ok := fields.(map[string]any)
	if !ok {
		t.Fatalf("fields = %#v, want map[string]any", fields)
	}
	if n, ok := obj["N"].(int64); !ok || n != 7 {
		t.Errorf(`obj["N"] = %#v, want native int64 7`, obj["N"])
	}
	if f, ok := obj["F"].(float64); !ok || f != 1.5 {
		t.Errorf(`obj["F"] = %#v, want native float64 1.5`, obj["F"])
	}
	if b, ok := obj["B"].(bool); !ok || !b {
		t.Errorf(`obj["B"] = %#v, want native bool true`, obj["B"])
	}
}

func TestVerboseTupleDerivation(t *testing.T) {
	type point struct {
		_ struct{} `transit:"point,tuple"`
		X int
		Y int
	}
	node, err := EncodeVerbose(point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	back, err := DecodeVerbose[point](node)
	if err != nil {
		t.Fatalf("DecodeVerbose: %v", err)
	}
	if back.X != 1 || back.Y != 2 {
		t.Errorf("back = %+v, want {1 2}", back)
	}
}
