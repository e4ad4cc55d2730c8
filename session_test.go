package transit

import (
	"reflect"
	"testing"

	"github.com/zoobzio/transit/fixtures"
)

func TestMarshalUnmarshalVerboseRoundTrip(t *testing.T) {
	data, err := MarshalVerbose(map[string]int{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("MarshalVerbose: %v", err)
	}
	back, err := UnmarshalVerbose[map[string]int](data)
	if err != nil {
		t.Fatalf("UnmarshalVerbose: %v", err)
	}
	want := map[string]int{"a": 1, "b": 2}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("round trip = %#v, want %#v", back, want)
	}
}

func TestMarshalUnmarshalCachedRoundTrip(t *testing.T) {
	data, err := MarshalCached([]string{"repeated-value", "repeated-value", "repeated-value"})
	if err != nil {
		t.Fatalf("MarshalCached: %v", err)
	}
	back, err := UnmarshalCached[[]string](data)
	if err != nil {
		t.Fatalf("UnmarshalCached: %v", err)
	}
	want := []string{"repeated-value", "repeated-value", "repeated-value"}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("round trip = %#v, want %#v", back, want)
	}
}

func TestPersonFixtureRoundTripBothSurfaces(t *testing.T) {
	for _, surface := range []string{"verbose", "cached"} {
		t.Run(surface, func(t *testing.T) {
			people := fixtures.RandomPeople(10)
			for _, person := range people {
				var (
					node any
					err  error
					back fixtures.Person
				)
				switch surface {
				case "verbose":
					node, err = EncodeVerbose(person)
					if err == nil {
						back, err = DecodeVerbose[fixtures.Person](node)
					}
				case "cached":
					node, err = EncodeCached(person)
					if err == nil {
						back, err = DecodeCached[fixtures.Person](node)
					}
				}
				if err != nil {
					t.Fatalf("%s round trip: %v", surface, err)
				}
				if back.Name != person.Name || back.Age != person.Age || back.Handle != person.Handle {
					t.Errorf("%s round trip scalar fields = %+v, want %+v", surface, back, person)
				}
				if !reflect.DeepEqual(back.Tags, person.Tags) {
					t.Errorf("%s round trip Tags = %#v, want %#v", surface, back.Tags, person.Tags)
				}
				if !reflect.DeepEqual(back.Friends, person.Friends) {
					t.Errorf("%s round trip Friends = %#v, want %#v", surface, back.Friends, person.Friends)
				}
				if !back.Joined.Equal(person.Joined) {
					t.Errorf("%s round trip Joined = %v, want %v", surface, back.Joined, person.Joined)
				}
			}
		})
	}
}

func TestDecodeNarrowingOverflow(t *testing.T) {
	node, err := EncodeVerbose(int64(1 << 40))
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	if _, err := DecodeVerbose[int8](node); err == nil {
		t.Fatal("DecodeVerbose into int8: want overflow error, got nil")
	}
}

func TestMarshalUnmarshalBareScalarRoundTrip(t *testing.T) {
	for _, surface := range []string{"verbose", "cached"} {
		t.Run(surface, func(t *testing.T) {
			var (
				data []byte
				err  error
				back int
			)
			switch surface {
			case "verbose":
				data, err = MarshalVerbose(99)
				if err == nil {
					back, err = UnmarshalVerbose[int](data)
				}
			case "cached":
				data, err = MarshalCached(99)
				if err == nil {
					back, err = UnmarshalCached[int](data)
				}
			}
			if err != nil {
				t.Fatalf("%s round trip: %v", surface, err)
			}
			if back != 99 {
				t.Errorf("%s round trip = %d, want 99", surface, back)
			}
		})
	}
}

func TestDecodeShapeMismatch(t *testing.T) {
	node, err := EncodeVerbose("not a number")
	if err != nil {
		t.Fatalf("EncodeVerbose: %v", err)
	}
	if _, err := DecodeVerbose[int](node); err == nil {
		t.Fatal("DecodeVerbose string into int: want shape mismatch error, got nil")
	}
}
