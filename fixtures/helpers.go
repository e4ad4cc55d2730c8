// Package fixtures provides generated test values for exercising the
// transit codec across property-style round-trip tests.
package fixtures

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Point is a tuple-derived record used across tests as the canonical
// user-tuple example.
type Point struct {
	_ struct{} `transit:"point,tuple"`
	X int
	Y int
}

// Person is a record-derived struct used across tests as the canonical
// user-record example, including a nested map and an extension-scalar
// field.
type Person struct {
	Name    string
	Age     int
	Handle  uuid.UUID
	Tags    []string
	Joined  time.Time
	Friends map[string]int
}

// RandomPerson returns a Person populated with randomized fixture data.
func RandomPerson() Person {
	return Person{
		Name:   gofakeit.Name(),
		Age:    gofakeit.Number(0, 99),
		Handle: uuid.New(),
		Tags:   []string{gofakeit.Word(), gofakeit.Word(), gofakeit.Word()},
		Joined: gofakeit.Date().UTC().Truncate(time.Second),
		Friends: map[string]int{
			gofakeit.FirstName(): gofakeit.Number(0, 10),
			gofakeit.FirstName(): gofakeit.Number(0, 10),
		},
	}
}

// RandomPeople returns n randomized Person fixtures.
func RandomPeople(n int) []Person {
	out := make([]Person, n)
	for i := range out {
		out[i] = RandomPerson()
	}
	return out
}
