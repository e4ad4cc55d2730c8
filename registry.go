package transit

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// recordPlans caches derived record/tuple plans per Go type, built once
// and reused for the lifetime of the process. It is read on every struct
// value encoded or decoded, unlike a typical per-call cache, so it uses a
// lock-free concurrent map rather than a mutex-guarded one.
var recordPlans = xsync.NewMapOf[reflect.Type, *recordPlan]()

// variantConstructors maps a registered variant tag to a zero-value
// constructor for the concrete type it decodes to.
var variantConstructors = xsync.NewMapOf[string, func() any]()

// variantTagsByType maps a registered concrete variant type back to its
// tag. RegisterVariant fills it; encoding takes tags from
// getOrBuildRecordPlan and does not read it.
var variantTagsByType = xsync.NewMapOf[reflect.Type, string]()

// getOrBuildRecordPlan returns the cached plan for t, building and
// caching it on first use.
func getOrBuildRecordPlan(t reflect.Type) (*recordPlan, error) {
	if plan, ok := recordPlans.Load(t); ok {
		return plan, nil
	}
	plan, err := buildRecordPlan(t)
	if err != nil {
		return nil, err
	}
	actual, _ := recordPlans.LoadOrStore(t, plan)
	return actual, nil
}

// ResetRecordPlans clears the derivation cache. Exposed for test
// isolation; ordinary callers never need it.
func ResetRecordPlans() {
	recordPlans.Clear()
}

// RegisterVariant registers C as a decodable alternative for a variant
// interface: decoding a tagged composite whose tag matches C's own
// derived record/tuple tag will produce the value ctor returns. That value
// must be a pointer: decoding fails with ErrTagViolation when C is not a
// pointer type. This is the registry-indexed equivalent of a
// derive macro for open sum types, since Go has no closed union to
// reflect over.
func RegisterVariant[C any](ctor func() C) error {
	var zero C
	t := reflect.TypeOf(zero)
	if t == nil {
		t = reflect.TypeFor[C]()
	}
	elemType := t
	for elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}
	plan, err := getOrBuildRecordPlan(elemType)
	if err != nil {
		return err
	}
	variantConstructors.Store(plan.tag, func() any { return ctor() })
	variantTagsByType.Store(t, plan.tag)
	variantTagsByType.Store(elemType, plan.tag)
	return nil
}
