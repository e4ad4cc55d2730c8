package transit

import (
	"reflect"
	"testing"
)

type derivePoint struct {
	_ struct{} `transit:"point,tuple"`
	X int
	Y int
}

type deriveShape struct {
	Name  string
	Sides int
}

type deriveWithSkip struct {
	Public  string
	private string //nolint:unused
	Hidden  string `transit:"-"`
}

func TestBuildRecordPlanTuple(t *testing.T) {
	plan, err := buildRecordPlan(reflect.TypeOf(derivePoint{}))
	if err != nil {
		t.Fatalf("buildRecordPlan: %v", err)
	}
	if !plan.tuple {
		t.Error("plan.tuple = false, want true")
	}
	if plan.tag != "point" {
		t.Errorf("plan.tag = %q, want %q", plan.tag, "point")
	}
	if len(plan.fields) != 2 {
		t.Fatalf("len(plan.fields) = %d, want 2", len(plan.fields))
	}
}

func TestBuildRecordPlanDefaultTag(t *testing.T) {
	plan, err := buildRecordPlan(reflect.TypeOf(deriveShape{}))
	if err != nil {
		t.Fatalf("buildRecordPlan: %v", err)
	}
	if plan.tuple {
		t.Error("plan.tuple = true, want false")
	}
	if plan.tag != "deriveshape" {
		t.Errorf("plan.tag = %q, want %q", plan.tag, "deriveshape")
	}
}

func TestBuildRecordPlanSkipsUnexportedAndTagged(t *testing.T) {
	plan, err := buildRecordPlan(reflect.TypeOf(deriveWithSkip{}))
	if err != nil {
		t.Fatalf("buildRecordPlan: %v", err)
	}
	if len(plan.fields) != 1 || plan.fields[0].name != "Public" {
		t.Fatalf("plan.fields = %+v, want only Public", plan.fields)
	}
}

func TestGetOrBuildRecordPlanCaches(t *testing.T) {
	ResetRecordPlans()
	t.Cleanup(ResetRecordPlans)

	p1, err := getOrBuildRecordPlan(reflect.TypeOf(deriveShape{}))
	if err != nil {
		t.Fatalf("getOrBuildRecordPlan: %v", err)
	}
	p2, err := getOrBuildRecordPlan(reflect.TypeOf(deriveShape{}))
	if err != nil {
		t.Fatalf("getOrBuildRecordPlan: %v", err)
	}
	if p1 != p2 {
		t.Error("getOrBuildRecordPlan returned different plans for the same type")
	}
}
