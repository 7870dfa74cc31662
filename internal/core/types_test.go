package core

import (
	"slices"
	"testing"
)

type stubSim struct{}

func (stubSim) Name() string   { return "stub" }
func (stubSim) Size() Size     { return Size{W: 1, H: 1} }
func (stubSim) Reset(int64)    {}
func (stubSim) Step()          {}
func (stubSim) Cells() []uint8 { return []uint8{0} }

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) Sim { return stubSim{} })
	Register("zz-stub", nil)
	if _, ok := Sims()[""]; ok {
		t.Fatal("empty name registered")
	}
	if _, ok := Sims()["zz-stub"]; ok {
		t.Fatal("nil factory registered")
	}
	Register("zz-stub", func(map[string]string) Sim { return stubSim{} })
	t.Cleanup(func() { delete(sims, "zz-stub") })
	names := SimNames()
	if !slices.IsSorted(names) || !slices.Contains(names, "zz-stub") {
		t.Fatalf("SimNames = %v", names)
	}
	if Sims()["zz-stub"](nil).Name() != "stub" {
		t.Fatal("factory not returned")
	}
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{IntParam("x", "X", 3)}},
		{Name: "b", Params: []Parameter{FloatParam("y", "Y", 0.5), BoolParam("z", "Z", true), StringParam("s", "S", "v")}},
	}}
	if p, ok := snap.Lookup("y"); !ok || p.Value != "0.500" || p.Type != ParamTypeFloat {
		t.Fatalf("y = %+v", p)
	}
	if p, ok := snap.Lookup("z"); !ok || p.Value != "true" {
		t.Fatalf("z = %+v", p)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("missing key found")
	}
}
