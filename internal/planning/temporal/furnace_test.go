package temporal_test

import (
	"reflect"
	"testing"

	"minebot.ai/internal/planning/temporal"
)

func TestBuildFurnaceRulesIronOre(t *testing.T) {
	rules := temporal.BuildFurnaceRules([]string{"iron_ore"}, 2)
	if len(rules) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(rules))
	}

	families := []temporal.OperatorFamily{
		temporal.FamilyLoadFurnace,
		temporal.FamilyAddFuel,
		temporal.FamilyWaitTick,
		temporal.FamilyRetrieveOutput,
	}
	costs := []float64{2, 1, 10, 2}
	for i, r := range rules {
		if r.OperatorFamily != families[i] {
			t.Fatalf("rule %d: family %q want %q", i, r.OperatorFamily, families[i])
		}
		if r.BaseCost != costs[i] {
			t.Fatalf("rule %d: cost %v want %v", i, r.BaseCost, costs[i])
		}
		if r.RequiresSlotType != "furnace" || !r.NeedsFurnace {
			t.Fatalf("rule %d: expected furnace requirement, got %+v", i, r)
		}
		if r.ActionType != temporal.ActionSmelt {
			t.Fatalf("rule %d: action type %q", i, r.ActionType)
		}
	}

	if got := rules[0].Consumes; !reflect.DeepEqual(got, []temporal.ItemCount{{Name: "iron_ore", Count: 1}}) {
		t.Fatalf("load consumes %+v", got)
	}
	if got := rules[1].Consumes; !reflect.DeepEqual(got, []temporal.ItemCount{{Name: "coal", Count: 1}}) {
		t.Fatalf("fuel consumes %+v", got)
	}

	wait := rules[2]
	if wait.DurationTicks != 200 {
		t.Fatalf("wait duration %d want 200", wait.DurationTicks)
	}
	if !reflect.DeepEqual(wait.Produces, []temporal.ItemCount{{Name: "smelting:iron_ore", Count: 1}}) {
		t.Fatalf("wait produces %+v", wait.Produces)
	}

	ret := rules[3]
	if !reflect.DeepEqual(ret.Produces, []temporal.ItemCount{{Name: "iron_ingot", Count: 1}}) {
		t.Fatalf("retrieve produces %+v", ret.Produces)
	}
	if !reflect.DeepEqual(ret.Consumes, []temporal.ItemCount{{Name: "smelting:iron_ore", Count: 1}}) {
		t.Fatalf("retrieve consumes %+v", ret.Consumes)
	}
	for _, i := range []int{0, 1, 3} {
		if rules[i].DurationTicks != 0 {
			t.Fatalf("rule %d: expected zero duration, got %d", i, rules[i].DurationTicks)
		}
	}
}

func TestBuildFurnaceRulesSkipsUnknown(t *testing.T) {
	rules := temporal.BuildFurnaceRules([]string{"not_a_real_item"}, 2)
	if rules == nil || len(rules) != 0 {
		t.Fatalf("expected empty rule list, got %+v", rules)
	}
	rules = temporal.BuildFurnaceRules([]string{"sand", "not_a_real_item", "raw_beef"}, 1)
	if len(rules) != 8 {
		t.Fatalf("expected 8 rules, got %d", len(rules))
	}
	if rules[0].Action != "furnace_load:sand" || rules[4].Action != "furnace_load:raw_beef" {
		t.Fatalf("unexpected rule order: %s, %s", rules[0].Action, rules[4].Action)
	}
}

func TestBuildFurnaceRulesIgnoresSlotCount(t *testing.T) {
	a := temporal.BuildFurnaceRules([]string{"gold_ore"}, 1)
	b := temporal.BuildFurnaceRules([]string{"gold_ore"}, 6)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("slot count changed rule output")
	}
}

func TestCheckSlotPrecondition(t *testing.T) {
	cases := []struct {
		occupied bool
		family   temporal.OperatorFamily
		want     bool
	}{
		{true, temporal.FamilyLoadFurnace, true},
		{false, temporal.FamilyLoadFurnace, false},
		{true, temporal.FamilyAddFuel, false},
		{true, temporal.FamilyWaitTick, false},
		{true, temporal.FamilyRetrieveOutput, false},
		{false, temporal.FamilyRetrieveOutput, false},
	}
	for _, c := range cases {
		if got := temporal.CheckSlotPrecondition(c.occupied, c.family); got != c.want {
			t.Fatalf("CheckSlotPrecondition(%v,%s)=%v want %v", c.occupied, c.family, got, c.want)
		}
	}
}
