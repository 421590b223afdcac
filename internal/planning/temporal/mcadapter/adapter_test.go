package mcadapter

import (
	"reflect"
	"testing"

	"minebot.ai/internal/planning/temporal"
)

func sampleState() temporal.TemporalState {
	return temporal.TemporalState{
		Time: temporal.TimeState{CurrentBucket: 10, HorizonBucket: 110, BucketSizeTicks: 100},
		Slots: []temporal.ResourceSlot{
			{ID: "smoker_0", Type: "smoker", ReadyAtBucket: 10},
			{ID: "furnace_1", Type: "furnace", ReadyAtBucket: 30},
			{ID: "furnace_0", Type: "furnace", ReadyAtBucket: 30},
			{ID: "furnace_2", Type: "furnace", ReadyAtBucket: 12},
		},
	}
}

func TestCanonicalizeSortsAndIsIdempotent(t *testing.T) {
	a := Default()
	raw := sampleState()
	once, err := a.Canonicalize(raw)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	ids := make([]string, 0, len(once.Slots))
	for _, s := range once.Slots {
		ids = append(ids, s.ID)
	}
	if want := []string{"furnace_2", "furnace_0", "furnace_1", "smoker_0"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("order %v want %v", ids, want)
	}
	twice, err := a.Canonicalize(once)
	if err != nil {
		t.Fatalf("Canonicalize twice: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent")
	}
	if raw.Slots[0].ID != "smoker_0" {
		t.Fatalf("raw input was mutated")
	}
}

func TestCanonicalizeValidation(t *testing.T) {
	a := Default()
	cases := map[string]temporal.TemporalState{
		"zero bucket size": {Time: temporal.TimeState{CurrentBucket: 0, HorizonBucket: 1, BucketSizeTicks: 0}},
		"negative current": {Time: temporal.TimeState{CurrentBucket: -1, HorizonBucket: 1, BucketSizeTicks: 100}},
		"horizon before":   {Time: temporal.TimeState{CurrentBucket: 5, HorizonBucket: 4, BucketSizeTicks: 100}},
		"negative ready": {
			Time:  temporal.TimeState{CurrentBucket: 0, HorizonBucket: 1, BucketSizeTicks: 100},
			Slots: []temporal.ResourceSlot{{ID: "f", Type: "furnace", ReadyAtBucket: -3}},
		},
		"empty id": {
			Time:  temporal.TimeState{CurrentBucket: 0, HorizonBucket: 1, BucketSizeTicks: 100},
			Slots: []temporal.ResourceSlot{{Type: "furnace"}},
		},
	}
	for name, st := range cases {
		if _, err := a.Canonicalize(st); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestCheckDeadlockCounts(t *testing.T) {
	a := New(Options{MaxWaitBuckets: 5})
	st, _ := a.Canonicalize(sampleState())

	// furnace_2 is the only furnace within 5 buckets of now.
	res := a.CheckDeadlock([]temporal.SlotNeed{{Type: "furnace", Count: 1}}, st)
	if res.IsDeadlock {
		t.Fatalf("expected one usable furnace, got %+v", res)
	}
	res = a.CheckDeadlock([]temporal.SlotNeed{{Type: "furnace", Count: 2}, {Type: "smoker", Count: 1}, {Type: "blast_furnace", Count: 1}}, st)
	if want := []string{"blast_furnace", "furnace"}; !res.IsDeadlock || !reflect.DeepEqual(res.BlockedSlotTypes, want) {
		t.Fatalf("got %+v want blocked %v", res, want)
	}
}

func TestPreferBatchFirstOperatorWins(t *testing.T) {
	a := Default()
	ops := []temporal.BatchOperator{
		{OpID: "first", ItemType: "glass", MaxBatchSize: 32},
		{OpID: "second", ItemType: "glass", MaxBatchSize: 64},
	}
	p := a.PreferBatch("glass", 40, ops, 8)
	if !p.UseBatch || p.Operator.OpID != "first" || p.BatchSize != 32 {
		t.Fatalf("unexpected preference %+v", p)
	}
	if p := a.PreferBatch("glass", 7, ops, 8); p.UseBatch || p.Operator != nil {
		t.Fatalf("below threshold should not batch: %+v", p)
	}
	p.Operator.OpID = "changed"
	if ops[0].OpID != "first" {
		t.Fatalf("preference aliases the operator slice")
	}
}

func TestNewDefaults(t *testing.T) {
	a := New(Options{})
	if a.BatchThreshold() != DefaultBatchThreshold || a.MaxWaitBuckets() != DefaultMaxWaitBuckets {
		t.Fatalf("defaults not applied: %d %d", a.BatchThreshold(), a.MaxWaitBuckets())
	}
}
