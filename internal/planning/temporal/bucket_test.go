package temporal_test

import (
	"reflect"
	"testing"

	"minebot.ai/internal/planning/temporal"
	"minebot.ai/internal/planning/temporal/mcadapter"
)

func TestToTickBucket(t *testing.T) {
	cases := []struct{ ticks, size, want int }{
		{250, 100, 2},
		{99, 100, 0},
		{100, 100, 1},
		{0, 100, 0},
		{12000, 20, 600},
	}
	for _, c := range cases {
		if got := temporal.ToTickBucket(c.ticks, c.size); got != c.want {
			t.Fatalf("ToTickBucket(%d,%d)=%d want %d", c.ticks, c.size, got, c.want)
		}
	}
}

func TestInferSlotsFromBlocks(t *testing.T) {
	blocks := []string{"stone", "furnace", "crafting_table", "lit_furnace", "lit_smoker", "dirt", "blast_furnace"}
	got := temporal.InferSlotsFromBlocks(blocks, 7)
	want := []temporal.ResourceSlot{
		{ID: "furnace_0", Type: "furnace", ReadyAtBucket: 7},
		{ID: "crafting_table_0", Type: "crafting_table", ReadyAtBucket: 7},
		{ID: "furnace_1", Type: "furnace", ReadyAtBucket: 7},
		{ID: "smoker_0", Type: "smoker", ReadyAtBucket: 7},
		{ID: "blast_furnace_0", Type: "blast_furnace", ReadyAtBucket: 7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected slots:\n got %+v\nwant %+v", got, want)
	}
}

func TestInferSlotsFromBlocksIgnoresUnknown(t *testing.T) {
	if got := temporal.InferSlotsFromBlocks([]string{"stone", "chest"}, 0); len(got) != 0 {
		t.Fatalf("expected no slots, got %+v", got)
	}
}

func TestMakeTemporalStateFromBlocks(t *testing.T) {
	st, err := temporal.MakeTemporalState(temporal.StateInput{
		NowTicks:     500,
		NearbyBlocks: []string{"furnace", "furnace"},
	}, mcadapter.Default())
	if err != nil {
		t.Fatalf("MakeTemporalState: %v", err)
	}
	want := temporal.TimeState{CurrentBucket: 5, HorizonBucket: 105, BucketSizeTicks: 100}
	if st.Time != want {
		t.Fatalf("time mismatch: got %+v want %+v", st.Time, want)
	}
	if len(st.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(st.Slots))
	}
	for _, s := range st.Slots {
		if s.Type != "furnace" || s.ReadyAtBucket != 5 {
			t.Fatalf("unexpected slot %+v", s)
		}
	}
}

func TestMakeTemporalStatePrefersObservedSlots(t *testing.T) {
	st, err := temporal.MakeTemporalState(temporal.StateInput{
		NowTicks:      1000,
		SlotsObserved: []temporal.ResourceSlot{{ID: "f_north", Type: "furnace", ReadyAtBucket: 14}},
		NearbyBlocks:  []string{"furnace", "smoker"},
	}, mcadapter.Default())
	if err != nil {
		t.Fatalf("MakeTemporalState: %v", err)
	}
	if len(st.Slots) != 1 || st.Slots[0].ID != "f_north" {
		t.Fatalf("expected observed slot only, got %+v", st.Slots)
	}
}

func TestMakeTemporalStateOrderIndependent(t *testing.T) {
	slots := []temporal.ResourceSlot{
		{ID: "s2", Type: "smoker", ReadyAtBucket: 3},
		{ID: "f1", Type: "furnace", ReadyAtBucket: 9},
		{ID: "f0", Type: "furnace", ReadyAtBucket: 9},
		{ID: "f2", Type: "furnace", ReadyAtBucket: 2},
	}
	perms := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}

	var first temporal.TemporalState
	for i, p := range perms {
		in := make([]temporal.ResourceSlot, len(p))
		for j, k := range p {
			in[j] = slots[k]
		}
		st, err := temporal.MakeTemporalState(temporal.StateInput{NowTicks: 200, SlotsObserved: in}, mcadapter.Default())
		if err != nil {
			t.Fatalf("perm %d: %v", i, err)
		}
		if i == 0 {
			first = st
			continue
		}
		if !reflect.DeepEqual(first, st) {
			t.Fatalf("perm %d differs:\n got %+v\nwant %+v", i, st, first)
		}
	}
	wantIDs := []string{"f2", "f0", "f1", "s2"}
	for i, id := range wantIDs {
		if first.Slots[i].ID != id {
			t.Fatalf("canonical order mismatch at %d: got %s want %s", i, first.Slots[i].ID, id)
		}
	}
}

func TestMakeTemporalStateDoesNotAliasInput(t *testing.T) {
	in := []temporal.ResourceSlot{
		{ID: "b", Type: "furnace", ReadyAtBucket: 4},
		{ID: "a", Type: "furnace", ReadyAtBucket: 1},
	}
	if _, err := temporal.MakeTemporalState(temporal.StateInput{SlotsObserved: in}, mcadapter.Default()); err != nil {
		t.Fatalf("MakeTemporalState: %v", err)
	}
	if in[0].ID != "b" || in[1].ID != "a" {
		t.Fatalf("input slots were reordered: %+v", in)
	}
}

func TestMakeTemporalStateCustomBucketAndHorizon(t *testing.T) {
	st, err := temporal.MakeTemporalState(temporal.StateInput{
		NowTicks:        450,
		HorizonBuckets:  30,
		BucketSizeTicks: 20,
	}, mcadapter.Default())
	if err != nil {
		t.Fatalf("MakeTemporalState: %v", err)
	}
	want := temporal.TimeState{CurrentBucket: 22, HorizonBucket: 52, BucketSizeTicks: 20}
	if st.Time != want {
		t.Fatalf("got %+v want %+v", st.Time, want)
	}
	if st.Slots == nil {
		t.Fatalf("expected empty, non-nil slot list")
	}
}

func TestMakeTemporalStateRejectsInvalid(t *testing.T) {
	if _, err := temporal.MakeTemporalState(temporal.StateInput{NowTicks: -5}, mcadapter.Default()); err == nil {
		t.Fatalf("expected error for negative ticks")
	}
	dup := []temporal.ResourceSlot{{ID: "x", Type: "furnace"}, {ID: "x", Type: "smoker"}}
	if _, err := temporal.MakeTemporalState(temporal.StateInput{SlotsObserved: dup}, mcadapter.Default()); err == nil {
		t.Fatalf("expected error for duplicate slot ids")
	}
}
