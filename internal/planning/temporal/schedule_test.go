package temporal_test

import (
	"math"
	"reflect"
	"testing"

	"minebot.ai/internal/planning/temporal"
	"minebot.ai/internal/planning/temporal/mcadapter"
)

func TestComputeTemporalCost(t *testing.T) {
	cases := []struct {
		base   float64
		ticks  int
		weight float64
		want   float64
	}{
		{10, 200, 0.3, 10*0.7 + 200*0.3},
		{10, 200, 0, 10},
		{10, 200, 1, 200},
		{10, 200, 2, 200},
		{10, 200, -1, 10},
	}
	for _, c := range cases {
		got := temporal.ComputeTemporalCost(c.base, c.ticks, c.weight)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("ComputeTemporalCost(%v,%d,%v)=%v want %v", c.base, c.ticks, c.weight, got, c.want)
		}
	}
}

func TestComputeMakespan(t *testing.T) {
	ad := mcadapter.Default()
	if got := temporal.ComputeMakespan(ad, nil); got != 0 {
		t.Fatalf("empty makespan %d", got)
	}
	steps := []temporal.ScheduledStep{
		{StepID: "a", SlotID: "furnace_0", StartBucket: 5, DurationBuckets: 2},
		{StepID: "b", SlotID: "furnace_1", StartBucket: 5, DurationBuckets: 8},
		{StepID: "c", SlotID: "furnace_0", StartBucket: 7, DurationBuckets: 2},
	}
	if got := temporal.ComputeMakespan(ad, steps); got != 13 {
		t.Fatalf("makespan %d want 13", got)
	}
}

func TestTicksToBuckets(t *testing.T) {
	if temporal.TicksToBuckets(0, 100) != 0 || temporal.TicksToBuckets(1, 100) != 1 || temporal.TicksToBuckets(800, 100) != 8 {
		t.Fatalf("TicksToBuckets mismatch")
	}
}

func TestScheduleOperationsSpreadsAcrossFurnaces(t *testing.T) {
	ad := mcadapter.Default()
	st, err := temporal.MakeTemporalState(temporal.StateInput{
		NowTicks:     500,
		NearbyBlocks: []string{"furnace", "furnace"},
	}, ad)
	if err != nil {
		t.Fatalf("MakeTemporalState: %v", err)
	}
	ops := []temporal.OperationRequest{
		{StepID: "s1", Action: "smelt:iron_ore", Count: 4},
		{StepID: "s2", Action: "smelt:sand", Count: 2},
		{StepID: "s3", Action: "smelt:gold_ore", Count: 1},
		{StepID: "c1", Action: "craft:oak_planks", ActionType: temporal.ActionCraft},
	}
	sched, next := temporal.ScheduleOperations(ad, st, ops)

	want := []temporal.ScheduledStep{
		{StepID: "s1", SlotID: "furnace_0", StartBucket: 5, DurationBuckets: 8},
		{StepID: "s2", SlotID: "furnace_1", StartBucket: 5, DurationBuckets: 4},
		{StepID: "s3", SlotID: "furnace_1", StartBucket: 9, DurationBuckets: 2},
		{StepID: "c1", StartBucket: 5, DurationBuckets: 0},
	}
	if !reflect.DeepEqual(sched.Steps, want) {
		t.Fatalf("schedule mismatch:\n got %+v\nwant %+v", sched.Steps, want)
	}
	if sched.Makespan != 13 {
		t.Fatalf("makespan %d want 13", sched.Makespan)
	}
	if len(sched.Unplaced) != 0 {
		t.Fatalf("unexpected unplaced %v", sched.Unplaced)
	}

	// Input untouched, output advanced.
	for _, s := range st.Slots {
		if s.ReadyAtBucket != 5 {
			t.Fatalf("input state mutated: %+v", st.Slots)
		}
	}
	ready := map[string]int{}
	for _, s := range next.Slots {
		ready[s.ID] = s.ReadyAtBucket
	}
	if ready["furnace_0"] != 13 || ready["furnace_1"] != 11 {
		t.Fatalf("unexpected next state %+v", next.Slots)
	}
}

func TestScheduleOperationsUnplaced(t *testing.T) {
	ad := mcadapter.Default()
	st, err := temporal.MakeTemporalState(temporal.StateInput{NowTicks: 0, NearbyBlocks: []string{"furnace"}}, ad)
	if err != nil {
		t.Fatalf("MakeTemporalState: %v", err)
	}
	sched, _ := temporal.ScheduleOperations(ad, st, []temporal.OperationRequest{
		{StepID: "b1", Action: "blast:raw_iron"},
		{StepID: "s1", Action: "smelt:raw_iron"},
	})
	if !reflect.DeepEqual(sched.Unplaced, []string{"b1"}) {
		t.Fatalf("expected b1 unplaced, got %v", sched.Unplaced)
	}
	if len(sched.Steps) != 1 || sched.Steps[0].SlotID != "furnace_0" {
		t.Fatalf("unexpected steps %+v", sched.Steps)
	}
}
