// Package mcadapter is the reference temporal.Adapter for Minecraft's
// 20 Hz tick model.
package mcadapter

import (
	"fmt"
	"sort"

	"minebot.ai/internal/planning/temporal"
	"minebot.ai/internal/sim/mathx"
)

const (
	DefaultBatchThreshold = 8

	// DefaultMaxWaitBuckets bounds how long a plan may wait for a slot.
	// It has the same magnitude as the default horizon but is a separate
	// knob: the horizon is how far we plan, this is how long we queue.
	DefaultMaxWaitBuckets = 100
)

type Options struct {
	BatchThreshold int
	MaxWaitBuckets int
}

type Adapter struct {
	batchThreshold int
	maxWaitBuckets int
}

var _ temporal.Adapter = (*Adapter)(nil)

// New fills zero options with the defaults.
func New(opts Options) *Adapter {
	a := &Adapter{
		batchThreshold: opts.BatchThreshold,
		maxWaitBuckets: opts.MaxWaitBuckets,
	}
	if a.batchThreshold <= 0 {
		a.batchThreshold = DefaultBatchThreshold
	}
	if a.maxWaitBuckets <= 0 {
		a.maxWaitBuckets = DefaultMaxWaitBuckets
	}
	return a
}

func Default() *Adapter { return New(Options{}) }

func (a *Adapter) BatchThreshold() int { return a.batchThreshold }
func (a *Adapter) MaxWaitBuckets() int { return a.maxWaitBuckets }

func (a *Adapter) Canonicalize(raw temporal.TemporalState) (temporal.TemporalState, error) {
	t := raw.Time
	if t.BucketSizeTicks <= 0 {
		return temporal.TemporalState{}, fmt.Errorf("bucketSizeTicks must be > 0, got %d", t.BucketSizeTicks)
	}
	if t.CurrentBucket < 0 {
		return temporal.TemporalState{}, fmt.Errorf("currentBucket must be >= 0, got %d", t.CurrentBucket)
	}
	if t.HorizonBucket < t.CurrentBucket {
		return temporal.TemporalState{}, fmt.Errorf("horizonBucket %d before currentBucket %d", t.HorizonBucket, t.CurrentBucket)
	}

	out := raw.Clone()
	if out.Slots == nil {
		out.Slots = []temporal.ResourceSlot{}
	}
	seen := make(map[string]struct{}, len(out.Slots))
	for _, s := range out.Slots {
		if s.ID == "" {
			return temporal.TemporalState{}, fmt.Errorf("slot with empty id (type %q)", s.Type)
		}
		if _, dup := seen[s.ID]; dup {
			return temporal.TemporalState{}, fmt.Errorf("duplicate slot id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.ReadyAtBucket < 0 {
			return temporal.TemporalState{}, fmt.Errorf("slot %q: readyAtBucket must be >= 0, got %d", s.ID, s.ReadyAtBucket)
		}
	}
	sort.Slice(out.Slots, func(i, j int) bool { return temporal.SlotLess(out.Slots[i], out.Slots[j]) })
	return out, nil
}

// FindAvailableSlot picks the earliest-ready slot of slotType; ties go to
// canonical order.
func (a *Adapter) FindAvailableSlot(state temporal.TemporalState, slotType string) (temporal.ResourceSlot, bool) {
	var best temporal.ResourceSlot
	found := false
	for _, s := range state.Slots {
		if s.Type != slotType {
			continue
		}
		if !found || temporal.SlotLess(s, best) {
			best = s
			found = true
		}
	}
	return best, found
}

// ReserveSlot occupies slotID from max(readyAt, current) for
// durationBuckets. Negative durations count as zero.
func (a *Adapter) ReserveSlot(state temporal.TemporalState, slotID string, durationBuckets int) (temporal.TemporalState, bool) {
	out := state.Clone()
	for i := range out.Slots {
		if out.Slots[i].ID != slotID {
			continue
		}
		start := mathx.MaxInt(out.Slots[i].ReadyAtBucket, out.Time.CurrentBucket)
		out.Slots[i].ReadyAtBucket = start + mathx.MaxInt(durationBuckets, 0)
		sort.Slice(out.Slots, func(i, j int) bool { return temporal.SlotLess(out.Slots[i], out.Slots[j]) })
		return out, true
	}
	return state, false
}

func (a *Adapter) EarliestAvailableBucket(state temporal.TemporalState, slotType string) (int, bool) {
	s, ok := a.FindAvailableSlot(state, slotType)
	if !ok {
		return 0, false
	}
	return s.ReadyAtBucket, true
}

// CheckDeadlock marks a type blocked when fewer than need.Count slots of it
// become ready inside the horizon and within MaxWaitBuckets of now.
func (a *Adapter) CheckDeadlock(needs []temporal.SlotNeed, state temporal.TemporalState) temporal.DeadlockCheckResult {
	res := temporal.DeadlockCheckResult{BlockedSlotTypes: []string{}}
	blocked := map[string]struct{}{}
	for _, n := range needs {
		want := mathx.MaxInt(n.Count, 1)
		usable := 0
		for _, s := range state.Slots {
			if s.Type == n.Type && a.usable(s, state.Time) {
				usable++
			}
		}
		if usable < want {
			blocked[n.Type] = struct{}{}
		}
	}
	for t := range blocked {
		res.BlockedSlotTypes = append(res.BlockedSlotTypes, t)
	}
	sort.Strings(res.BlockedSlotTypes)
	res.IsDeadlock = len(res.BlockedSlotTypes) > 0
	return res
}

func (a *Adapter) usable(s temporal.ResourceSlot, t temporal.TimeState) bool {
	if s.ReadyAtBucket > t.HorizonBucket {
		return false
	}
	return s.ReadyAtBucket-t.CurrentBucket <= a.maxWaitBuckets
}

// PreferBatch batches when goalCount reaches threshold and an operator is
// registered for itemType. The first registered operator wins; the batch is
// capped at its MaxBatchSize (and the stack limit).
func (a *Adapter) PreferBatch(itemType string, goalCount int, ops []temporal.BatchOperator, threshold int) temporal.BatchPreference {
	if goalCount < threshold || goalCount <= 0 {
		return temporal.BatchPreference{}
	}
	for i := range ops {
		if ops[i].ItemType != itemType {
			continue
		}
		op := ops[i]
		limit := op.MaxBatchSize
		if limit <= 0 || limit > temporal.MaxBatchSize {
			limit = temporal.MaxBatchSize
		}
		return temporal.BatchPreference{
			UseBatch:  true,
			Operator:  &op,
			BatchSize: mathx.MinInt(goalCount, limit),
		}
	}
	return temporal.BatchPreference{}
}

// ComputeMakespan is the end bucket of the last-finishing step, 0 for none.
func (a *Adapter) ComputeMakespan(steps []temporal.ScheduledStep) int {
	end := 0
	for _, s := range steps {
		end = mathx.MaxInt(end, s.EndBucket())
	}
	return end
}
