package temporal

import "minebot.ai/internal/sim/mathx"

// OperationRequest is one operation to place on the slot timeline.
// RequiresSlotType overrides the duration model's slot type when set.
type OperationRequest struct {
	StepID           string     `json:"stepId" yaml:"stepId"`
	Action           string     `json:"action" yaml:"action"`
	ActionType       ActionType `json:"actionType,omitempty" yaml:"actionType,omitempty"`
	Count            int        `json:"count,omitempty" yaml:"count,omitempty"`
	RequiresSlotType string     `json:"requiresSlotType,omitempty" yaml:"requiresSlotType,omitempty"`
}

type Schedule struct {
	Steps    []ScheduledStep `json:"steps"`
	Unplaced []string        `json:"unplaced,omitempty"`
	Makespan int             `json:"makespan"`
}

func ScheduleOperations(adapter Adapter, state TemporalState, ops []OperationRequest) (Schedule, TemporalState) {
	return defaultRegistry.ScheduleOperations(adapter, state, ops)
}

// ScheduleOperations places ops in the given order, each on the slot of its
// type that frees up first. Ops whose slot type has no slot at all are
// reported in Unplaced. The returned state has every used slot advanced.
func (r *Registry) ScheduleOperations(adapter Adapter, state TemporalState, ops []OperationRequest) (Schedule, TemporalState) {
	cur := state.Clone()
	out := Schedule{Steps: make([]ScheduledStep, 0, len(ops))}
	for _, op := range ops {
		ann := r.AnnotateRuleWithDuration(op.Action, op.ActionType, op.Count)
		slotType := ann.RequiresSlotType
		if op.RequiresSlotType != "" {
			slotType = op.RequiresSlotType
		}
		buckets := TicksToBuckets(ann.DurationTicks, cur.Time.BucketSizeTicks)

		if slotType == "" {
			out.Steps = append(out.Steps, ScheduledStep{
				StepID:          op.StepID,
				StartBucket:     cur.Time.CurrentBucket,
				DurationBuckets: buckets,
			})
			continue
		}

		slot, ok := adapter.FindAvailableSlot(cur, slotType)
		if !ok {
			out.Unplaced = append(out.Unplaced, op.StepID)
			continue
		}
		next, ok := adapter.ReserveSlot(cur, slot.ID, buckets)
		if !ok {
			out.Unplaced = append(out.Unplaced, op.StepID)
			continue
		}
		out.Steps = append(out.Steps, ScheduledStep{
			StepID:          op.StepID,
			SlotID:          slot.ID,
			StartBucket:     mathx.MaxInt(slot.ReadyAtBucket, cur.Time.CurrentBucket),
			DurationBuckets: buckets,
		})
		cur = next
	}
	out.Makespan = adapter.ComputeMakespan(out.Steps)
	return out, cur
}
