package temporal

// AssessInput describes one candidate plan step.
type AssessInput struct {
	State            StateInput `json:"state" yaml:"state"`
	Items            []string   `json:"items,omitempty" yaml:"items,omitempty"`
	FurnaceSlotCount int        `json:"furnaceSlotCount,omitempty" yaml:"furnaceSlotCount,omitempty"`
	GoalItem         string     `json:"goalItem,omitempty" yaml:"goalItem,omitempty"`
	GoalCount        int        `json:"goalCount,omitempty" yaml:"goalCount,omitempty"`
}

// Assessment is everything the pre-solve checks know about a candidate step.
type Assessment struct {
	State    TemporalState       `json:"state"`
	Rules    []SchedulingRule    `json:"rules"`
	Needs    []SlotNeed          `json:"needs"`
	Deadlock DeadlockCheckResult `json:"deadlock"`
	Batch    BatchHint           `json:"batch"`
}

// Feasible is false when a needed slot type cannot be served in the horizon.
func (a Assessment) Feasible() bool { return !a.Deadlock.IsDeadlock }

func Assess(adapter Adapter, in AssessInput) (Assessment, error) {
	return defaultRegistry.Assess(adapter, in)
}

// Assess runs state construction, rule generation, deadlock veto and batch
// preference for one candidate step. It is the only entry point callers
// need before handing a state to the solver.
func (r *Registry) Assess(adapter Adapter, in AssessInput) (Assessment, error) {
	state, err := r.MakeTemporalState(in.State, adapter)
	if err != nil {
		return Assessment{}, err
	}
	rules := r.BuildFurnaceRules(in.Items, in.FurnaceSlotCount)
	needs := r.DeriveSlotNeeds(rules)
	a := Assessment{
		State:    state,
		Rules:    rules,
		Needs:    needs,
		Deadlock: CheckDeadlock(adapter, needs, state),
	}
	if in.GoalItem != "" {
		a.Batch = GetBatchHint(adapter, in.GoalItem, in.GoalCount, r.BatchOperators())
	}
	return a, nil
}
