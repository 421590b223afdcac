package temporal

import "sort"

func DeriveSlotNeeds(rules []SchedulingRule) []SlotNeed {
	return defaultRegistry.DeriveSlotNeeds(rules)
}

// DeriveSlotNeeds is fail-closed: a rule needs slot type T when the duration
// model says so OR when the rule carries NeedsFurnace, even if the duration
// model has never heard of its action.
//
// Count is always 1 per type; concurrent use of several slots of one type is
// not modelled here.
func (r *Registry) DeriveSlotNeeds(rules []SchedulingRule) []SlotNeed {
	types := map[string]struct{}{}
	for _, rule := range rules {
		if d, ok := r.FindDuration(rule.Action, rule.ActionType); ok && d.RequiresSlotType != "" {
			types[d.RequiresSlotType] = struct{}{}
		}
		if rule.NeedsFurnace {
			types[SlotFurnace] = struct{}{}
		}
	}
	keys := make([]string, 0, len(types))
	for t := range types {
		keys = append(keys, t)
	}
	sort.Strings(keys)
	needs := make([]SlotNeed, 0, len(keys))
	for _, t := range keys {
		needs = append(needs, SlotNeed{Type: t, Count: 1})
	}
	return needs
}

func CheckDeadlockForRules(adapter Adapter, rules []SchedulingRule, state TemporalState) DeadlockCheckResult {
	return defaultRegistry.CheckDeadlockForRules(adapter, rules, state)
}

func (r *Registry) CheckDeadlockForRules(adapter Adapter, rules []SchedulingRule, state TemporalState) DeadlockCheckResult {
	return CheckDeadlock(adapter, r.DeriveSlotNeeds(rules), state)
}

// CheckDeadlock passes needs straight to the adapter. No needs, no deadlock.
func CheckDeadlock(adapter Adapter, needs []SlotNeed, state TemporalState) DeadlockCheckResult {
	if len(needs) == 0 {
		return DeadlockCheckResult{BlockedSlotTypes: []string{}}
	}
	return adapter.CheckDeadlock(needs, state)
}
