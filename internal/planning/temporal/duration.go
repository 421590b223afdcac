package temporal

import "strings"

// RuleAnnotation is the duration metadata attached to a generated rule.
type RuleAnnotation struct {
	DurationTicks    int    `json:"durationTicks"`
	RequiresSlotType string `json:"requiresSlotType,omitempty"`
}

func FindDuration(action string, actionType ActionType) (OperatorDuration, bool) {
	return defaultRegistry.FindDuration(action, actionType)
}

func ComputeDurationTicks(action string, count int, actionType ActionType) int {
	return defaultRegistry.ComputeDurationTicks(action, count, actionType)
}

func AnnotateRuleWithDuration(action string, actionType ActionType, count int) RuleAnnotation {
	return defaultRegistry.AnnotateRuleWithDuration(action, actionType, count)
}

// FindDuration tries every prefix entry first, then falls back to the
// action type. actionType may be empty.
func (r *Registry) FindDuration(action string, actionType ActionType) (OperatorDuration, bool) {
	for _, d := range r.durations {
		if d.ActionPrefix != "" && strings.HasPrefix(action, d.ActionPrefix) {
			return d, true
		}
	}
	if actionType == "" {
		return OperatorDuration{}, false
	}
	for _, d := range r.durations {
		if d.ActionPrefix == "" && d.ActionType == actionType {
			return d, true
		}
	}
	return OperatorDuration{}, false
}

// ComputeDurationTicks is 0 for unmatched actions. count < 1 counts as 1.
func (r *Registry) ComputeDurationTicks(action string, count int, actionType ActionType) int {
	d, ok := r.FindDuration(action, actionType)
	if !ok {
		return 0
	}
	if count < 1 {
		count = 1
	}
	return d.BaseDurationTicks + d.PerItemDurationTicks*(count-1)
}

func (r *Registry) AnnotateRuleWithDuration(action string, actionType ActionType, count int) RuleAnnotation {
	ann := RuleAnnotation{DurationTicks: r.ComputeDurationTicks(action, count, actionType)}
	if d, ok := r.FindDuration(action, actionType); ok {
		ann.RequiresSlotType = d.RequiresSlotType
	}
	return ann
}
