package temporal

// Adapter owns the scheduling algorithms for one game's tick model. The
// functions in this package only assemble arguments for it and interpret
// its answers, so a different tick model can be swapped in without touching
// duration, rule or deadlock code.
//
// Implementations must be deterministic and must not mutate their
// TemporalState arguments.
type Adapter interface {
	// Canonicalize validates integer fields and returns a copy with slots in
	// canonical order. It must be idempotent.
	Canonicalize(raw TemporalState) (TemporalState, error)

	FindAvailableSlot(state TemporalState, slotType string) (ResourceSlot, bool)
	ReserveSlot(state TemporalState, slotID string, durationBuckets int) (TemporalState, bool)
	EarliestAvailableBucket(state TemporalState, slotType string) (int, bool)

	CheckDeadlock(needs []SlotNeed, state TemporalState) DeadlockCheckResult
	PreferBatch(itemType string, goalCount int, ops []BatchOperator, threshold int) BatchPreference
	ComputeMakespan(steps []ScheduledStep) int

	BatchThreshold() int
}
