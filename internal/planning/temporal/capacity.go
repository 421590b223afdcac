package temporal

// FindSlot returns the slot of slotType with the smallest ReadyAtBucket.
func FindSlot(adapter Adapter, state TemporalState, slotType string) (ResourceSlot, bool) {
	return adapter.FindAvailableSlot(state, slotType)
}

// ReserveSlot returns a new state with slotID busy for durationBuckets more
// buckets. The input state is left untouched.
func ReserveSlot(adapter Adapter, state TemporalState, slotID string, durationBuckets int) (TemporalState, bool) {
	return adapter.ReserveSlot(state, slotID, durationBuckets)
}

func GetEarliestAvailableBucket(adapter Adapter, state TemporalState, slotType string) (int, bool) {
	return adapter.EarliestAvailableBucket(state, slotType)
}
