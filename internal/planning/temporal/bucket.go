package temporal

import (
	"fmt"
	"strconv"

	"minebot.ai/internal/sim/mathx"
)

// StateInput is the raw observation a caller supplies for one planning
// attempt. Zero HorizonBuckets or BucketSizeTicks select the defaults.
// A non-nil SlotsObserved (even empty) takes precedence over NearbyBlocks.
type StateInput struct {
	NowTicks        int            `json:"nowTicks" yaml:"nowTicks"`
	HorizonBuckets  int            `json:"horizonBuckets,omitempty" yaml:"horizonBuckets,omitempty"`
	SlotsObserved   []ResourceSlot `json:"slotsObserved,omitempty" yaml:"slotsObserved,omitempty"`
	NearbyBlocks    []string       `json:"nearbyBlocks,omitempty" yaml:"nearbyBlocks,omitempty"`
	BucketSizeTicks int            `json:"bucketSizeTicks,omitempty" yaml:"bucketSizeTicks,omitempty"`
}

func ToTickBucket(ticks, bucketSize int) int {
	return mathx.FloorDiv(ticks, bucketSize)
}

func InferSlotsFromBlocks(blocks []string, currentBucket int) []ResourceSlot {
	return defaultRegistry.InferSlotsFromBlocks(blocks, currentBucket)
}

// InferSlotsFromBlocks synthesizes one slot per slot-bearing block, assumed
// free at currentBucket. IDs are "<type>_<n>" with n counting per type in
// the order blocks are given, so callers wanting stable IDs must pass a
// stable block order.
func (r *Registry) InferSlotsFromBlocks(blocks []string, currentBucket int) []ResourceSlot {
	out := make([]ResourceSlot, 0, len(blocks))
	seen := map[string]int{}
	for _, b := range blocks {
		slotType, ok := r.SlotTypeForBlock(b)
		if !ok {
			continue
		}
		idx := seen[slotType]
		seen[slotType] = idx + 1
		out = append(out, ResourceSlot{
			ID:            slotType + "_" + strconv.Itoa(idx),
			Type:          slotType,
			ReadyAtBucket: currentBucket,
		})
	}
	return out
}

func MakeTemporalState(in StateInput, adapter Adapter) (TemporalState, error) {
	return defaultRegistry.MakeTemporalState(in, adapter)
}

// MakeTemporalState builds the raw state and always returns it through
// adapter.Canonicalize, which is the single normalization point for hashing.
func (r *Registry) MakeTemporalState(in StateInput, adapter Adapter) (TemporalState, error) {
	bucketSize := in.BucketSizeTicks
	if bucketSize == 0 {
		bucketSize = DefaultBucketSizeTicks
	}
	if bucketSize < 0 {
		return TemporalState{}, fmt.Errorf("bucket size must be positive, got %d", bucketSize)
	}
	horizon := in.HorizonBuckets
	if horizon == 0 {
		horizon = DefaultHorizonBuckets
	}
	current := ToTickBucket(in.NowTicks, bucketSize)

	raw := TemporalState{
		Time: TimeState{
			CurrentBucket:   current,
			HorizonBucket:   current + horizon,
			BucketSizeTicks: bucketSize,
		},
	}
	if in.SlotsObserved != nil {
		raw.Slots = append(make([]ResourceSlot, 0, len(in.SlotsObserved)), in.SlotsObserved...)
	} else {
		raw.Slots = r.InferSlotsFromBlocks(in.NearbyBlocks, current)
	}
	return adapter.Canonicalize(raw)
}
