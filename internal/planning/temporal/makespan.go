package temporal

import "minebot.ai/internal/sim/mathx"

func ComputeMakespan(adapter Adapter, steps []ScheduledStep) int {
	return adapter.ComputeMakespan(steps)
}

// ComputeTemporalCost blends action cost and duration:
// base*(1-w) + ticks*w, with w clamped to [0,1].
// Not yet used by any search heuristic.
func ComputeTemporalCost(baseCost float64, durationTicks int, timeWeight float64) float64 {
	w := mathx.Clamp01(timeWeight)
	return baseCost*(1-w) + float64(durationTicks)*w
}

// TicksToBuckets rounds a tick duration up to whole buckets.
func TicksToBuckets(ticks, bucketSize int) int {
	if ticks <= 0 || bucketSize <= 0 {
		return 0
	}
	return mathx.CeilDiv(ticks, bucketSize)
}
