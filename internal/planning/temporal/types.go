// Package temporal turns world observations into a canonical time/resource
// state and runs the pre-solve feasibility checks (slot deadlock, batch
// preference, duration and cost annotation) for time-extended operators.
//
// Everything here is a pure function of its arguments plus one injected
// Adapter. Identical inputs yield identical outputs; downstream layers hash
// these values to identify solve attempts.
package temporal

const (
	DefaultBucketSizeTicks = 100
	DefaultHorizonBuckets  = 100
	DefaultTimeWeight      = 0.3

	// MaxBatchSize mirrors the game's stack-size limit.
	MaxBatchSize = 64
)

// Slot types produced by block inference and required by furnace rules.
const (
	SlotFurnace       = "furnace"
	SlotBlastFurnace  = "blast_furnace"
	SlotSmoker        = "smoker"
	SlotCraftingTable = "crafting_table"
)

type TimeState struct {
	CurrentBucket   int `json:"currentBucket"`
	HorizonBucket   int `json:"horizonBucket"`
	BucketSizeTicks int `json:"bucketSizeTicks"`
}

// ResourceSlot is one mutually exclusive capacity unit (e.g. a furnace).
// ID is unique within a state; Type is an opaque token.
type ResourceSlot struct {
	ID            string `json:"id" yaml:"id"`
	Type          string `json:"type" yaml:"type"`
	ReadyAtBucket int    `json:"readyAtBucket" yaml:"readyAtBucket"`
}

// TemporalState is treated as immutable. Slots are kept in canonical
// (Type, ReadyAtBucket, ID) order once the adapter has canonicalized it.
type TemporalState struct {
	Time  TimeState      `json:"time"`
	Slots []ResourceSlot `json:"slots"`
}

// Clone returns a deep copy.
func (s TemporalState) Clone() TemporalState {
	out := TemporalState{Time: s.Time}
	if s.Slots != nil {
		out.Slots = append(make([]ResourceSlot, 0, len(s.Slots)), s.Slots...)
	}
	return out
}

// SlotLess is the canonical slot order.
func SlotLess(a, b ResourceSlot) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.ReadyAtBucket != b.ReadyAtBucket {
		return a.ReadyAtBucket < b.ReadyAtBucket
	}
	return a.ID < b.ID
}

type ActionType string

const (
	ActionCraft ActionType = "craft"
	ActionSmelt ActionType = "smelt"
	ActionMine  ActionType = "mine"
	ActionPlace ActionType = "place"
)

type OperatorFamily string

const (
	FamilyLoadFurnace    OperatorFamily = "load_furnace"
	FamilyAddFuel        OperatorFamily = "add_fuel"
	FamilyWaitTick       OperatorFamily = "wait_tick"
	FamilyRetrieveOutput OperatorFamily = "retrieve_output"
)

type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SchedulingRule is an inventory-delta operator handed to the remote solver.
// All fields are hash-included by the bundle digest.
type SchedulingRule struct {
	Action           string         `json:"action"`
	ActionType       ActionType     `json:"actionType"`
	OperatorFamily   OperatorFamily `json:"operatorFamily,omitempty"`
	Produces         []ItemCount    `json:"produces"`
	Consumes         []ItemCount    `json:"consumes"`
	Requires         []ItemCount    `json:"requires"`
	NeedsTable       bool           `json:"needsTable"`
	NeedsFurnace     bool           `json:"needsFurnace"`
	BaseCost         float64        `json:"baseCost"`
	DurationTicks    int            `json:"durationTicks"`
	RequiresSlotType string         `json:"requiresSlotType,omitempty"`
}

type SlotNeed struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// DeadlockCheckResult lists blocked types in sorted order.
type DeadlockCheckResult struct {
	IsDeadlock       bool     `json:"isDeadlock"`
	BlockedSlotTypes []string `json:"blockedSlotTypes"`
}

type BatchOperator struct {
	OpID                 string  `json:"op_id"`
	DurationTicks        int     `json:"duration_ticks"`
	RequiresSlotType     string  `json:"requires_slot_type,omitempty"`
	BaseCost             float64 `json:"base_cost"`
	ItemType             string  `json:"item_type"`
	MaxBatchSize         int     `json:"max_batch_size"`
	PerItemDurationTicks int     `json:"per_item_duration_ticks"`
}

// BatchPreference is what an Adapter decides; BatchHint is the flattened
// form handed back to callers.
type BatchPreference struct {
	UseBatch  bool
	Operator  *BatchOperator
	BatchSize int
}

type BatchHint struct {
	UseBatch   bool   `json:"useBatch"`
	OperatorID string `json:"operatorId,omitempty"`
	BatchSize  int    `json:"batchSize,omitempty"`
}

// ScheduledStep occupies [StartBucket, StartBucket+DurationBuckets).
// SlotID is empty for steps that need no slot.
type ScheduledStep struct {
	StepID          string `json:"stepId"`
	SlotID          string `json:"slotId,omitempty"`
	StartBucket     int    `json:"startBucket"`
	DurationBuckets int    `json:"durationBuckets"`
}

func (s ScheduledStep) EndBucket() int { return s.StartBucket + s.DurationBuckets }
