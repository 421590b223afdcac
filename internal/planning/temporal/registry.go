package temporal

import "sort"

// OperatorDuration matches either an action prefix ("smelt:") or, as a
// fallback, an action type.
type OperatorDuration struct {
	ActionPrefix         string     `json:"action_prefix,omitempty"`
	ActionType           ActionType `json:"action_type,omitempty"`
	BaseDurationTicks    int        `json:"base_duration_ticks"`
	PerItemDurationTicks int        `json:"per_item_duration_ticks"`
	RequiresSlotType     string     `json:"requires_slot_type,omitempty"`
}

type SmeltEntry struct {
	Output        string `json:"output"`
	DurationTicks int    `json:"duration_ticks"`
}

// RegistryConfig is the mutable input used to build a Registry.
type RegistryConfig struct {
	Durations      []OperatorDuration
	Smeltables     map[string]SmeltEntry
	SlotBlocks     map[string]string
	BatchOperators []BatchOperator
}

// Registry holds the static tables. It is never written after NewRegistry
// returns; accessors hand out copies.
type Registry struct {
	durations      []OperatorDuration
	smeltables     map[string]SmeltEntry
	slotBlocks     map[string]string
	batchOperators []BatchOperator
}

func NewRegistry(cfg RegistryConfig) *Registry {
	r := &Registry{
		durations:      append([]OperatorDuration(nil), cfg.Durations...),
		smeltables:     make(map[string]SmeltEntry, len(cfg.Smeltables)),
		slotBlocks:     make(map[string]string, len(cfg.SlotBlocks)),
		batchOperators: append([]BatchOperator(nil), cfg.BatchOperators...),
	}
	for k, v := range cfg.Smeltables {
		r.smeltables[k] = v
	}
	for k, v := range cfg.SlotBlocks {
		r.slotBlocks[k] = v
	}
	return r
}

func (r *Registry) Durations() []OperatorDuration {
	return append([]OperatorDuration(nil), r.durations...)
}

func (r *Registry) Smeltable(input string) (SmeltEntry, bool) {
	e, ok := r.smeltables[input]
	return e, ok
}

// SmeltableInputs returns the registered inputs, sorted.
func (r *Registry) SmeltableInputs() []string {
	out := make([]string, 0, len(r.smeltables))
	for k := range r.smeltables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) SlotTypeForBlock(block string) (string, bool) {
	t, ok := r.slotBlocks[block]
	return t, ok
}

func (r *Registry) BatchOperators() []BatchOperator {
	return append([]BatchOperator(nil), r.batchOperators...)
}

var defaultRegistry = NewRegistry(RegistryConfig{
	Durations: []OperatorDuration{
		// perItem == base for furnaces: a furnace smelts one item at a time.
		{ActionPrefix: "smelt:", BaseDurationTicks: 200, PerItemDurationTicks: 200, RequiresSlotType: SlotFurnace},
		{ActionPrefix: "blast:", BaseDurationTicks: 100, PerItemDurationTicks: 100, RequiresSlotType: SlotBlastFurnace},
		{ActionPrefix: "smoke:", BaseDurationTicks: 100, PerItemDurationTicks: 100, RequiresSlotType: SlotSmoker},
		{ActionPrefix: "mine:", BaseDurationTicks: 30, PerItemDurationTicks: 30},
		{ActionPrefix: "place:", BaseDurationTicks: 5, PerItemDurationTicks: 5},
		{ActionType: ActionSmelt, BaseDurationTicks: 200, PerItemDurationTicks: 200, RequiresSlotType: SlotFurnace},
	},
	Smeltables: map[string]SmeltEntry{
		"iron_ore":     {Output: "iron_ingot", DurationTicks: 200},
		"raw_iron":     {Output: "iron_ingot", DurationTicks: 200},
		"gold_ore":     {Output: "gold_ingot", DurationTicks: 200},
		"raw_gold":     {Output: "gold_ingot", DurationTicks: 200},
		"raw_copper":   {Output: "copper_ingot", DurationTicks: 200},
		"raw_beef":     {Output: "cooked_beef", DurationTicks: 200},
		"raw_porkchop": {Output: "cooked_porkchop", DurationTicks: 200},
		"raw_chicken":  {Output: "cooked_chicken", DurationTicks: 200},
		"raw_mutton":   {Output: "cooked_mutton", DurationTicks: 200},
		"raw_cod":      {Output: "cooked_cod", DurationTicks: 200},
		"raw_salmon":   {Output: "cooked_salmon", DurationTicks: 200},
		"potato":       {Output: "baked_potato", DurationTicks: 200},
		"sand":         {Output: "glass", DurationTicks: 200},
		"cobblestone":  {Output: "stone", DurationTicks: 200},
		"clay_ball":    {Output: "brick", DurationTicks: 200},
		"oak_log":      {Output: "charcoal", DurationTicks: 200},
	},
	SlotBlocks: map[string]string{
		"furnace":           SlotFurnace,
		"lit_furnace":       SlotFurnace,
		"blast_furnace":     SlotBlastFurnace,
		"lit_blast_furnace": SlotBlastFurnace,
		"smoker":            SlotSmoker,
		"lit_smoker":        SlotSmoker,
		"crafting_table":    SlotCraftingTable,
	},
	BatchOperators: []BatchOperator{
		{OpID: "furnace_batch:iron_ingot", DurationTicks: 200, RequiresSlotType: SlotFurnace, BaseCost: 12, ItemType: "iron_ingot", MaxBatchSize: 64, PerItemDurationTicks: 200},
		{OpID: "furnace_batch:gold_ingot", DurationTicks: 200, RequiresSlotType: SlotFurnace, BaseCost: 12, ItemType: "gold_ingot", MaxBatchSize: 64, PerItemDurationTicks: 200},
		{OpID: "furnace_batch:copper_ingot", DurationTicks: 200, RequiresSlotType: SlotFurnace, BaseCost: 12, ItemType: "copper_ingot", MaxBatchSize: 64, PerItemDurationTicks: 200},
		{OpID: "furnace_batch:glass", DurationTicks: 200, RequiresSlotType: SlotFurnace, BaseCost: 12, ItemType: "glass", MaxBatchSize: 64, PerItemDurationTicks: 200},
		{OpID: "furnace_batch:stone", DurationTicks: 200, RequiresSlotType: SlotFurnace, BaseCost: 12, ItemType: "stone", MaxBatchSize: 64, PerItemDurationTicks: 200},
		{OpID: "furnace_batch:charcoal", DurationTicks: 200, RequiresSlotType: SlotFurnace, BaseCost: 12, ItemType: "charcoal", MaxBatchSize: 64, PerItemDurationTicks: 200},
		{OpID: "smoker_batch:cooked_beef", DurationTicks: 100, RequiresSlotType: SlotSmoker, BaseCost: 12, ItemType: "cooked_beef", MaxBatchSize: 64, PerItemDurationTicks: 100},
		{OpID: "smoker_batch:cooked_porkchop", DurationTicks: 100, RequiresSlotType: SlotSmoker, BaseCost: 12, ItemType: "cooked_porkchop", MaxBatchSize: 64, PerItemDurationTicks: 100},
	},
})

// DefaultRegistry returns the built-in Minecraft tables.
func DefaultRegistry() *Registry { return defaultRegistry }

// MinecraftBatchOperators returns a copy of the built-in batch operators.
func MinecraftBatchOperators() []BatchOperator { return defaultRegistry.BatchOperators() }
