package temporal

const (
	fuelItem = "coal"

	loadCost     = 2
	fuelCost     = 1
	waitCost     = 10
	retrieveCost = 2
)

// SmeltingMarker names the synthetic inventory item that stands for an
// input sitting in a furnace.
func SmeltingMarker(input string) string { return "smelting:" + input }

func BuildFurnaceRules(items []string, furnaceSlotCount int) []SchedulingRule {
	return defaultRegistry.BuildFurnaceRules(items, furnaceSlotCount)
}

// BuildFurnaceRules emits load, fuel, wait and retrieve rules for every
// smeltable item, in input order. Unknown items are skipped.
//
// furnaceSlotCount is accepted but does not affect the output: rules are not
// bound to a slot ID, slot choice is left to RequiresSlotType during search.
func (r *Registry) BuildFurnaceRules(items []string, furnaceSlotCount int) []SchedulingRule {
	var rules []SchedulingRule
	for _, input := range items {
		entry, ok := r.Smeltable(input)
		if !ok {
			continue
		}
		marker := SmeltingMarker(input)
		rules = append(rules,
			furnaceRule("furnace_load:"+input, FamilyLoadFurnace, loadCost, 0,
				nil, []ItemCount{{Name: input, Count: 1}}),
			furnaceRule("furnace_fuel:"+input, FamilyAddFuel, fuelCost, 0,
				nil, []ItemCount{{Name: fuelItem, Count: 1}}),
			furnaceRule("furnace_smelt:"+input, FamilyWaitTick, waitCost, entry.DurationTicks,
				[]ItemCount{{Name: marker, Count: 1}}, nil),
			furnaceRule("furnace_retrieve:"+input, FamilyRetrieveOutput, retrieveCost, 0,
				[]ItemCount{{Name: entry.Output, Count: 1}}, []ItemCount{{Name: marker, Count: 1}}),
		)
	}
	if rules == nil {
		return []SchedulingRule{}
	}
	return rules
}

func furnaceRule(action string, family OperatorFamily, cost float64, durationTicks int, produces, consumes []ItemCount) SchedulingRule {
	if produces == nil {
		produces = []ItemCount{}
	}
	if consumes == nil {
		consumes = []ItemCount{}
	}
	return SchedulingRule{
		Action:           action,
		ActionType:       ActionSmelt,
		OperatorFamily:   family,
		Produces:         produces,
		Consumes:         consumes,
		Requires:         []ItemCount{},
		NeedsTable:       false,
		NeedsFurnace:     true,
		BaseCost:         cost,
		DurationTicks:    durationTicks,
		RequiresSlotType: SlotFurnace,
	}
}

// CheckSlotPrecondition reports a violation only when loading an already
// occupied slot.
func CheckSlotPrecondition(slotOccupied bool, family OperatorFamily) bool {
	return slotOccupied && family == FamilyLoadFurnace
}
